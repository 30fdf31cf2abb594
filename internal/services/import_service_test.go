package services

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// MockCatalogRepository mocks the repository. WithTransaction is a
// passthrough so tests see every call the service makes inside the batch.
type MockCatalogRepository struct {
	mock.Mock
}

var _ repository.CatalogRepository = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) WithTransaction(fn func(tx repository.CatalogRepository) error) error {
	return fn(m)
}

func (m *MockCatalogRepository) FindProductByCode(code string) (*models.Product, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogRepository) InsertProduct(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *MockCatalogRepository) UpsertProductTranslation(tr *models.ProductTranslation) error {
	return m.Called(tr).Error(0)
}

func (m *MockCatalogRepository) FindProductItemByISKU(isku string) (*models.ProductItem, error) {
	args := m.Called(isku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductItem), args.Error(1)
}

func (m *MockCatalogRepository) InsertProductItem(item *models.ProductItem) error {
	return m.Called(item).Error(0)
}

func (m *MockCatalogRepository) UpdateProductItem(item *models.ProductItem) error {
	return m.Called(item).Error(0)
}

func (m *MockCatalogRepository) InsertProductItemTranslationIgnore(tr *models.ProductItemTranslation) error {
	return m.Called(tr).Error(0)
}

func (m *MockCatalogRepository) UpsertProductItemAttribute(attr *models.ProductItemAttribute) error {
	return m.Called(attr).Error(0)
}

func (m *MockCatalogRepository) InsertDeliveryEstimateIgnore(estimate *models.DeliveryEstimate) error {
	return m.Called(estimate).Error(0)
}

func (m *MockCatalogRepository) ListCategories() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogRepository) ListTags() ([]models.Tag, error) {
	args := m.Called()
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockCatalogRepository) ListItemTags() ([]models.ItemTag, error) {
	args := m.Called()
	return args.Get(0).([]models.ItemTag), args.Error(1)
}

func (m *MockCatalogRepository) ListAttributes() ([]models.Attribute, error) {
	args := m.Called()
	return args.Get(0).([]models.Attribute), args.Error(1)
}

func (m *MockCatalogRepository) InsertTag(tag *models.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *MockCatalogRepository) InsertItemTag(tag *models.ItemTag) error {
	return m.Called(tag).Error(0)
}

func (m *MockCatalogRepository) InsertAttribute(attr *models.Attribute) error {
	return m.Called(attr).Error(0)
}

func (m *MockCatalogRepository) InsertProductCategoryIgnore(productCode, categoryCode string) error {
	return m.Called(productCode, categoryCode).Error(0)
}

func (m *MockCatalogRepository) InsertProductTagIgnore(productCode, tagCode string) error {
	return m.Called(productCode, tagCode).Error(0)
}

func (m *MockCatalogRepository) InsertProductItemTagIgnore(isku, itemTagCode string) error {
	return m.Called(isku, itemTagCode).Error(0)
}

func (m *MockCatalogRepository) ProductCodeExists(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) ISKUExists(isku string) (bool, error) {
	args := m.Called(isku)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) InsertRelatedEdgeIgnore(edge *models.RelatedEntity) error {
	return m.Called(edge).Error(0)
}

func (m *MockCatalogRepository) GetProductByCode(code string) (*models.Product, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogRepository) ListRelatedEdgesFrom(fromType models.EntityType, fromCode string) ([]models.RelatedEntity, error) {
	args := m.Called(fromType, fromCode)
	return args.Get(0).([]models.RelatedEntity), args.Error(1)
}

func (m *MockCatalogRepository) InvalidateCatalogCaches() {
	m.Called()
}

// newImportService builds the service under test with a quiet logger.
func newImportService(repo repository.CatalogRepository) *ImportService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewImportService(repo, logger, "EUR", 1)
}

// stubVocabularies registers the four vocabulary list calls. Categories are
// the only vocabulary tests commonly seed.
func stubVocabularies(m *MockCatalogRepository, categories []models.Category) {
	if categories == nil {
		categories = []models.Category{}
	}
	m.On("ListCategories").Return(categories, nil)
	m.On("ListTags").Return([]models.Tag{}, nil)
	m.On("ListItemTags").Return([]models.ItemTag{}, nil)
	m.On("ListAttributes").Return([]models.Attribute{}, nil)
}

// stubWrites registers every write as a no-op success.
func stubWrites(m *MockCatalogRepository) {
	m.On("InsertProduct", mock.Anything).Return(nil)
	m.On("UpsertProductTranslation", mock.Anything).Return(nil)
	m.On("InsertProductItem", mock.Anything).Return(nil)
	m.On("UpdateProductItem", mock.Anything).Return(nil)
	m.On("InsertProductItemTranslationIgnore", mock.Anything).Return(nil)
	m.On("UpsertProductItemAttribute", mock.Anything).Return(nil)
	m.On("InsertDeliveryEstimateIgnore", mock.Anything).Return(nil)
	m.On("InsertTag", mock.Anything).Return(nil)
	m.On("InsertItemTag", mock.Anything).Return(nil)
	m.On("InsertAttribute", mock.Anything).Return(nil)
	m.On("InsertProductCategoryIgnore", mock.Anything, mock.Anything).Return(nil)
	m.On("InsertProductTagIgnore", mock.Anything, mock.Anything).Return(nil)
	m.On("InsertProductItemTagIgnore", mock.Anything, mock.Anything).Return(nil)
	m.On("InsertRelatedEdgeIgnore", mock.Anything).Return(nil)
	m.On("InvalidateCatalogCaches").Return()
}

func TestImportRejectsMalformedInput(t *testing.T) {
	repo := new(MockCatalogRepository)
	svc := newImportService(repo)

	_, err := svc.Import(nil, "en")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = svc.Import([][]string{{"Product code", "ISKU"}}, "en")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestImportCreatesProductsAndItems(t *testing.T) {
	repo := new(MockCatalogRepository)
	stubVocabularies(repo, nil)
	stubWrites(repo)

	repo.On("FindProductByCode", "P100").Return(nil, nil).Once()
	repo.On("FindProductByCode", "P100").Return(&models.Product{Code: "P100"}, nil)
	repo.On("FindProductItemByISKU", "X1").Return(nil, nil)
	repo.On("FindProductItemByISKU", "X2").Return(nil, nil)

	svc := newImportService(repo)
	report, err := svc.Import([][]string{
		{"Product code", "Product name", "Supplier product item code", "ISKU", "Cost (net price EUR)", "Stock /On demand"},
		{"P100", "Heating Mat", "SUP-1", "X1", "10.50", "S"},
		{"", "", "SUP-2", "X2", "11.00", "O"}, // inherits P100
	}, "en")

	assert.NoError(t, err)
	assert.Equal(t, 2, report.ItemsInFile)
	assert.Equal(t, 1, report.NewProducts)
	assert.Equal(t, 2, report.NewProductItems)
	assert.Equal(t, 1, report.ProductsUpdated) // second row found the product
	assert.Equal(t, 0, report.SkippedRows)
	assert.Equal(t, 0, report.DuplicateCount)

	repo.AssertCalled(t, "InsertProduct", mock.MatchedBy(func(p *models.Product) bool {
		return p.Code == "P100"
	}))
	repo.AssertCalled(t, "InsertProductItem", mock.MatchedBy(func(i *models.ProductItem) bool {
		return i.ISKU == "X2" && i.ProductCode == "P100" && i.Availability == models.AvailabilityOnDemand
	}))
	repo.AssertCalled(t, "InvalidateCatalogCaches")
}

func TestImportIsIdempotentForExistingEntities(t *testing.T) {
	repo := new(MockCatalogRepository)
	stubVocabularies(repo, nil)
	stubWrites(repo)

	repo.On("FindProductByCode", "P100").Return(&models.Product{Code: "P100"}, nil)
	repo.On("FindProductItemByISKU", "X1").Return(&models.ProductItem{ISKU: "X1"}, nil)

	svc := newImportService(repo)
	report, err := svc.Import([][]string{
		{"Product code", "Product name", "Supplier product item code", "ISKU"},
		{"P100", "Heating Mat", "SUP-1", "X1"},
	}, "en")

	assert.NoError(t, err)
	assert.Equal(t, 0, report.NewProducts)
	assert.Equal(t, 0, report.NewProductItems)
	assert.Equal(t, 1, report.ProductsUpdated)
	assert.Equal(t, 1, report.ProductItemsUpdated)

	repo.AssertNotCalled(t, "InsertProduct", mock.Anything)
	repo.AssertNotCalled(t, "InsertProductItem", mock.Anything)
	repo.AssertCalled(t, "UpdateProductItem", mock.Anything)
}

func TestImportReportsDuplicatesAndSkips(t *testing.T) {
	repo := new(MockCatalogRepository)
	stubVocabularies(repo, nil)
	stubWrites(repo)

	repo.On("FindProductByCode", "P1").Return(nil, nil).Once()
	repo.On("FindProductByCode", "P1").Return(&models.Product{Code: "P1"}, nil)
	repo.On("FindProductItemByISKU", "X1").Return(nil, nil)

	svc := newImportService(repo)
	report, err := svc.Import([][]string{
		{"Product code", "Product name", "Supplier product item code", "ISKU"},
		{"P1", "Widget", "S1", "X1"},
		{"P1", "Widget", "S2", "X1"}, // duplicate ISKU, first wins
		{"P1", "Widget", "", ""},     // no supplier code, skipped
	}, "en")

	assert.NoError(t, err)
	assert.Equal(t, 1, report.NewProductItems)
	assert.Equal(t, 1, report.SkippedRows)
	assert.Equal(t, 1, report.DuplicateCount)
	assert.Equal(t, []models.DuplicateISKU{
		{ISKU: "X1", FirstOccurrenceRow: 2, DuplicateRow: 3},
	}, report.DuplicateISKUs)

	// The duplicate row never reaches persistence.
	repo.AssertNumberOfCalls(t, "InsertProductItem", 1)
}

func TestImportResolvesVocabularies(t *testing.T) {
	repo := new(MockCatalogRepository)
	stubVocabularies(repo, []models.Category{
		{
			Code: "FLOOR_HEATING",
			Translations: []models.CategoryTranslation{
				{CategoryCode: "FLOOR_HEATING", Language: "en", Name: "Floor Heating"},
			},
		},
	})
	stubWrites(repo)

	repo.On("FindProductByCode", "P1").Return(nil, nil)
	repo.On("FindProductItemByISKU", "X1").Return(nil, nil)

	svc := newImportService(repo)
	_, err := svc.Import([][]string{
		{"Product code", "Product name", "Supplier product item code", "ISKU", "Product Cats", "Product tags"},
		{"P1", "Widget", "S1", "X1", "floor-heating,Unknown Category", "Premium"},
	}, "en")

	assert.NoError(t, err)

	// Fuzzy category match assigns the existing code; the unknown name is
	// dropped without minting anything.
	repo.AssertCalled(t, "InsertProductCategoryIgnore", "P1", "FLOOR_HEATING")
	repo.AssertNumberOfCalls(t, "InsertProductCategoryIgnore", 1)

	// Tags auto-create on first reference.
	repo.AssertCalled(t, "InsertTag", mock.MatchedBy(func(tag *models.Tag) bool {
		return tag.Code == "PREMIUM" && len(tag.Translations) == 1 && tag.Translations[0].Name == "Premium"
	}))
	repo.AssertCalled(t, "InsertProductTagIgnore", "P1", "PREMIUM")
}

func TestImportWritesDeliveryEstimateByAvailability(t *testing.T) {
	repo := new(MockCatalogRepository)
	stubVocabularies(repo, nil)
	stubWrites(repo)

	repo.On("FindProductByCode", mock.Anything).Return(nil, nil).Once()
	repo.On("FindProductByCode", mock.Anything).Return(&models.Product{Code: "P1"}, nil)
	repo.On("FindProductItemByISKU", mock.Anything).Return(nil, nil)

	svc := newImportService(repo)
	_, err := svc.Import([][]string{
		{"Product code", "Product name", "Supplier product item code", "ISKU", "Stock /On demand"},
		{"P1", "Widget", "S1", "X1", "S"},
		{"P1", "Widget", "S2", "X2", "O"},
	}, "en")

	assert.NoError(t, err)
	repo.AssertCalled(t, "InsertDeliveryEstimateIgnore", mock.MatchedBy(func(e *models.DeliveryEstimate) bool {
		return e.ISKU == "X1" && e.DeliveryMin == 1 && e.DeliveryMax == 3 && e.DomainID == 1
	}))
	repo.AssertCalled(t, "InsertDeliveryEstimateIgnore", mock.MatchedBy(func(e *models.DeliveryEstimate) bool {
		return e.ISKU == "X2" && e.DeliveryMin == 10 && e.DeliveryMax == 15
	}))
}

func TestImportBuildsBidirectionalRelations(t *testing.T) {
	repo := new(MockCatalogRepository)
	stubVocabularies(repo, nil)
	stubWrites(repo)

	repo.On("FindProductByCode", "P1").Return(nil, nil)
	repo.On("FindProductItemByISKU", "X1").Return(nil, nil)
	repo.On("ProductCodeExists", "P2").Return(true, nil)
	repo.On("ProductCodeExists", "GHOST").Return(false, nil)
	repo.On("ISKUExists", "GHOST").Return(false, nil)

	svc := newImportService(repo)
	_, err := svc.Import([][]string{
		{"Product code", "Product name", "Supplier product item code", "ISKU", "Related products"},
		{"P1", "Widget", "S1", "X1", "P2,GHOST"},
	}, "en")

	assert.NoError(t, err)

	// The row has an ISKU, so the item is the from endpoint. Both directions
	// of the resolvable edge are written; the ghost reference is skipped.
	repo.AssertCalled(t, "InsertRelatedEdgeIgnore", mock.MatchedBy(func(e *models.RelatedEntity) bool {
		return e.FromType == models.EntityTypeProductItem && e.FromCode == "X1" &&
			e.ToType == models.EntityTypeProduct && e.ToCode == "P2"
	}))
	repo.AssertCalled(t, "InsertRelatedEdgeIgnore", mock.MatchedBy(func(e *models.RelatedEntity) bool {
		return e.FromType == models.EntityTypeProduct && e.FromCode == "P2" &&
			e.ToType == models.EntityTypeProductItem && e.ToCode == "X1"
	}))
	repo.AssertNumberOfCalls(t, "InsertRelatedEdgeIgnore", 2)
}

func TestImportPropagatesRowErrorWithRowNumber(t *testing.T) {
	repo := new(MockCatalogRepository)
	stubVocabularies(repo, nil)

	boom := errors.New("connection reset")
	repo.On("FindProductByCode", "P1").Return(nil, nil)
	repo.On("InsertProduct", mock.Anything).Return(boom)

	svc := newImportService(repo)
	report, err := svc.Import([][]string{
		{"Product code", "Product name", "Supplier product item code", "ISKU"},
		{"P1", "Widget", "S1", "X1"},
	}, "en")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "row 2")

	// Nothing committed, so caches stay untouched.
	repo.AssertNotCalled(t, "InvalidateCatalogCaches")
}
