package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// ErrMalformedInput is returned before any persistence when the input is
// not usable at all.
var ErrMalformedInput = errors.New("import requires a header row and at least one data row")

// Delivery estimate windows by availability, in days.
const (
	deliveryMinStock    = 1
	deliveryMaxStock    = 3
	deliveryMinOnDemand = 10
	deliveryMaxOnDemand = 15
)

// ImportService runs the catalog import reconciliation pipeline: one
// transaction around the row loop and the relation pass, skipped and
// duplicate rows counted but never persisted, and a structured report of
// what happened.
type ImportService struct {
	repo             repository.CatalogRepository
	logger           *logrus.Entry
	currency         string
	deliveryDomainID int
}

func NewImportService(repo repository.CatalogRepository, logger *logrus.Logger, currency string, deliveryDomainID int) *ImportService {
	return &ImportService{
		repo:             repo,
		logger:           logger.WithField("component", "catalog_import"),
		currency:         currency,
		deliveryDomainID: deliveryDomainID,
	}
}

// resolvers groups the per-vocabulary lookup resolvers for one import run.
// They are built inside the transaction so lookups see a consistent
// snapshot, and their caches absorb everything minted during the run.
type resolvers struct {
	categories *lookupResolver
	tags       *lookupResolver
	itemTags   *lookupResolver
	attributes *lookupResolver
}

// Import reconciles the cell grid against the catalog store and returns the
// import report. Rows are processed strictly in file order inside a single
// transaction; any unexpected persistence error rolls back every write and
// propagates.
func (s *ImportService) Import(rows [][]string, language string) (*models.ImportReport, error) {
	if len(rows) < 2 {
		return nil, ErrMalformedInput
	}

	columns := mapColumns(rows[0])
	parsed := make([]*importRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		parsed = append(parsed, materializeRow(cells, columns, i+2))
	}

	state := newBatchState(len(parsed))
	s.logger.WithFields(logrus.Fields{
		"rows":     len(parsed),
		"language": language,
	}).Info("Starting catalog import")

	err := s.repo.WithTransaction(func(tx repository.CatalogRepository) error {
		res, err := s.buildResolvers(tx)
		if err != nil {
			return fmt.Errorf("loading lookup vocabularies: %w", err)
		}

		for _, row := range parsed {
			switch state.admit(row) {
			case rowSkipped, rowDuplicate:
				continue
			}
			if err := s.upsertRow(tx, row, state, res, language); err != nil {
				return fmt.Errorf("row %d: %w", row.RowNumber, err)
			}
		}

		return s.buildRelations(tx, parsed)
	})
	if err != nil {
		s.logger.WithError(err).Error("Catalog import failed, batch rolled back")
		return nil, err
	}

	s.repo.InvalidateCatalogCaches()

	report := state.report
	s.logger.WithFields(logrus.Fields{
		"newProducts":     report.NewProducts,
		"newProductItems": report.NewProductItems,
		"skippedRows":     report.SkippedRows,
		"duplicates":      report.DuplicateCount,
	}).Info("Catalog import committed")
	return &report, nil
}

func (s *ImportService) buildResolvers(tx repository.CatalogRepository) (*resolvers, error) {
	res := &resolvers{
		// Categories are a curated taxonomy: read-only resolution, no
		// minting. Unmatched names are dropped with a warning.
		categories: newLookupResolver(vocabCategory, nil),
		tags: newLookupResolver(vocabTag, func(code, name, language string) error {
			return tx.InsertTag(&models.Tag{
				Code: code,
				Translations: []models.TagTranslation{
					{TagCode: code, Language: language, Name: name},
				},
			})
		}),
		itemTags: newLookupResolver(vocabItemTag, func(code, name, language string) error {
			return tx.InsertItemTag(&models.ItemTag{
				Code: code,
				Translations: []models.ItemTagTranslation{
					{ItemTagCode: code, Language: language, Name: name},
				},
			})
		}),
		// Attribute creation commits outside the import transaction;
		// vocabulary growth survives a rolled-back batch.
		attributes: newLookupResolver(vocabAttribute, func(code, name, language string) error {
			return tx.InsertAttribute(&models.Attribute{
				Code: code,
				Translations: []models.AttributeTranslation{
					{AttributeCode: code, Language: language, Name: name},
				},
			})
		}),
	}

	categories, err := tx.ListCategories()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		names := make(map[string]string, len(c.Translations))
		for _, t := range c.Translations {
			names[t.Language] = t.Name
		}
		res.categories.add(c.Code, names)
	}

	tags, err := tx.ListTags()
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		names := make(map[string]string, len(t.Translations))
		for _, tr := range t.Translations {
			names[tr.Language] = tr.Name
		}
		res.tags.add(t.Code, names)
	}

	itemTags, err := tx.ListItemTags()
	if err != nil {
		return nil, err
	}
	for _, t := range itemTags {
		names := make(map[string]string, len(t.Translations))
		for _, tr := range t.Translations {
			names[tr.Language] = tr.Name
		}
		res.itemTags.add(t.Code, names)
	}

	attributes, err := tx.ListAttributes()
	if err != nil {
		return nil, err
	}
	for _, a := range attributes {
		names := make(map[string]string, len(a.Translations))
		for _, tr := range a.Translations {
			names[tr.Language] = tr.Name
		}
		res.attributes.add(a.Code, names)
	}

	return res, nil
}

// upsertRow reconciles one admitted row: product, item, translations,
// attribute values, delivery estimate and vocabulary associations.
func (s *ImportService) upsertRow(tx repository.CatalogRepository, row *importRow, state *batchState, res *resolvers, language string) error {
	if row.ProductCode != "" {
		if err := s.upsertProduct(tx, row, state, language); err != nil {
			return err
		}
	}

	if row.ISKU != "" {
		if err := s.upsertItem(tx, row, state, res, language); err != nil {
			return err
		}
	}

	if row.ProductCode != "" {
		if err := s.assignCategories(tx, row, res, language); err != nil {
			return err
		}
		for _, name := range row.Tags {
			code, ok, err := res.tags.Resolve(name, language)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := tx.InsertProductTagIgnore(row.ProductCode, code); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *ImportService) upsertProduct(tx repository.CatalogRepository, row *importRow, state *batchState, language string) error {
	product, err := tx.FindProductByCode(row.ProductCode)
	if err != nil {
		return err
	}

	if product == nil {
		if err := tx.InsertProduct(&models.Product{Code: row.ProductCode}); err != nil {
			return err
		}
		state.markProductCreated()
	} else {
		state.markProductUpdated(row.ProductCode)
	}

	summary := row.ProductDescription
	if summary == "" {
		summary = row.ProductName
	}
	return tx.UpsertProductTranslation(&models.ProductTranslation{
		ProductCode: row.ProductCode,
		Language:    language,
		Title:       row.ProductName,
		Summary:     summary,
		Description: row.ProductName,
	})
}

func (s *ImportService) upsertItem(tx repository.CatalogRepository, row *importRow, state *batchState, res *resolvers, language string) error {
	existing, err := tx.FindProductItemByISKU(row.ISKU)
	if err != nil {
		return err
	}

	item := &models.ProductItem{
		ISKU:             row.ISKU,
		ProductCode:      row.ProductCode,
		SupplierItemCode: row.SupplierItemCode,
		IsActive:         true,
		Cost:             optionalString(row.Cost),
		CostCurrency:     s.currency,
		RRP:              optionalString(row.RRP),
		RRPCurrency:      s.currency,
		Availability:     row.Availability,
	}

	if existing == nil {
		if err := tx.InsertProductItem(item); err != nil {
			return err
		}
		state.markItemCreated()
	} else {
		if err := tx.UpdateProductItem(item); err != nil {
			return err
		}
		state.markItemUpdated()
	}

	// Item translation is insert-ignore: unlike the product translation a
	// re-import does not overwrite existing item texts.
	if err := tx.InsertProductItemTranslationIgnore(&models.ProductItemTranslation{
		ISKU:             row.ISKU,
		Language:         language,
		Title:            row.ItemName,
		ShortDescription: row.ItemShortDescription,
		VariationText:    row.VariationText,
	}); err != nil {
		return err
	}

	for _, col := range attributeColumns {
		value, ok := row.Attributes[col.name]
		if !ok {
			continue
		}
		code, ok, err := res.attributes.Resolve(col.name, language)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := tx.UpsertProductItemAttribute(&models.ProductItemAttribute{
			ISKU:          row.ISKU,
			AttributeCode: code,
			Language:      language,
			Value:         value,
		}); err != nil {
			return err
		}
	}

	deliveryMin, deliveryMax := deliveryMinOnDemand, deliveryMaxOnDemand
	if row.Availability == models.AvailabilityStock {
		deliveryMin, deliveryMax = deliveryMinStock, deliveryMaxStock
	}
	if err := tx.InsertDeliveryEstimateIgnore(&models.DeliveryEstimate{
		ISKU:        row.ISKU,
		DomainID:    s.deliveryDomainID,
		DeliveryMin: deliveryMin,
		DeliveryMax: deliveryMax,
	}); err != nil {
		return err
	}

	for _, name := range row.ItemTags {
		code, ok, err := res.itemTags.Resolve(name, language)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := tx.InsertProductItemTagIgnore(row.ISKU, code); err != nil {
			return err
		}
	}

	return nil
}

// assignCategories resolves the merged categories+sub-categories list
// against existing categories only. Unmatched names are logged and dropped;
// they never fail the row.
func (s *ImportService) assignCategories(tx repository.CatalogRepository, row *importRow, res *resolvers, language string) error {
	names := make([]string, 0, len(row.Categories)+len(row.SubCategories))
	names = append(names, row.Categories...)
	names = append(names, row.SubCategories...)

	for _, name := range names {
		code, ok, err := res.categories.Resolve(name, language)
		if err != nil {
			return err
		}
		if !ok {
			s.logger.WithFields(logrus.Fields{
				"row":      row.RowNumber,
				"category": name,
			}).Warn("No matching category, assignment dropped")
			continue
		}
		if err := tx.InsertProductCategoryIgnore(row.ProductCode, code); err != nil {
			return err
		}
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
