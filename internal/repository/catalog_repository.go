package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/Tesseract-Nexus/go-shared/cache"
	"catalog-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cache TTL constants
const (
	ProductCacheTTL    = 5 * time.Minute
	VocabularyCacheTTL = 30 * time.Minute // vocabularies rarely change outside imports
)

// CatalogRepository is the persistence boundary of the import pipeline.
// Every entity exposes find-by-business-key, insert, update and
// insert-ignore operations so the resolver logic stays free of ORM
// vocabulary. All writes except InsertAttribute happen on the current
// handle, which inside WithTransaction is the transaction.
type CatalogRepository interface {
	// WithTransaction runs fn against a repository bound to a single
	// database transaction. A non-nil error from fn rolls back everything.
	WithTransaction(fn func(tx CatalogRepository) error) error

	FindProductByCode(code string) (*models.Product, error)
	InsertProduct(product *models.Product) error
	UpsertProductTranslation(tr *models.ProductTranslation) error

	FindProductItemByISKU(isku string) (*models.ProductItem, error)
	InsertProductItem(item *models.ProductItem) error
	UpdateProductItem(item *models.ProductItem) error
	InsertProductItemTranslationIgnore(tr *models.ProductItemTranslation) error

	UpsertProductItemAttribute(attr *models.ProductItemAttribute) error
	InsertDeliveryEstimateIgnore(estimate *models.DeliveryEstimate) error

	ListCategories() ([]models.Category, error)
	ListTags() ([]models.Tag, error)
	ListItemTags() ([]models.ItemTag, error)
	ListAttributes() ([]models.Attribute, error)
	InsertTag(tag *models.Tag) error
	InsertItemTag(tag *models.ItemTag) error
	// InsertAttribute commits on the base connection in its own
	// transaction: attribute vocabulary growth survives a rolled-back
	// import batch.
	InsertAttribute(attr *models.Attribute) error

	InsertProductCategoryIgnore(productCode, categoryCode string) error
	InsertProductTagIgnore(productCode, tagCode string) error
	InsertProductItemTagIgnore(isku, itemTagCode string) error

	ProductCodeExists(code string) (bool, error)
	ISKUExists(isku string) (bool, error)
	InsertRelatedEdgeIgnore(edge *models.RelatedEntity) error

	GetProductByCode(code string) (*models.Product, error)
	ListRelatedEdgesFrom(fromType models.EntityType, fromCode string) ([]models.RelatedEntity, error)
	InvalidateCatalogCaches()
}

// GormCatalogRepository implements CatalogRepository on GORM/Postgres with
// an optional Redis read-through cache for the read endpoints.
type GormCatalogRepository struct {
	db    *gorm.DB
	base  *gorm.DB // root handle; escapes WithTransaction
	redis *redis.Client
	cache *cache.CacheLayer
}

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *GormCatalogRepository {
	repo := &GormCatalogRepository{
		db:    db,
		base:  db,
		redis: redisClient,
	}

	if redisClient != nil {
		cacheConfig := cache.CacheConfig{
			L1Enabled:  true,
			L1MaxItems: 5000,
			L1TTL:      30 * time.Second,
			DefaultTTL: ProductCacheTTL,
			KeyPrefix:  "tesseract:catalog:",
		}
		repo.cache = cache.NewCacheLayerFromClient(redisClient, cacheConfig)
	}

	return repo
}

// WithTransaction binds a child repository to one database transaction.
// The base handle is carried over unchanged so InsertAttribute keeps its
// independent commit semantics inside the transaction.
func (r *GormCatalogRepository) WithTransaction(fn func(tx CatalogRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormCatalogRepository{
			db:    tx,
			base:  r.base,
			redis: r.redis,
			cache: r.cache,
		})
	})
}

// Product operations

func (r *GormCatalogRepository) FindProductByCode(code string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("code = ?", code).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormCatalogRepository) InsertProduct(product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	return r.db.Create(product).Error
}

// UpsertProductTranslation overwrites the (product_code, language) row.
// Unlike the item translation this is NOT insert-ignore: re-imports refresh
// the product texts.
func (r *GormCatalogRepository) UpsertProductTranslation(tr *models.ProductTranslation) error {
	tr.CreatedAt = time.Now()
	tr.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_code"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "summary", "description", "updated_at"}),
	}).Create(tr).Error
}

// ProductItem operations

func (r *GormCatalogRepository) FindProductItemByISKU(isku string) (*models.ProductItem, error) {
	var item models.ProductItem
	err := r.db.Where("isku = ?", isku).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCatalogRepository) InsertProductItem(item *models.ProductItem) error {
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	return r.db.Create(item).Error
}

// UpdateProductItem overwrites the mutable fields of the item row in place,
// keyed by ISKU.
func (r *GormCatalogRepository) UpdateProductItem(item *models.ProductItem) error {
	updates := map[string]interface{}{
		"product_code":       item.ProductCode,
		"supplier_item_code": item.SupplierItemCode,
		"is_active":          item.IsActive,
		"cost":               item.Cost,
		"cost_currency":      item.CostCurrency,
		"rrp":                item.RRP,
		"rrp_currency":       item.RRPCurrency,
		"availability":       item.Availability,
		"updated_at":         time.Now(),
	}
	return r.db.Model(&models.ProductItem{}).
		Where("isku = ?", item.ISKU).
		Updates(updates).Error
}

// InsertProductItemTranslationIgnore inserts the (isku, language) row only
// if absent; an existing translation is left untouched.
func (r *GormCatalogRepository) InsertProductItemTranslationIgnore(tr *models.ProductItemTranslation) error {
	tr.CreatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(tr).Error
}

// Attribute values and delivery estimates

func (r *GormCatalogRepository) UpsertProductItemAttribute(attr *models.ProductItemAttribute) error {
	attr.CreatedAt = time.Now()
	attr.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "isku"}, {Name: "attribute_code"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(attr).Error
}

func (r *GormCatalogRepository) InsertDeliveryEstimateIgnore(estimate *models.DeliveryEstimate) error {
	estimate.CreatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(estimate).Error
}

// Lookup vocabularies

// useCache reports whether a read may be served from Redis. Reads inside
// WithTransaction always go to the database so resolver loads see the
// transaction snapshot, not a possibly stale cached list.
func (r *GormCatalogRepository) useCache() bool {
	return r.redis != nil && r.db == r.base
}

func (r *GormCatalogRepository) ListCategories() ([]models.Category, error) {
	ctx := context.Background()
	cacheKey := "tesseract:catalog:vocab:categories"

	if r.useCache() {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(val), &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []models.Category
	if err := r.db.Preload("Translations").Find(&categories).Error; err != nil {
		return nil, err
	}

	if r.useCache() {
		if data, err := json.Marshal(categories); err == nil {
			r.redis.Set(ctx, cacheKey, data, VocabularyCacheTTL)
		}
	}

	return categories, nil
}

func (r *GormCatalogRepository) ListTags() ([]models.Tag, error) {
	ctx := context.Background()
	cacheKey := "tesseract:catalog:vocab:tags"

	if r.useCache() {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var tags []models.Tag
			if err := json.Unmarshal([]byte(val), &tags); err == nil {
				return tags, nil
			}
		}
	}

	var tags []models.Tag
	if err := r.db.Preload("Translations").Find(&tags).Error; err != nil {
		return nil, err
	}

	if r.useCache() {
		if data, err := json.Marshal(tags); err == nil {
			r.redis.Set(ctx, cacheKey, data, VocabularyCacheTTL)
		}
	}

	return tags, nil
}

func (r *GormCatalogRepository) ListItemTags() ([]models.ItemTag, error) {
	var tags []models.ItemTag
	err := r.db.Preload("Translations").Find(&tags).Error
	return tags, err
}

func (r *GormCatalogRepository) ListAttributes() ([]models.Attribute, error) {
	var attributes []models.Attribute
	err := r.db.Preload("Translations").Find(&attributes).Error
	return attributes, err
}

func (r *GormCatalogRepository) InsertTag(tag *models.Tag) error {
	tag.CreatedAt = time.Now()
	return r.db.Create(tag).Error
}

func (r *GormCatalogRepository) InsertItemTag(tag *models.ItemTag) error {
	tag.CreatedAt = time.Now()
	return r.db.Create(tag).Error
}

// InsertAttribute runs on the base connection in its own transaction and
// commits immediately. A later rollback of the import batch does not undo
// it; see DESIGN.md for the rationale.
func (r *GormCatalogRepository) InsertAttribute(attr *models.Attribute) error {
	attr.CreatedAt = time.Now()
	return r.base.Transaction(func(tx *gorm.DB) error {
		return tx.Create(attr).Error
	})
}

// Associations

func (r *GormCatalogRepository) InsertProductCategoryIgnore(productCode, categoryCode string) error {
	assoc := &models.ProductCategory{
		ProductCode:  productCode,
		CategoryCode: categoryCode,
		CreatedAt:    time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(assoc).Error
}

func (r *GormCatalogRepository) InsertProductTagIgnore(productCode, tagCode string) error {
	assoc := &models.ProductTag{
		ProductCode: productCode,
		TagCode:     tagCode,
		CreatedAt:   time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(assoc).Error
}

func (r *GormCatalogRepository) InsertProductItemTagIgnore(isku, itemTagCode string) error {
	assoc := &models.ProductItemTag{
		ISKU:        isku,
		ItemTagCode: itemTagCode,
		CreatedAt:   time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(assoc).Error
}

// Relation edges

func (r *GormCatalogRepository) ProductCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *GormCatalogRepository) ISKUExists(isku string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProductItem{}).Where("isku = ?", isku).Count(&count).Error
	return count > 0, err
}

func (r *GormCatalogRepository) InsertRelatedEdgeIgnore(edge *models.RelatedEntity) error {
	edge.CreatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
}

// Read surface

// GetProductByCode loads a product with its items and translations, with
// Redis read-through caching.
func (r *GormCatalogRepository) GetProductByCode(code string) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("tesseract:catalog:product:%s", code)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	err := r.db.
		Preload("Translations").
		Preload("Items").
		Preload("Items.Translations").
		Preload("Items.Attributes").
		Where("code = ?", code).
		First(&product).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(product)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

func (r *GormCatalogRepository) ListRelatedEdgesFrom(fromType models.EntityType, fromCode string) ([]models.RelatedEntity, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("tesseract:catalog:related:%s:%s", fromType, fromCode)

	if r.useCache() {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var edges []models.RelatedEntity
			if err := json.Unmarshal([]byte(val), &edges); err == nil {
				return edges, nil
			}
		}
	}

	var edges []models.RelatedEntity
	if err := r.db.
		Where("from_type = ? AND from_code = ?", fromType, fromCode).
		Find(&edges).Error; err != nil {
		return nil, err
	}

	if r.useCache() {
		if data, err := json.Marshal(edges); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return edges, nil
}

// InvalidateCatalogCaches drops all cached catalog reads. Called once after
// a committed import instead of per-entity invalidation.
func (r *GormCatalogRepository) InvalidateCatalogCaches() {
	if r.cache == nil {
		return
	}
	ctx := context.Background()
	_ = r.cache.DeletePattern(ctx, "product:*")
	_ = r.cache.DeletePattern(ctx, "vocab:*")
	_ = r.cache.DeletePattern(ctx, "related:*")
}
