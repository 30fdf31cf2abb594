package models

import (
	"time"

	"github.com/google/uuid"
)

// Availability represents the stock availability of a product item
type Availability string

const (
	AvailabilityStock    Availability = "STOCK"
	AvailabilityOnDemand Availability = "ON_DEMAND"
)

// EntityType identifies one endpoint of a relation edge
type EntityType string

const (
	EntityTypeProduct     EntityType = "product"
	EntityTypeProductItem EntityType = "product_item"
)

// RelationTypeRelated is the only relation type the import pipeline creates
const RelationTypeRelated = "related"

// Product is the parent catalog entry (a product family). The business key
// is Code; items hang off it by code, not by surrogate ID.
type Product struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code      string    `json:"code" gorm:"not null;uniqueIndex:idx_products_code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Translations []ProductTranslation `json:"translations,omitempty" gorm:"foreignKey:ProductCode;references:Code"`
	Items        []ProductItem        `json:"items,omitempty" gorm:"foreignKey:ProductCode;references:Code"`
}

// ProductTranslation carries per-language product texts, keyed by
// (product_code, language).
type ProductTranslation struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductCode string    `json:"productCode" gorm:"not null;uniqueIndex:idx_product_translations_code_lang,priority:1"`
	Language    string    `json:"language" gorm:"not null;size:2;uniqueIndex:idx_product_translations_code_lang,priority:2"`
	Title       string    `json:"title" gorm:"not null"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductItem is one sellable variant, uniquely identified by ISKU across
// the whole catalog.
type ProductItem struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ISKU             string       `json:"isku" gorm:"column:isku;not null;uniqueIndex:idx_product_items_isku"`
	ProductCode      string       `json:"productCode" gorm:"not null;index"`
	SupplierItemCode string       `json:"supplierItemCode"`
	IsActive         bool         `json:"isActive" gorm:"not null;default:true"`
	Cost             *string      `json:"cost,omitempty"`
	CostCurrency     string       `json:"costCurrency" gorm:"size:3"`
	RRP              *string      `json:"rrp,omitempty" gorm:"column:rrp"`
	RRPCurrency      string       `json:"rrpCurrency" gorm:"column:rrp_currency;size:3"`
	Availability     Availability `json:"availability" gorm:"not null;default:'ON_DEMAND'"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`

	Translations []ProductItemTranslation `json:"translations,omitempty" gorm:"foreignKey:ISKU;references:ISKU"`
	Attributes   []ProductItemAttribute   `json:"attributes,omitempty" gorm:"foreignKey:ISKU;references:ISKU"`
}

// ProductItemTranslation carries per-language item texts, keyed by
// (isku, language).
type ProductItemTranslation struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ISKU             string    `json:"isku" gorm:"column:isku;not null;uniqueIndex:idx_item_translations_isku_lang,priority:1"`
	Language         string    `json:"language" gorm:"not null;size:2;uniqueIndex:idx_item_translations_isku_lang,priority:2"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	VariationText    string    `json:"variationText"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ProductItemAttribute is one attribute value on an item, keyed by
// (isku, attribute_code, language).
type ProductItemAttribute struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ISKU          string    `json:"isku" gorm:"column:isku;not null;uniqueIndex:idx_item_attributes_key,priority:1"`
	AttributeCode string    `json:"attributeCode" gorm:"not null;uniqueIndex:idx_item_attributes_key,priority:2"`
	Language      string    `json:"language" gorm:"not null;size:2;uniqueIndex:idx_item_attributes_key,priority:3"`
	Value         string    `json:"value" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DeliveryEstimate holds the single delivery window for an item.
type DeliveryEstimate struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ISKU        string    `json:"isku" gorm:"column:isku;not null;uniqueIndex:idx_delivery_estimates_isku"`
	DomainID    int       `json:"domainId" gorm:"not null"`
	DeliveryMin int       `json:"deliveryMin" gorm:"not null"`
	DeliveryMax int       `json:"deliveryMax" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Category is a curated taxonomy entry. Codes are never minted during an
// import; unmatched names are dropped.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code      string    `json:"code" gorm:"not null;uniqueIndex:idx_categories_code"`
	CreatedAt time.Time `json:"createdAt"`

	Translations []CategoryTranslation `json:"translations,omitempty" gorm:"foreignKey:CategoryCode;references:Code"`
}

type CategoryTranslation struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CategoryCode string    `json:"categoryCode" gorm:"not null;uniqueIndex:idx_category_translations_code_lang,priority:1"`
	Language     string    `json:"language" gorm:"not null;size:2;uniqueIndex:idx_category_translations_code_lang,priority:2"`
	Name         string    `json:"name" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Tag is a folksonomic product label, auto-created on first reference.
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code      string    `json:"code" gorm:"not null;uniqueIndex:idx_tags_code"`
	CreatedAt time.Time `json:"createdAt"`

	Translations []TagTranslation `json:"translations,omitempty" gorm:"foreignKey:TagCode;references:Code"`
}

type TagTranslation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TagCode   string    `json:"tagCode" gorm:"not null;uniqueIndex:idx_tag_translations_code_lang,priority:1"`
	Language  string    `json:"language" gorm:"not null;size:2;uniqueIndex:idx_tag_translations_code_lang,priority:2"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemTag is a folksonomic item-level label, auto-created on first reference.
type ItemTag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code      string    `json:"code" gorm:"not null;uniqueIndex:idx_item_tags_code"`
	CreatedAt time.Time `json:"createdAt"`

	Translations []ItemTagTranslation `json:"translations,omitempty" gorm:"foreignKey:ItemTagCode;references:Code"`
}

type ItemTagTranslation struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ItemTagCode string    `json:"itemTagCode" gorm:"not null;uniqueIndex:idx_item_tag_translations_code_lang,priority:1"`
	Language    string    `json:"language" gorm:"not null;size:2;uniqueIndex:idx_item_tag_translations_code_lang,priority:2"`
	Name        string    `json:"name" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Attribute is a vocabulary entry for item attribute names. Auto-created
// outside the import transaction (vocabulary growth survives a failed
// import).
type Attribute struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code      string    `json:"code" gorm:"not null;uniqueIndex:idx_attributes_code"`
	CreatedAt time.Time `json:"createdAt"`

	Translations []AttributeTranslation `json:"translations,omitempty" gorm:"foreignKey:AttributeCode;references:Code"`
}

type AttributeTranslation struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AttributeCode string    `json:"attributeCode" gorm:"not null;uniqueIndex:idx_attribute_translations_code_lang,priority:1"`
	Language      string    `json:"language" gorm:"not null;size:2;uniqueIndex:idx_attribute_translations_code_lang,priority:2"`
	Name          string    `json:"name" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProductCategory links a product to a category.
type ProductCategory struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductCode  string    `json:"productCode" gorm:"not null;uniqueIndex:idx_product_categories_pair,priority:1"`
	CategoryCode string    `json:"categoryCode" gorm:"not null;uniqueIndex:idx_product_categories_pair,priority:2"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductTag links a product to a tag.
type ProductTag struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductCode string    `json:"productCode" gorm:"not null;uniqueIndex:idx_product_tags_pair,priority:1"`
	TagCode     string    `json:"tagCode" gorm:"not null;uniqueIndex:idx_product_tags_pair,priority:2"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductItemTag links an item to an item tag.
type ProductItemTag struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ISKU        string    `json:"isku" gorm:"column:isku;not null;uniqueIndex:idx_product_item_tags_pair,priority:1"`
	ItemTagCode string    `json:"itemTagCode" gorm:"not null;uniqueIndex:idx_product_item_tags_pair,priority:2"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RelatedEntity is one direction of a symmetric "related" edge between two
// catalog entities. The pipeline always writes both directions so either
// endpoint can query its relations directly.
type RelatedEntity struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FromType     EntityType `json:"fromType" gorm:"not null;uniqueIndex:idx_related_entities_edge,priority:1"`
	FromCode     string     `json:"fromCode" gorm:"not null;uniqueIndex:idx_related_entities_edge,priority:2"`
	ToType       EntityType `json:"toType" gorm:"not null;uniqueIndex:idx_related_entities_edge,priority:3"`
	ToCode       string     `json:"toCode" gorm:"not null;uniqueIndex:idx_related_entities_edge,priority:4"`
	RelationType string     `json:"relationType" gorm:"not null;uniqueIndex:idx_related_entities_edge,priority:5"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (Product) TableName() string                { return "products" }
func (ProductTranslation) TableName() string     { return "product_translations" }
func (ProductItem) TableName() string            { return "product_items" }
func (ProductItemTranslation) TableName() string { return "product_item_translations" }
func (ProductItemAttribute) TableName() string   { return "product_item_attributes" }
func (DeliveryEstimate) TableName() string       { return "delivery_estimates" }
func (Category) TableName() string               { return "categories" }
func (CategoryTranslation) TableName() string    { return "category_translations" }
func (Tag) TableName() string                    { return "tags" }
func (TagTranslation) TableName() string         { return "tag_translations" }
func (ItemTag) TableName() string                { return "item_tags" }
func (ItemTagTranslation) TableName() string     { return "item_tag_translations" }
func (Attribute) TableName() string              { return "attributes" }
func (AttributeTranslation) TableName() string   { return "attribute_translations" }
func (ProductCategory) TableName() string        { return "product_categories" }
func (ProductTag) TableName() string             { return "product_tags" }
func (ProductItemTag) TableName() string         { return "product_item_tags" }
func (RelatedEntity) TableName() string          { return "related_entities" }

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
