package models

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// DuplicateISKU records one in-batch ISKU collision. Row numbers are
// 1-based file positions (the header is row 1).
type DuplicateISKU struct {
	ISKU               string `json:"isku"`
	FirstOccurrenceRow int    `json:"firstOccurrenceRow"`
	DuplicateRow       int    `json:"duplicateRow"`
}

// ImportReport is the outcome of one catalog import run. The caller either
// receives a complete report or a single terminal error with no partial
// effects.
type ImportReport struct {
	ItemsInFile         int             `json:"itemsInFile"`
	NewProducts         int             `json:"newProducts"`
	NewProductItems     int             `json:"newProductItems"`
	ProductsUpdated     int             `json:"productsUpdated"`
	ProductItemsUpdated int             `json:"productItemsUpdated"`
	FailedItems         int             `json:"failedItems"`
	SkippedRows         int             `json:"skippedRows"`
	DuplicateCount      int             `json:"duplicateCount"`
	DuplicateISKUs      []DuplicateISKU `json:"duplicateIskus,omitempty"`
}

// ImportReportResponse wraps the report for the HTTP layer
type ImportReportResponse struct {
	Success      bool          `json:"success"`
	Report       *ImportReport `json:"report"`
	ProcessingMs int64         `json:"processingMs"`
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, list
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// CatalogImportColumns returns the recognized columns for catalog import.
// Header matching is case-insensitive; unknown columns are ignored.
func CatalogImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "Product code", Description: "Product family code; blank rows inherit the previous fully-specified row", Required: false, Type: "string", Example: "FH-100"},
		{Name: "Product name", Description: "Product family name", Required: false, Type: "string", Example: "Floor Heating Mat"},
		{Name: "Product description", Description: "Product family description", Required: false, Type: "string", Example: ""},
		{Name: "Supplier product item code", Description: "Supplier's own item code; rows without it are skipped", Required: true, Type: "string", Example: "SUP-100-1"},
		{Name: "ISKU", Description: "Unique sellable item key across the whole catalog", Required: true, Type: "string", Example: "FH100-050"},
		{Name: "Cost (net price EUR)", Description: "Net cost in EUR", Required: false, Type: "number", Example: "34.50"},
		{Name: "RRP (EUR)", Description: "Recommended retail price in EUR", Required: false, Type: "number", Example: "59.00"},
		{Name: "Stock /On demand", Description: "S or stock = in stock; O / on demand = on demand", Required: false, Type: "string", Example: "S"},
		{Name: "Diameter (m)", Description: "Diameter; stored in millimeters", Required: false, Type: "number", Example: "0.003"},
		{Name: "Length (m)", Description: "Length; stored in millimeters", Required: false, Type: "number", Example: "1.5m"},
		{Name: "Width (m)", Description: "Width; stored in millimeters", Required: false, Type: "number", Example: "500mm"},
		{Name: "Covered area (m2)", Description: "Covered area in square meters", Required: false, Type: "number", Example: "2.5"},
		{Name: "Thickness(m)", Description: "Thickness; stored in millimeters", Required: false, Type: "number", Example: "0.004"},
		{Name: "Watt/m2", Description: "Power density", Required: false, Type: "number", Example: "150"},
		{Name: "IP class", Description: "Ingress protection class", Required: false, Type: "string", Example: "IPX7"},
		{Name: "Cold lead", Description: "Cold lead specification", Required: false, Type: "string", Example: "2x3m"},
		{Name: "Cold lead length", Description: "Cold lead length; stored in millimeters", Required: false, Type: "number", Example: "3m"},
		{Name: "Outside jacket martial", Description: "Outer jacket material", Required: false, Type: "string", Example: "PVC"},
		{Name: "Inside jacket martial", Description: "Inner jacket material", Required: false, Type: "string", Example: "FEP"},
		{Name: "Certificates", Description: "Certification list", Required: false, Type: "string", Example: "CE, VDE"},
		{Name: "Voltage (V)", Description: "Operating voltage", Required: false, Type: "number", Example: "230"},
		{Name: "Total wattage (W)", Description: "Total wattage", Required: false, Type: "number", Example: "375"},
		{Name: "Amp (A)", Description: "Amperage", Required: false, Type: "number", Example: "1.6"},
		{Name: "Ohm", Description: "Resistance", Required: false, Type: "number", Example: "141"},
		{Name: "Fire-retardent", Description: "Fire retardancy note", Required: false, Type: "string", Example: "Yes"},
		{Name: "Product warranty", Description: "Warranty note", Required: false, Type: "string", Example: "10 years"},
		{Name: "Self adhesive", Description: "Self-adhesive note", Required: false, Type: "string", Example: "No"},
		{Name: "Includes", Description: "Included accessories", Required: false, Type: "string", Example: "Tape, manual"},
		{Name: "Product line", Description: "Product line name", Required: false, Type: "string", Example: "Comfort"},
		{Name: "Product cats", Description: "Comma-separated category names; quotes escape embedded commas", Required: false, Type: "list", Example: "\"Floor Heating\",Accessories"},
		{Name: "Product sub cat1", Description: "Comma-separated sub-category names", Required: false, Type: "list", Example: "Mats"},
		{Name: "Product tags", Description: "Comma-separated tags; auto-created when missing", Required: false, Type: "list", Example: "indoor, bathroom"},
		{Name: "Product item tags", Description: "Comma-separated item tags; auto-created when missing", Required: false, Type: "list", Example: "50cm"},
		{Name: "Related products", Description: "Comma-separated product codes or ISKUs to link as related", Required: false, Type: "list", Example: "FH-200, FH200-050"},
		{Name: "Product item name", Description: "Item display name", Required: false, Type: "string", Example: "Floor Heating Mat 0.5m2"},
		{Name: "Product item short descripton", Description: "Item short description", Required: false, Type: "string", Example: ""},
		{Name: "Variation text", Description: "Variant differentiator text", Required: false, Type: "string", Example: "0.5 m2"},
	}
}

// CatalogImportTemplate returns the template definition for catalog import
func CatalogImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "catalog",
		Version: "1.0",
		Columns: CatalogImportColumns(),
	}
}
