package services

import "strings"

// Recognized header texts, matched after trimming and lower-casing.
const (
	colProductCode          = "product code"
	colProductName          = "product name"
	colProductDescription   = "product description"
	colSupplierItemCode     = "supplier product item code"
	colISKU                 = "isku"
	colCost                 = "cost (net price eur)"
	colRRP                  = "rrp (eur)"
	colProductCats          = "product cats"
	colProductSubCat        = "product sub cat1"
	colProductTags          = "product tags"
	colProductItemTags      = "product item tags"
	colRelatedProducts      = "related products"
	colItemName             = "product item name"
	colItemShortDescription = "product item short descripton"
	colVariationText        = "variation text"
)

// The stock/on-demand column appears under several spellings in supplier
// files; any of these map to the availability field.
var availabilityHeaders = []string{
	"stock /on demand",
	"stock/on demand",
	"stock / on demand",
	"stock/on-demand",
	"stock on demand",
	"s/o",
}

// attributeColumn binds a header to an attribute vocabulary name. Length
// columns go through millimeter normalization before storage.
type attributeColumn struct {
	header string
	name   string
	length bool
}

var attributeColumns = []attributeColumn{
	{"diameter (m)", "Diameter", true},
	{"length (m)", "Length", true},
	{"width (m)", "Width", true},
	{"covered area (m2)", "Covered area", false},
	{"thickness(m)", "Thickness", true},
	{"watt/m2", "Watt/m2", false},
	{"ip class", "IP class", false},
	{"cold lead", "Cold lead", false},
	{"cold lead length", "Cold lead length", true},
	{"outside jacket martial", "Outside jacket material", false},
	{"inside jacket martial", "Inside jacket material", false},
	{"certificates", "Certificates", false},
	{"voltage (v)", "Voltage", false},
	{"total wattage (w)", "Total wattage", false},
	{"amp (a)", "Amp", false},
	{"ohm", "Ohm", false},
	{"fire-retardent", "Fire retardant", false},
	{"product warranty", "Warranty", false},
	{"self adhesive", "Self adhesive", false},
	{"includes", "Includes", false},
	{"product line", "Product line", false},
}

// mapColumns maps normalized header text to column index. Only non-empty
// headers are mapped; unrecognized headers simply never get looked up.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		columns[name] = i
	}
	return columns
}

// cellAt returns the trimmed cell under the named column, or "" when the
// column is unmapped or the row is ragged.
func cellAt(cells []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
