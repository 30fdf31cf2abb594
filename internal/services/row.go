package services

import "catalog-service/internal/models"

// importRow is one data row after column mapping and cell normalization.
// RowNumber is the 1-based file position (the header is row 1).
type importRow struct {
	RowNumber int

	ProductCode        string
	ProductName        string
	ProductDescription string

	SupplierItemCode string
	ISKU             string
	Cost             string
	RRP              string
	Availability     models.Availability

	ItemName             string
	ItemShortDescription string
	VariationText        string

	Categories    []string
	SubCategories []string
	Tags          []string
	ItemTags      []string
	Related       []string

	// Attribute values keyed by vocabulary name, in attributeColumns order
	// via attributeNames.
	Attributes map[string]string
}

// materializeRow builds an importRow from raw cells, applying the field
// normalizers. Normalization failures leave the field empty; they never
// fail the row.
func materializeRow(cells []string, columns map[string]int, rowNumber int) *importRow {
	row := &importRow{
		RowNumber:            rowNumber,
		ProductCode:          cellAt(cells, columns, colProductCode),
		ProductName:          cellAt(cells, columns, colProductName),
		ProductDescription:   cellAt(cells, columns, colProductDescription),
		SupplierItemCode:     cellAt(cells, columns, colSupplierItemCode),
		ISKU:                 cellAt(cells, columns, colISKU),
		Cost:                 cellAt(cells, columns, colCost),
		RRP:                  cellAt(cells, columns, colRRP),
		ItemName:             cellAt(cells, columns, colItemName),
		ItemShortDescription: cellAt(cells, columns, colItemShortDescription),
		VariationText:        cellAt(cells, columns, colVariationText),
		Categories:           splitDelimited(cellAt(cells, columns, colProductCats)),
		SubCategories:        splitDelimited(cellAt(cells, columns, colProductSubCat)),
		Tags:                 splitDelimited(cellAt(cells, columns, colProductTags)),
		ItemTags:             splitDelimited(cellAt(cells, columns, colProductItemTags)),
		Related:              splitDelimited(cellAt(cells, columns, colRelatedProducts)),
		Attributes:           make(map[string]string),
	}

	availability := ""
	for _, header := range availabilityHeaders {
		if v := cellAt(cells, columns, header); v != "" {
			availability = v
			break
		}
	}
	row.Availability = normalizeAvailability(availability)

	for _, col := range attributeColumns {
		value := cellAt(cells, columns, col.header)
		if value == "" {
			continue
		}
		if col.length {
			value = normalizeLength(value)
			if value == "" {
				continue
			}
		}
		row.Attributes[col.name] = value
	}

	return row
}
