package services

import "catalog-service/internal/models"

// rowOutcome classifies a row before any persistence happens.
type rowOutcome int

const (
	rowProcess rowOutcome = iota
	rowSkipped
	rowDuplicate
)

// batchState is the explicit accumulator threaded through the row loop:
// carry-forward product identity, the seen-ISKU dedup map, and the running
// report counters. Rows are admitted strictly in file order; later rows
// depend on state mutated by earlier ones.
type batchState struct {
	lastProductCode string
	lastProductName string
	seenISKU        map[string]int
	updatedProducts map[string]bool
	report          models.ImportReport
}

func newBatchState(itemsInFile int) *batchState {
	return &batchState{
		seenISKU:        make(map[string]int),
		updatedProducts: make(map[string]bool),
		report:          models.ImportReport{ItemsInFile: itemsInFile},
	}
}

// admit applies carry-forward context and classifies the row. Carry-forward
// fills the row in place, so the relation pass later sees the inherited
// product identity too. Skipped and duplicate rows are counted here and
// never reach persistence.
func (s *batchState) admit(row *importRow) rowOutcome {
	// Context updates below depend on what the row itself supplied, not on
	// what it inherited, so capture that before filling.
	suppliedCode := row.ProductCode != ""
	suppliedName := row.ProductName != ""

	if !suppliedCode && s.lastProductCode != "" {
		row.ProductCode = s.lastProductCode
	}
	if !suppliedName && s.lastProductName != "" {
		row.ProductName = s.lastProductName
	}

	if row.SupplierItemCode == "" {
		s.report.SkippedRows++
		return rowSkipped
	}

	if row.ISKU != "" {
		if firstRow, seen := s.seenISKU[row.ISKU]; seen {
			s.report.DuplicateISKUs = append(s.report.DuplicateISKUs, models.DuplicateISKU{
				ISKU:               row.ISKU,
				FirstOccurrenceRow: firstRow,
				DuplicateRow:       row.RowNumber,
			})
			s.report.DuplicateCount++
			return rowDuplicate
		}
		s.seenISKU[row.ISKU] = row.RowNumber
	}

	if suppliedCode && suppliedName {
		s.lastProductCode = row.ProductCode
		s.lastProductName = row.ProductName
	}

	return rowProcess
}

func (s *batchState) markProductCreated() {
	s.report.NewProducts++
}

// markProductUpdated counts each product code at most once per batch, no
// matter how many of its rows touch it.
func (s *batchState) markProductUpdated(code string) {
	if s.updatedProducts[code] {
		return
	}
	s.updatedProducts[code] = true
	s.report.ProductsUpdated++
}

func (s *batchState) markItemCreated() {
	s.report.NewProductItems++
}

func (s *batchState) markItemUpdated() {
	s.report.ProductItemsUpdated++
}
