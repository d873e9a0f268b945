package importer

import (
	"fmt"
	"log/slog"
	"strings"

	"go-price-checker/internal/model"
)

// Store is the write side of the product store used by the pipeline
type Store interface {
	Upsert(product model.Product) model.Product
}

// Pipeline ingests workbooks into a Store. Accepted rows are committed one by
// one; a rejected row never rolls back earlier ones.
type Pipeline struct {
	store Store
}

func NewPipeline(store Store) *Pipeline {
	return &Pipeline{store: store}
}

// Preview inspects every sheet without touching the store
func (p *Pipeline) Preview(wb *model.Workbook) *model.WorkbookPreview {
	return InspectWorkbook(wb)
}

// ImportAutomatic imports the first sheet whose headers resolve all required
// fields. It fails with ErrNoAutomaticMatch when no sheet qualifies and with
// ErrNoValidRows when the chosen sheet yields nothing; the partial result is
// still returned in the latter case so callers can show row errors.
func (p *Pipeline) ImportAutomatic(wb *model.Workbook) (*model.ImportResult, error) {
	sheet, mapping, err := SelectSheet(wb)
	if err != nil {
		return nil, err
	}
	slog.Debug("automatic import sheet selected", "sheet", sheet.Name, "mapping", mapping)

	result := p.ingest(sheet, mapping)
	if result.Successful == 0 {
		return result, fmt.Errorf("%w in sheet %q", ErrNoValidRows, sheet.Name)
	}
	return result, nil
}

// ImportWithMapping imports sheetName using a caller-supplied mapping.
// Structural problems are reported before any row is processed.
func (p *Pipeline) ImportWithMapping(wb *model.Workbook, sheetName string, mapping model.ColumnMapping) (*model.ImportResult, error) {
	if !mapping.HasRequired() {
		return nil, fmt.Errorf("%w: barcode, name, and price column mappings are required", ErrInvalidMapping)
	}

	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheetName, strings.Join(wb.SheetNames(), ", "))
	}

	if err := validateBounds(mapping, len(sheet.Headers())); err != nil {
		return nil, err
	}

	result := p.ingest(sheet, mapping)
	if result.Successful == 0 {
		return result, fmt.Errorf("%w in sheet %q", ErrNoValidRows, sheet.Name)
	}
	return result, nil
}

func (p *Pipeline) ingest(sheet *model.Sheet, mapping model.ColumnMapping) *model.ImportResult {
	result := &model.ImportResult{Sheet: sheet.Name, Errors: []string{}}

	for i, row := range sheet.DataRows() {
		if isBlankRow(row) {
			continue
		}
		result.TotalRows++

		res := NormalizeRow(i, row, mapping)
		if !res.Accepted() {
			result.AddError(res.Err.Error())
			continue
		}
		p.store.Upsert(res.Product)
		result.Successful++
	}

	slog.Info("sheet imported",
		"sheet", sheet.Name,
		"total_rows", result.TotalRows,
		"successful", result.Successful,
		"failed", result.Failed,
	)
	return result
}

func validateBounds(mapping model.ColumnMapping, width int) error {
	for field, idx := range mapping {
		if idx < 0 || !model.IsKnownField(field) {
			continue
		}
		if idx >= width {
			return fmt.Errorf("%w: column index %d for %s out of range (sheet has %d columns)",
				ErrInvalidMapping, idx, field, width)
		}
	}
	return nil
}
