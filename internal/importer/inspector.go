package importer

import "go-price-checker/internal/model"

const sampleRowCount = 3

// Inspect summarises a sheet for the upload preview
func Inspect(sheet *model.Sheet) model.SheetPreview {
	headers := sheet.Headers()
	detected := DetectColumns(headers)
	hasRequired := detected.HasRequired()

	preview := model.SheetPreview{
		Name:               sheet.Name,
		Headers:            headers,
		RowCount:           sheet.RowCount(),
		HasRequiredColumns: hasRequired,
		SampleData:         sampleRows(sheet),
	}
	if hasRequired {
		preview.DetectedColumns = detected
	}
	return preview
}

// InspectWorkbook previews every sheet in source order
func InspectWorkbook(wb *model.Workbook) *model.WorkbookPreview {
	preview := &model.WorkbookPreview{
		Filename: wb.Filename,
		Sheets:   make([]model.SheetPreview, 0, len(wb.Sheets)),
	}
	for i := range wb.Sheets {
		preview.Sheets = append(preview.Sheets, Inspect(&wb.Sheets[i]))
	}
	return preview
}

// SelectSheet picks the first sheet in source order that has data rows and
// resolves all required columns.
func SelectSheet(wb *model.Workbook) (*model.Sheet, model.ColumnMapping, error) {
	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		if sheet.RowCount() == 0 {
			continue
		}
		mapping := DetectColumns(sheet.Headers())
		if mapping.HasRequired() {
			return sheet, mapping, nil
		}
	}
	return nil, nil, ErrNoAutomaticMatch
}

func sampleRows(sheet *model.Sheet) [][]model.Cell {
	rows := sheet.DataRows()
	if len(rows) > sampleRowCount {
		rows = rows[:sampleRowCount]
	}
	sample := make([][]model.Cell, len(rows))
	copy(sample, rows)
	return sample
}
