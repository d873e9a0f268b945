// Package workbook reads uploaded spreadsheet files into model.Workbook.
package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-price-checker/internal/model"

	"github.com/xuri/excelize/v2"
)

var (
	ErrMalformedSource   = errors.New("malformed source")
	ErrUnsupportedFormat = errors.New("only Excel (.xlsx, .xlsm, .xltx, .xltm) and CSV files are allowed")
)

var excelExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// Supported reports whether filename has an extension this package can read
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return excelExtensions[ext] || ext == ".csv"
}

// Open reads the file at path, choosing the parser from the original filename
func Open(path, filename string) (*model.Workbook, error) {
	if !Supported(filename) {
		return nil, ErrUnsupportedFormat
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ReadCSV(f, filename)
	}
	return ReadXLSX(f, filename)
}

// ReadXLSX parses every sheet of an Excel workbook. Raw cell values are used so
// that currency or thousands formatting does not leak into numeric fields.
func ReadXLSX(r io.Reader, filename string) (*model.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", ErrMalformedSource, err)
	}
	defer f.Close()

	wb := &model.Workbook{Filename: filename}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read sheet %q: %v", ErrMalformedSource, name, err)
		}
		wb.Sheets = append(wb.Sheets, model.Sheet{Name: name, Rows: toCells(rows)})
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets found in Excel file", ErrMalformedSource)
	}
	return wb, nil
}

// ReadCSV parses a CSV stream into a single sheet named after the file stem
func ReadCSV(r io.Reader, filename string) (*model.Workbook, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %v", ErrMalformedSource, err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	return &model.Workbook{
		Filename: filename,
		Sheets:   []model.Sheet{{Name: SheetNameFor(filename), Rows: toCells(records)}},
	}, nil
}

// SheetNameFor derives the single sheet name used for CSV files
func SheetNameFor(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		return "Sheet1"
	}
	return stem
}

// toCells converts records, dropping fully blank rows above the first
// non-empty one so the header is the first row of the used range.
func toCells(records [][]string) [][]model.Cell {
	start := 0
	for start < len(records) && isBlankRecord(records[start]) {
		start++
	}

	rows := make([][]model.Cell, 0, len(records)-start)
	for _, record := range records[start:] {
		rows = append(rows, model.Row(record...))
	}
	return rows
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
