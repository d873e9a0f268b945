package model

// Sheet is one named grid of cells; row 0 holds the headers
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Headers returns the stringified, trimmed header row
func (s *Sheet) Headers() []string {
	if len(s.Rows) == 0 {
		return []string{}
	}
	headers := make([]string, len(s.Rows[0]))
	for i, cell := range s.Rows[0] {
		headers[i] = cell.Trimmed()
	}
	return headers
}

// DataRows returns every row after the header
func (s *Sheet) DataRows() [][]Cell {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}

// RowCount is the number of data rows, floored at zero
func (s *Sheet) RowCount() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows) - 1
}

// Workbook is a parsed, source-agnostic spreadsheet
type Workbook struct {
	Filename string
	Sheets   []Sheet
}

// Sheet looks a sheet up by its exact name
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i], true
		}
	}
	return nil, false
}

// SheetNames lists sheet names in source order
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
