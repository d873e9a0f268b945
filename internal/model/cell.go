package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CellKind tags the variant held by a Cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a single spreadsheet value. Sources hand over text, numbers or nothing;
// coercion rules live on the methods below rather than in callers.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Text builds a text cell; the empty string becomes an empty cell
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// Number builds a numeric cell
func Number(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

// Row is a convenience for building rows of text cells
func Row(values ...string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

// String stringifies the cell without trimming
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Trimmed is the stringified value with surrounding whitespace removed
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.String())
}

// IsBlank reports whether the cell carries no visible value
func (c Cell) IsBlank() bool {
	return c.Trimmed() == ""
}

// Float parses the cell as a finite floating-point number
func (c Cell) Float() (float64, bool) {
	var f float64
	switch c.Kind {
	case CellNumber:
		f = c.Number
	case CellText:
		text := strings.TrimSpace(c.Text)
		if isHexLiteral(text) {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isHexLiteral reports text that strconv would read as a hex float, e.g. "0x1p4"
func isHexLiteral(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}

// Int parses the cell as an integer, truncating fractional values
func (c Cell) Int() (int, bool) {
	if c.Kind == CellText {
		if n, err := strconv.Atoi(strings.TrimSpace(c.Text)); err == nil {
			return n, true
		}
	}
	f, ok := c.Float()
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// MarshalJSON renders the cell the way the preview table shows it
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellText:
		return json.Marshal(c.Text)
	case CellNumber:
		return json.Marshal(c.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts strings, numbers and null
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*c = Text(t)
	case float64:
		*c = Number(t)
	case bool:
		*c = Text(strconv.FormatBool(t))
	default:
		*c = Cell{}
	}
	return nil
}

// CellAt returns the cell at index or an empty cell when the row is short
func CellAt(row []Cell, index int) Cell {
	if index < 0 || index >= len(row) {
		return Cell{}
	}
	return row[index]
}
