package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCoercion(t *testing.T) {
	tests := []struct {
		name    string
		cell    Cell
		str     string
		float   float64
		floatOK bool
		integer int
		intOK   bool
		blank   bool
	}{
		{"empty", Cell{}, "", 0, false, 0, false, true},
		{"empty text", Text(""), "", 0, false, 0, false, true},
		{"spaces", Text("   "), "   ", 0, false, 0, false, true},
		{"padded number text", Text(" 12.5 "), " 12.5 ", 12.5, true, 12, true, false},
		{"integer text", Text("42"), "42", 42, true, 42, true, false},
		{"word", Text("abc"), "abc", 0, false, 0, false, false},
		{"number", Number(3.75), "3.75", 3.75, true, 3, true, false},
		{"whole number", Number(12345), "12345", 12345, true, 12345, true, false},
		{"negative", Number(-2), "-2", -2, true, -2, true, false},
		{"nan", Number(math.NaN()), "NaN", 0, false, 0, false, false},
		{"inf text", Text("Inf"), "Inf", 0, false, 0, false, false},
		{"huge", Number(1e12), "1000000000000", 1e12, true, 0, false, false},
		{"hex text", Text("0x1p4"), "0x1p4", 0, false, 0, false, false},
		{"signed hex text", Text(" -0X10 "), " -0X10 ", 0, false, 0, false, false},
		{"trailing unit", Text("12.50 each"), "12.50 each", 0, false, 0, false, false},
		{"exponent text", Text("1e2"), "1e2", 100, true, 100, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.cell.String())
			assert.Equal(t, tt.blank, tt.cell.IsBlank())

			f, ok := tt.cell.Float()
			assert.Equal(t, tt.floatOK, ok)
			assert.Equal(t, tt.float, f)

			n, ok := tt.cell.Int()
			assert.Equal(t, tt.intOK, ok)
			assert.Equal(t, tt.integer, n)
		})
	}
}

func TestCellJSON(t *testing.T) {
	row := []Cell{Text("A1"), Number(9.99), {}}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `["A1", 9.99, null]`, string(data))

	var decoded []Cell
	require.NoError(t, json.Unmarshal([]byte(`["x", 2, null, true]`), &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, Text("x"), decoded[0])
	assert.Equal(t, Number(2), decoded[1])
	assert.Equal(t, Cell{}, decoded[2])
	assert.Equal(t, "true", decoded[3].String())
}

func TestCellAt(t *testing.T) {
	row := Row("a", "b")

	assert.Equal(t, "b", CellAt(row, 1).String())
	assert.True(t, CellAt(row, 2).IsBlank())
	assert.True(t, CellAt(row, -1).IsBlank())
}
