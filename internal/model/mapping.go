package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field is a canonical product attribute that sheet headers are matched onto
type Field string

const (
	FieldBarcode       Field = "barcode"
	FieldName          Field = "name"
	FieldPrice         Field = "price"
	FieldUPC           Field = "upc"
	FieldDescription   Field = "description"
	FieldCost          Field = "cost"
	FieldCategory      Field = "category"
	FieldBrand         Field = "brand"
	FieldStockQuantity Field = "stock_quantity"
	FieldMinStockLevel Field = "min_stock_level"
	FieldLocation      Field = "location"
)

// Unmapped marks a field with no source column
const Unmapped = -1

// RequiredFields must resolve for a sheet to be importable
var RequiredFields = []Field{FieldBarcode, FieldName, FieldPrice}

// OptionalFields fall back to defaults when unmapped
var OptionalFields = []Field{
	FieldUPC,
	FieldDescription,
	FieldCost,
	FieldCategory,
	FieldBrand,
	FieldStockQuantity,
	FieldMinStockLevel,
	FieldLocation,
}

// IsKnownField reports whether f is a canonical field
func IsKnownField(f Field) bool {
	for _, known := range RequiredFields {
		if f == known {
			return true
		}
	}
	for _, known := range OptionalFields {
		if f == known {
			return true
		}
	}
	return false
}

// ColumnMapping assigns zero-based column indexes to canonical fields.
// Absent keys and negative indexes are both treated as Unmapped.
type ColumnMapping map[Field]int

// Index returns the column for field or Unmapped
func (m ColumnMapping) Index(field Field) int {
	idx, ok := m[field]
	if !ok || idx < 0 {
		return Unmapped
	}
	return idx
}

// IsMapped reports whether field points at a real column
func (m ColumnMapping) IsMapped(field Field) bool {
	return m.Index(field) != Unmapped
}

// HasRequired reports whether all required fields are mapped
func (m ColumnMapping) HasRequired() bool {
	for _, f := range RequiredFields {
		if !m.IsMapped(f) {
			return false
		}
	}
	return true
}

// ParseColumnMapping decodes a JSON object of field -> column index as sent by
// the mapping form. Indexes may be numbers or numeric strings; null, "" and
// negative values leave the field unmapped. Unknown field names are ignored.
func ParseColumnMapping(data []byte) (ColumnMapping, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("column mapping must be a JSON object: %w", err)
	}

	mapping := ColumnMapping{}
	for key, value := range raw {
		field := Field(key)
		if !IsKnownField(field) {
			continue
		}
		idx, err := columnIndex(value)
		if err != nil {
			return nil, fmt.Errorf("column mapping for %s: %w", key, err)
		}
		mapping[field] = idx
	}
	return mapping, nil
}

func columnIndex(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return Unmapped, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("index %v is not a whole number", v)
		}
		if v < 0 {
			return Unmapped, nil
		}
		return int(v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return Unmapped, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("index %q is not a number", v)
		}
		if n < 0 {
			return Unmapped, nil
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported index type %T", value)
	}
}
