package importer

import (
	"fmt"

	"go-price-checker/internal/model"

	"github.com/shopspring/decimal"
)

// RowResult is the outcome of normalising one data row
type RowResult struct {
	Product model.Product
	Err     *RowError
}

// Accepted reports whether the row produced a product
func (r RowResult) Accepted() bool {
	return r.Err == nil
}

// DisplayRow converts a zero-based data-row index to the spreadsheet row number
func DisplayRow(index int) int {
	return index + 2
}

// NormalizeRow builds a product from row using mapping. The same rules apply
// whether the mapping was detected or supplied by the user.
func NormalizeRow(index int, row []model.Cell, mapping model.ColumnMapping) RowResult {
	barcode := textField(row, mapping, model.FieldBarcode)
	name := textField(row, mapping, model.FieldName)
	priceCell := cellFor(row, mapping, model.FieldPrice)
	price, priceOK := priceCell.Float()

	if barcode == "" || name == "" || !priceOK || price <= 0 {
		priceText := "NaN"
		if priceOK {
			priceText = decimal.NewFromFloat(price).String()
		}
		return RowResult{Err: &RowError{
			Row: DisplayRow(index),
			Reason: fmt.Sprintf("Missing or invalid required data (barcode: %q, name: %q, price: %s)",
				barcode, name, priceText),
		}}
	}

	return RowResult{Product: model.Product{
		Barcode:       barcode,
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		UPC:           textField(row, mapping, model.FieldUPC),
		Description:   textField(row, mapping, model.FieldDescription),
		Cost:          decimal.NewFromFloat(nonNegativeFloat(row, mapping, model.FieldCost)),
		Category:      textField(row, mapping, model.FieldCategory),
		Brand:         textField(row, mapping, model.FieldBrand),
		StockQuantity: nonNegativeInt(row, mapping, model.FieldStockQuantity),
		MinStockLevel: nonNegativeInt(row, mapping, model.FieldMinStockLevel),
		Location:      textField(row, mapping, model.FieldLocation),
	}}
}

func cellFor(row []model.Cell, mapping model.ColumnMapping, field model.Field) model.Cell {
	idx := mapping.Index(field)
	if idx == model.Unmapped {
		return model.Cell{}
	}
	return model.CellAt(row, idx)
}

func textField(row []model.Cell, mapping model.ColumnMapping, field model.Field) string {
	return cellFor(row, mapping, field).Trimmed()
}

func nonNegativeFloat(row []model.Cell, mapping model.ColumnMapping, field model.Field) float64 {
	f, ok := cellFor(row, mapping, field).Float()
	if !ok || f < 0 {
		return 0
	}
	return f
}

func nonNegativeInt(row []model.Cell, mapping model.ColumnMapping, field model.Field) int {
	n, ok := cellFor(row, mapping, field).Int()
	if !ok || n < 0 {
		return 0
	}
	return n
}

func isBlankRow(row []model.Cell) bool {
	for _, c := range row {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}
