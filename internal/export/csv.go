// Package export writes the catalog in the flat CSV layout read by the CSV sync source.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go-price-checker/internal/model"
)

// Header lists the columns in file order
var Header = []string{
	"barcode", "upc", "name", "description", "price", "cost",
	"category", "brand", "stock_quantity", "min_stock_level", "location",
}

// WriteCSV writes the header and one record per product
func WriteCSV(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range products {
		record := []string{
			p.Barcode,
			p.UPC,
			p.Name,
			p.Description,
			p.Price.String(),
			p.Cost.String(),
			p.Category,
			p.Brand,
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.MinStockLevel),
			p.Location,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write product %s: %w", p.Barcode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
