package model

import "github.com/shopspring/decimal"

// LowStockThreshold is the inclusive quantity at which stock is reported as low
const LowStockThreshold = 10

const (
	StockStatusLow    = "low"
	StockStatusNormal = "normal"
)

func init() {
	// Kiosk clients expect prices as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry. Barcode is its only identity.
type Product struct {
	ID            int             `json:"id"`
	Barcode       string          `json:"barcode" validate:"required"`
	UPC           string          `json:"upc"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"gt=0"`
	Cost          decimal.Decimal `json:"cost" validate:"gte=0"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	MinStockLevel int             `json:"min_stock_level" validate:"gte=0"`
	Location      string          `json:"location"`

	// Only populated by warehouse sources
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`

	Timestamps
}

// StockStatus is derived at read time and never stored
func (p *Product) StockStatus() string {
	if p.StockQuantity <= LowStockThreshold {
		return StockStatusLow
	}
	return StockStatusNormal
}

// ProductResponse is the lookup payload served to kiosks
type ProductResponse struct {
	Product
	StockStatus string `json:"stock_status"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		Product:     *p,
		StockStatus: p.StockStatus(),
	}
}

// CatalogStats summarises the current catalog
type CatalogStats struct {
	TotalProducts  int             `json:"total_products"`
	LowStockCount  int             `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}
