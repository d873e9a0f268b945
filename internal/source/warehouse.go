package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go-price-checker/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

var ErrInvalidTableName = errors.New("invalid warehouse table name")

// warehouseRow is one row of the products/inventory join
type warehouseRow struct {
	Barcode       string
	Name          string
	Price         float64
	Category      string
	Size          string
	Color         string
	Brand         string
	Cost          float64
	StockQuantity int
	Location      string
	Description   string
}

// WarehouseSource reads the catalog from the analytical warehouse by joining
// the product master with the on-hand inventory report.
type WarehouseSource struct {
	db             *gorm.DB
	productsTable  string
	inventoryTable string
}

func NewWarehouseSource(db *gorm.DB, productsTable, inventoryTable string) (*WarehouseSource, error) {
	for _, t := range []string{productsTable, inventoryTable} {
		if !tableNamePattern.MatchString(t) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, t)
		}
	}
	return &WarehouseSource{db: db, productsTable: productsTable, inventoryTable: inventoryTable}, nil
}

func (s *WarehouseSource) Name() string {
	return "warehouse"
}

func (s *WarehouseSource) selectClause() string {
	return fmt.Sprintf(`
		SELECT
			TRIM(p.barcode) AS barcode,
			COALESCE(p.description, '') AS name,
			COALESCE(CAST(p.retail_price AS DOUBLE PRECISION), 0) AS price,
			COALESCE(p.disp_category, '') AS category,
			COALESCE(p.size_desc, '') AS size,
			COALESCE(p.color_desc, '') AS color,
			COALESCE(i.vendor, '') AS brand,
			COALESCE(CAST(i.cost AS DOUBLE PRECISION), 0) AS cost,
			COALESCE(CAST(i.on_hand_qty AS INTEGER), 0) AS stock_quantity,
			COALESCE(i.facility_name, '') AS location,
			COALESCE(p.prepared_internal_note, '') AS description
		FROM %s p
		LEFT JOIN %s i ON p.barcode = i.barcode`, s.productsTable, s.inventoryTable)
}

// catalogQuery excludes inactive and unpriced products
func (s *WarehouseSource) catalogQuery() string {
	return s.selectClause() + `
		WHERE p.barcode IS NOT NULL
			AND p.barcode <> ''
			AND p.inactive = 0
			AND CAST(p.retail_price AS DOUBLE PRECISION) > 0`
}

func (s *WarehouseSource) Fetch(ctx context.Context) ([]model.Product, error) {
	var rows []warehouseRow
	if err := s.db.WithContext(ctx).Raw(s.catalogQuery()).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("warehouse query failed: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	slog.Info("fetched products", "source", s.Name(), "rows", len(rows))
	return keepValid(s.Name(), products), nil
}

// SearchByBarcode fetches a single product directly from the warehouse
func (s *WarehouseSource) SearchByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var rows []warehouseRow
	query := s.selectClause() + `
		WHERE p.barcode = ?
		LIMIT 1`
	if err := s.db.WithContext(ctx).Raw(query, barcode).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("warehouse query failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := rows[0].toProduct()
	return &p, nil
}

// toProduct maps a warehouse row; the warehouse has no separate UPC or
// reorder level so the barcode doubles as UPC and the minimum is zero.
func (r warehouseRow) toProduct() model.Product {
	barcode := strings.TrimSpace(r.Barcode)
	stock := r.StockQuantity
	if stock < 0 {
		stock = 0
	}
	cost := r.Cost
	if cost < 0 {
		cost = 0
	}
	return model.Product{
		Barcode:       barcode,
		UPC:           barcode,
		Name:          strings.TrimSpace(r.Name),
		Description:   strings.TrimSpace(r.Description),
		Price:         decimal.NewFromFloat(r.Price),
		Cost:          decimal.NewFromFloat(cost),
		Category:      strings.TrimSpace(r.Category),
		Brand:         strings.TrimSpace(r.Brand),
		StockQuantity: stock,
		MinStockLevel: 0,
		Location:      strings.TrimSpace(r.Location),
		Size:          strings.TrimSpace(r.Size),
		Color:         strings.TrimSpace(r.Color),
	}
}
