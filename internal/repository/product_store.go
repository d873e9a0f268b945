package repository

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go-price-checker/internal/model"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStore is the process-wide catalog keyed by barcode
type ProductStore interface {
	Upsert(product model.Product) model.Product
	ReplaceAll(products []model.Product)
	Lookup(barcode string) (*model.Product, error)
	FindAll() []model.Product
	Count() int
	Stats() model.CatalogStats
}

// productStore keeps products in memory. Each call holds the lock for its own
// duration only; concurrent imports interleave and the last write per barcode wins.
type productStore struct {
	mu       sync.RWMutex
	products map[string]*model.Product
	order    []string
	now      func() time.Time
}

func NewProductStore() ProductStore {
	return newProductStore(time.Now)
}

func newProductStore(now func() time.Time) *productStore {
	return &productStore{
		products: make(map[string]*model.Product),
		now:      now,
	}
}

func (s *productStore) Upsert(product model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.products[product.Barcode]; ok {
		product.ID = existing.ID
	} else {
		product.ID = len(s.order) + 1
		s.order = append(s.order, product.Barcode)
	}
	product.Touch(s.now())

	stored := product
	s.products[product.Barcode] = &stored
	return stored
}

// ReplaceAll swaps the whole catalog. Ids are rebuilt sequentially in input
// order; for duplicate barcodes the last record wins and keeps the first slot.
func (s *productStore) ReplaceAll(products []model.Product) {
	now := s.now()
	next := make(map[string]*model.Product, len(products))
	order := make([]string, 0, len(products))

	for _, p := range products {
		if _, seen := next[p.Barcode]; !seen {
			order = append(order, p.Barcode)
		}
		stored := p
		stored.Touch(now)
		next[p.Barcode] = &stored
	}
	for i, barcode := range order {
		next[barcode].ID = i + 1
	}

	s.mu.Lock()
	s.products = next
	s.order = order
	s.mu.Unlock()
}

// Lookup tries an exact match first, then compares barcodes with leading
// zeros stripped since scanners and spreadsheets disagree on padding.
func (s *productStore) Lookup(barcode string) (*model.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrProductNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.products[barcode]; ok {
		found := *p
		return &found, nil
	}

	want := stripLeadingZeros(barcode)
	for _, key := range s.order {
		if stripLeadingZeros(strings.TrimSpace(key)) == want {
			found := *s.products[key]
			return &found, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *productStore) FindAll() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.order))
	for _, key := range s.order {
		products = append(products, *s.products[key])
	}
	return products
}

func (s *productStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Stats computes catalog totals; valuation is the sum of stock * price
func (s *productStore) Stats() model.CatalogStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.CatalogStats{TotalProducts: len(s.products), TotalValuation: decimal.Zero}
	for _, p := range s.products {
		if p.StockStatus() == model.StockStatusLow {
			stats.LowStockCount++
		}
		stats.TotalValuation = stats.TotalValuation.Add(p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity))))
	}
	return stats
}

func stripLeadingZeros(s string) string {
	return strings.TrimLeft(s, "0")
}
