package service

import (
	"context"
	"log/slog"

	"go-price-checker/internal/metrics"
	"go-price-checker/internal/model"
	"go-price-checker/internal/repository"
)

// LiveLookup answers single-barcode queries straight from the system of record
type LiveLookup interface {
	SearchByBarcode(ctx context.Context, barcode string) (*model.Product, error)
}

type CatalogService interface {
	Lookup(ctx context.Context, barcode string) (*model.ProductResponse, error)
	Count() int
	Stats() model.CatalogStats
}

type catalogService struct {
	store   repository.ProductStore
	live    LiveLookup
	metrics *metrics.Metrics
}

// NewCatalogService accepts a nil live lookup; misses are then final
func NewCatalogService(store repository.ProductStore, live LiveLookup, m *metrics.Metrics) CatalogService {
	return &catalogService{store: store, live: live, metrics: m}
}

func (s *catalogService) Lookup(ctx context.Context, barcode string) (*model.ProductResponse, error) {
	product, err := s.store.Lookup(barcode)
	if err == nil {
		s.metrics.Lookups.WithLabelValues("hit").Inc()
		resp := product.ToResponse()
		return &resp, nil
	}

	if s.live != nil {
		found, liveErr := s.live.SearchByBarcode(ctx, barcode)
		if liveErr != nil {
			slog.Warn("live barcode lookup failed", "barcode", barcode, "error", liveErr)
		}
		if found != nil {
			s.metrics.Lookups.WithLabelValues("live").Inc()
			resp := found.ToResponse()
			return &resp, nil
		}
	}

	s.metrics.Lookups.WithLabelValues("miss").Inc()
	return nil, err
}

func (s *catalogService) Count() int {
	return s.store.Count()
}

func (s *catalogService) Stats() model.CatalogStats {
	return s.store.Stats()
}
