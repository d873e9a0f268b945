package service

import (
	"context"
	"sync"

	"go-price-checker/internal/metrics"
	"go-price-checker/internal/model"
	"go-price-checker/pkg/cache"

	"github.com/prometheus/client_golang/prometheus"
)

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []model.CatalogEvent
}

func (n *recordingNotifier) Publish(e model.CatalogEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) Events() []model.CatalogEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.CatalogEvent(nil), n.events...)
}

type memSnapshot struct {
	mu       sync.Mutex
	products []model.Product
	saves    int
	saveErr  error
}

func (s *memSnapshot) Save(_ context.Context, products []model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.products = append([]model.Product(nil), products...)
	return nil
}

func (s *memSnapshot) Load(context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.products == nil {
		return nil, cache.ErrNoSnapshot
	}
	return append([]model.Product(nil), s.products...), nil
}

type stubSource struct {
	mu       sync.Mutex
	products []model.Product
	err      error
	calls    int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]model.Product(nil), s.products...), nil
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
