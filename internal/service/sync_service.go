package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-price-checker/internal/metrics"
	"go-price-checker/internal/model"
	"go-price-checker/internal/repository"
	"go-price-checker/internal/source"
	"go-price-checker/pkg/cache"
)

var ErrNoSyncSource = errors.New("no sync source configured")

// SyncService replaces the whole catalog from an external source on startup,
// on a schedule and on demand.
type SyncService interface {
	Refresh(ctx context.Context) (int, error)
	Bootstrap(ctx context.Context) error
	Run(ctx context.Context)
}

type syncService struct {
	source   source.Source
	store    repository.ProductStore
	snapshot cache.Snapshot
	notifier Notifier
	metrics  *metrics.Metrics
	interval time.Duration

	// serialises refreshes; uploads are not coordinated with it
	mu sync.Mutex
}

// NewSyncService accepts a nil source, in which case Refresh reports ErrNoSyncSource
func NewSyncService(src source.Source, store repository.ProductStore, snapshot cache.Snapshot, notifier Notifier, m *metrics.Metrics, interval time.Duration) SyncService {
	return &syncService{
		source:   src,
		store:    store,
		snapshot: snapshot,
		notifier: notifierOrNop(notifier),
		metrics:  m,
		interval: interval,
	}
}

// Refresh fetches the full catalog and swaps it in. A failed fetch leaves the
// current catalog untouched.
func (s *syncService) Refresh(ctx context.Context) (int, error) {
	if s.source == nil {
		return 0, ErrNoSyncSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	products, err := s.source.Fetch(ctx)
	if err != nil {
		s.metrics.Refreshes.WithLabelValues("failure").Inc()
		return 0, fmt.Errorf("refresh from %s failed: %w", s.source.Name(), err)
	}

	s.store.ReplaceAll(products)
	count := s.store.Count()
	s.metrics.Refreshes.WithLabelValues("success").Inc()
	s.metrics.CatalogProducts.Set(float64(count))

	saveSnapshot(ctx, s.snapshot, s.store.FindAll())
	s.notifier.Publish(model.CatalogEvent{
		Type:         model.EventCatalogUpdated,
		Action:       model.ActionRefresh,
		ProductCount: count,
		Changed:      count,
		Message:      fmt.Sprintf("Loaded %d products from %s", count, s.source.Name()),
		Timestamp:    time.Now(),
	})

	slog.Info("catalog refreshed", "source", s.source.Name(), "products", count, "duration", time.Since(start))
	return count, nil
}

// Bootstrap loads the initial catalog. When the source is missing or fails
// it falls back to the last snapshot; with neither the catalog stays empty.
func (s *syncService) Bootstrap(ctx context.Context) error {
	_, err := s.Refresh(ctx)
	if err == nil {
		return nil
	}
	slog.Warn("initial catalog load failed", "error", err)

	if s.snapshot == nil {
		return err
	}
	products, snapErr := s.snapshot.Load(ctx)
	if snapErr != nil {
		slog.Warn("no catalog snapshot available", "error", snapErr)
		return err
	}

	s.store.ReplaceAll(products)
	s.metrics.CatalogProducts.Set(float64(s.store.Count()))
	slog.Info("catalog restored from snapshot", "products", s.store.Count())
	return nil
}

// Run refreshes on every interval tick until ctx is cancelled
func (s *syncService) Run(ctx context.Context) {
	if s.source == nil || s.interval <= 0 {
		return
	}

	slog.Info("scheduled refresh enabled", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			slog.Info("scheduled refresh triggered")
			if _, err := s.Refresh(ctx); err != nil {
				slog.Error("scheduled refresh failed", "error", err)
			}
		}
	}
}
