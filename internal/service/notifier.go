package service

import (
	"context"
	"log/slog"
	"time"

	"go-price-checker/internal/model"
	"go-price-checker/pkg/cache"
)

const snapshotTimeout = 10 * time.Second

// Notifier pushes catalog events to connected kiosks
type Notifier interface {
	Publish(event model.CatalogEvent)
}

type nopNotifier struct{}

func (nopNotifier) Publish(model.CatalogEvent) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// saveSnapshot writes the catalog to the snapshot store when one is configured.
// Failures are logged only; the in-memory catalog stays authoritative.
func saveSnapshot(ctx context.Context, snapshot cache.Snapshot, products []model.Product) {
	if snapshot == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
	defer cancel()

	if err := snapshot.Save(ctx, products); err != nil {
		slog.Warn("failed to save catalog snapshot", "error", err)
	}
}
