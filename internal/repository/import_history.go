package repository

import (
	"sync"

	"go-price-checker/internal/model"
)

// DefaultHistorySize bounds the number of remembered uploads
const DefaultHistorySize = 50

type ImportHistory interface {
	Add(entry model.HistoryEntry)
	List() []model.HistoryEntry
}

type importHistory struct {
	mu      sync.Mutex
	limit   int
	entries []model.HistoryEntry
}

func NewImportHistory(limit int) ImportHistory {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &importHistory{limit: limit}
}

func (h *importHistory) Add(entry model.HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// List returns entries newest first
func (h *importHistory) List() []model.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]model.HistoryEntry, len(h.entries))
	for i, e := range h.entries {
		out[len(h.entries)-1-i] = e
	}
	return out
}
