package repository

import (
	"testing"

	"go-price-checker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportHistoryNewestFirst(t *testing.T) {
	h := NewImportHistory(10)
	h.Add(model.HistoryEntry{Filename: "a.xlsx"})
	h.Add(model.HistoryEntry{Filename: "b.xlsx"})

	list := h.List()

	require.Len(t, list, 2)
	assert.Equal(t, "b.xlsx", list[0].Filename)
	assert.Equal(t, "a.xlsx", list[1].Filename)
}

func TestImportHistoryBounded(t *testing.T) {
	h := NewImportHistory(3)
	for _, name := range []string{"1", "2", "3", "4", "5"} {
		h.Add(model.HistoryEntry{Filename: name})
	}

	list := h.List()

	require.Len(t, list, 3)
	assert.Equal(t, "5", list[0].Filename)
	assert.Equal(t, "3", list[2].Filename)
}

func TestImportHistoryDefaultLimit(t *testing.T) {
	h := NewImportHistory(0)
	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Add(model.HistoryEntry{})
	}

	assert.Len(t, h.List(), DefaultHistorySize)
	assert.NotNil(t, NewImportHistory(1).List())
}
