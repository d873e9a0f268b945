package ws

import (
	"encoding/json"
	"testing"
	"time"

	"go-price-checker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishEncodesEvent(t *testing.T) {
	hub := NewHub()
	event := model.CatalogEvent{
		Type:         model.EventCatalogUpdated,
		Action:       model.ActionImport,
		ProductCount: 12,
		Changed:      3,
		Timestamp:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	hub.Publish(event)

	select {
	case msg := <-hub.Broadcast:
		var got map[string]any
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "catalog_updated", got["type"])
		assert.Equal(t, "import", got["action"])
		assert.Equal(t, float64(12), got["product_count"])
	default:
		t.Fatal("expected a queued broadcast")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			hub.Publish(model.CatalogEvent{Type: model.EventCatalogUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with a full buffer")
	}
	assert.Len(t, hub.Broadcast, broadcastBuffer)
	assert.Zero(t, hub.ClientCount())
}
