package model

import "time"

const EventCatalogUpdated = "catalog_updated"

const (
	ActionImport  = "import"
	ActionRefresh = "refresh"
)

// CatalogEvent is pushed to connected kiosks when the catalog changes
type CatalogEvent struct {
	Type         string    `json:"type"`
	Action       string    `json:"action"`
	ProductCount int       `json:"product_count"`
	Changed      int       `json:"changed"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}
