package model

import "time"

// Timestamps carries the audit times stamped by the product store
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch stamps both audit fields. Upserts always regenerate created_at,
// so re-importing a barcode loses its original creation time.
func (t *Timestamps) Touch(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}
