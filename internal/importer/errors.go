package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAutomaticMatch means no sheet resolved barcode, name and price.
	// Callers should offer manual mapping instead of failing outright.
	ErrNoAutomaticMatch = errors.New("unable to automatically detect required columns")
	ErrNoValidRows      = errors.New("no valid products found")
	ErrSheetNotFound    = errors.New("sheet not found")
	ErrInvalidMapping   = errors.New("invalid column mapping")
)

// RowError describes a rejected data row. Row is 1-based and counts the header.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}
