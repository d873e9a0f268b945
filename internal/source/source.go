// Package source fetches complete catalogs from external systems for wholesale refresh.
package source

import (
	"context"
	"log/slog"

	"go-price-checker/internal/model"
	"go-price-checker/pkg/validator"
)

// Source yields an already-normalised catalog
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Product, error)
}

// keepValid drops records missing a barcode, a name or a positive price
func keepValid(source string, products []model.Product) []model.Product {
	valid := products[:0]
	for _, p := range products {
		if errs := validator.ValidateStruct(&p); len(errs) > 0 {
			slog.Debug("skipping invalid record", "source", source, "barcode", p.Barcode, "field", errs[0].FailedField, "tag", errs[0].Tag)
			continue
		}
		valid = append(valid, p)
	}
	return valid
}
