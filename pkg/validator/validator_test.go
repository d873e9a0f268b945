package validator

import (
	"testing"

	"go-price-checker/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProduct(t *testing.T) {
	valid := model.Product{Barcode: "A1", Name: "Widget", Price: decimal.RequireFromString("0.01")}
	assert.Empty(t, ValidateStruct(&valid))

	zeroPrice := valid
	zeroPrice.Price = decimal.Zero
	errs := ValidateStruct(&zeroPrice)
	require.Len(t, errs, 1)
	assert.Equal(t, "Product.Price", errs[0].FailedField)
	assert.Equal(t, "gt", errs[0].Tag)

	negativeCost := valid
	negativeCost.Cost = decimal.NewFromInt(-1)
	errs = ValidateStruct(&negativeCost)
	require.Len(t, errs, 1)
	assert.Equal(t, "gte", errs[0].Tag)

	errs = ValidateStruct(&model.Product{Price: decimal.NewFromInt(1)})
	assert.Len(t, errs, 2)
}

func TestValidateNonStruct(t *testing.T) {
	errs := ValidateStruct("not a struct")
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid", errs[0].Tag)
}
