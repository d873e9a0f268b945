package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ImportRows.WithLabelValues("accepted").Add(3)
	m.Imports.WithLabelValues("automatic", "completed").Inc()
	m.Lookups.WithLabelValues("hit").Inc()
	m.Refreshes.WithLabelValues("success").Inc()
	m.CatalogProducts.Set(42)

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]int{}
	for i, f := range families {
		byName[f.GetName()] = i
	}
	for _, want := range []string{
		"price_checker_import_rows_total",
		"price_checker_imports_total",
		"price_checker_lookups_total",
		"price_checker_refresh_total",
		"price_checker_catalog_products",
	} {
		assert.Contains(t, byName, want)
	}

	rows := families[byName["price_checker_import_rows_total"]]
	require.Len(t, rows.GetMetric(), 1)
	assert.Equal(t, float64(3), rows.GetMetric()[0].GetCounter().GetValue())

	gauge := families[byName["price_checker_catalog_products"]]
	assert.Equal(t, float64(42), gauge.GetMetric()[0].GetGauge().GetValue())
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
