package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feed = `barcode,upc,name,description,price,cost,category,brand,stock_quantity,min_stock_level,location
0012345,0012345,Widget,Blue widget,9.99,4.50,Tools,Acme,25,5,A1
,,No barcode,,3.00,,,,,,
777,,Free thing,,0,,,,,,
888,,Gadget,,12,,,,-4,,B2
`

func TestParseCSV(t *testing.T) {
	products, err := ParseCSV(strings.NewReader(feed))

	require.NoError(t, err)
	require.Len(t, products, 2)

	w := products[0]
	assert.Equal(t, "0012345", w.Barcode)
	assert.Equal(t, "Widget", w.Name)
	assert.Equal(t, "Blue widget", w.Description)
	assert.True(t, decimal.RequireFromString("9.99").Equal(w.Price))
	assert.True(t, decimal.RequireFromString("4.5").Equal(w.Cost))
	assert.Equal(t, "Acme", w.Brand)
	assert.Equal(t, 25, w.StockQuantity)
	assert.Equal(t, 5, w.MinStockLevel)

	g := products[1]
	assert.Equal(t, "888", g.Barcode)
	assert.Zero(t, g.StockQuantity)
	assert.Equal(t, "B2", g.Location)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	products, err := ParseCSV(strings.NewReader("barcode,name,price\n"))

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCSVSourceFetch(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	src := NewCSVSource(srv.URL+"/products.csv", "secret")
	products, err := src.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "token secret", gotAuth)
	assert.Equal(t, "csv", src.Name())
}

func TestCSVSourceFetchWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("barcode,name,price\n1,A,2\n"))
	}))
	defer srv.Close()

	products, err := NewCSVSource(srv.URL, "").Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Empty(t, gotAuth)
}

func TestCSVSourceFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewCSVSource(srv.URL, "").Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
