package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go-price-checker/internal/importer"
	"go-price-checker/internal/model"
	"go-price-checker/internal/workbook"
)

// CSVSource downloads a products.csv feed, e.g. a raw GitHub file.
// Columns are addressed by their exact names (barcode, name, price, ...).
type CSVSource struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewCSVSource(url, token string) *CSVSource {
	return &CSVSource{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *CSVSource) Name() string {
	return "csv"
}

func (s *CSVSource) Fetch(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "token "+s.token)
	}

	slog.Info("fetching products", "source", s.Name(), "url", s.url)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("csv fetch failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return ParseCSV(resp.Body)
}

// ParseCSV reads a feed with fixed column names. Rows failing the required
// barcode, name and price checks are skipped silently.
func ParseCSV(r io.Reader) ([]model.Product, error) {
	wb, err := workbook.ReadCSV(r, "products.csv")
	if err != nil {
		return nil, err
	}

	sheet := &wb.Sheets[0]
	mapping := importer.ExactColumns(sheet.Headers())

	products := make([]model.Product, 0, sheet.RowCount())
	for i, row := range sheet.DataRows() {
		res := importer.NormalizeRow(i, row, mapping)
		if !res.Accepted() {
			continue
		}
		products = append(products, res.Product)
	}
	return keepValid("csv", products), nil
}
