package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-price-checker/internal/importer"
	"go-price-checker/internal/model"
	"go-price-checker/internal/repository"
	"go-price-checker/internal/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadFixture struct {
	svc      UploadService
	store    repository.ProductStore
	history  repository.ImportHistory
	snapshot *memSnapshot
	notifier *recordingNotifier
}

func newUploadFixture() *uploadFixture {
	f := &uploadFixture{
		store:    repository.NewProductStore(),
		history:  repository.NewImportHistory(10),
		snapshot: &memSnapshot{},
		notifier: &recordingNotifier{},
	}
	f.svc = NewUploadService(f.store, f.history, f.snapshot, f.notifier, newMetrics())
	return f
}

func writeUpload(t *testing.T, filename, content string) Upload {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload"+filepath.Ext(filename))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return Upload{Path: path, Filename: filename}
}

func assertRemoved(t *testing.T, up Upload) {
	t.Helper()
	_, err := os.Stat(up.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "upload %s should be removed", up.Path)
}

const mixedCSV = "SKU,Title,Retail Price\nA1,Widget,9.99\n,Bad,5.00\nA2,Gadget,-1\n"

func TestUploadPreview(t *testing.T) {
	f := newUploadFixture()
	up := writeUpload(t, "stock.csv", mixedCSV)

	preview, err := f.svc.Preview(up)

	require.NoError(t, err)
	assert.Equal(t, "stock.csv", preview.Filename)
	require.Len(t, preview.Sheets, 1)
	assert.True(t, preview.Sheets[0].HasRequiredColumns)
	assert.Zero(t, f.store.Count())
	assert.Empty(t, f.history.List())
	assertRemoved(t, up)
}

func TestUploadImportAutomatic(t *testing.T) {
	f := newUploadFixture()
	up := writeUpload(t, "stock.csv", mixedCSV)

	result, err := f.svc.ImportAutomatic(context.Background(), up)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 1, f.store.Count())
	assertRemoved(t, up)

	history := f.history.List()
	require.Len(t, history, 1)
	assert.Equal(t, model.ImportModeAutomatic, history[0].Mode)
	assert.Equal(t, model.ImportStatusCompleted, history[0].Status)
	assert.Equal(t, "stock", history[0].Sheet)
	assert.Equal(t, 1, history[0].SuccessfulRows)
	assert.Equal(t, 2, history[0].FailedRows)

	assert.Equal(t, 1, f.snapshot.saves)
	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.ActionImport, events[0].Action)
	assert.Equal(t, 1, events[0].ProductCount)
}

func TestUploadImportAutomaticNoMatch(t *testing.T) {
	f := newUploadFixture()
	up := writeUpload(t, "notes.csv", "Date,Comment\n2024-01-01,hi\n")

	result, err := f.svc.ImportAutomatic(context.Background(), up)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, importer.ErrNoAutomaticMatch))
	assertRemoved(t, up)

	history := f.history.List()
	require.Len(t, history, 1)
	assert.Equal(t, model.ImportStatusFailed, history[0].Status)
	assert.NotEmpty(t, history[0].Error)
	assert.Zero(t, f.snapshot.saves)
	assert.Empty(t, f.notifier.Events())
}

func TestUploadImportMalformed(t *testing.T) {
	f := newUploadFixture()
	up := writeUpload(t, "broken.xlsx", "not a workbook")

	_, err := f.svc.ImportAutomatic(context.Background(), up)

	assert.True(t, errors.Is(err, workbook.ErrMalformedSource))
	assertRemoved(t, up)
	require.Len(t, f.history.List(), 1)
}

func TestUploadImportWithMapping(t *testing.T) {
	f := newUploadFixture()
	up := writeUpload(t, "custom.csv", "a,b,c,d\nWidget,0042,3.50,7\n")
	mapping := model.ColumnMapping{
		model.FieldBarcode:       1,
		model.FieldName:          0,
		model.FieldPrice:         2,
		model.FieldStockQuantity: 3,
	}

	result, err := f.svc.ImportWithMapping(context.Background(), up, "custom", mapping)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	got, err := f.store.Lookup("42")
	require.NoError(t, err)
	assert.Equal(t, 7, got.StockQuantity)
	assertRemoved(t, up)
	assert.Equal(t, model.ImportModeManual, f.history.List()[0].Mode)
}

func TestUploadImportWithMappingErrors(t *testing.T) {
	tests := []struct {
		name    string
		sheet   string
		mapping model.ColumnMapping
		want    error
	}{
		{"missing barcode", "custom", model.ColumnMapping{model.FieldName: 0, model.FieldPrice: 2}, importer.ErrInvalidMapping},
		{"unknown sheet", "Sheet9", model.ColumnMapping{model.FieldBarcode: 1, model.FieldName: 0, model.FieldPrice: 2}, importer.ErrSheetNotFound},
		{"out of range", "custom", model.ColumnMapping{model.FieldBarcode: 1, model.FieldName: 0, model.FieldPrice: 8}, importer.ErrInvalidMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUploadFixture()
			up := writeUpload(t, "custom.csv", "a,b,c\nWidget,0042,3.50\n")

			_, err := f.svc.ImportWithMapping(context.Background(), up, tt.sheet, tt.mapping)

			assert.True(t, errors.Is(err, tt.want), err)
			assertRemoved(t, up)
			assert.Zero(t, f.store.Count())
		})
	}
}

func TestUploadSnapshotFailureDoesNotFailImport(t *testing.T) {
	f := newUploadFixture()
	f.snapshot.saveErr = errors.New("redis down")
	up := writeUpload(t, "stock.csv", "barcode,name,price\n1,A,2\n")

	result, err := f.svc.ImportAutomatic(context.Background(), up)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Len(t, f.notifier.Events(), 1)
}

func TestUploadWithoutOptionalCollaborators(t *testing.T) {
	store := repository.NewProductStore()
	svc := NewUploadService(store, repository.NewImportHistory(5), nil, nil, newMetrics())
	up := writeUpload(t, "stock.csv", "barcode,name,price\n1,A,2\n")

	_, err := svc.ImportAutomatic(context.Background(), up)

	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())
	assert.Len(t, svc.History(), 1)
}

func TestUploadRejectRecordsHistory(t *testing.T) {
	f := newUploadFixture()
	up := writeUpload(t, "custom.csv", "a,b\n1,2\n")

	f.svc.Reject(context.Background(), up, model.ImportModeManual, importer.ErrInvalidMapping)

	history := f.svc.History()
	require.Len(t, history, 1)
	assert.Equal(t, "custom.csv", history[0].Filename)
	assert.Equal(t, model.ImportModeManual, history[0].Mode)
	assert.Equal(t, model.ImportStatusFailed, history[0].Status)
	assert.Equal(t, importer.ErrInvalidMapping.Error(), history[0].Error)
	assert.Empty(t, f.notifier.Events())
	assertRemoved(t, up)
}
