package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go-price-checker/internal/importer"
	"go-price-checker/internal/metrics"
	"go-price-checker/internal/model"
	"go-price-checker/internal/repository"
	"go-price-checker/internal/workbook"
	"go-price-checker/pkg/cache"

	"github.com/google/uuid"
)

// Upload is a file saved by the transport layer. Every UploadService method
// takes ownership and deletes it before returning, on success or failure.
type Upload struct {
	Path     string
	Filename string
}

type UploadService interface {
	Preview(upload Upload) (*model.WorkbookPreview, error)
	ImportAutomatic(ctx context.Context, upload Upload) (*model.ImportResult, error)
	ImportWithMapping(ctx context.Context, upload Upload, sheetName string, mapping model.ColumnMapping) (*model.ImportResult, error)
	// Reject records an import attempt refused before reaching the pipeline
	Reject(ctx context.Context, upload Upload, mode model.ImportMode, err error)
	History() []model.HistoryEntry
}

type uploadService struct {
	store    repository.ProductStore
	pipeline *importer.Pipeline
	history  repository.ImportHistory
	snapshot cache.Snapshot
	notifier Notifier
	metrics  *metrics.Metrics
}

func NewUploadService(store repository.ProductStore, history repository.ImportHistory, snapshot cache.Snapshot, notifier Notifier, m *metrics.Metrics) UploadService {
	return &uploadService{
		store:    store,
		pipeline: importer.NewPipeline(store),
		history:  history,
		snapshot: snapshot,
		notifier: notifierOrNop(notifier),
		metrics:  m,
	}
}

func (s *uploadService) Preview(upload Upload) (*model.WorkbookPreview, error) {
	defer discard(upload)

	wb, err := workbook.Open(upload.Path, upload.Filename)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Preview(wb), nil
}

func (s *uploadService) ImportAutomatic(ctx context.Context, upload Upload) (*model.ImportResult, error) {
	defer discard(upload)

	wb, err := workbook.Open(upload.Path, upload.Filename)
	if err != nil {
		s.finish(ctx, upload, model.ImportModeAutomatic, nil, err)
		return nil, err
	}

	result, err := s.pipeline.ImportAutomatic(wb)
	s.finish(ctx, upload, model.ImportModeAutomatic, result, err)
	return result, err
}

func (s *uploadService) ImportWithMapping(ctx context.Context, upload Upload, sheetName string, mapping model.ColumnMapping) (*model.ImportResult, error) {
	defer discard(upload)

	// Reject bad mappings before paying for the workbook parse
	if !mapping.HasRequired() {
		err := fmt.Errorf("%w: barcode, name, and price column mappings are required", importer.ErrInvalidMapping)
		s.finish(ctx, upload, model.ImportModeManual, nil, err)
		return nil, err
	}

	wb, err := workbook.Open(upload.Path, upload.Filename)
	if err != nil {
		s.finish(ctx, upload, model.ImportModeManual, nil, err)
		return nil, err
	}

	result, err := s.pipeline.ImportWithMapping(wb, sheetName, mapping)
	s.finish(ctx, upload, model.ImportModeManual, result, err)
	return result, err
}

func (s *uploadService) Reject(ctx context.Context, upload Upload, mode model.ImportMode, err error) {
	defer discard(upload)
	s.finish(ctx, upload, mode, nil, err)
}

func (s *uploadService) History() []model.HistoryEntry {
	return s.history.List()
}

// finish records history and metrics, then snapshots and announces the new
// catalog when at least one row was committed.
func (s *uploadService) finish(ctx context.Context, upload Upload, mode model.ImportMode, result *model.ImportResult, err error) {
	entry := model.HistoryEntry{
		ID:         uuid.New(),
		Filename:   upload.Filename,
		Mode:       mode,
		ImportedAt: time.Now(),
		Status:     model.ImportStatusCompleted,
	}
	if result != nil {
		entry.Sheet = result.Sheet
		entry.TotalRows = result.TotalRows
		entry.SuccessfulRows = result.Successful
		entry.FailedRows = result.Failed

		s.metrics.ImportRows.WithLabelValues("accepted").Add(float64(result.Successful))
		s.metrics.ImportRows.WithLabelValues("rejected").Add(float64(result.Failed))
	}
	if err != nil {
		entry.Status = model.ImportStatusFailed
		entry.Error = err.Error()
	}
	s.history.Add(entry)
	s.metrics.Imports.WithLabelValues(string(mode), entry.Status).Inc()

	if err != nil {
		slog.Warn("import failed", "file", upload.Filename, "mode", mode, "error", err)
	}
	if result == nil || result.Successful == 0 {
		return
	}

	count := s.store.Count()
	s.metrics.CatalogProducts.Set(float64(count))
	saveSnapshot(ctx, s.snapshot, s.store.FindAll())
	s.notifier.Publish(model.CatalogEvent{
		Type:         model.EventCatalogUpdated,
		Action:       model.ActionImport,
		ProductCount: count,
		Changed:      result.Successful,
		Message:      fmt.Sprintf("Imported %d products from %s", result.Successful, upload.Filename),
		Timestamp:    time.Now(),
	})
}

// discard removes the temporary upload; a missing file is not an error
func discard(upload Upload) {
	if upload.Path == "" {
		return
	}
	if err := os.Remove(upload.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove upload", "path", upload.Path, "error", err)
	}
}
