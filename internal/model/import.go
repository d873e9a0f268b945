package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxReportedErrors caps the row messages returned to callers; Failed keeps the true count
const MaxReportedErrors = 10

// SheetPreview describes one sheet of an uploaded workbook
type SheetPreview struct {
	Name               string        `json:"name"`
	Headers            []string      `json:"headers"`
	RowCount           int           `json:"rowCount"`
	HasRequiredColumns bool          `json:"hasRequiredColumns"`
	SampleData         [][]Cell      `json:"sampleData"`
	DetectedColumns    ColumnMapping `json:"detectedColumns"`
}

// WorkbookPreview is the response of an upload preview
type WorkbookPreview struct {
	Filename string         `json:"filename"`
	Sheets   []SheetPreview `json:"sheets"`
}

// ImportResult tallies one import run
type ImportResult struct {
	Sheet      string   `json:"sheet"`
	TotalRows  int      `json:"totalRows"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// AddError records a rejected row, keeping only the first MaxReportedErrors messages
func (r *ImportResult) AddError(msg string) {
	r.Failed++
	if len(r.Errors) < MaxReportedErrors {
		r.Errors = append(r.Errors, msg)
	}
}

// ImportMode names the ingestion path
type ImportMode string

const (
	ImportModeAutomatic ImportMode = "automatic"
	ImportModeManual    ImportMode = "manual"
)

const (
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

// HistoryEntry records one upload attempt
type HistoryEntry struct {
	ID             uuid.UUID  `json:"id"`
	Filename       string     `json:"filename"`
	Mode           ImportMode `json:"mode"`
	Sheet          string     `json:"sheet,omitempty"`
	ImportedAt     time.Time  `json:"imported_at"`
	TotalRows      int        `json:"total_rows"`
	SuccessfulRows int        `json:"successful_rows"`
	FailedRows     int        `json:"failed_rows"`
	Status         string     `json:"status"`
	Error          string     `json:"error,omitempty"`
}
