package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go-price-checker/internal/importer"
	"go-price-checker/internal/middleware"
	"go-price-checker/internal/model"
	"go-price-checker/internal/service"
	"go-price-checker/internal/workbook"
	"go-price-checker/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MappingRequest carries the manual mapping form fields next to the file
type MappingRequest struct {
	SheetName     string `form:"sheetName" validate:"required"`
	ColumnMapping string `form:"columnMapping" validate:"required"`
}

type UploadHandler struct {
	service   service.UploadService
	uploadDir string
}

func NewUploadHandler(s service.UploadService, uploadDir string) *UploadHandler {
	return &UploadHandler{service: s, uploadDir: uploadDir}
}

// Preview lists each sheet with headers, sample rows and detected columns
func (h *UploadHandler) Preview(c *fiber.Ctx) error {
	upload, err := h.save(c)
	if err != nil {
		return uploadError(c, err, nil)
	}

	preview, err := h.service.Preview(upload)
	if err != nil {
		return uploadError(c, err, nil)
	}
	return c.JSON(preview)
}

// ImportAutomatic imports the first sheet whose headers resolve on their own
func (h *UploadHandler) ImportAutomatic(c *fiber.Ctx) error {
	upload, err := h.save(c)
	if err != nil {
		return uploadError(c, err, nil)
	}

	result, err := h.service.ImportAutomatic(c.UserContext(), upload)
	if err != nil {
		return uploadError(c, err, result)
	}
	return c.JSON(fiber.Map{
		"message": "Products imported successfully",
		"summary": result,
	})
}

// ImportWithMapping imports one sheet using the caller's column mapping
func (h *UploadHandler) ImportWithMapping(c *fiber.Ctx) error {
	var req MappingRequest
	if err := c.BodyParser(&req); err != nil {
		h.reject(c, fmt.Errorf("%w: invalid form data: %v", importer.ErrInvalidMapping, err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form data"})
	}
	if errs := validator.ValidateStruct(req); errs != nil {
		h.reject(c, fmt.Errorf("%w: sheet name and column mapping are required", importer.ErrInvalidMapping))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Sheet name and column mapping are required",
			"code":   "INVALID_MAPPING",
			"fields": errs,
		})
	}

	mapping, err := model.ParseColumnMapping([]byte(req.ColumnMapping))
	if err != nil {
		err = fmt.Errorf("%w: %v", importer.ErrInvalidMapping, err)
		h.reject(c, err)
		return uploadError(c, err, nil)
	}

	upload, err := h.save(c)
	if err != nil {
		return uploadError(c, err, nil)
	}

	result, err := h.service.ImportWithMapping(c.UserContext(), upload, req.SheetName, mapping)
	if err != nil {
		return uploadError(c, err, result)
	}
	return c.JSON(fiber.Map{
		"message": "Products imported successfully with custom mapping",
		"summary": result,
	})
}

// History lists recent imports, newest first
func (h *UploadHandler) History(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"imports": h.service.History()})
}

// reject records a manual import refused before the file was saved
func (h *UploadHandler) reject(c *fiber.Ctx, err error) {
	upload := service.Upload{}
	if file, ferr := c.FormFile(middleware.UploadField); ferr == nil {
		upload.Filename = file.Filename
	}
	h.service.Reject(c.UserContext(), upload, model.ImportModeManual, err)
}

// save writes the multipart upload under a random name. The returned Upload
// is owned by the service call that receives it.
func (h *UploadHandler) save(c *fiber.Ctx) (service.Upload, error) {
	file, err := c.FormFile(middleware.UploadField)
	if err != nil {
		return service.Upload{}, errNoFile
	}
	if !workbook.Supported(file.Filename) {
		return service.Upload{}, workbook.ErrUnsupportedFormat
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return service.Upload{}, fmt.Errorf("prepare upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	if err := c.SaveFile(file, path); err != nil {
		os.Remove(path)
		return service.Upload{}, fmt.Errorf("save upload: %w", err)
	}

	return service.Upload{Path: path, Filename: file.Filename}, nil
}

var errNoFile = errors.New("no file uploaded")

// uploadError maps pipeline and parser errors onto status codes. Partial
// results are echoed back so the caller can show per-row errors.
func uploadError(c *fiber.Ctx, err error, result *model.ImportResult) error {
	status, code := fiber.StatusBadRequest, ""
	body := fiber.Map{"error": err.Error()}

	switch {
	case errors.Is(err, errNoFile):
		body["error"] = "No file uploaded"
	case errors.Is(err, importer.ErrNoAutomaticMatch):
		code = "NO_AUTO_MATCH"
		body["error"] = "Could not automatically detect required columns (barcode, name, price)"
		body["needsMapping"] = true
	case errors.Is(err, importer.ErrNoValidRows):
		code = "NO_VALID_ROWS"
	case errors.Is(err, importer.ErrSheetNotFound):
		code = "SHEET_NOT_FOUND"
	case errors.Is(err, importer.ErrInvalidMapping):
		code = "INVALID_MAPPING"
	case errors.Is(err, workbook.ErrMalformedSource):
		code = "MALFORMED_SOURCE"
	case errors.Is(err, workbook.ErrUnsupportedFormat):
		code = "INVALID_FILE_TYPE"
	default:
		status = fiber.StatusInternalServerError
		slog.Error("upload failed", "error", err)
		body["error"] = "Failed to process file"
		body["details"] = err.Error()
	}

	if code != "" {
		body["code"] = code
	}
	if result != nil {
		body["summary"] = result
	}
	return c.Status(status).JSON(body)
}
