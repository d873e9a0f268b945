package middleware

import (
	"go-price-checker/internal/workbook"

	"github.com/gofiber/fiber/v2"
)

// UploadField is the multipart field carrying the spreadsheet
const UploadField = "file"

// RequireSpreadsheet rejects requests whose upload is missing or is not a
// supported spreadsheet before any handler touches the disk.
func RequireSpreadsheet() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile(UploadField)
		if err != nil || file == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
		}

		if !workbook.Supported(file.Filename) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": workbook.ErrUnsupportedFormat.Error(),
				"code":  "INVALID_FILE_TYPE",
			})
		}

		return c.Next()
	}
}
