package handler

import (
	"errors"
	"log/slog"
	"time"

	"go-price-checker/internal/repository"
	"go-price-checker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalog service.CatalogService
	sync    service.SyncService
}

func NewProductHandler(catalog service.CatalogService, sync service.SyncService) *ProductHandler {
	return &ProductHandler{catalog: catalog, sync: sync}
}

// Search looks a scanned barcode up in the catalog
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	barcode := c.Params("barcode")

	product, err := h.catalog.Lookup(c.UserContext(), barcode)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Product not found",
				"barcode": barcode,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search product"})
	}

	// Price history is not tracked yet; kiosks expect the key to exist
	return c.JSON(fiber.Map{
		"product":      product,
		"priceHistory": []any{},
	})
}

// Refresh reloads the whole catalog from the configured sync source
func (h *ProductHandler) Refresh(c *fiber.Ctx) error {
	count, err := h.sync.Refresh(c.UserContext())
	if err != nil {
		slog.Error("manual refresh failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to refresh products",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Products refreshed successfully",
		"productCount": count,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Stats returns catalog totals for the back office
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Stats())
}
