package handler

import (
	"time"

	"go-price-checker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SystemHandler struct {
	catalog service.CatalogService
}

func NewSystemHandler(catalog service.CatalogService) *SystemHandler {
	return &SystemHandler{catalog: catalog}
}

// Health reports liveness and the number of products loaded
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "OK",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"productCount": h.catalog.Count(),
	})
}
