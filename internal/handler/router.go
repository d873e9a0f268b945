package handler

import (
	"go-price-checker/internal/middleware"
	"go-price-checker/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	System  *SystemHandler
	Product *ProductHandler
	Upload  *UploadHandler
	Hub     *ws.Hub
	// Gatherer backs /metrics; nil disables the route
	Gatherer prometheus.Gatherer
}

func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	api.Get("/health", h.System.Health)

	products := api.Group("/products")
	products.Get("/stats", h.Product.Stats)
	products.Get("/search/:barcode", h.Product.Search)
	products.Post("/refresh", h.Product.Refresh)

	upload := api.Group("/upload")
	upload.Get("/history", h.Upload.History)
	upload.Post("/preview", middleware.RequireSpreadsheet(), h.Upload.Preview)
	upload.Post("/excel", middleware.RequireSpreadsheet(), h.Upload.ImportAutomatic)
	upload.Post("/excel-with-mapping", middleware.RequireSpreadsheet(), h.Upload.ImportWithMapping)

	if h.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}

	if h.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			h.Hub.Register <- c
			defer func() { h.Hub.Unregister <- c }()

			for {
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}
}
