package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/satvikkk/travel-aware/internal/risk"
	"github.com/satvikkk/travel-aware/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, routeSvc *service.RouteService, repo service.ScoreLogRepository, store *risk.Store, datasetPath string) {
	handler := NewHandler(routeSvc, repo, store, datasetPath)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Route scoring
		api.Post("/routes/score", handler.ScoreRoutes)

		// Reference data
		api.Get("/categories", handler.GetCategories)
		api.Get("/history", handler.GetHistory)

		// Dataset administration
		api.Post("/dataset/reload", handler.ReloadDataset)
	}
}
