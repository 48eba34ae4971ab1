package routes

import (
	"github.com/gofiber/fiber/v2"

	"call-metrics-service/internal/controller"
	"call-metrics-service/internal/telemetry"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, dashboardController controller.DashboardController) {
	api := app.Group("/api")
	api.Get("/dashboard", dashboardController.GetDashboard)
	api.Get("/records", dashboardController.GetRecords)
	api.Get("/records/export", dashboardController.ExportRecords)
	api.Post("/refresh", dashboardController.TriggerRefresh)

	app.Get("/metrics", telemetry.Handler())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
