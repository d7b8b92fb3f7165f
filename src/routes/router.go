package routes

import (
	"github.com/gofiber/fiber/v2"
)

// InitRoutes wires every module's routes under /api/v1.
func InitRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookingRoutes(api)
	templateRoutes(api)
	triggerRoutes(api)
	taskRoutes(api)

	// Liveness check.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
