package routes

import (
	"Backend-Seabreeze/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func triggerRoutes(router fiber.Router) {
	triggers := router.Group("/triggers")

	triggers.Post("/", controllers.CreateTrigger)
	triggers.Get("/", controllers.GetTriggers)
	triggers.Patch("/:id", controllers.UpdateTrigger)
}
