package routes

import (
	"Backend-Seabreeze/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// taskRoutes exposes the background-task envelope endpoint.
func taskRoutes(router fiber.Router) {
	router.Post("/tasks", controllers.PostTask)
}
