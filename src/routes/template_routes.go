package routes

import (
	"Backend-Seabreeze/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func templateRoutes(router fiber.Router) {
	templates := router.Group("/templates")

	templates.Post("/", controllers.CreateTemplate)
	templates.Get("/:id", controllers.GetTemplate)
}
