package routes

import (
	"Backend-Seabreeze/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// bookingRoutes covers the booking aggregate: admin CRUD plus the guest-facing
// questionnaire read and answer submission.
func bookingRoutes(router fiber.Router) {
	bookings := router.Group("/bookings")

	bookings.Post("/", controllers.CreateBooking)
	bookings.Get("/", controllers.GetBookings)
	bookings.Get("/:uuid", controllers.GetBookingByUUID)
	bookings.Get("/:uuid/template", controllers.GetBookingTemplate)
	bookings.Post("/:uuid/answers", controllers.SubmitAnswers)
}
