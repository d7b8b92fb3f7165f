package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/jobs"
	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/schema"
	"Backend-Seabreeze/src/services/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	validate = validator.New()
	store    = storage.NewLocalStorageFromEnv()
)

type createBookingRequest struct {
	GuestName     string `json:"guestName" validate:"required"`
	GuestEmail    string `json:"guestEmail" validate:"required,email"`
	TemplateID    string `json:"templateId" validate:"required"`
	SecondBooking bool   `json:"secondBooking"`
}

// CreateBooking opens a booking against a template and clones its sections.
func CreateBooking(c *fiber.Ctx) error {
	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	templateID, err := primitive.ObjectIDFromHex(req.TemplateID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	booking := &models.Booking{
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		SecondBooking: req.SecondBooking,
	}
	if err := bookings.CreateBooking(ctx, booking, templateID); err != nil {
		if errors.Is(err, schema.ErrSchemaNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}
	return c.Status(http.StatusCreated).JSON(booking)
}

// GetBookings lists bookings with pagination.
func GetBookings(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := bookings.GetBookings(ctx, params)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list bookings"})
	}
	return c.JSON(res)
}

// GetBookingByUUID returns one booking.
func GetBookingByUUID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	booking, err := bookings.GetBookingByUUID(ctx, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking"})
	}
	return c.JSON(booking)
}

// GetBookingTemplate serves the booking's questionnaire view: sections synced
// against the schema, answers and the completion verdict.
func GetBookingTemplate(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	view, err := bookings.GetTemplateView(ctx, c.Params("uuid"))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		case errors.Is(err, schema.ErrSchemaNotFound):
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Booking schema not found"})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking template"})
		}
	}
	return c.JSON(view)
}

type submitAnswersRequest struct {
	Answers   []bookings.AnswerInput `json:"answers" validate:"required,min=1,dive"`
	Lifecycle string                 `json:"lifecycle" validate:"omitempty,oneof=submit confirm amend"`
}

// SubmitAnswers saves an answer batch, disseminates it, and queues the
// lifecycle's trigger pass.
func SubmitAnswers(c *fiber.Ctx) error {
	var req submitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	bookingUUID := c.Params("uuid")
	booking, saved, err := bookings.SubmitAnswers(ctx, bookingUUID, req.Answers, store)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		case errors.Is(err, schema.ErrSchemaNotFound):
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Unknown question in batch"})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save answers"})
		}
	}

	switch req.Lifecycle {
	case "submit":
		if err := bookings.SetStatus(ctx, booking.ID, models.StatusSubmitted); err == nil {
			booking.Status = models.BookingStatus{Name: models.StatusSubmitted}
		}
		enqueueBookingTask(jobs.NewTriggerEmailsSubmitTask, bookingUUID)
	case "confirm":
		if err := bookings.SetStatus(ctx, booking.ID, models.StatusConfirmed); err == nil {
			booking.Status = models.BookingStatus{Name: models.StatusConfirmed}
		}
		enqueueBookingTask(jobs.NewTriggerEmailsConfirmTask, bookingUUID)
	case "amend":
		if err := bookings.SetStatus(ctx, booking.ID, models.StatusAmended); err == nil {
			booking.Status = models.BookingStatus{Name: models.StatusAmended}
		}
		enqueueBookingTask(jobs.NewEvaluateTriggersTask, bookingUUID)
	}

	return c.JSON(fiber.Map{
		"booking": booking,
		"saved":   len(saved),
	})
}

func enqueueBookingTask(build func(string) (*asynq.Task, error), bookingUUID string) {
	if DB.AsynqClient == nil {
		log.Println("⚠️ Asynq not available, trigger pass not queued for", bookingUUID)
		return
	}
	task, err := build(bookingUUID)
	if err != nil {
		log.Println("❌ Failed to build task:", err)
		return
	}
	if _, err := DB.AsynqClient.Enqueue(task); err != nil {
		log.Println("❌ Failed to enqueue task:", err)
	}
}
