package controllers

import (
	"net/http"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/jobs"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type taskEnvelope struct {
	Type    string `json:"type" validate:"required"`
	Payload struct {
		BookingUUID string `json:"bookingUuid" validate:"required"`
		TriggerID   string `json:"triggerId"`
	} `json:"payload"`
}

// PostTask accepts a typed {type, payload} envelope and queues the matching
// background operation. The handlers themselves enforce the metainfo
// read-check-set guards, so posting the same envelope twice is harmless.
func PostTask(c *fiber.Ctx) error {
	var env taskEnvelope
	if err := c.BodyParser(&env); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&env); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if DB.AsynqClient == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "Background queue not available"})
	}

	var (
		task *asynq.Task
		err  error
	)
	switch env.Type {
	case "disseminate":
		task, err = jobs.NewDisseminateTask(env.Payload.BookingUUID)
	case "trigger-emails:submit":
		task, err = jobs.NewTriggerEmailsSubmitTask(env.Payload.BookingUUID)
	case "trigger-emails:confirm":
		task, err = jobs.NewTriggerEmailsConfirmTask(env.Payload.BookingUUID)
	case "pdf-export":
		task, err = jobs.NewPdfExportTask(env.Payload.BookingUUID)
	case "evaluate-email-triggers":
		task, err = jobs.NewEvaluateTriggersTask(env.Payload.BookingUUID)
	case "send-trigger-email":
		if env.Payload.TriggerID == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "triggerId is required for send-trigger-email"})
		}
		task, err = jobs.NewSendTriggerEmailTask(env.Payload.BookingUUID, env.Payload.TriggerID)
	case "send-dates-of-stay-email":
		task, err = jobs.NewSendDatesOfStayTask(env.Payload.BookingUUID)
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Unknown task type: " + env.Type})
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build task"})
	}

	info, err := DB.AsynqClient.Enqueue(task)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enqueue task"})
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"taskId": info.ID, "queue": info.Queue})
}
