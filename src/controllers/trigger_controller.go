package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/triggers"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTrigger stores a new notification rule.
func CreateTrigger(c *fiber.Ctx) error {
	var trigger models.Trigger
	if err := c.BodyParser(&trigger); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if trigger.Name == "" || trigger.EmailTemplate == "" || len(trigger.TriggerQuestions) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "name, emailTemplate and at least one trigger question are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := triggers.CreateTrigger(ctx, &trigger); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create trigger"})
	}
	return c.Status(http.StatusCreated).JSON(trigger)
}

// GetTriggers lists rules with pagination.
func GetTriggers(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := triggers.GetTriggers(ctx, params)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list triggers"})
	}
	return c.JSON(res)
}

type updateTriggerRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// UpdateTrigger enables or disables a rule.
func UpdateTrigger(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trigger ID"})
	}

	var req updateTriggerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := triggers.SetEnabled(ctx, id, *req.Enabled); err != nil {
		if errors.Is(err, triggers.ErrTriggerNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Trigger not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update trigger"})
	}
	return c.SendStatus(http.StatusNoContent)
}
