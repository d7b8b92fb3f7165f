package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"Backend-Seabreeze/src/services/schema"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTemplate stores a new questionnaire version.
func CreateTemplate(c *fiber.Ctx) error {
	var req schema.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	graph, err := schema.CreateTemplate(ctx, &req)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(http.StatusCreated).JSON(graph)
}

// GetTemplate returns a template's fully resolved graph.
func GetTemplate(c *fiber.Ctx) error {
	templateID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	graph, err := schema.LoadTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, schema.ErrSchemaNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load template"})
	}
	return c.JSON(graph)
}
