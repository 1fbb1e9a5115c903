package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/repositories"
)

// Failed writes the error body shared by every endpoint.
func Failed(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":  message,
		"status": "failed",
	})
}

// respondError maps pipeline errors to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *models.ValidationError
		extractionErr *models.ExtractionError
		serviceErr    *models.ServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		return Failed(c, fiber.StatusBadRequest, validationErr.Message)
	case errors.As(err, &extractionErr):
		if extractionErr.Code == models.ExtractionUnsupportedFormat {
			return Failed(c, fiber.StatusBadRequest, extractionErr.Message)
		}
		return Failed(c, fiber.StatusUnprocessableEntity, extractionErr.Message)
	case errors.As(err, &serviceErr):
		log.Printf("❌ Upstream model error: %v\n", err)
		return Failed(c, fiber.StatusBadGateway, "The analysis service is currently unavailable. Please try again later.")
	case errors.Is(err, repositories.ErrNotFound):
		return Failed(c, fiber.StatusNotFound, "Record not found")
	default:
		log.Printf("❌ Request failed: %v\n", err)
		return Failed(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
