package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
)

// respondError maps domain error kinds onto HTTP statuses. The kind is echoed
// in the body so the UI can translate without parsing message text.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch models.KindOf(err) {
	case models.ErrKindValidation:
		status = fiber.StatusBadRequest
	case models.ErrKindInvalidTransition:
		status = fiber.StatusUnprocessableEntity
	case models.ErrKindConflict:
		status = fiber.StatusConflict
	case models.ErrKindNotFound:
		status = fiber.StatusNotFound
	}

	body := fiber.Map{"error": err.Error()}
	if kind := models.KindOf(err); kind != "" {
		body["kind"] = kind
	}
	return c.Status(status).JSON(body)
}
