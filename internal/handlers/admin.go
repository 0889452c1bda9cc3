package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanyam-ls/loadsmart-backend/internal/middleware"
	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/services"
)

// AdminHandler handles admin review operations
type AdminHandler struct {
	verification *services.VerificationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(verification *services.VerificationService) *AdminHandler {
	return &AdminHandler{verification: verification}
}

// GetReviewQueue lists applications awaiting review, newest first. The
// optional carrier_type query segments the queue into the solo and
// enterprise tabs; segmentation is display-only.
func (h *AdminHandler) GetReviewQueue(c *fiber.Ctx) error {
	carrierType, err := queueCarrierType(c)
	if err != nil {
		return respondError(c, err)
	}

	apps, err := h.verification.ReviewQueue(carrierType)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"applications": apps,
		"count":        len(apps),
	})
}

// GetDecidedApplications lists approved, rejected and on-hold applications
func (h *AdminHandler) GetDecidedApplications(c *fiber.Ctx) error {
	carrierType, err := queueCarrierType(c)
	if err != nil {
		return respondError(c, err)
	}

	apps, err := h.verification.DecidedQueue(carrierType)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"applications": apps,
		"count":        len(apps),
	})
}

// GetApplication returns the full review view of one application
func (h *AdminHandler) GetApplication(c *fiber.Ctx) error {
	view, err := h.verification.GetApplicationView(c.Params("applicationID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// StartReview marks a pending application as under review by this admin
func (h *AdminHandler) StartReview(c *fiber.Ctx) error {
	app, err := h.verification.StartReview(c.Params("applicationID"), middleware.AdminID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"application": app,
	})
}

// DecideApplication approves, rejects or holds a whole application
func (h *AdminHandler) DecideApplication(c *fiber.Ctx) error {
	var req struct {
		Decision string `json:"decision"` // "approve", "reject" or "hold"
		Reason   string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	app, err := h.verification.Decide(
		c.Params("applicationID"),
		services.Decision(req.Decision),
		req.Reason,
		middleware.AdminID(c),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"application": fiber.Map{
			"id":     app.ApplicationID,
			"status": app.Status,
		},
	})
}

// ReopenApplication makes an on-hold application available for review again
func (h *AdminHandler) ReopenApplication(c *fiber.Ctx) error {
	app, err := h.verification.Reopen(c.Params("applicationID"), middleware.AdminID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"application": fiber.Map{
			"id":     app.ApplicationID,
			"status": app.Status,
		},
	})
}

// DecideDocument approves or rejects one document. This never moves the
// parent application; the application verdict is always its own action.
func (h *AdminHandler) DecideDocument(c *fiber.Ctx) error {
	var req struct {
		Decision string `json:"decision"` // "approve" or "reject"
		Reason   string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := h.verification.DecideDocument(
		c.Params("documentID"),
		services.Decision(req.Decision),
		req.Reason,
		middleware.AdminID(c),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"document": fiber.Map{
			"id":     doc.DocumentID,
			"status": doc.Status,
		},
	})
}

func queueCarrierType(c *fiber.Ctx) (models.CarrierType, error) {
	carrierType := models.CarrierType(c.Query("carrier_type"))
	if carrierType != "" && !carrierType.Valid() {
		return "", models.ErrValidation("carrier_type must be 'solo' or 'enterprise'")
	}
	return carrierType, nil
}
