package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/registry"
	"github.com/sanyam-ls/loadsmart-backend/internal/services"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// CarrierHandler handles carrier-facing onboarding requests
type CarrierHandler struct {
	store        storage.Store
	verification *services.VerificationService
	validate     *validator.Validate
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(store storage.Store, verification *services.VerificationService) *CarrierHandler {
	return &CarrierHandler{
		store:        store,
		verification: verification,
		validate:     validator.New(),
	}
}

// Register handles new carrier registration
func (h *CarrierHandler) Register(c *fiber.Ctx) error {
	var reg models.CarrierRegistration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	carrier, err := h.store.CreateCarrier(&reg)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Carrier registered successfully",
		"carrier": carrier,
	})
}

// GetCarrier retrieves a carrier by ID
func (h *CarrierHandler) GetCarrier(c *fiber.Ctx) error {
	carrier, err := h.store.GetCarrier(c.Params("carrierID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(carrier)
}

// OpenApplication starts a draft verification application for a carrier
func (h *CarrierHandler) OpenApplication(c *fiber.Ctx) error {
	var req struct {
		Solo       *models.SoloDetails       `json:"solo_details"`
		Enterprise *models.EnterpriseDetails `json:"enterprise_details"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	app, err := h.verification.OpenApplication(c.Params("carrierID"), req.Solo, req.Enterprise)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application opened",
		"application": app,
	})
}

// GetMyApplication returns the carrier's current application with documents
func (h *CarrierHandler) GetMyApplication(c *fiber.Ctx) error {
	app, err := h.verification.GetCarrierApplication(c.Params("carrierID"))
	if err != nil {
		return respondError(c, err)
	}
	view, err := h.verification.GetApplicationView(app.ApplicationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// UploadDocument records uploaded document metadata against an application
func (h *CarrierHandler) UploadDocument(c *fiber.Ctx) error {
	var upload models.DocumentUpload
	if err := c.BodyParser(&upload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&upload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc, err := h.verification.UploadDocument(c.Params("applicationID"), &upload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Document recorded",
		"document": doc,
	})
}

// SubmitApplication moves a draft application into the review queue
func (h *CarrierHandler) SubmitApplication(c *fiber.Ctx) error {
	app, err := h.verification.Submit(c.Params("applicationID"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Application submitted for review",
		"application": app,
	})
}

// GetApplication returns an application view with sorted documents
func (h *CarrierHandler) GetApplication(c *fiber.Ctx) error {
	view, err := h.verification.GetApplicationView(c.Params("applicationID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// GetRequirements returns the document checklist for a carrier type; the UI
// renders labels straight from this, it keeps no table of its own.
func (h *CarrierHandler) GetRequirements(c *fiber.Ctx) error {
	carrierType := models.CarrierType(c.Params("carrierType"))
	if !carrierType.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "carrier type must be 'solo' or 'enterprise'",
		})
	}

	reqs := registry.RequirementsFor(carrierType)
	return c.JSON(fiber.Map{
		"carrier_type": carrierType,
		"requirements": reqs,
		"count":        len(reqs),
	})
}
