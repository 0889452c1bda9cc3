package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanyam-ls/loadsmart-backend/internal/services"
)

// GatingHandler exposes the single verification check the rest of the
// marketplace may depend on.
type GatingHandler struct {
	gating *services.GatingService
}

// NewGatingHandler creates a new gating handler
func NewGatingHandler(gating *services.GatingService) *GatingHandler {
	return &GatingHandler{gating: gating}
}

// CanTransact answers whether a carrier may post loads and bid
func (h *GatingHandler) CanTransact(c *fiber.Ctx) error {
	carrierID := c.Params("carrierID")

	allowed, err := h.gating.CanTransact(carrierID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"carrier_id":   carrierID,
		"can_transact": allowed,
	})
}
