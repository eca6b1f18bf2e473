package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iyashjayesh/captune-ai/utils"
)

// GetRateLimit proxies the collaborator's remaining/total quota so the
// frontend can show it before an upload.
// GET /api/v1/rate-limit
func (h *ApplicationHandler) GetRateLimit(c *fiber.Ctx) error {
	quota, err := h.Limiter.Check(c.Context())
	if err != nil {
		h.Logger.WithError(err).Error("rate limit check failed")
		return utils.RespondWithError(c, fiber.StatusBadGateway, "could not reach rate limit service")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, quota)
}
