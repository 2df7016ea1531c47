package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashy-app/moderation-console/internal/observability"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	metrics *observability.Metrics
	version string
}

// NewHealthHandler constructs handler.
func NewHealthHandler(metrics *observability.Metrics, version string) *HealthHandler {
	return &HealthHandler{metrics: metrics, version: version}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": h.version})
}

// Ready GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"version":  h.version,
		"requests": h.metrics.Snapshot(),
	})
}
