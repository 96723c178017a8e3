package handlers

import (
	"context"
	"time"

	"wealthcheck/internal/services/metrics"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	database Pinger
	cache    Pinger
	metrics  *metrics.InMemory
}

// NewHealthHandler builds the health endpoint. cache may be nil when the
// in-process cache is used.
func NewHealthHandler(database, cache Pinger, m *metrics.InMemory) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
		metrics:  m,
	}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{"database": "connected"}

	if err := h.database.HealthCheck(ctx); err != nil {
		services["database"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}

	if h.cache != nil {
		services["redis"] = "connected"
		if err := h.cache.HealthCheck(ctx); err != nil {
			services["redis"] = err.Error()
			status = fiber.StatusServiceUnavailable
		}
	} else {
		services["cache"] = "memory"
	}

	body := fiber.Map{
		"status":   "ok",
		"services": services,
	}
	if status != fiber.StatusOK {
		body["status"] = "degraded"
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	return c.Status(status).JSON(body)
}
