package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/service"
	"docqa/internal/storage"
)

const (
	statusOK            = "ok"
	statusDisabled      = "disabled"
	statusConfigured    = "configured"
	statusNotConfigured = "not_configured"
)

// HealthResponse reports readiness and the state of each collaborator.
type HealthResponse struct {
	Status     string `json:"status" example:"healthy"`
	Documents  int    `json:"documents"`
	Completion string `json:"completion" example:"configured"`
	Database   string `json:"database" example:"disabled"`
	Archive    string `json:"archive" example:"disabled"`

	// AskOutcomes counts audited completion attempts by outcome when the audit log is enabled.
	AskOutcomes map[string]int `json:"ask_outcomes,omitempty"`
}

// AskStats is implemented by the ask audit log.
type AskStats interface {
	CountByOutcome(ctx context.Context) (map[string]int, error)
}

// HealthChecker probes the optional sinks. Nil fields are reported as disabled.
type HealthChecker struct {
	Documents            service.DocumentService
	DB                   *sql.DB
	Archive              storage.Storage
	AskStats             AskStats
	CompletionConfigured bool
	Timeout              time.Duration
}

// HealthCheck godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(h HealthChecker) fiber.Handler {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		res := HealthResponse{
			Status:     "healthy",
			Completion: statusNotConfigured,
			Database:   statusDisabled,
			Archive:    statusDisabled,
		}
		if h.CompletionConfigured {
			res.Completion = statusConfigured
		}

		n, err := h.Documents.Count(ctx)
		if err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "document store unavailable")
		}
		res.Documents = n

		if h.DB != nil {
			if err := h.DB.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
			res.Database = statusOK
		}
		if h.AskStats != nil {
			outcomes, err := h.AskStats.CountByOutcome(ctx)
			if err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
			res.AskOutcomes = outcomes
		}
		if h.Archive != nil {
			if err := h.Archive.Ping(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
			res.Archive = statusOK
		}

		return c.JSON(res)
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
