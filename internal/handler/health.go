package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/middleware"
	"github.com/massiliadrive/backend/internal/server"
)

// RelayVerifier checks the mail relay. *service.ContactService satisfies it.
type RelayVerifier interface {
	VerifyRelay(ctx context.Context) error
}

// HealthHandler exposes the status endpoint used by uptime monitors.
type HealthHandler struct {
	Handler
	relay RelayVerifier
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server, relay RelayVerifier) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		relay:   relay,
	}
}

// CheckHealth returns the service status and, when enabled, the mail relay
// check. It answers 503 when a check fails.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	obs := h.server.Config.Observability

	// ---------------- Mail relay check ---------------------------------------
	if obs != nil && obs.HasCheck(config.HealthCheckMail) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		defer cancel()

		mailStart := time.Now()
		if err := h.relay.VerifyRelay(ctx); err != nil {
			checks[config.HealthCheckMail] = map[string]interface{}{
				"status":        "unhealthy",
				"provider":      h.server.Config.Mail.Provider,
				"response_time": time.Since(mailStart).String(),
				"error":         err.Error(),
			}
			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(mailStart)).
				Msg("mail relay health check failed")

			h.server.LoggerService.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       config.HealthCheckMail,
				"operation":        "health_check",
				"error_type":       "mail_unhealthy",
				"response_time_ms": time.Since(mailStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks[config.HealthCheckMail] = map[string]interface{}{
				"status":        "healthy",
				"provider":      h.server.Config.Mail.Provider,
				"response_time": time.Since(mailStart).String(),
			}

			logger.Info().
				Dur("response_time", time.Since(mailStart)).
				Msg("mail relay health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.server.LoggerService.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
