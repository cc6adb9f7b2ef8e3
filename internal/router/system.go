package router

import (
	"github.com/labstack/echo/v4"
	"github.com/massiliadrive/backend/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not business logic:
// health status, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", handler.StaticFS())

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
