// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/massiliadrive/backend/internal/handler"
	"github.com/massiliadrive/backend/internal/middleware"
	"github.com/massiliadrive/backend/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain, the
// system routes and the API routes.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request ID and the New Relic transaction must exist
	// before the context enhancer builds the request logger.
	router.Use(
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerContactRoutes(api, h)

	return router
}

func registerContactRoutes(r *echo.Group, h *handler.Handlers) {
	r.POST("/contact", handler.Handle(
		h.Contact.Handler,
		h.Contact.Submit,
		http.StatusOK,
		h.Contact.NewPayload,
	))
}
