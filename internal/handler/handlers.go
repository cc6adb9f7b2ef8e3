// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
package handler

import (
	"github.com/massiliadrive/backend/internal/server"
	"github.com/massiliadrive/backend/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Contact *ContactHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s, services.Contact),
		OpenAPI: NewOpenAPIHandler(s),
		Contact: NewContactHandler(s, services.Contact),
	}
}
