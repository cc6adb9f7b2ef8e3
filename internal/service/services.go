package service

import (
	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/massiliadrive/backend/internal/server"
)

// Services groups every business service.
type Services struct {
	Contact *ContactService
}

// NewServices wires the services from the application container.
func NewServices(s *server.Server) *Services {
	return &Services{
		Contact: NewContactService(s, email.NewTransportFactory(s.Config.Mail)),
	}
}
