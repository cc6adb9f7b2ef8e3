package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/massiliadrive/backend/internal/model/contact"
	"github.com/massiliadrive/backend/internal/server"
	"github.com/massiliadrive/backend/internal/service"
)

// ContactHandler serves the contact and booking form.
type ContactHandler struct {
	Handler
	contactService *service.ContactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(s *server.Server, contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:        NewHandler(s),
		contactService: contactService,
	}
}

// NewPayload returns an empty payload bound to the configured message limit.
func (h *ContactHandler) NewPayload() *contact.CreateInquiryPayload {
	return contact.NewCreateInquiryPayload(h.server.Config.Contact.MaxMessageLength)
}

// Submit sends the validated inquiry.
func (h *ContactHandler) Submit(c echo.Context, payload *contact.CreateInquiryPayload) (*contact.SubmitResponse, error) {
	return h.contactService.Submit(c.Request().Context(), payload.Inquiry())
}
