package email

import (
	"fmt"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/model/contact"
)

// PreviewInquiry is sample data for local previews of the templates.
var PreviewInquiry = contact.Inquiry{
	FirstName:   "Marie",
	LastName:    "Dubois",
	Email:       "marie.dubois@example.com",
	Phone:       "6 12 34 56 78",
	Subject:     contact.SubjectVTC,
	Position:    "Gare Saint-Charles",
	Destination: "Aéroport Marseille Provence",
	Message:     "Besoin d'un chauffeur demain à 8h.",
}

// Preview composes tmpl for the sample inquiry in the given locale.
func Preview(cfg *config.Config, tmpl Template, locale contact.Locale) (*Message, error) {
	inq := PreviewInquiry
	inq.Locale = locale

	composer := NewComposer(cfg.Mail, cfg.Contact)

	switch tmpl {
	case TemplateOperatorNotification:
		return composer.OperatorNotification(inq)
	case TemplateRequesterConfirmation:
		return composer.RequesterConfirmation(inq)
	default:
		return nil, fmt.Errorf("unknown template %q", tmpl)
	}
}
