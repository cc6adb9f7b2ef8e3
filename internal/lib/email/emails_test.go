package email_test

import (
	"strings"
	"testing"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/massiliadrive/backend/internal/model/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComposer() *email.Composer {
	cfg := config.Default()
	return email.NewComposer(cfg.Mail, cfg.Contact)
}

func vtcInquiry(locale contact.Locale) contact.Inquiry {
	return contact.Inquiry{
		FirstName:   "Marie",
		LastName:    "Dubois",
		Email:       "marie@example.com",
		Phone:       "6 12 34 56 78",
		Subject:     contact.SubjectVTC,
		Position:    "Gare Saint-Charles",
		Destination: "Aéroport Marseille Provence",
		Message:     "Demain 8h",
		Locale:      locale,
	}
}

func TestOperatorNotification(t *testing.T) {
	t.Run("Should address the operator with the requester as Reply-To", func(t *testing.T) {
		msg, err := testComposer().OperatorNotification(vtcInquiry(contact.LocaleFR))
		require.NoError(t, err)

		assert.Equal(t, `"MassiliaDrive" <contact@waaw.tn>`, msg.From)
		assert.Equal(t, []string{"ranizouaouicontact@gmail.com"}, msg.To)
		assert.Equal(t, "marie@example.com", msg.ReplyTo)
		assert.Equal(t, "Nouvelle soumission du formulaire de contact: Besoin d'un VTC à Marseille", msg.Subject)

		assert.Contains(t, msg.Text, "Nom: Marie Dubois")
		assert.Contains(t, msg.Text, "Téléphone: +33 6 12 34 56 78")
		assert.Contains(t, msg.Text, "Lieu de prise en charge: Gare Saint-Charles")
		assert.Contains(t, msg.Text, "Destination: Aéroport Marseille Provence")
		assert.Contains(t, msg.HTML, "Gare Saint-Charles")
	})

	t.Run("Should omit the route block for other subjects", func(t *testing.T) {
		inq := vtcInquiry(contact.LocaleEN)
		inq.Subject = contact.SubjectBooking
		inq.Position = ""
		inq.Destination = ""

		msg, err := testComposer().OperatorNotification(inq)
		require.NoError(t, err)

		assert.Equal(t, "New Contact Form Submission: Booking Request", msg.Subject)
		assert.NotContains(t, msg.Text, "Pickup Location")
		assert.NotContains(t, msg.HTML, "Pickup Location")
	})

	t.Run("Should escape user input in the HTML body", func(t *testing.T) {
		inq := vtcInquiry(contact.LocaleFR)
		inq.Message = "<script>alert(1)</script>"

		msg, err := testComposer().OperatorNotification(inq)
		require.NoError(t, err)

		assert.NotContains(t, msg.HTML, "<script>")
		assert.Contains(t, msg.HTML, "&lt;script&gt;")
		assert.Contains(t, msg.Text, "<script>alert(1)</script>")
	})
}

func TestRequesterConfirmation(t *testing.T) {
	t.Run("Should confirm a VTC request in French", func(t *testing.T) {
		msg, err := testComposer().RequesterConfirmation(vtcInquiry(contact.LocaleFR))
		require.NoError(t, err)

		assert.Equal(t, []string{"marie@example.com"}, msg.To)
		assert.Empty(t, msg.ReplyTo)
		assert.Equal(t, "Confirmation : Nous avons reçu votre message - Besoin d'un VTC à Marseille", msg.Subject)
		assert.Contains(t, msg.Text, "Cher/Chère Marie Dubois,")
		assert.Contains(t, msg.Text, "estimation du coût")
		assert.Contains(t, msg.Text, "Cordialement,\nMassiliaDrive")
	})

	t.Run("Should use the generic body in English", func(t *testing.T) {
		inq := vtcInquiry(contact.LocaleEN)
		inq.Subject = contact.SubjectInformation
		inq.Position = ""
		inq.Destination = ""

		msg, err := testComposer().RequesterConfirmation(inq)
		require.NoError(t, err)

		assert.Equal(t, "Confirmation: We received your message - General Information", msg.Subject)
		assert.Contains(t, msg.Text, "Dear Marie Dubois,")
		assert.Contains(t, msg.Text, "We have received your message")
		assert.NotContains(t, msg.Text, "cost estimation")
		assert.True(t, strings.HasSuffix(msg.Text, "MassiliaDrive\n"))
	})
}

func TestComposerRejectsUnknownSubject(t *testing.T) {
	inq := vtcInquiry(contact.LocaleFR)
	inq.Subject = contact.Subject(42)

	_, err := testComposer().OperatorNotification(inq)
	assert.ErrorIs(t, err, email.ErrUnknownSubject)

	_, err = testComposer().RequesterConfirmation(inq)
	assert.ErrorIs(t, err, email.ErrUnknownSubject)
}

func TestRenderEveryTemplate(t *testing.T) {
	data := testComposer().Data(vtcInquiry(contact.LocaleEN))
	for _, tmpl := range email.Templates() {
		body, err := email.Render(tmpl, data)
		require.NoError(t, err, tmpl)
		assert.NotEmpty(t, body.HTML)
		assert.NotEmpty(t, body.Text)
	}

	_, err := email.Render(email.Template("missing"), data)
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	cfg := config.Default()
	for _, tmpl := range email.Templates() {
		for _, locale := range contact.Locales() {
			msg, err := email.Preview(cfg, tmpl, locale)
			require.NoError(t, err)
			assert.Contains(t, msg.Text, "Marie Dubois")
		}
	}

	_, err := email.Preview(cfg, email.Template("nope"), contact.LocaleFR)
	assert.Error(t, err)
}
