package email

import (
	"fmt"
	"net/mail"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/model/contact"
	"github.com/pkg/errors"
)

// ErrUnknownSubject is returned for an inquiry whose subject has no label,
// i.e. one that was not built from a validated payload.
var ErrUnknownSubject = errors.New("unknown inquiry subject")

// ContactData is what the contact templates see.
type ContactData struct {
	Captions contact.Captions

	FullName     string
	Email        string
	Phone        string
	SubjectLabel string
	Position     string
	Destination  string
	Message      string

	IsVTC    bool
	HasRoute bool

	FromName string
}

// Composer turns an inquiry into the two contact emails.
type Composer struct {
	from        string
	fromName    string
	operator    string
	phonePrefix string
}

// NewComposer builds a Composer from the injected configuration.
func NewComposer(mailCfg config.MailConfig, contactCfg config.ContactConfig) *Composer {
	from := (&mail.Address{Name: mailCfg.FromName, Address: mailCfg.Sender()}).String()

	return &Composer{
		from:        from,
		fromName:    mailCfg.FromName,
		operator:    mailCfg.OperatorAddress,
		phonePrefix: contactCfg.PhonePrefix,
	}
}

// Data resolves labels and captions for the inquiry's locale.
func (c *Composer) Data(inq contact.Inquiry) ContactData {
	return ContactData{
		Captions:     inq.Locale.Captions(),
		FullName:     inq.FullName(),
		Email:        inq.Email,
		Phone:        contact.FormatPhone(c.phonePrefix, inq.Phone),
		SubjectLabel: inq.Subject.Label(inq.Locale),
		Position:     inq.Position,
		Destination:  inq.Destination,
		Message:      inq.Message,
		IsVTC:        inq.IsVTC(),
		HasRoute:     inq.HasRoute(),
		FromName:     c.fromName,
	}
}

// OperatorNotification is addressed to the operator mailbox, with the
// requester as Reply-To.
func (c *Composer) OperatorNotification(inq contact.Inquiry) (*Message, error) {
	if !inq.Subject.Valid() {
		return nil, errors.Wrapf(ErrUnknownSubject, "subject %d", inq.Subject)
	}
	data := c.Data(inq)

	body, err := Render(TemplateOperatorNotification, data)
	if err != nil {
		return nil, err
	}

	return &Message{
		From:    c.from,
		To:      []string{c.operator},
		ReplyTo: inq.Email,
		Subject: fmt.Sprintf("%s: %s", data.Captions.NotificationSubject, data.SubjectLabel),
		HTML:    body.HTML,
		Text:    body.Text,
	}, nil
}

// RequesterConfirmation is the courtesy email sent back to the requester.
func (c *Composer) RequesterConfirmation(inq contact.Inquiry) (*Message, error) {
	if !inq.Subject.Valid() {
		return nil, errors.Wrapf(ErrUnknownSubject, "subject %d", inq.Subject)
	}
	data := c.Data(inq)

	body, err := Render(TemplateRequesterConfirmation, data)
	if err != nil {
		return nil, err
	}

	return &Message{
		From:    c.from,
		To:      []string{inq.Email},
		Subject: fmt.Sprintf("%s - %s", data.Captions.ConfirmationSubject, data.SubjectLabel),
		HTML:    body.HTML,
		Text:    body.Text,
	}, nil
}
