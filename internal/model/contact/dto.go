package contact

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/massiliadrive/backend/internal/errs"
)

// Error codes carried by the validation errors.
const (
	CodeMissingFields    = "MISSING_FIELDS"
	CodeMissingVtcFields = "MISSING_VTC_FIELDS"
	CodeInvalidSubject   = "INVALID_SUBJECT"
	CodeMessageTooLong   = "MESSAGE_TOO_LONG"
)

// Sentinels for errors.Is; they match any error with the same code.
var (
	ErrMissingFields    = &errs.HTTPError{Code: CodeMissingFields}
	ErrMissingVtcFields = &errs.HTTPError{Code: CodeMissingVtcFields}
	ErrInvalidSubject   = &errs.HTTPError{Code: CodeInvalidSubject}
	ErrMessageTooLong   = &errs.HTTPError{Code: CodeMessageTooLong}
)

// missingFieldsMessage is the same in every locale.
const missingFieldsMessage = "All fields are required"

var validate = validator.New()

// CreateInquiryPayload is the JSON body of POST /api/contact.
type CreateInquiryPayload struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Position    string `json:"position" validate:"required_if=Subject vtc"`
	Destination string `json:"destination" validate:"required_if=Subject vtc"`
	Message     string `json:"message" validate:"required"`
	Locale      string `json:"locale"`

	maxMessageLength int
}

// NewCreateInquiryPayload returns an empty payload that rejects messages
// longer than maxMessageLength runes. Zero disables the bound.
func NewCreateInquiryPayload(maxMessageLength int) *CreateInquiryPayload {
	return &CreateInquiryPayload{maxMessageLength: maxMessageLength}
}

// cleaned returns a copy with surrounding whitespace removed and the phone
// reduced to digits and spaces, so blank values fail "required".
func (p *CreateInquiryPayload) cleaned() CreateInquiryPayload {
	return CreateInquiryPayload{
		FirstName:   strings.TrimSpace(p.FirstName),
		LastName:    strings.TrimSpace(p.LastName),
		Email:       strings.TrimSpace(p.Email),
		Phone:       sanitizePhone(p.Phone),
		Subject:     strings.TrimSpace(p.Subject),
		Position:    strings.TrimSpace(p.Position),
		Destination: strings.TrimSpace(p.Destination),
		Message:     strings.TrimSpace(p.Message),
		Locale:      strings.TrimSpace(p.Locale),
	}
}

// Validate applies, in order: the required fields, the VTC route fields,
// the subject enum and the message bound.
func (p *CreateInquiryPayload) Validate() error {
	c := p.cleaned()
	locale := ResolveLocale(c.Locale)
	texts := validationMessages[locale]

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return errs.NewBadRequestError(missingFieldsMessage, strPtr(CodeMissingFields))
			}
		}
		return errs.NewBadRequestError(texts.MissingVtcFields, strPtr(CodeMissingVtcFields))
	}

	if _, ok := ParseSubject(c.Subject); !ok {
		return errs.NewBadRequestError(texts.InvalidSubject, strPtr(CodeInvalidSubject))
	}

	if p.maxMessageLength > 0 && utf8.RuneCountInString(c.Message) > p.maxMessageLength {
		return errs.NewBadRequestError(fmt.Sprintf(texts.MessageTooLong, p.maxMessageLength), strPtr(CodeMessageTooLong))
	}

	return nil
}

// Inquiry converts a payload that passed Validate. Route fields are dropped
// for every subject other than vtc.
func (p *CreateInquiryPayload) Inquiry() Inquiry {
	c := p.cleaned()
	subject, _ := ParseSubject(c.Subject)

	inquiry := Inquiry{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   subject,
		Message:   c.Message,
		Locale:    ResolveLocale(c.Locale),
	}
	if subject == SubjectVTC {
		inquiry.Position = c.Position
		inquiry.Destination = c.Destination
	}
	return inquiry
}

// SubmitResponse is the 200 body of POST /api/contact.
type SubmitResponse struct {
	Message   string   `json:"message"`
	MessageID string   `json:"messageId"`
	Accepted  []string `json:"accepted"`
	Rejected  []string `json:"rejected"`
}

func strPtr(s string) *string {
	return &s
}
