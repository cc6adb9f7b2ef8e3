package validation

import (
	"github.com/labstack/echo/v4"
	"github.com/massiliadrive/backend/internal/errs"
	"github.com/pkg/errors"
)

// CodeInvalidBody is the code of a body that could not be decoded.
const CodeInvalidBody = "INVALID_BODY"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate should return a ready *errs.HTTPError so that the code and the
// localized message reach the client unchanged.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it. Every
// failure is returned as a 400 *errs.HTTPError.
//
// Flow:
//  1. Bind the body (JSON for the contact form) into payload. A body that
//     cannot be decoded becomes INVALID_BODY.
//  2. Call payload.Validate(). An *errs.HTTPError is passed through as is;
//     any other error is wrapped as a generic "Validation failed" 400.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request body"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if m, ok := echoErr.Message.(string); ok && m != "" {
				message = m
			}
		}
		return errs.NewBadRequestError(message, strPtr(CodeInvalidBody))
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return errs.ValidationError(err)
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
