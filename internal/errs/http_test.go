package errs_test

import (
	"net/http"
	"testing"

	"github.com/massiliadrive/backend/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorIs(t *testing.T) {
	sentinel := &errs.HTTPError{Code: "MISSING_FIELDS"}
	err := errors.Wrap(errs.NewBadRequestError("All fields are required", strPtr("MISSING_FIELDS")), "validate")

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, &errs.HTTPError{}))
	assert.False(t, errors.Is(err, &errs.HTTPError{Code: "INVALID_SUBJECT"}))
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:587: i/o timeout")
	err := errs.NewTransportError("RELAY_UNREACHABLE", "Email server connection failed.", cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, cause.Error(), err.Details)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.Equal(t, map[string]string{
		"error":   "Email server connection failed.",
		"details": cause.Error(),
	}, err.Body())
	assert.Contains(t, err.Error(), "i/o timeout")
}

func TestConstructors(t *testing.T) {
	bad := errs.NewBadRequestError("nope", nil)
	assert.Equal(t, "BAD_REQUEST", bad.Code)
	assert.Equal(t, map[string]string{"error": "nope"}, bad.Body())

	notFound := errs.NewNotFoundError("Route not found")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "NOT_FOUND", notFound.Code)

	internal := errs.NewInternalServerError()
	assert.Equal(t, "Internal Server Error", internal.Message)
	assert.Empty(t, internal.Details)

	validation := errs.ValidationError(errors.New("email is required"))
	assert.Equal(t, "Validation failed: email is required", validation.Message)
}

func strPtr(s string) *string {
	return &s
}
