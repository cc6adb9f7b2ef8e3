package errs

import "strings"

// HTTPError is the main custom error type for API responses.
//
// Only Message and Details are serialized; the rest drives the global
// error handler (status, logging) and errors.Is/As.
type HTTPError struct {
	// Code is a machine-friendly error code (e.g. "MISSING_FIELDS").
	Code string `json:"-"`

	// Message is the human-friendly, possibly localized, text.
	Message string `json:"error"`

	// Details carries the technical cause for transport failures.
	Details string `json:"details,omitempty"`

	Status int `json:"-"`

	// cause is the underlying error, kept for logs and errors.Unwrap.
	cause error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is matches any *HTTPError with the same Code. A target without a Code
// matches every *HTTPError.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// Body is the JSON payload written for this error.
func (e *HTTPError) Body() map[string]string {
	body := map[string]string{"error": e.Message}
	if e.Details != "" {
		body["details"] = e.Details
	}
	return body
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
