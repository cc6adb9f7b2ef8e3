package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/handler"
	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/massiliadrive/backend/internal/router"
	"github.com/massiliadrive/backend/internal/server"
	"github.com/massiliadrive/backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTransport records sends and fails on demand.
type stubTransport struct {
	verifyErr    error
	primaryErr   error
	secondaryErr error

	mu   sync.Mutex
	sent []*email.Message
}

func (s *stubTransport) Verify(ctx context.Context) error {
	return s.verifyErr
}

func (s *stubTransport) Send(ctx context.Context, msg *email.Message) (*email.Receipt, error) {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	first := len(s.sent) == 1
	s.mu.Unlock()

	if first && s.primaryErr != nil {
		return nil, s.primaryErr
	}
	if !first && s.secondaryErr != nil {
		return nil, s.secondaryErr
	}
	return &email.Receipt{MessageID: "<id@waaw.tn>", Accepted: msg.To, Rejected: []string{}}, nil
}

func newTestRouter(t *testing.T, tr *stubTransport) *echo.Echo {
	t.Helper()

	cfg := config.Default()
	cfg.Observability = config.DefaultObservabilityConfig()
	logger := zerolog.Nop()

	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	services := &service.Services{
		Contact: service.NewContactService(s, func() email.Transport { return tr }),
	}
	return router.NewRouter(s, handler.NewHandlers(s, services))
}

func post(t *testing.T, e *echo.Echo, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

const bookingBody = `{
	"firstName": "Marie",
	"lastName": "Dubois",
	"email": "marie@example.com",
	"phone": "6 12 34 56 78",
	"subject": "booking",
	"message": "Bonjour"
}`

func TestContactEndpoint(t *testing.T) {
	t.Run("Should return 200 with the operator receipt", func(t *testing.T) {
		tr := &stubTransport{}
		rec, out := post(t, newTestRouter(t, tr), bookingBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Email sent successfully", out["message"])
		assert.Equal(t, "<id@waaw.tn>", out["messageId"])
		assert.Equal(t, []interface{}{"ranizouaouicontact@gmail.com"}, out["accepted"])
		assert.Equal(t, []interface{}{}, out["rejected"])
		assert.Len(t, tr.sent, 2)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("Should return 400 for missing fields", func(t *testing.T) {
		tr := &stubTransport{}
		rec, out := post(t, newTestRouter(t, tr), `{"firstName":"Marie"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]interface{}{"error": "All fields are required"}, out)
		assert.Empty(t, tr.sent)
	})

	t.Run("Should return a localized 400 for a VTC request without route", func(t *testing.T) {
		body := strings.Replace(bookingBody, `"booking"`, `"vtc", "locale": "en"`, 1)
		rec, out := post(t, newTestRouter(t, &stubTransport{}), body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Position and destination are required for VTC requests", out["error"])
	})

	t.Run("Should return 400 for malformed JSON", func(t *testing.T) {
		rec, out := post(t, newTestRouter(t, &stubTransport{}), `{"firstName":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, out["error"])
	})

	t.Run("Should return 500 with details when the relay is down", func(t *testing.T) {
		tr := &stubTransport{verifyErr: errors.New("dial tcp: i/o timeout")}
		rec, out := post(t, newTestRouter(t, tr), bookingBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Email server connection failed. Please check your configuration.", out["error"])
		assert.Equal(t, "dial tcp: i/o timeout", out["details"])
		assert.Empty(t, tr.sent)
	})

	t.Run("Should return 500 when the operator notification fails", func(t *testing.T) {
		tr := &stubTransport{primaryErr: errors.New("554 rejected")}
		rec, out := post(t, newTestRouter(t, tr), bookingBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to send email. Please try again later.", out["error"])
		assert.Equal(t, "554 rejected", out["details"])
		assert.Len(t, tr.sent, 1)
	})

	t.Run("Should return 200 when only the confirmation fails", func(t *testing.T) {
		tr := &stubTransport{secondaryErr: errors.New("550 no such user")}
		rec, out := post(t, newTestRouter(t, tr), bookingBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Email sent successfully", out["message"])
		assert.Len(t, tr.sent, 2)
	})
}

func TestSystemRoutes(t *testing.T) {
	t.Run("Should report an unhealthy relay with 503", func(t *testing.T) {
		e := newTestRouter(t, &stubTransport{verifyErr: errors.New("down")})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unhealthy"`)
	})

	t.Run("Should report a healthy relay with 200", func(t *testing.T) {
		e := newTestRouter(t, &stubTransport{})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should serve the docs UI and OpenAPI document", func(t *testing.T) {
		e := newTestRouter(t, &stubTransport{})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/static/openapi.json")

		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/openapi.json", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/api/contact")
	})

	t.Run("Should answer unknown routes with a JSON 404", func(t *testing.T) {
		e := newTestRouter(t, &stubTransport{})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
	})
}
