package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResend serves the two Resend endpoints the transport uses.
type fakeResend struct {
	*httptest.Server
	status int

	mu   sync.Mutex
	sent map[string]interface{}
	auth string
}

func newFakeResend(t *testing.T) *fakeResend {
	t.Helper()

	f := &fakeResend{status: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /domains", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.auth = r.Header.Get("Authorization")
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"object":"list","data":[],"has_more":false}`))
	})
	mux.HandleFunc("POST /emails", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&f.sent)
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		if f.status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"4ef9a417-02e9-4d39-ad75-9611e0fcc33c"}`))
			return
		}
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeResend) lastRequest() (auth string, sent map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth, f.sent
}

func (f *fakeResend) transport() *email.ResendTransport {
	return email.NewResendTransport(config.MailConfig{
		Provider:      config.ProviderResend,
		ResendAPIKey:  "re_test",
		ResendBaseURL: f.URL,
	})
}

func TestResendTransportVerify(t *testing.T) {
	t.Run("Should list domains with the API key", func(t *testing.T) {
		api := newFakeResend(t)

		require.NoError(t, api.transport().Verify(context.Background()))
		auth, _ := api.lastRequest()
		assert.Equal(t, "Bearer re_test", auth)
	})

	t.Run("Should fail when the API refuses the key", func(t *testing.T) {
		api := newFakeResend(t)
		api.status = http.StatusUnauthorized

		assert.Error(t, api.transport().Verify(context.Background()))
	})
}

func TestResendTransportSend(t *testing.T) {
	t.Run("Should map the message onto the API request", func(t *testing.T) {
		api := newFakeResend(t)
		msg := testMessage("ops@example.com", "backup@example.com")

		receipt, err := api.transport().Send(context.Background(), msg)
		require.NoError(t, err)

		_, sent := api.lastRequest()
		assert.Equal(t, "MassiliaDrive <contact@waaw.tn>", sent["from"])
		assert.Equal(t, []interface{}{"ops@example.com", "backup@example.com"}, sent["to"])
		assert.Equal(t, "marie@example.com", sent["reply_to"])
		assert.Equal(t, msg.Subject, sent["subject"])
		assert.Equal(t, msg.HTML, sent["html"])
		assert.Equal(t, msg.Text, sent["text"])

		assert.Equal(t, "4ef9a417-02e9-4d39-ad75-9611e0fcc33c", receipt.MessageID)
		assert.Equal(t, []string{"ops@example.com", "backup@example.com"}, receipt.Accepted)
		assert.Empty(t, receipt.Rejected)
	})

	t.Run("Should surface an API error", func(t *testing.T) {
		api := newFakeResend(t)
		api.status = http.StatusUnprocessableEntity

		_, err := api.transport().Send(context.Background(), testMessage("ops@example.com"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email")
	})
}
