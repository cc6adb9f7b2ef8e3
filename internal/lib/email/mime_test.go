package email_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRaw(t *testing.T, raw []byte) *mail.Message {
	t.Helper()
	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	return parsed
}

func TestMessageBytes(t *testing.T) {
	date := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	msg := testMessage("ops@example.com", "backup@example.com")

	raw, err := msg.Bytes("<id@waaw.tn>", date)
	require.NoError(t, err)
	parsed := parseRaw(t, raw)

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, msg.Subject, subject)

	from, err := parsed.Header.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "MassiliaDrive", from[0].Name)
	assert.Equal(t, "contact@waaw.tn", from[0].Address)

	to, err := parsed.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 2)
	assert.Equal(t, "ops@example.com", to[0].Address)
	assert.Equal(t, "backup@example.com", to[1].Address)

	replyTo, err := parsed.Header.AddressList("Reply-To")
	require.NoError(t, err)
	require.Len(t, replyTo, 1)
	assert.Equal(t, "marie@example.com", replyTo[0].Address)

	assert.Equal(t, "<id@waaw.tn>", parsed.Header.Get("Message-ID"))
	assert.Equal(t, "1.0", parsed.Header.Get("MIME-Version"))
	assert.Empty(t, parsed.Header.Get("User-Agent"))

	sent, err := parsed.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(sent))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])
	bodies := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
		bodies[partType] = string(content)
	}

	assert.Equal(t, "Bonjour", strings.TrimSpace(bodies["text/plain"]))
	assert.Equal(t, "<p>Bonjour</p>", strings.TrimSpace(bodies["text/html"]))
}

func TestMessageBytesRefusesHeaderInjection(t *testing.T) {
	t.Run("Should drop a reply-to carrying CRLF", func(t *testing.T) {
		msg := testMessage("ops@example.com")
		msg.ReplyTo = "marie@example.com\r\nBcc: victim@example.com"

		raw, err := msg.Bytes("<id@waaw.tn>", time.Now())
		require.NoError(t, err)

		parsed := parseRaw(t, raw)
		assert.Empty(t, parsed.Header.Get("Bcc"))
		assert.Empty(t, parsed.Header.Get("Reply-To"))
	})

	t.Run("Should refuse a recipient carrying CRLF", func(t *testing.T) {
		msg := testMessage("ops@example.com\r\nBcc: victim@example.com")

		_, err := msg.Bytes("<id@waaw.tn>", time.Now())
		assert.Error(t, err)
	})

	t.Run("Should encode a subject carrying CRLF", func(t *testing.T) {
		msg := testMessage("ops@example.com")
		msg.Subject = "Hello\r\nBcc: victim@example.com"

		raw, err := msg.Bytes("<id@waaw.tn>", time.Now())
		require.NoError(t, err)
		assert.Empty(t, parseRaw(t, raw).Header.Get("Bcc"))
	})
}

func TestMessageBytesWithoutHTML(t *testing.T) {
	msg := testMessage("ops@example.com")
	msg.HTML = ""

	raw, err := msg.Bytes("<id@waaw.tn>", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "text/html")
}
