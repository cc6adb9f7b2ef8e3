package email

import (
	"bytes"
	"strings"
	"time"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

// compose converts m into a go-mail message: multipart/alternative with a
// text and an HTML part, quoted-printable UTF-8. Addresses are parsed here,
// so a value carrying CR/LF never reaches the headers.
func (m *Message) compose(date time.Time) (*gomail.Msg, error) {
	out := gomail.NewMsg(gomail.WithNoDefaultUserAgent())

	if err := out.From(m.From); err != nil {
		return nil, errors.Wrapf(err, "invalid sender %q", m.From)
	}
	if err := out.To(m.To...); err != nil {
		return nil, errors.Wrap(err, "invalid recipient")
	}
	// Reply-To comes from the requester. One that does not parse is left
	// out; it must not block the operator notification.
	if m.ReplyTo != "" {
		_ = out.ReplyTo(m.ReplyTo)
	}

	out.Subject(m.Subject)
	out.SetDateWithValue(date)

	out.SetBodyString(gomail.TypeTextPlain, m.Text)
	if m.HTML != "" {
		out.AddAlternativeString(gomail.TypeTextHTML, m.HTML)
	}

	return out, nil
}

// Bytes renders msg as an RFC 5322 message with the given Message-ID.
func (m *Message) Bytes(messageID string, date time.Time) ([]byte, error) {
	out, err := m.compose(date)
	if err != nil {
		return nil, err
	}
	out.SetMessageIDWithValue(strings.Trim(messageID, "<>"))

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "render message")
	}
	return buf.Bytes(), nil
}
