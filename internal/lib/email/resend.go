package email

import (
	"context"
	"net/url"
	"strings"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

// ResendTransport sends through the Resend HTTP API.
type ResendTransport struct {
	client *resend.Client
}

// NewResendTransport initializes a Resend client with the API key and, when
// set, a custom endpoint.
func NewResendTransport(cfg config.MailConfig) *ResendTransport {
	client := resend.NewClient(cfg.ResendAPIKey)

	if cfg.ResendBaseURL != "" {
		// Paths are resolved relative to the base, which needs the slash.
		if base, err := url.Parse(strings.TrimSuffix(cfg.ResendBaseURL, "/") + "/"); err == nil {
			client.BaseURL = base
		}
	}

	return &ResendTransport{client: client}
}

// Verify lists the account domains, which fails on a bad key or an
// unreachable API.
func (t *ResendTransport) Verify(ctx context.Context) error {
	if _, err := t.client.Domains.ListWithContext(ctx); err != nil {
		return errors.Wrap(err, "resend verify")
	}
	return nil
}

// Send submits msg. Resend accepts or refuses the whole request, so every
// recipient is reported as accepted on success.
func (t *ResendTransport) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := t.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send email")
	}

	return &Receipt{
		MessageID: sent.Id,
		Accepted:  append([]string{}, msg.To...),
		Rejected:  []string{},
	}, nil
}
