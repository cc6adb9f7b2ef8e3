// Package email provides the mail-relay capability used by the contact
// pipeline: a provider-agnostic Message, the Transport interface with SMTP
// and Resend implementations, and the embedded templates that render the
// contact emails.
package email

import (
	"context"
	"time"

	"github.com/massiliadrive/backend/internal/config"
)

// Message is a fully composed email.
type Message struct {
	// From is the header form, e.g. `MassiliaDrive <contact@example.com>`.
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Receipt reports what the relay did with a message.
type Receipt struct {
	MessageID string
	Accepted  []string
	Rejected  []string
}

// Transport is the mail-relay capability.
//
// Implementations bound their own I/O with the configured dial and I/O
// timeouts, so a silent relay cannot block a caller that ignores
// cancellation. Cancelling ctx aborts earlier.
type Transport interface {
	// Verify checks that the relay is reachable and accepts our credentials.
	Verify(ctx context.Context) error

	// Send transmits msg and reports accepted/rejected recipients.
	Send(ctx context.Context, msg *Message) (*Receipt, error)
}

// TransportFactory returns a fresh transport. The dispatcher calls it once
// per request; transports are never shared between requests.
type TransportFactory func() Transport

// NewTransportFactory selects the transport for the configured provider.
func NewTransportFactory(cfg config.MailConfig) TransportFactory {
	switch cfg.Provider {
	case config.ProviderResend:
		return func() Transport {
			return NewResendTransport(cfg)
		}
	default:
		return func() Transport {
			return NewSMTPTransport(cfg)
		}
	}
}

// seconds converts a config value, falling back to def when unset.
func seconds(n int, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
