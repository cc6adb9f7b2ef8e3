package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/massiliadrive/backend/internal/config"
	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
	"github.com/wneessen/go-mail/smtp"
)

const (
	defaultDialTimeout = 30 * time.Second
	defaultIOTimeout   = 60 * time.Second
)

// SMTPTransport talks to the relay through go-mail. Every call opens its own
// session; nothing is pooled.
type SMTPTransport struct {
	host     string
	port     int
	security string
	username string
	password string

	tlsConfig   *tls.Config
	dialTimeout time.Duration
	ioTimeout   time.Duration

	// now is replaced in tests.
	now func() time.Time
}

// NewSMTPTransport builds a transport from the mail config.
func NewSMTPTransport(cfg config.MailConfig) *SMTPTransport {
	security := cfg.Security
	if security == "" {
		security = config.SecurityStartTLS
	}

	return &SMTPTransport{
		host:     cfg.Host,
		port:     cfg.Port,
		security: security,
		username: cfg.Username,
		password: cfg.Password,
		tlsConfig: &tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: cfg.TLSSkipVerify, //nolint:gosec // opt-in for self-signed relays
			MinVersion:         tls.VersionTLS12,
		},
		dialTimeout: seconds(cfg.DialTimeout, defaultDialTimeout),
		ioTimeout:   seconds(cfg.IOTimeout, defaultIOTimeout),
		now:         time.Now,
	}
}

// session is an open relay session. conn is kept so that a handshake that
// fails halfway can still be torn down.
type session struct {
	client *smtp.Client
	conn   net.Conn
	stop   func() bool
}

func (s *session) close() {
	if s.stop != nil {
		s.stop()
	}
	if s.client != nil {
		_ = s.client.Close()
		return
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

func (t *SMTPTransport) addr() string {
	return net.JoinHostPort(t.host, strconv.Itoa(t.port))
}

// newClient configures go-mail for the security mode and credentials.
// Dialing goes through dial so that the session deadline is in place
// before the greeting is read.
func (t *SMTPTransport) newClient(dial gomail.DialContextFunc) (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(t.port),
		gomail.WithTimeout(t.dialTimeout),
		gomail.WithTLSConfig(t.tlsConfig),
		gomail.WithDialContextFunc(dial),
	}

	switch t.security {
	case config.SecurityTLS:
		opts = append(opts, gomail.WithSSL())
	case config.SecurityNone:
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	if t.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(t.username),
			gomail.WithPassword(t.password),
		)
	}

	return gomail.NewClient(t.host, opts...)
}

// dial opens the raw connection, TLS from the first byte in implicit TLS mode.
func (t *SMTPTransport) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	if t.security == config.SecurityTLS {
		return (&tls.Dialer{NetDialer: dialer, Config: t.tlsConfig}).DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, network, addr)
}

// open dials the relay, reads the greeting, upgrades to TLS as configured
// and authenticates. All of it shares one I/O deadline.
func (t *SMTPTransport) open(ctx context.Context) (*session, error) {
	s := &session{}

	dial := func(dialCtx context.Context, network, addr string) (net.Conn, error) {
		conn, err := t.dial(dialCtx, network, addr)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(time.Now().Add(t.ioTimeout)); err != nil {
			_ = conn.Close()
			return nil, err
		}
		s.conn = conn

		// dialCtx ends with the dial; abort on the caller's ctx instead.
		s.stop = context.AfterFunc(ctx, func() {
			_ = conn.SetDeadline(time.Unix(1, 0))
		})
		return conn, nil
	}

	mailer, err := t.newClient(dial)
	if err != nil {
		return nil, errors.Wrap(err, "configure smtp client")
	}

	client, err := mailer.DialToSMTPClientWithContext(ctx)
	if err != nil {
		s.close()
		return nil, errors.Wrapf(err, "smtp session with %s", t.addr())
	}
	s.client = client

	return s, nil
}

// renew pushes the session deadline out by one I/O timeout.
func (t *SMTPTransport) renew(s *session) error {
	return errors.Wrap(s.client.UpdateDeadline(t.ioTimeout), "smtp deadline")
}

// Verify opens and politely closes a session.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	s, err := t.open(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if err := t.renew(s); err != nil {
		return err
	}
	return errors.Wrap(s.client.Quit(), "smtp quit")
}

// Send delivers msg in a new session. Recipients refused at RCPT are
// reported as rejected; the send fails only when every recipient is refused.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("message has no recipients")
	}

	out, err := msg.compose(t.now())
	if err != nil {
		return nil, err
	}

	sender, err := out.GetSender(false)
	if err != nil {
		return nil, errors.Wrap(err, "envelope sender")
	}
	messageID := newMessageID(out.GetFrom()[0].Address)
	out.SetMessageIDWithValue(messageID)

	s, err := t.open(ctx)
	if err != nil {
		return nil, err
	}
	defer s.close()

	if err := t.renew(s); err != nil {
		return nil, err
	}
	if err := s.client.Mail(sender); err != nil {
		return nil, errors.Wrap(err, "smtp MAIL FROM")
	}

	receipt := &Receipt{
		MessageID: "<" + messageID + ">",
		Accepted:  []string{},
		Rejected:  []string{},
	}
	for _, rcpt := range out.GetTo() {
		if err := s.client.Rcpt("<" + rcpt.Address + ">"); err != nil {
			receipt.Rejected = append(receipt.Rejected, rcpt.Address)
			continue
		}
		receipt.Accepted = append(receipt.Accepted, rcpt.Address)
	}
	if len(receipt.Accepted) == 0 {
		return nil, fmt.Errorf("all recipients were rejected: %s", strings.Join(receipt.Rejected, ", "))
	}

	if err := t.renew(s); err != nil {
		return nil, err
	}
	w, err := s.client.Data()
	if err != nil {
		return nil, errors.Wrap(err, "smtp DATA")
	}
	if _, err := out.WriteTo(w); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, "write message")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "smtp end of data")
	}

	// The relay has accepted the message at this point.
	_ = s.client.Quit()

	return receipt, nil
}

// newMessageID returns "uuid@domain" using the sender's domain.
func newMessageID(sender string) string {
	domain := "localhost"
	if at := strings.LastIndex(sender, "@"); at >= 0 && at < len(sender)-1 {
		domain = sender[at+1:]
	}
	return fmt.Sprintf("%s@%s", uuid.NewString(), domain)
}
