package service

import (
	"context"
	"time"

	"github.com/massiliadrive/backend/internal/errs"
	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/massiliadrive/backend/internal/logger"
	"github.com/massiliadrive/backend/internal/model/contact"
	"github.com/massiliadrive/backend/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Error codes and user-facing texts of the transport failures.
const (
	CodeRelayUnreachable  = "RELAY_UNREACHABLE"
	CodePrimarySendFailed = "PRIMARY_SEND_FAILED"

	relayUnreachableMessage  = "Email server connection failed. Please check your configuration."
	primarySendFailedMessage = "Failed to send email. Please try again later."

	submitSuccessMessage = "Email sent successfully"
)

// Sentinels for errors.Is.
var (
	ErrRelayUnreachable  = &errs.HTTPError{Code: CodeRelayUnreachable}
	ErrPrimarySendFailed = &errs.HTTPError{Code: CodePrimarySendFailed}
)

// dispatchEvent is the New Relic custom event recorded per dispatch.
const dispatchEvent = "ContactDispatch"

// DispatchResult keeps the outcome of the two sends apart. PrimaryErr set
// means the request failed; SecondaryErr alone never does.
type DispatchResult struct {
	Primary      *email.Receipt
	PrimaryErr   error
	SecondaryErr error
}

// OK reports whether the operator notification went out.
func (r *DispatchResult) OK() bool {
	return r.PrimaryErr == nil && r.Primary != nil
}

// ContactService delivers contact inquiries by email.
type ContactService struct {
	composer      *email.Composer
	newTransport  email.TransportFactory
	logger        *zerolog.Logger
	loggerService *logger.LoggerService
}

// NewContactService builds the dispatcher. Every Dispatch call gets a fresh
// transport from newTransport.
func NewContactService(s *server.Server, newTransport email.TransportFactory) *ContactService {
	return &ContactService{
		composer:      email.NewComposer(s.Config.Mail, s.Config.Contact),
		newTransport:  newTransport,
		logger:        s.Logger,
		loggerService: s.LoggerService,
	}
}

// Dispatch verifies the relay, sends the operator notification, then the
// requester confirmation. Each message is composed right before its send.
//
// The returned error is set only when nothing was sent: the relay check or
// the operator message composition failed. Send failures, and a
// confirmation that could not be composed, are reported in the result.
// Once started, a dispatch runs to completion even if ctx is cancelled.
func (s *ContactService) Dispatch(ctx context.Context, inq contact.Inquiry) (*DispatchResult, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	log := s.log(ctx).With().
		Str("operation", "contact_dispatch").
		Str("subject", inq.Subject.String()).
		Str("locale", inq.Locale.String()).
		Logger()

	transport := s.newTransport()

	log.Debug().Str("state", "verifying").Msg("verifying mail relay")
	if err := s.segment(ctx, "mail.verify", func() error { return transport.Verify(ctx) }); err != nil {
		log.Error().Err(err).Str("state", "relay_unreachable").Msg("mail relay unreachable")
		s.record(inq, "relay_unreachable", false, time.Since(start))
		return nil, errs.NewTransportError(CodeRelayUnreachable, relayUnreachableMessage, err)
	}

	primary, err := s.composer.OperatorNotification(inq)
	if err != nil {
		err = errors.Wrap(err, "compose operator notification")
		log.Error().Err(err).Str("state", "compose_failed").Msg("operator notification could not be composed")
		s.record(inq, "compose_failed", false, time.Since(start))
		return nil, errs.NewTransportError(CodePrimarySendFailed, primarySendFailedMessage, err)
	}

	result := &DispatchResult{}

	log.Debug().Str("state", "sending_primary").Msg("sending operator notification")
	result.PrimaryErr = s.segment(ctx, "mail.primary", func() error {
		var sendErr error
		result.Primary, sendErr = transport.Send(ctx, primary)
		return sendErr
	})
	if result.PrimaryErr != nil {
		log.Error().Err(result.PrimaryErr).Str("state", "primary_failed").Msg("operator notification failed")
		s.record(inq, "primary_failed", false, time.Since(start))
		return result, nil
	}

	log.Info().
		Str("message_id", result.Primary.MessageID).
		Strs("accepted", result.Primary.Accepted).
		Strs("rejected", result.Primary.Rejected).
		Msg("operator notification sent")

	log.Debug().Str("state", "sending_secondary").Msg("sending requester confirmation")
	result.SecondaryErr = s.segment(ctx, "mail.secondary", func() error {
		secondary, composeErr := s.composer.RequesterConfirmation(inq)
		if composeErr != nil {
			return errors.Wrap(composeErr, "compose requester confirmation")
		}
		_, sendErr := transport.Send(ctx, secondary)
		return sendErr
	})
	if result.SecondaryErr != nil {
		log.Warn().Err(result.SecondaryErr).Str("state", "secondary_failed").Msg("requester confirmation failed")
	} else {
		log.Info().Str("state", "done").Msg("requester confirmation sent")
	}

	s.record(inq, "sent", result.SecondaryErr == nil, time.Since(start))
	return result, nil
}

// Submit dispatches the inquiry and collapses the outcome into the HTTP
// response. Only the operator notification decides success.
func (s *ContactService) Submit(ctx context.Context, inq contact.Inquiry) (*contact.SubmitResponse, error) {
	result, err := s.Dispatch(ctx, inq)
	if err != nil {
		return nil, err
	}

	if !result.OK() {
		return nil, errs.NewTransportError(CodePrimarySendFailed, primarySendFailedMessage, result.PrimaryErr)
	}

	return &contact.SubmitResponse{
		Message:   submitSuccessMessage,
		MessageID: result.Primary.MessageID,
		Accepted:  result.Primary.Accepted,
		Rejected:  result.Primary.Rejected,
	}, nil
}

// VerifyRelay checks that the mail relay accepts a session, using a fresh
// transport like Dispatch does.
func (s *ContactService) VerifyRelay(ctx context.Context) error {
	return s.newTransport().Verify(ctx)
}

// log prefers the request logger stored in ctx.
func (s *ContactService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if s.logger != nil {
		return s.logger
	}
	nop := zerolog.Nop()
	return &nop
}

// segment times fn as a New Relic segment of the request transaction.
func (s *ContactService) segment(ctx context.Context, name string, fn func() error) error {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return fn()
	}

	seg := txn.StartSegment(name)
	err := fn()
	seg.End()
	return err
}

func (s *ContactService) record(inq contact.Inquiry, status string, confirmed bool, took time.Duration) {
	s.loggerService.RecordCustomEvent(dispatchEvent, map[string]interface{}{
		"status":      status,
		"subject":     inq.Subject.String(),
		"locale":      inq.Locale.String(),
		"confirmed":   confirmed,
		"duration_ms": took.Milliseconds(),
	})
}
