package confirmation

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrDispatch marks every failure reported by Dispatch.
	ErrDispatch = errors.New("confirmation dispatch failed")
	// ErrRejected means the notifier refused the submission.
	ErrRejected = errors.New("notification rejected")
	// ErrTransport means the submission could not be delivered to the notifier.
	ErrTransport = errors.New("notification transport fault")
	// ErrUnavailable is returned by notifiers that are switched off at runtime.
	// Dispatch treats it like an unconfigured notifier.
	ErrUnavailable = errors.New("notifier unavailable")

	ErrMissingReference = errors.New("confirmation: message has no reference code")
)

type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
)

// Submission is the payload handed to the notification collaborator.
type Submission struct {
	RecipientEmail string        `json:"recipientEmail"`
	Subject        string        `json:"subject"`
	Body           string        `json:"body"`
	Booking        BookingFields `json:"booking"`
	ReferenceCode  string        `json:"referenceCode"`
}

func SubmissionOf(msg Message) Submission {
	return Submission{
		RecipientEmail: msg.To,
		Subject:        msg.Subject,
		Body:           msg.HTML,
		Booking:        msg.Booking,
		ReferenceCode:  msg.ReferenceCode,
	}
}

// Notifier delivers a submission and reports whether it was accepted.
type Notifier interface {
	Submit(ctx context.Context, s Submission) (accepted bool, err error)
}

// Dispatcher submits confirmation messages. It reports failures and never retries.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   observability.Logger
}

// NewDispatcher accepts a nil notifier; every dispatch is then skipped.
func NewDispatcher(notifier Notifier, timeout time.Duration, logger observability.Logger) *Dispatcher {
	return &Dispatcher{notifier: notifier, timeout: timeout, logger: logger}
}

func (d *Dispatcher) Configured() bool {
	return d.notifier != nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (Outcome, error) {
	if msg.ReferenceCode == "" {
		return "", ErrMissingReference
	}
	log := d.logger.WithField("reference_code", msg.ReferenceCode)

	if d.notifier == nil {
		log.Info("notifier not configured, confirmation skipped")
		observability.DispatchOutcomes.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, nil
	}

	ctx, span := otel.Tracer("confirmation").Start(ctx, "confirmation.dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("booking.reference_code", msg.ReferenceCode))

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	accepted, err := d.notifier.Submit(ctx, SubmissionOf(msg))
	switch {
	case errors.Is(err, ErrUnavailable):
		log.Warn("notifier unavailable, confirmation skipped")
		observability.DispatchOutcomes.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, nil
	case err != nil:
		if !errors.Is(err, ErrRejected) {
			err = errors.Mark(err, ErrTransport)
		}
		err = errors.Mark(errors.Wrapf(err, "dispatch %s", msg.ReferenceCode), ErrDispatch)
	case !accepted:
		err = errors.Mark(errors.Wrapf(ErrRejected, "dispatch %s", msg.ReferenceCode), ErrDispatch)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		log.Error("confirmation dispatch failed: ", err)
		observability.DispatchOutcomes.WithLabelValues("failed").Inc()
		return "", err
	}

	log.Info("confirmation sent to ", msg.To)
	observability.DispatchOutcomes.WithLabelValues(string(OutcomeSent)).Inc()
	return OutcomeSent, nil
}
