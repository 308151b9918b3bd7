package confirmation

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/handoff"
	"github.com/robertarktes/visa-appointments/internal/observability"
)

var ErrNoPendingBooking = errors.New("confirmation: no pending booking")

type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	// StatusPending means the booking stands but the notice was not delivered.
	StatusPending Status = "pending"
)

// Auditor keeps a trail of dispatch attempts.
type Auditor interface {
	LogDispatch(ctx context.Context, referenceCode string, status string, cause error) error
}

type Result struct {
	Record  domain.Record `json:"record"`
	Message Message       `json:"message"`
	Status  Status        `json:"status"`
}

// Service runs the post-payment session: it rebuilds the booking from the
// hand-off store and sends the confirmation.
type Service struct {
	store      handoff.Store
	dispatcher *Dispatcher
	auditor    Auditor
	logger     observability.Logger
}

func NewService(store handoff.Store, dispatcher *Dispatcher, auditor Auditor, logger observability.Logger) *Service {
	return &Service{store: store, dispatcher: dispatcher, auditor: auditor, logger: logger}
}

// Resume consumes the hand-off entry for referenceCode. Dispatch failures
// are reported through Result.Status and never fail the call.
func (s *Service) Resume(ctx context.Context, referenceCode string) (*Result, error) {
	rec, err := handoff.TakeRecord(ctx, s.store, referenceCode)
	if errors.Is(err, handoff.ErrNotFound) {
		return nil, errors.Mark(err, ErrNoPendingBooking)
	}
	if err != nil {
		return nil, err
	}
	observability.HandoffOps.WithLabelValues("take").Inc()

	msg, err := BuildMessage(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "confirmation: build message for %s", rec.ReferenceCode)
	}

	res := &Result{Record: rec, Message: msg}
	outcome, err := s.dispatcher.Dispatch(ctx, msg)
	switch {
	case err != nil:
		res.Status = StatusPending
	case outcome == OutcomeSkipped:
		res.Status = StatusSkipped
	default:
		res.Status = StatusSent
	}

	if s.auditor != nil {
		if aerr := s.auditor.LogDispatch(ctx, rec.ReferenceCode, string(res.Status), err); aerr != nil {
			s.logger.WithField("reference_code", rec.ReferenceCode).Warn("audit write failed: ", aerr)
		}
	}
	return res, nil
}
