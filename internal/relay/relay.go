package relay

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/observability"
)

var ErrDeliveriesClosed = errors.New("relay: delivery channel closed")

// Result is what happened to one delivery.
type Result string

const (
	ResultSent      Result = "sent"
	ResultSkipped   Result = "skipped"
	ResultRejected  Result = "rejected"
	ResultMalformed Result = "malformed"
	ResultRequeued  Result = "requeued"
)

// Relay forwards queued confirmation submissions to a notifier.
// Transport faults requeue the delivery; everything else settles it.
type Relay struct {
	notifier confirmation.Notifier
	logger   observability.Logger
}

func New(notifier confirmation.Notifier, logger observability.Logger) *Relay {
	return &Relay{notifier: notifier, logger: logger}
}

func (r *Relay) Handle(ctx context.Context, d amqp.Delivery) Result {
	res, err := r.handle(ctx, d)
	observability.RelayDeliveries.WithLabelValues(string(res)).Inc()
	if err != nil {
		r.logger.WithField("message_id", d.MessageId).Error("failed to settle delivery: ", err)
	}
	return res
}

func (r *Relay) handle(ctx context.Context, d amqp.Delivery) (Result, error) {
	log := r.logger.WithField("message_id", d.MessageId)

	var s confirmation.Submission
	if err := json.Unmarshal(d.Body, &s); err != nil || s.ReferenceCode == "" {
		log.Warn("dropping malformed submission")
		return ResultMalformed, d.Nack(false, false)
	}

	accepted, err := r.notifier.Submit(ctx, s)
	switch {
	case errors.Is(err, confirmation.ErrUnavailable):
		log.Warn("notifier unavailable, confirmation skipped")
		return ResultSkipped, d.Ack(false)
	case errors.Is(err, confirmation.ErrRejected), err == nil && !accepted:
		log.Warn("confirmation rejected: ", err)
		return ResultRejected, d.Nack(false, false)
	case err != nil:
		log.Warn("confirmation delivery failed, requeueing: ", err)
		return ResultRequeued, d.Nack(false, true)
	}
	log.Info("confirmation sent to ", s.RecipientEmail)
	return ResultSent, d.Ack(false)
}

// Run handles deliveries until ctx is done or the broker closes the channel.
func (r *Relay) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	r.logger.Info("confirmation relay started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			r.Handle(ctx, d)
		}
	}
}
