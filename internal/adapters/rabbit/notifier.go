package rabbit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
)

// Notifier queues confirmation submissions for the relay. A submission
// counts as accepted once the broker has confirmed it was routed to a queue.
type Notifier struct {
	pub *Publisher
}

func NewNotifier(pub *Publisher) *Notifier {
	return &Notifier{pub: pub}
}

func (n *Notifier) Submit(ctx context.Context, s confirmation.Submission) (bool, error) {
	if n.pub.Closed() {
		return false, confirmation.ErrUnavailable
	}
	body, err := json.Marshal(s)
	if err != nil {
		return false, errors.Wrap(err, "encode submission")
	}
	err = n.pub.Publish(ctx, ConfirmationRoutingKey, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    s.ReferenceCode,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return false, errors.Mark(errors.Wrap(err, "publish submission"), confirmation.ErrTransport)
	}
	return true, nil
}
