package rabbit

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange               = "visa.notifications"
	ConfirmationRoutingKey = "confirmation.requested"
)

var (
	ErrUnroutable = errors.New("rabbit: message returned as unroutable")
	ErrNacked     = errors.New("rabbit: broker refused message")
)

// Publisher sends mandatory messages on a channel in confirm mode. Publish
// returns only after the broker has acked the message, so an unroutable or
// refused message is reported instead of silently dropped.
type Publisher struct {
	mu      sync.Mutex
	ch      *amqp.Channel
	returns chan amqp.Return
}

// NewPublisher declares the exchange and the confirmation queue bound to it,
// so queued submissions survive until a relay starts consuming.
func NewPublisher(conn *amqp.Connection, queue string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := declareQueue(ch, queue); err != nil {
		ch.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, errors.Wrap(err, "enable publisher confirms")
	}
	returns := ch.NotifyReturn(make(chan amqp.Return, 16))
	return &Publisher{ch: ch, returns: returns}, nil
}

func declareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil)
}

func declareQueue(ch *amqp.Channel, queue string) error {
	if err := declareExchange(ch); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(queue, ConfirmationRoutingKey, Exchange, false, nil)
}

func (p *Publisher) Publish(ctx context.Context, key string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conf, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, Exchange, key, true, false, msg)
	if err != nil {
		return err
	}
	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return errors.Wrap(err, "wait for confirm")
	}
	if !acked {
		return errors.Wrapf(ErrNacked, "message %s", msg.MessageId)
	}
	// basic.return precedes the ack on the channel, so a return for this
	// message is already buffered by now.
	for {
		select {
		case ret, ok := <-p.returns:
			if !ok {
				return errors.New("rabbit: channel closed")
			}
			if ret.MessageId == msg.MessageId {
				return errors.Wrapf(ErrUnroutable, "message %s: %s", msg.MessageId, ret.ReplyText)
			}
		default:
			return nil
		}
	}
}

func (p *Publisher) Closed() bool {
	return p.ch.IsClosed()
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
