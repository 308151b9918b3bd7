package relay_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"github.com/robertarktes/visa-appointments/internal/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Submit(ctx context.Context, s confirmation.Submission) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

// settlement records how a delivery was settled.
type settlement struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (s *settlement) Ack(tag uint64, multiple bool) error {
	s.acked = true
	return nil
}

func (s *settlement) Nack(tag uint64, multiple, requeue bool) error {
	s.nacked, s.requeue = true, requeue
	return nil
}

func (s *settlement) Reject(tag uint64, requeue bool) error {
	return s.Nack(tag, false, requeue)
}

func delivery(t *testing.T, body []byte) (amqp.Delivery, *settlement) {
	t.Helper()
	s := &settlement{}
	return amqp.Delivery{Acknowledger: s, MessageId: "VFS123456ABC", Body: body}, s
}

func submissionBody(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(confirmation.Submission{
		RecipientEmail: "maria@example.com",
		Subject:        confirmation.Subject,
		ReferenceCode:  "VFS123456ABC",
	})
	require.NoError(t, err)
	return data
}

func TestRelay_Handle(t *testing.T) {
	tests := []struct {
		name     string
		accepted bool
		err      error
		want     relay.Result
		acked    bool
		requeue  bool
	}{
		{name: "sent", accepted: true, want: relay.ResultSent, acked: true},
		{name: "refused", want: relay.ResultRejected},
		{name: "rejected", err: errors.Wrap(confirmation.ErrRejected, "422"), want: relay.ResultRejected},
		{name: "switched off", err: confirmation.ErrUnavailable, want: relay.ResultSkipped, acked: true},
		{name: "transport fault", err: errors.New("dial tcp: refused"), want: relay.ResultRequeued, requeue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := new(mockNotifier)
			n.On("Submit", mock.Anything, mock.AnythingOfType("confirmation.Submission")).Return(tt.accepted, tt.err)
			r := relay.New(n, observability.NewNopLogger())

			d, s := delivery(t, submissionBody(t))
			assert.Equal(t, tt.want, r.Handle(context.Background(), d))
			assert.Equal(t, tt.acked, s.acked)
			assert.Equal(t, !tt.acked, s.nacked)
			assert.Equal(t, tt.requeue, s.requeue)
			n.AssertExpectations(t)
		})
	}
}

func TestRelay_DropsMalformed(t *testing.T) {
	n := new(mockNotifier)
	r := relay.New(n, observability.NewNopLogger())

	d, s := delivery(t, []byte("{not json"))
	assert.Equal(t, relay.ResultMalformed, r.Handle(context.Background(), d))
	assert.True(t, s.nacked)
	assert.False(t, s.requeue)
	n.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestRelay_Run(t *testing.T) {
	n := new(mockNotifier)
	n.On("Submit", mock.Anything, mock.Anything).Return(true, nil)
	r := relay.New(n, observability.NewNopLogger())

	deliveries := make(chan amqp.Delivery, 1)
	d, s := delivery(t, submissionBody(t))
	deliveries <- d
	close(deliveries)

	err := r.Run(context.Background(), deliveries)
	assert.True(t, errors.Is(err, relay.ErrDeliveriesClosed))
	assert.True(t, s.acked)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.NoError(t, r.Run(ctx, make(chan amqp.Delivery)))
}
