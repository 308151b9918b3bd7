package confirmation_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/handoff"
	"github.com/robertarktes/visa-appointments/internal/observability"
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

type mockAuditor struct {
	mock.Mock
}

func (m *mockAuditor) LogDispatch(ctx context.Context, ref string, status string, cause error) error {
	args := m.Called(ctx, ref, status, cause)
	return args.Error(0)
}

func mariaSilva() domain.Record {
	return domain.Record{
		Applicant: domain.Applicant{
			Name:            "Maria",
			Surname:         "Silva",
			BirthDate:       domain.NewDate(1990, time.May, 12),
			Gender:          domain.GenderFemale,
			PassportNumber:  "FX123456",
			PassportExpiry:  domain.NewDate(2030, time.January, 1),
			Nationality:     "brasil",
			Email:           "maria@example.com",
			Phone:           "+55 11 99999-0000",
			VisaType:        domain.VisaTourism,
			PassportFile:    "passport.pdf",
			PhotoFile:       "photo.jpg",
			AppointmentDate: domain.NewDate(2025, time.September, 3),
			AppointmentTime: "10:00",
		},
		ReferenceCode: "VFS123456ABC",
		CreatedAt:     time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "quarta-feira, 3 de setembro de 2025", confirmation.LongDate(domain.NewDate(2025, time.September, 3)))
	assert.Equal(t, "sábado, 1 de março de 2025", confirmation.LongDate(domain.NewDate(2025, time.March, 1)))
	assert.Empty(t, confirmation.LongDate(domain.Date{}))
}

func TestBuildMessage(t *testing.T) {
	msg, err := confirmation.BuildMessage(mariaSilva())
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", msg.To)
	assert.Equal(t, confirmation.Subject, msg.Subject)
	assert.Equal(t, "VFS123456ABC", msg.ReferenceCode)

	assert.Contains(t, msg.HTML, "Maria Silva")
	assert.Contains(t, msg.HTML, "VFS123456ABC")
	assert.Contains(t, msg.HTML, "Turismo")
	assert.Contains(t, msg.HTML, "Brasil")
	assert.Contains(t, msg.HTML, "quarta-feira, 3 de setembro de 2025")
	assert.Contains(t, msg.HTML, "10:00")
	for _, line := range confirmation.ArrivalInstructions {
		assert.Contains(t, msg.HTML, line)
	}

	labels := make([]string, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{
		"Nome", "Data de Nascimento", "Nacionalidade", "Passaporte",
		"Tipo de Visto", "Data do Agendamento", "Horário", "E-mail",
	}, labels)

	assert.Equal(t, "turismo", msg.Booking.VisaType)
	assert.Equal(t, "2025-09-03", msg.Booking.AppointmentDate)
}

func TestBuildMessage_EscapesInput(t *testing.T) {
	rec := mariaSilva()
	rec.Applicant.Name = "<script>alert(1)</script>"

	msg, err := confirmation.BuildMessage(rec)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestDispatcher_Dispatch(t *testing.T) {
	msg, err := confirmation.BuildMessage(mariaSilva())
	require.NoError(t, err)

	tests := []struct {
		name     string
		accepted bool
		err      error
		want     confirmation.Outcome
		wantErr  error
	}{
		{name: "accepted", accepted: true, want: confirmation.OutcomeSent},
		{name: "refused", accepted: false, wantErr: confirmation.ErrRejected},
		{name: "rejected with error", err: errors.Wrap(confirmation.ErrRejected, "400"), wantErr: confirmation.ErrRejected},
		{name: "transport fault", err: errors.New("connection reset"), wantErr: confirmation.ErrTransport},
		{name: "switched off", err: confirmation.ErrUnavailable, want: confirmation.OutcomeSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := new(mockNotifier)
			n.On("Submit", mock.Anything, confirmation.SubmissionOf(msg)).Return(tt.accepted, tt.err)
			d := confirmation.NewDispatcher(n, time.Second, observability.NewNopLogger())

			outcome, err := d.Dispatch(context.Background(), msg)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, confirmation.ErrDispatch), "got %v", err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
			n.AssertExpectations(t)
		})
	}
}

func TestDispatcher_Unconfigured(t *testing.T) {
	msg, err := confirmation.BuildMessage(mariaSilva())
	require.NoError(t, err)

	d := confirmation.NewDispatcher(nil, time.Second, observability.NewNopLogger())
	assert.False(t, d.Configured())
	outcome, err := d.Dispatch(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, confirmation.OutcomeSkipped, outcome)

	_, err = d.Dispatch(context.Background(), confirmation.Message{})
	assert.True(t, errors.Is(err, confirmation.ErrMissingReference))
}

func TestService_Resume(t *testing.T) {
	ctx := context.Background()
	rec := mariaSilva()

	tests := []struct {
		name     string
		accepted bool
		err      error
		want     confirmation.Status
	}{
		{name: "sent", accepted: true, want: confirmation.StatusSent},
		{name: "dispatch failure keeps the booking", err: errors.New("timeout"), want: confirmation.StatusPending},
		{name: "notifier off", err: confirmation.ErrUnavailable, want: confirmation.StatusSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := handoff.NewMemoryStore()
			require.NoError(t, handoff.PutRecord(ctx, store, rec))

			n := new(mockNotifier)
			n.On("Submit", mock.Anything, mock.AnythingOfType("confirmation.Submission")).Return(tt.accepted, tt.err)
			a := new(mockAuditor)
			a.On("LogDispatch", mock.Anything, rec.ReferenceCode, string(tt.want), mock.Anything).Return(nil)

			logger := observability.NewNopLogger()
			svc := confirmation.NewService(store, confirmation.NewDispatcher(n, time.Second, logger), a, logger)

			res, err := svc.Resume(ctx, rec.ReferenceCode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, rec, res.Record)
			assert.Equal(t, 0, store.Len())

			_, err = svc.Resume(ctx, rec.ReferenceCode)
			assert.True(t, errors.Is(err, confirmation.ErrNoPendingBooking))

			n.AssertExpectations(t)
			a.AssertExpectations(t)
		})
	}
}

func TestService_ResumeWithoutNotifierOrAuditor(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore()
	rec := mariaSilva()
	require.NoError(t, handoff.PutRecord(ctx, store, rec))

	logger := observability.NewNopLogger()
	svc := confirmation.NewService(store, confirmation.NewDispatcher(nil, 0, logger), nil, logger)

	res, err := svc.Resume(ctx, rec.ReferenceCode)
	require.NoError(t, err)
	assert.Equal(t, confirmation.StatusSkipped, res.Status)
	assert.Equal(t, "Maria Silva", res.Message.Fields[0].Value)
}
