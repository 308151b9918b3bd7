package wizard_test

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/slots"
	"github.com/robertarktes/visa-appointments/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFinalizer struct {
	mock.Mock
}

func (m *mockFinalizer) Finalize(d *domain.Draft) (domain.Record, error) {
	args := m.Called(d)
	return args.Get(0).(domain.Record), args.Error(1)
}

func newController(t *testing.T) *wizard.Controller {
	t.Helper()
	cal, err := slots.NewCalendar(2025, time.September, []int{1, 2, 3, 4, 5}, slots.DefaultTimes)
	require.NoError(t, err)
	return wizard.NewController(domain.NewDraft(cal))
}

func TestController_FreeNavigationUntilSchedule(t *testing.T) {
	c := newController(t)
	assert.Equal(t, domain.StepPersonal, c.Step())

	assert.False(t, c.Back())
	assert.Equal(t, domain.StepPersonal, c.Step())

	assert.True(t, c.Next())
	assert.True(t, c.Next())
	assert.Equal(t, domain.StepSchedule, c.Step())

	assert.False(t, c.CanAdvance())
	assert.False(t, c.Next())
	assert.Equal(t, domain.StepSchedule, c.Step())
}

func TestController_NavigationKeepsFields(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.Draft().SetField(domain.FieldName, "Maria"))
	require.NoError(t, c.Draft().SetField(domain.FieldSelectedDate, "2025-09-03"))
	require.NoError(t, c.Draft().SetField(domain.FieldSelectedSlot, "10:00"))
	before := c.Draft().Snapshot()

	for c.Next() {
	}
	assert.Equal(t, domain.StepSummary, c.Step())
	assert.False(t, c.Next())
	for c.Back() {
	}
	assert.Equal(t, domain.StepPersonal, c.Step())
	assert.Equal(t, before, c.Draft().Snapshot())
}

func TestController_Confirm(t *testing.T) {
	c := newController(t)
	f := new(mockFinalizer)

	_, err := c.Confirm(f)
	assert.True(t, errors.Is(err, wizard.ErrNotOnSummaryStep))

	require.NoError(t, c.Draft().SetField(domain.FieldSelectedDate, "2025-09-03"))
	require.NoError(t, c.Draft().SetField(domain.FieldSelectedSlot, "10:00"))
	for c.Next() {
	}
	require.Equal(t, domain.StepSummary, c.Step())

	refused := errors.New("incomplete")
	f.On("Finalize", c.Draft()).Return(domain.Record{}, refused).Once()
	_, err = c.Confirm(f)
	assert.ErrorIs(t, err, refused)
	assert.False(t, c.Finalized())

	want := domain.Record{ReferenceCode: "VFS123456ABC"}
	f.On("Finalize", c.Draft()).Return(want, nil).Once()
	rec, err := c.Confirm(f)
	require.NoError(t, err)
	assert.Equal(t, want, rec)
	assert.True(t, c.Finalized())

	_, err = c.Confirm(f)
	assert.True(t, errors.Is(err, wizard.ErrAlreadyFinalized))
	assert.False(t, c.Back())
	f.AssertExpectations(t)
}
