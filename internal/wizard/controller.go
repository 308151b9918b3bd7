package wizard

import (
	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/domain"
)

var (
	ErrNotOnSummaryStep = errors.New("wizard: booking can only be confirmed from the summary step")
	ErrAlreadyFinalized = errors.New("wizard: booking already finalized")
)

// Finalizer turns a complete draft into a booking record.
type Finalizer interface {
	Finalize(draft *domain.Draft) (domain.Record, error)
}

// Controller drives one applicant through the four booking steps.
// Navigation never clears fields entered on other steps.
type Controller struct {
	step      domain.Step
	draft     *domain.Draft
	finalized bool
}

func NewController(draft *domain.Draft) *Controller {
	return &Controller{step: domain.FirstStep, draft: draft}
}

func (c *Controller) Step() domain.Step {
	return c.step
}

func (c *Controller) Draft() *domain.Draft {
	return c.draft
}

func (c *Controller) Finalized() bool {
	return c.finalized
}

// CanAdvance reports whether Next would move. Only the schedule step is
// gated; the first two steps advance freely.
func (c *Controller) CanAdvance() bool {
	if c.finalized || c.step >= domain.LastStep {
		return false
	}
	if c.step == domain.StepSchedule {
		return c.draft.IsStepComplete(domain.StepSchedule)
	}
	return true
}

// Next moves one step forward. A refused move leaves the state untouched.
func (c *Controller) Next() bool {
	if !c.CanAdvance() {
		return false
	}
	c.step++
	return true
}

func (c *Controller) Back() bool {
	if c.finalized || c.step <= domain.FirstStep {
		return false
	}
	c.step--
	return true
}

// Confirm finalizes the draft from the summary step. After success the
// controller is terminal and ignores further navigation.
func (c *Controller) Confirm(f Finalizer) (domain.Record, error) {
	if c.finalized {
		return domain.Record{}, ErrAlreadyFinalized
	}
	if c.step != domain.StepSummary {
		return domain.Record{}, ErrNotOnSummaryStep
	}
	rec, err := f.Finalize(c.draft)
	if err != nil {
		return domain.Record{}, err
	}
	c.finalized = true
	return rec, nil
}
