package finalize

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/handoff"
	"github.com/robertarktes/visa-appointments/internal/observability"
)

var ErrIncompleteDraft = errors.New("finalize: draft incomplete")

const (
	// DefaultPaymentLink is the hosted checkout page the applicant pays on.
	DefaultPaymentLink = "https://buy.stripe.com/9B65kDeuNfag6BV85D5wI00"
	ConfirmationPath   = "/v1/confirmation/"
)

type Option func(*Finalizer)

func WithClock(now func() time.Time) Option {
	return func(f *Finalizer) { f.now = now }
}

func WithCodes(g *CodeGenerator) Option {
	return func(f *Finalizer) { f.codes = g }
}

// Finalizer converts complete drafts into booking records and prepares the
// hand-off to the payment provider.
type Finalizer struct {
	paymentLink *url.URL
	baseURL     *url.URL
	codes       *CodeGenerator
	now         func() time.Time
	logger      observability.Logger
}

func NewFinalizer(paymentLink, publicBaseURL string, logger observability.Logger, opts ...Option) (*Finalizer, error) {
	pl, err := url.Parse(paymentLink)
	if err != nil || pl.Scheme == "" || pl.Host == "" {
		return nil, errors.Newf("finalize: invalid payment link %q", paymentLink)
	}
	base, err := url.Parse(strings.TrimRight(publicBaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Newf("finalize: invalid public base url %q", publicBaseURL)
	}

	f := &Finalizer{
		paymentLink: pl,
		baseURL:     base,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.codes == nil {
		f.codes = NewCodeGenerator(f.now, nil)
	}
	return f, nil
}

// Finalize requires the personal, documents and schedule steps to be
// complete. The returned record carries a fresh reference code.
func (f *Finalizer) Finalize(draft *domain.Draft) (domain.Record, error) {
	if draft == nil {
		return domain.Record{}, errors.Wrap(ErrIncompleteDraft, "no draft")
	}
	for s := domain.FirstStep; s < domain.StepSummary; s++ {
		if err := draft.CheckStep(s); err != nil {
			f.logger.WithField("step", int(s)).Warn("finalize refused: ", err)
			return domain.Record{}, errors.Mark(errors.Wrap(err, "finalize"), ErrIncompleteDraft)
		}
	}

	rec := domain.Record{
		Applicant:     draft.Snapshot(),
		ReferenceCode: f.codes.Next(),
		CreatedAt:     f.now().UTC(),
	}
	f.logger.WithField("reference_code", rec.ReferenceCode).Info("booking finalized")
	return rec, nil
}

// HandoffForPayment builds the payment redirect for rec. The provider sends
// the applicant back to the confirmation entry point for the record.
func (f *Finalizer) HandoffForPayment(rec domain.Record) string {
	callback := *f.baseURL
	callback.Path = strings.TrimRight(callback.Path, "/") + ConfirmationPath + url.PathEscape(rec.ReferenceCode)

	target := *f.paymentLink
	q := target.Query()
	q.Set("success_url", callback.String())
	target.RawQuery = q.Encode()
	return target.String()
}

// Handoff stores rec for the confirmation session and returns the payment
// redirect. Nothing is stored when rec has no reference code.
func (f *Finalizer) Handoff(ctx context.Context, store handoff.Store, rec domain.Record) (string, error) {
	if err := handoff.PutRecord(ctx, store, rec); err != nil {
		return "", errors.Wrapf(err, "finalize: hand off %s", rec.ReferenceCode)
	}
	return f.HandoffForPayment(rec), nil
}
