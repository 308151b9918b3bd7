package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/finalize"
	"github.com/robertarktes/visa-appointments/internal/handoff"
	"github.com/robertarktes/visa-appointments/internal/idempotency"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"github.com/robertarktes/visa-appointments/internal/session"
	"github.com/robertarktes/visa-appointments/internal/slots"
	"github.com/robertarktes/visa-appointments/internal/wizard"
)

// FinalizeAuditor records finalized bookings.
type FinalizeAuditor interface {
	LogFinalized(ctx context.Context, rec domain.Record) error
}

// Pinger is a dependency checked by the readiness probe.
type Pinger func(ctx context.Context) error

type Handlers struct {
	calendar     *slots.Calendar
	sessions     *session.Registry
	finalizer    *finalize.Finalizer
	handoff      handoff.Store
	confirmation *confirmation.Service
	audit        FinalizeAuditor
	idemp        *idempotency.Idempotency
	ready        []Pinger
}

type Deps struct {
	Calendar     *slots.Calendar
	Sessions     *session.Registry
	Finalizer    *finalize.Finalizer
	Handoff      handoff.Store
	Confirmation *confirmation.Service
	Audit        FinalizeAuditor
	Idempotency  *idempotency.Idempotency
	Ready        []Pinger
}

func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		calendar:     d.Calendar,
		sessions:     d.Sessions,
		finalizer:    d.Finalizer,
		handoff:      d.Handoff,
		confirmation: d.Confirmation,
		audit:        d.Audit,
		idemp:        d.Idempotency,
		ready:        d.Ready,
	}
}

type wizardState struct {
	SessionID  string           `json:"session_id"`
	Step       int              `json:"step"`
	Title      string           `json:"title"`
	CanAdvance bool             `json:"can_advance"`
	Missing    []string         `json:"missing"`
	Draft      domain.Applicant `json:"draft"`
	Moved      *bool            `json:"moved,omitempty"`
}

func stateOf(id string, c *wizard.Controller) wizardState {
	missing := c.Draft().MissingFields(c.Step())
	if missing == nil {
		missing = []string{}
	}
	return wizardState{
		SessionID:  id,
		Step:       int(c.Step()),
		Title:      c.Step().Title(),
		CanAdvance: c.CanAdvance(),
		Missing:    missing,
		Draft:      c.Draft().Snapshot(),
	}
}

func (h *Handlers) AvailableDates(w http.ResponseWriter, r *http.Request) {
	year, month := h.calendar.Period()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":  year,
		"month": int(month),
		"dates": h.calendar.Dates(),
		"days":  h.calendar.MonthDays(),
	})
}

func (h *Handlers) SlotsForDate(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	times := h.calendar.SlotsFor(date)
	if times == nil {
		times = []domain.TimeOfDay{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":      date,
		"available": h.calendar.IsAvailable(date),
		"times":     times,
	})
}

func (h *Handlers) CreateWizard(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Create()
	var state wizardState
	err := h.sessions.With(id, func(c *wizard.Controller) error {
		state = stateOf(id, c)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *Handlers) GetWizard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var state wizardState
	err := h.sessions.With(id, func(c *wizard.Controller) error {
		state = stateOf(id, c)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateFields applies a JSON object of field values. The slot is applied
// after the date so both can be sent together. Application stops at the
// first invalid field; fields applied before it are kept.
func (h *Handlers) UpdateFields(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}

	names := make([]string, 0, len(req))
	for name := range req {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := names[i] == domain.FieldSelectedSlot, names[j] == domain.FieldSelectedSlot
		if si != sj {
			return sj
		}
		return names[i] < names[j]
	})

	var state wizardState
	err := h.sessions.With(id, func(c *wizard.Controller) error {
		for _, name := range names {
			if err := c.Draft().SetField(name, req[name]); err != nil {
				return err
			}
		}
		state = stateOf(id, c)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) PutAttachment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind, err := domain.ParseAttachmentKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	var a domain.Attachment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}

	var state wizardState
	err = h.sessions.With(id, func(c *wizard.Controller) error {
		if err := c.Draft().SetAttachment(kind, a); err != nil {
			return err
		}
		state = stateOf(id, c)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind, err := domain.ParseAttachmentKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	var state wizardState
	err = h.sessions.With(id, func(c *wizard.Controller) error {
		c.Draft().ClearAttachment(kind)
		state = stateOf(id, c)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) SelectSlot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	t, err := domain.ParseTimeOfDay(req.Time)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	sel, err := h.calendar.TrySelect(date, t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var state wizardState
	err = h.sessions.With(id, func(c *wizard.Controller) error {
		if err := c.Draft().Select(sel); err != nil {
			return err
		}
		state = stateOf(id, c)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) Next(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "next", (*wizard.Controller).Next)
}

func (h *Handlers) Back(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "back", (*wizard.Controller).Back)
}

func (h *Handlers) navigate(w http.ResponseWriter, r *http.Request, direction string, move func(*wizard.Controller) bool) {
	id := chi.URLParam(r, "id")
	var state wizardState
	err := h.sessions.With(id, func(c *wizard.Controller) error {
		moved := move(c)
		state = stateOf(id, c)
		state.Moved = &moved
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	result := "moved"
	if !*state.Moved {
		result = "refused"
	}
	observability.WizardTransitions.WithLabelValues(direction, result).Inc()
	writeJSON(w, http.StatusOK, state)
}

// handingOff finalizes and stores the record in one step, so the wizard is
// only marked finalized once the record is waiting for the payment return.
type handingOff struct {
	ctx      context.Context
	fin      *finalize.Finalizer
	store    handoff.Store
	redirect string
}

func (f *handingOff) Finalize(draft *domain.Draft) (domain.Record, error) {
	rec, err := f.fin.Finalize(draft)
	if err != nil {
		return domain.Record{}, err
	}
	f.redirect, err = f.fin.Handoff(f.ctx, f.store, rec)
	if err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

type confirmResponse struct {
	ReferenceCode string `json:"reference_code"`
	RedirectURL   string `json:"redirect_url"`
}

func (h *Handlers) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		key = id + ":" + key
	}
	existing, err := h.idemp.Get(ctx, key)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if existing != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(existing.Status)
		w.Write(existing.Result)
		return
	}
	ok, err := h.idemp.Begin(ctx, key)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusConflict, errorBody{Error: "request_in_progress", Message: "a request with this Idempotency-Key is in progress"})
		return
	}

	fin := &handingOff{ctx: ctx, fin: h.finalizer, store: h.handoff}
	var rec domain.Record
	err = h.sessions.With(id, func(c *wizard.Controller) error {
		var err error
		rec, err = c.Confirm(fin)
		return err
	})
	if err != nil {
		h.idemp.Abort(ctx, key)
		writeDomainError(w, r, err)
		return
	}
	h.sessions.Delete(id)
	observability.HandoffOps.WithLabelValues("put").Inc()
	observability.BookingsFinalized.Inc()

	log := loggerFrom(ctx).WithField("reference_code", rec.ReferenceCode)
	if h.audit != nil {
		if err := h.audit.LogFinalized(ctx, rec); err != nil {
			log.Warn("audit write failed: ", err)
		}
	}
	log.Info("booking handed off for payment")

	data, _ := json.Marshal(confirmResponse{ReferenceCode: rec.ReferenceCode, RedirectURL: fin.redirect})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	if err := h.idemp.Set(ctx, key, idempotency.Response{Status: http.StatusOK, Result: data}); err != nil {
		log.Warn("idempotency save failed: ", err)
	}
}

type confirmationResponse struct {
	ReferenceCode string               `json:"reference_code"`
	Status        confirmation.Status  `json:"status"`
	Record        domain.Record        `json:"record"`
	Subject       string               `json:"subject"`
	Fields        []confirmation.Field `json:"fields"`
}

// ConfirmationReturn is where the payment provider sends the applicant back.
// The pending booking is consumed by the first call.
func (h *Handlers) ConfirmationReturn(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	res, err := h.confirmation.Resume(r.Context(), ref)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmationResponse{
		ReferenceCode: res.Record.ReferenceCode,
		Status:        res.Status,
		Record:        res.Record,
		Subject:       res.Message.Subject,
		Fields:        res.Message.Fields,
	})
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	for _, ping := range h.ready {
		if err := ping(r.Context()); err != nil {
			loggerFrom(r.Context()).Warn("readiness check failed: ", err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
