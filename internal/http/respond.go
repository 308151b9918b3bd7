package http

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/finalize"
	"github.com/robertarktes/visa-appointments/internal/session"
	"github.com/robertarktes/visa-appointments/internal/slots"
	"github.com/robertarktes/visa-appointments/internal/wizard"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorBody{Error: code, Message: err.Error()})
}

var errorStatuses = []struct {
	target error
	status int
	code   string
}{
	{session.ErrNotFound, http.StatusNotFound, "session_not_found"},
	{confirmation.ErrNoPendingBooking, http.StatusNotFound, "no_pending_booking"},
	{domain.ErrUnknownField, http.StatusBadRequest, "unknown_field"},
	{domain.ErrUnknownCode, http.StatusBadRequest, "invalid_value"},
	{domain.ErrInvalidDate, http.StatusBadRequest, "invalid_date"},
	{domain.ErrInvalidTime, http.StatusBadRequest, "invalid_time"},
	{domain.ErrAttachmentEmpty, http.StatusUnprocessableEntity, "invalid_attachment"},
	{domain.ErrAttachmentType, http.StatusUnprocessableEntity, "invalid_attachment"},
	{domain.ErrTimeWithoutDate, http.StatusUnprocessableEntity, "time_without_date"},
	{slots.ErrDateUnavailable, http.StatusUnprocessableEntity, "date_unavailable"},
	{slots.ErrSlotUnavailable, http.StatusUnprocessableEntity, "slot_unavailable"},
	{finalize.ErrIncompleteDraft, http.StatusUnprocessableEntity, "incomplete_draft"},
	{wizard.ErrNotOnSummaryStep, http.StatusConflict, "not_on_summary_step"},
	{wizard.ErrAlreadyFinalized, http.StatusConflict, "already_finalized"},
}

// writeDomainError maps a service error to its HTTP status. Unknown errors
// are logged and reported as 500 without details.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			writeError(w, e.status, e.code, err)
			return
		}
	}
	loggerFrom(r.Context()).Error("request failed: ", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal", Message: "internal error"})
}
