// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brightersight/bactrack/internal/domain/model"
)

// EventsHandler handles consumption event intake.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// eventResponse mirrors the OpenAPI schema for a recorded event.
type eventResponse struct {
	EventID   string    `json:"event_id"`
	SubjectID string    `json:"subject_id"`
	TS        time.Time `json:"ts"`
}

// HandlePostEvent handles POST /events requests.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var ts time.Time
	if req.TS != "" {
		// Validated by req.validate already.
		ts, _ = time.Parse(time.RFC3339, req.TS)
	}

	recorded, err := h.deps.RecordEvent(r.Context(), model.Consumption{
		SubjectID:  req.SubjectID,
		Timestamp:  ts,
		ABVPercent: req.ABVPercent,
		VolumeML:   req.VolumeML,
		Label:      req.Label,
	})
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, eventResponse{
		EventID:   recorded.ID,
		SubjectID: recorded.SubjectID,
		TS:        recorded.Timestamp,
	})
}
