// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// BACHandler handles estimation read requests.
type BACHandler struct {
	deps Dependencies
}

// NewBACHandler creates a new BAC handler.
func NewBACHandler(deps Dependencies) *BACHandler {
	return &BACHandler{deps: deps}
}

// HandleGetBAC handles GET /bac/{subject_id} and
// GET /bac/{subject_id}/timeline requests.
func (h *BACHandler) HandleGetBAC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/bac/")
	if subjectID, ok := strings.CutSuffix(path, "/timeline"); ok {
		h.handleTimeline(w, r, subjectID)
		return
	}
	h.handleReading(w, r, path)
}

func (h *BACHandler) handleReading(w http.ResponseWriter, r *http.Request, subjectID string) {
	const op = "api.get_bac"
	if subjectID == "" || strings.Contains(subjectID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	asOf, err := parseInstant(r.URL.Query().Get("as_of"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	reading, err := h.deps.CurrentBAC(r.Context(), subjectID, asOf)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (h *BACHandler) handleTimeline(w http.ResponseWriter, r *http.Request, subjectID string) {
	const op = "api.get_timeline"
	if subjectID == "" || strings.Contains(subjectID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	q := r.URL.Query()
	start, err := parseInstant(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	end, err := parseInstant(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var interval time.Duration
	if raw := q.Get("interval_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		interval = time.Duration(minutes) * time.Minute
	}

	timeline, err := h.deps.TimelineFor(r.Context(), subjectID, start, end, interval)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}

// parseInstant parses an optional RFC3339 query value; empty means "unset".
func parseInstant(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
