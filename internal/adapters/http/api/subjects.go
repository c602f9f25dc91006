// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// SubjectsHandler handles subject registration requests.
type SubjectsHandler struct {
	deps Dependencies
}

// NewSubjectsHandler creates a new subjects handler.
func NewSubjectsHandler(deps Dependencies) *SubjectsHandler {
	return &SubjectsHandler{deps: deps}
}

// subjectResponse mirrors the OpenAPI schema for a created subject.
type subjectResponse struct {
	SubjectID string   `json:"subject_id"`
	Name      string   `json:"name"`
	WeightLb  *float64 `json:"weight_lb,omitempty"`
}

// HandlePostSubject handles POST /subjects requests.
func (h *SubjectsHandler) HandlePostSubject(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_subject"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req subjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	subject, err := h.deps.RegisterSubject(r.Context(), req.Name, req.WeightLb)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, subjectResponse{
		SubjectID: subject.ID,
		Name:      subject.Name,
		WeightLb:  subject.WeightLb,
	})
}
