// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/brightersight/bactrack/internal/domain/model"
	"github.com/brightersight/bactrack/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Intake operations feed the estimator's event log.
	RegisterSubject(ctx context.Context, name string, weightLb *float64) (model.Subject, error)
	RecordEvent(ctx context.Context, c model.Consumption) (model.Consumption, error)

	// Read operations expose estimation results.
	CurrentBAC(ctx context.Context, subjectID string, asOf time.Time) (types.Reading, error)
	TimelineFor(ctx context.Context, subjectID string, start, end time.Time, interval time.Duration) (types.Timeline, error)
	Overview(ctx context.Context) ([]types.SubjectStatus, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	subjectsHandler *SubjectsHandler
	eventsHandler   *EventsHandler
	bacHandler      *BACHandler
	overviewHandler *OverviewHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		subjectsHandler: NewSubjectsHandler(deps),
		eventsHandler:   NewEventsHandler(deps),
		bacHandler:      NewBACHandler(deps),
		overviewHandler: NewOverviewHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/subjects", MetricsMiddleware(s.subjectsHandler.HandlePostSubject, "subjects"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/bac/", MetricsMiddleware(s.bacHandler.HandleGetBAC, "bac"))
	mux.HandleFunc("/overview", MetricsMiddleware(s.overviewHandler.HandleGetOverview, "overview"))
}

// subjectRequest mirrors the OpenAPI schema for POST /subjects.
type subjectRequest struct {
	Name     string   `json:"name"`
	WeightLb *float64 `json:"weight_lb"`
}

func (s subjectRequest) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("missing name")
	}
	if s.WeightLb != nil && *s.WeightLb <= 0 {
		return errors.New("weight_lb must be positive when set")
	}
	return nil
}

// eventRequest mirrors the OpenAPI schema for POST /events. Beverage data
// travels with the event so a later catalog edit cannot rewrite history.
type eventRequest struct {
	SubjectID  string  `json:"subject_id"`
	ABVPercent float64 `json:"abv_percent"`
	VolumeML   float64 `json:"volume_ml"`
	Label      string  `json:"label"`
	TS         string  `json:"ts"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.SubjectID) == "":
		return errors.New("missing subject_id")
	case e.VolumeML <= 0:
		return errors.New("volume_ml must be positive")
	case e.ABVPercent < 0:
		return errors.New("abv_percent must not be negative")
	}
	if e.TS != "" {
		if _, err := time.Parse(time.RFC3339, e.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404 without coupling
// the handler layer to specific store implementations.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
