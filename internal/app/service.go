// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brightersight/bactrack/internal/adapters/repository"
	"github.com/brightersight/bactrack/internal/domain/estimator"
	"github.com/brightersight/bactrack/internal/domain/model"
	"github.com/brightersight/bactrack/internal/domain/types"
	"github.com/brightersight/bactrack/pkg/logger"
	"github.com/brightersight/bactrack/pkg/metrics"
)

// Service wires the store and the estimator behind the API operations.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	est   *estimator.Estimator

	// now is the clock; replaceable for deterministic tests.
	now func() time.Time

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEstimator sets the BAC estimator.
func WithEstimator(est *estimator.Estimator) Option {
	return func(s *Service) {
		if est != nil {
			s.est = est
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used when callers omit instants.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		est: estimator.New(),
		now: func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemStore(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "bac tracking service started",
		logger.Duration("window", s.est.Window()),
		logger.Duration("interval", s.est.SampleInterval()),
		logger.Float64("displayCap", s.est.DisplayCap()),
	)

	return nil
}

// Stop shuts down the service. The service holds no background workers;
// this only flips the lifecycle flag.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "bac tracking service stopped")
}

// RegisterSubject creates a subject. A nil weight is allowed; estimation for
// such a subject reports zero until a weight is known.
func (s *Service) RegisterSubject(ctx context.Context, name string, weightLb *float64) (model.Subject, error) {
	if weightLb != nil && *weightLb <= 0 {
		return model.Subject{}, ErrInvalidWeight
	}

	subject, err := s.store.AddSubject(ctx, name, weightLb)
	if err != nil {
		return model.Subject{}, fmt.Errorf("register subject: %w", err)
	}

	metrics.UpdateSubjectsTracked(s.store.Count(ctx))
	s.logger.Debug(ctx, "subject registered",
		logger.String("subjectID", subject.ID),
		logger.String("name", subject.Name),
	)
	return subject, nil
}

// RecordEvent appends one consumption record. A zero timestamp means now;
// all timestamps are normalized to UTC so history never drifts across zones.
func (s *Service) RecordEvent(ctx context.Context, c model.Consumption) (model.Consumption, error) {
	if c.VolumeML <= 0 {
		return model.Consumption{}, ErrInvalidVolume
	}
	if c.ABVPercent < 0 {
		return model.Consumption{}, ErrInvalidABV
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = s.now()
	}
	c.Timestamp = c.Timestamp.UTC()

	recorded, err := s.store.RecordConsumption(ctx, c)
	if err != nil {
		return model.Consumption{}, fmt.Errorf("record event: %w", err)
	}

	metrics.RecordEventRecorded()
	s.logger.Debug(ctx, "consumption recorded",
		logger.String("subjectID", recorded.SubjectID),
		logger.String("eventID", recorded.ID),
		logger.Float64("abvPercent", recorded.ABVPercent),
		logger.Float64("volumeML", recorded.VolumeML),
		logger.Time("timestamp", recorded.Timestamp),
	)
	return recorded, nil
}

// CurrentBAC estimates the subject's BAC at asOf. A zero asOf means now.
// A reading of 0.0 with Estimable false means "no weight on file", not a
// measured zero.
func (s *Service) CurrentBAC(ctx context.Context, subjectID string, asOf time.Time) (types.Reading, error) {
	subject, events, err := s.snapshot(ctx, subjectID)
	if err != nil {
		return types.Reading{}, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = asOf.UTC()

	began := time.Now()
	bac := s.est.BACAt(subject.Weight(), events, asOf)
	metrics.RecordEstimate(float64(time.Since(began).Nanoseconds()) / 1e6)
	if bac >= s.est.DisplayCap() {
		metrics.RecordCappedReading()
	}

	return types.Reading{
		SubjectID: subject.ID,
		AsOf:      asOf,
		BAC:       bac,
		Estimable: subject.Estimable(),
	}, nil
}

// TimelineFor samples the subject's BAC trajectory over [start, end]. Zero
// bounds default to the configured lookback ending now; a non-positive
// interval defaults to the configured sampling step. Events inside the
// window come back as chart markers aligned to their nearest sample.
func (s *Service) TimelineFor(ctx context.Context, subjectID string, start, end time.Time, interval time.Duration) (types.Timeline, error) {
	subject, events, err := s.snapshot(ctx, subjectID)
	if err != nil {
		return types.Timeline{}, err
	}
	if end.IsZero() {
		end = s.now()
	}
	end = end.UTC()
	if start.IsZero() {
		start = end.Add(-s.est.Window())
	}
	start = start.UTC()
	if interval <= 0 {
		interval = s.est.SampleInterval()
	}

	points := s.est.Timeline(subject.Weight(), events, start, end, interval)
	markers := s.est.Markers(events, points)
	metrics.RecordTimelinePoints(len(points))

	tl := types.Timeline{
		SubjectID: subject.ID,
		Start:     start,
		End:       end,
		Points:    make([]types.TimelinePoint, len(points)),
		Markers:   make([]types.TimelineMarker, len(markers)),
	}
	for i, p := range points {
		tl.Points[i] = types.TimelinePoint{TS: p.TS, BAC: p.BAC}
	}
	for i, m := range markers {
		tl.Markers[i] = types.TimelineMarker{TS: m.TS, Label: m.Label, SampleIndex: m.SampleIndex, BAC: m.BAC}
	}
	return tl, nil
}

// Overview returns every subject with its drink count and current estimate.
func (s *Service) Overview(ctx context.Context) ([]types.SubjectStatus, error) {
	now := s.now()

	subjects := s.store.Subjects(ctx)
	out := make([]types.SubjectStatus, 0, len(subjects))
	for _, subject := range subjects {
		events, err := s.store.Consumptions(ctx, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("overview: %w", err)
		}
		bac := s.est.BACAt(subject.Weight(), toEvents(events), now)
		out = append(out, types.SubjectStatus{
			SubjectID:  subject.ID,
			Name:       subject.Name,
			DrinkCount: len(events),
			BAC:        bac,
			Estimable:  subject.Estimable(),
		})
	}

	metrics.UpdateSubjectsTracked(len(subjects))
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"window":         s.est.Window().String(),
		"sampleInterval": s.est.SampleInterval().String(),
		"displayCap":     s.est.DisplayCap(),
	}
	if s.started {
		n := s.store.Count(context.Background())
		stats["subjects"] = n
		metrics.UpdateSubjectsTracked(n)
	}
	return stats
}

// snapshot fetches the subject and its consumption log as estimator events.
func (s *Service) snapshot(ctx context.Context, subjectID string) (model.Subject, []estimator.Event, error) {
	subject, err := s.store.Subject(ctx, subjectID)
	if err != nil {
		return model.Subject{}, nil, fmt.Errorf("subject lookup: %w", err)
	}
	consumptions, err := s.store.Consumptions(ctx, subjectID)
	if err != nil {
		return model.Subject{}, nil, fmt.Errorf("consumption lookup: %w", err)
	}
	return subject, toEvents(consumptions), nil
}

func toEvents(consumptions []model.Consumption) []estimator.Event {
	events := make([]estimator.Event, len(consumptions))
	for i, c := range consumptions {
		events[i] = estimator.Event{
			Timestamp:  c.Timestamp,
			ABVPercent: c.ABVPercent,
			VolumeML:   c.VolumeML,
			Label:      c.Label,
		}
	}
	return events
}
