package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/brightersight/bactrack/internal/domain/model"
	"github.com/google/uuid"
)

// MemStore is an in-memory Store guarded by a RWMutex. Reads hand out
// copies, so snapshots stay valid while writers proceed.
type MemStore struct {
	mu           sync.RWMutex
	subjects     map[string]model.Subject
	consumptions map[string][]model.Consumption // ordered by timestamp
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		subjects:     make(map[string]model.Subject),
		consumptions: make(map[string][]model.Consumption),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddSubject registers a subject and assigns its ID.
func (s *MemStore) AddSubject(_ context.Context, name string, weightLb *float64) (model.Subject, error) {
	if strings.TrimSpace(name) == "" {
		return model.Subject{}, ErrInvalidSubject
	}

	subject := model.Subject{
		ID:       uuid.NewString(),
		Name:     name,
		WeightLb: weightLb,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[subject.ID] = subject
	return subject, nil
}

// Subject returns one subject by ID.
func (s *MemStore) Subject(_ context.Context, id string) (model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, ok := s.subjects[id]
	if !ok {
		return model.Subject{}, ErrNotFound
	}
	return subject, nil
}

// Subjects returns a snapshot of all subjects, ordered by name for stable
// presentation.
func (s *MemStore) Subjects(_ context.Context) []model.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Subject, 0, len(s.subjects))
	for _, subject := range s.subjects {
		out = append(out, subject)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RecordConsumption appends one record, keeping the log timestamp-ordered.
func (s *MemStore) RecordConsumption(_ context.Context, c model.Consumption) (model.Consumption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[c.SubjectID]; !ok {
		return model.Consumption{}, ErrNotFound
	}

	c.ID = uuid.NewString()
	log := s.consumptions[c.SubjectID]

	// Insert in timestamp order; late-arriving backdated records stay sorted.
	idx := sort.Search(len(log), func(i int) bool { return log[i].Timestamp.After(c.Timestamp) })
	log = append(log, model.Consumption{})
	copy(log[idx+1:], log[idx:])
	log[idx] = c
	s.consumptions[c.SubjectID] = log

	return c, nil
}

// Consumptions returns a copy of the subject's ordered log.
func (s *MemStore) Consumptions(_ context.Context, subjectID string) ([]model.Consumption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.subjects[subjectID]; !ok {
		return nil, ErrNotFound
	}

	log := s.consumptions[subjectID]
	out := make([]model.Consumption, len(log))
	copy(out, log)
	return out, nil
}

// Count returns the number of subjects tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subjects)
}
