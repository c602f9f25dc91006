// Package repository defines the subject/consumption store interface and errors.
//
// The estimation engine treats storage as an external collaborator that
// supplies read-only snapshots; this package supplies the in-process
// implementation backing the service.
package repository

import (
	"context"

	"github.com/brightersight/bactrack/internal/domain/model"
)

// Store provides access to subjects and their append-only consumption logs.
type Store interface {
	// AddSubject registers a subject and assigns its ID.
	AddSubject(ctx context.Context, name string, weightLb *float64) (model.Subject, error)

	// Subject returns one subject.
	// Returns ErrNotFound if the subject is unknown.
	Subject(ctx context.Context, id string) (model.Subject, error)

	// Subjects returns a snapshot of all subjects.
	Subjects(ctx context.Context) []model.Subject

	// RecordConsumption appends one consumption record, assigning its ID.
	// Returns ErrNotFound if the referenced subject is unknown.
	RecordConsumption(ctx context.Context, c model.Consumption) (model.Consumption, error)

	// Consumptions returns the subject's records ordered by timestamp.
	// The returned slice is a copy; records are never mutated or deleted.
	Consumptions(ctx context.Context, subjectID string) ([]model.Consumption, error)

	// Count returns the number of subjects tracked.
	Count(ctx context.Context) int
}
