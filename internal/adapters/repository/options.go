// Package repository defines the subject/consumption store interface and errors.
package repository

import "github.com/brightersight/bactrack/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacityHint pre-sizes the subject map for deployments that know their
// headcount up front.
func WithCapacityHint(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.subjects = make(map[string]model.Subject, n)
			s.consumptions = make(map[string][]model.Consumption, n)
		}
	}
}
