// Package types contains common read shapes used across the application
package types

import "time"

// Reading is a point-in-time BAC estimate for a subject.
type Reading struct {
	SubjectID string    `json:"subject_id"`
	AsOf      time.Time `json:"as_of"`
	BAC       float64   `json:"bac"`
	Estimable bool      `json:"estimable"`
}

// TimelinePoint is one sampled BAC value.
type TimelinePoint struct {
	TS  time.Time `json:"ts"`
	BAC float64   `json:"bac"`
}

// TimelineMarker overlays a consumption event on the sampled curve.
type TimelineMarker struct {
	TS          time.Time `json:"ts"`
	Label       string    `json:"label,omitempty"`
	SampleIndex int       `json:"sample_index"`
	BAC         float64   `json:"bac"`
}

// Timeline is a sampled BAC trajectory plus the events inside the window.
type Timeline struct {
	SubjectID string           `json:"subject_id"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Points    []TimelinePoint  `json:"points"`
	Markers   []TimelineMarker `json:"markers"`
}

// SubjectStatus is one row of the host overview.
type SubjectStatus struct {
	SubjectID  string  `json:"subject_id"`
	Name       string  `json:"name"`
	DrinkCount int     `json:"drink_count"`
	BAC        float64 `json:"bac"`
	Estimable  bool    `json:"estimable"`
}
