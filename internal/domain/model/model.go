// Package model contains domain records passed between layers.
package model

import "time"

// Subject is a person whose consumption is tracked.
// WeightLb is nil when the subject never supplied a weight; estimation then
// yields 0.0 by contract rather than an error.
type Subject struct {
	ID       string
	Name     string
	WeightLb *float64 // body weight in pounds
}

// Estimable reports whether the subject carries enough data to estimate BAC.
func (s Subject) Estimable() bool {
	return s.WeightLb != nil && *s.WeightLb > 0
}

// Weight returns the subject weight in pounds, or 0 when unset.
func (s Subject) Weight() float64 {
	if s.WeightLb == nil {
		return 0
	}
	return *s.WeightLb
}

// Consumption records one beverage consumed by one subject at one instant.
// Beverage data is snapshotted at record time so later catalog edits cannot
// rewrite historical curves. Records are append-only.
type Consumption struct {
	ID         string
	SubjectID  string
	Timestamp  time.Time // UTC
	ABVPercent float64   // alcohol by volume, percent
	VolumeML   float64   // serving volume in millilitres
	Label      string    // display name for chart markers, optional
}
