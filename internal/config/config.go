// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"time"

	"github.com/brightersight/bactrack/internal/domain/estimator"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":4001".
	Addr string `koanf:"addr"`

	// EthanolDensity is the density of ethanol in g/mL.
	EthanolDensity float64 `koanf:"ethanol_density"`

	// DistributionRatio is the Widmark factor applied to every subject.
	DistributionRatio float64 `koanf:"distribution_ratio"`

	// MaleDistributionRatio and FemaleDistributionRatio are the sex-specific
	// Widmark factors, exposed for deployments that switch the ratio.
	MaleDistributionRatio   float64 `koanf:"male_distribution_ratio"`
	FemaleDistributionRatio float64 `koanf:"female_distribution_ratio"`

	// EliminationRate is the metabolism rate in %BAC per hour.
	EliminationRate float64 `koanf:"elimination_rate"`

	// DisplayCap bounds reported BAC values for chart scaling.
	DisplayCap float64 `koanf:"display_cap"`

	// Precision is the number of decimal places in reported BAC values.
	Precision int `koanf:"precision"`

	// LbsToKg converts body weight input from pounds to kilograms.
	LbsToKg float64 `koanf:"lbs_to_kg"`

	// HistoryHours is the default timeline lookback in hours.
	HistoryHours int `koanf:"history_hours"`

	// IntervalMinutes is the default timeline sampling step in minutes.
	IntervalMinutes int `koanf:"interval_minutes"`

	// LegalLimit is the reference BAC threshold surfaced to chart consumers.
	LegalLimit float64 `koanf:"legal_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":4001",
		EthanolDensity:          estimator.DefaultEthanolDensity,
		DistributionRatio:       estimator.AverageDistributionRatio,
		MaleDistributionRatio:   estimator.MaleDistributionRatio,
		FemaleDistributionRatio: estimator.FemaleDistributionRatio,
		EliminationRate:         estimator.DefaultEliminationRate,
		DisplayCap:              estimator.DefaultDisplayCap,
		Precision:               estimator.DefaultPrecision,
		LbsToKg:                 estimator.DefaultPoundsToKilograms,
		HistoryHours:            int(estimator.DefaultWindow / time.Hour),
		IntervalMinutes:         int(estimator.DefaultSampleInterval / time.Minute),
		LegalLimit:              0.08,
	}
}

// Window returns the default timeline lookback as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.HistoryHours) * time.Hour
}

// SampleInterval returns the default sampling step as a duration.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}
