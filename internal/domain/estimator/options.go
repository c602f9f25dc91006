package estimator

import "time"

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithEthanolDensity sets the ethanol density in g/mL.
func WithEthanolDensity(density float64) Option {
	return func(e *Estimator) {
		if density > 0 {
			e.ethanolDensity = density
		}
	}
}

// WithDistributionRatio sets the Widmark distribution ratio. Callers wanting
// sex-specific behavior pass MaleDistributionRatio or FemaleDistributionRatio.
func WithDistributionRatio(ratio float64) Option {
	return func(e *Estimator) {
		if ratio > 0 {
			e.distributionRatio = ratio
		}
	}
}

// WithEliminationRate sets the metabolism rate in %BAC per hour.
func WithEliminationRate(rate float64) Option {
	return func(e *Estimator) {
		if rate > 0 {
			e.eliminationRate = rate
		}
	}
}

// WithDisplayCap sets the upper bound of reported values.
func WithDisplayCap(cap float64) Option {
	return func(e *Estimator) {
		if cap > 0 {
			e.displayCap = cap
		}
	}
}

// WithPrecision sets the number of decimal places in reported values.
func WithPrecision(precision int) Option {
	return func(e *Estimator) {
		if precision >= 0 {
			e.precision = precision
		}
	}
}

// WithPoundsToKilograms sets the weight conversion factor.
func WithPoundsToKilograms(factor float64) Option {
	return func(e *Estimator) {
		if factor > 0 {
			e.poundsToKilograms = factor
		}
	}
}

// WithWindow sets the default timeline lookback.
func WithWindow(window time.Duration) Option {
	return func(e *Estimator) {
		if window > 0 {
			e.window = window
		}
	}
}

// WithSampleInterval sets the default timeline sampling step.
func WithSampleInterval(interval time.Duration) Option {
	return func(e *Estimator) {
		if interval > 0 {
			e.sampleInterval = interval
		}
	}
}
