// Package estimator computes blood alcohol concentration from a subject's
// weight and a log of timestamped consumption events, using a simplified
// Widmark model with linear elimination.
package estimator

import (
	"math"
	"time"
)

// Default physiological and sampling constants.
const (
	// DefaultEthanolDensity is the density of ethanol in g/mL.
	DefaultEthanolDensity = 0.789
	// AverageDistributionRatio is the mean of the male and female Widmark factors.
	AverageDistributionRatio = 0.62
	// MaleDistributionRatio is the Widmark factor for males.
	MaleDistributionRatio = 0.68
	// FemaleDistributionRatio is the Widmark factor for females.
	FemaleDistributionRatio = 0.55
	// DefaultEliminationRate is the assumed metabolism rate in %BAC per hour.
	DefaultEliminationRate = 0.015
	// DefaultDisplayCap bounds reported values for chart scaling.
	DefaultDisplayCap = 0.5
	// DefaultPrecision is the number of decimal places in reported values.
	DefaultPrecision = 3
	// DefaultPoundsToKilograms converts body weight input to kilograms.
	DefaultPoundsToKilograms = 0.453592

	// DefaultWindow is the default timeline lookback.
	DefaultWindow = 6 * time.Hour
	// DefaultSampleInterval is the default timeline sampling step.
	DefaultSampleInterval = 15 * time.Minute

	gramsPerKilogram = 1000
	percentScale     = 100
)

// Event is one consumption with beverage data resolved in.
type Event struct {
	Timestamp  time.Time
	ABVPercent float64 // alcohol by volume, percent
	VolumeML   float64 // serving volume in millilitres
	Label      string  // optional marker label
}

// Point is one sampled value of a BAC trajectory.
type Point struct {
	TS  time.Time
	BAC float64
}

// Marker is an event aligned to the nearest timeline sample.
type Marker struct {
	TS          time.Time
	Label       string
	SampleIndex int
	BAC         float64
}

// Estimator holds the physiological tunables. It is stateless beyond them:
// every call is a pure function of its arguments, so a single Estimator is
// safe for concurrent use.
type Estimator struct {
	ethanolDensity    float64
	distributionRatio float64
	eliminationRate   float64
	displayCap        float64
	precision         int
	poundsToKilograms float64
	window            time.Duration
	sampleInterval    time.Duration
}

// New creates an Estimator with default tunables, adjusted by options.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		ethanolDensity:    DefaultEthanolDensity,
		distributionRatio: AverageDistributionRatio,
		eliminationRate:   DefaultEliminationRate,
		displayCap:        DefaultDisplayCap,
		precision:         DefaultPrecision,
		poundsToKilograms: DefaultPoundsToKilograms,
		window:            DefaultWindow,
		sampleInterval:    DefaultSampleInterval,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Window returns the default timeline lookback.
func (e *Estimator) Window() time.Duration { return e.window }

// SampleInterval returns the default timeline sampling step.
func (e *Estimator) SampleInterval() time.Duration { return e.sampleInterval }

// DisplayCap returns the upper bound of reported values.
func (e *Estimator) DisplayCap() float64 { return e.displayCap }

// AlcoholGrams returns the alcohol mass of one event in grams.
func (e *Estimator) AlcoholGrams(ev Event) float64 {
	return ev.ABVPercent * ev.VolumeML * e.ethanolDensity / percentScale
}

// BACAt estimates the subject's BAC at asOf.
//
// Events after asOf are ignored. A non-positive weight or an empty
// qualifying set yields 0.0; insufficient input is a defined zero, not an
// error. Elimination is applied once over the span from the earliest
// qualifying event to asOf, floored at zero. The result is clamped to the
// display cap and rounded to the configured precision.
func (e *Estimator) BACAt(weightLb float64, events []Event, asOf time.Time) float64 {
	if weightLb <= 0 {
		return 0
	}

	var totalGrams float64
	var earliest time.Time
	qualifying := 0
	for _, ev := range events {
		if ev.Timestamp.After(asOf) {
			continue
		}
		totalGrams += e.AlcoholGrams(ev)
		if qualifying == 0 || ev.Timestamp.Before(earliest) {
			earliest = ev.Timestamp
		}
		qualifying++
	}
	if qualifying == 0 {
		return 0
	}

	weightGrams := weightLb * e.poundsToKilograms * gramsPerKilogram
	bac := totalGrams / (weightGrams * e.distributionRatio) * percentScale

	hoursElapsed := asOf.Sub(earliest).Hours()
	bac -= e.eliminationRate * hoursElapsed
	bac = math.Max(0, bac)

	return e.round(math.Min(bac, e.displayCap))
}

// Timeline samples BACAt from start to end inclusive, stepping by interval.
// A non-positive interval falls back to the configured default. An end
// before start yields no points. The sequence is strictly increasing in
// timestamp with length floor((end-start)/interval)+1.
func (e *Estimator) Timeline(weightLb float64, events []Event, start, end time.Time, interval time.Duration) []Point {
	if interval <= 0 {
		interval = e.sampleInterval
	}
	if end.Before(start) {
		return nil
	}

	n := int(end.Sub(start)/interval) + 1
	points := make([]Point, 0, n)
	for ts := start; !ts.After(end); ts = ts.Add(interval) {
		points = append(points, Point{TS: ts, BAC: e.BACAt(weightLb, events, ts)})
	}
	return points
}

// Markers aligns the events falling inside the sampled window to their
// nearest sample, for chart overlay. The marker takes the BAC of the sample
// it is aligned to.
func (e *Estimator) Markers(events []Event, points []Point) []Marker {
	if len(points) == 0 {
		return nil
	}
	start, end := points[0].TS, points[len(points)-1].TS

	var markers []Marker
	for _, ev := range events {
		if ev.Timestamp.Before(start) || ev.Timestamp.After(end) {
			continue
		}
		idx := nearestIndex(points, ev.Timestamp)
		markers = append(markers, Marker{
			TS:          ev.Timestamp,
			Label:       ev.Label,
			SampleIndex: idx,
			BAC:         points[idx].BAC,
		})
	}
	return markers
}

func nearestIndex(points []Point, ts time.Time) int {
	best := 0
	bestDiff := absDuration(points[0].TS.Sub(ts))
	for i := 1; i < len(points); i++ {
		if d := absDuration(points[i].TS.Sub(ts)); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (e *Estimator) round(v float64) float64 {
	p := math.Pow10(e.precision)
	return math.Round(v*p) / p
}
