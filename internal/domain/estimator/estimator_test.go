package estimator_test

import (
	"testing"
	"time"

	"github.com/brightersight/bactrack/internal/domain/estimator"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBACAt(t *testing.T) {
	Convey("Given an estimator with default tunables", t, func() {
		est := estimator.New()
		now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)
		beer := estimator.Event{Timestamp: now, ABVPercent: 5.0, VolumeML: 355, Label: "Lager"}

		Convey("When the subject weighs 150 lb and drinks one 355 mL beer at 5% ABV", func() {
			Convey("Then the estimate at consumption time is 0.033", func() {
				So(est.BACAt(150, []estimator.Event{beer}, now), ShouldEqual, 0.033)
			})

			Convey("Then two hours later elimination brings it to 0.003", func() {
				So(est.BACAt(150, []estimator.Event{beer}, now.Add(2*time.Hour)), ShouldEqual, 0.003)
			})

			Convey("Then after many hours the estimate floors at zero", func() {
				So(est.BACAt(150, []estimator.Event{beer}, now.Add(12*time.Hour)), ShouldEqual, 0.0)
			})
		})

		Convey("When the weight is missing or non-positive", func() {
			events := []estimator.Event{beer}

			Convey("Then the estimate is zero regardless of history", func() {
				So(est.BACAt(0, events, now), ShouldEqual, 0.0)
				So(est.BACAt(-10, events, now), ShouldEqual, 0.0)
			})
		})

		Convey("When there are no events", func() {
			So(est.BACAt(150, nil, now), ShouldEqual, 0.0)
		})

		Convey("When all events are after the evaluation instant", func() {
			later := estimator.Event{Timestamp: now.Add(time.Hour), ABVPercent: 5, VolumeML: 355}
			So(est.BACAt(150, []estimator.Event{later}, now), ShouldEqual, 0.0)
		})

		Convey("When the beverage is non-alcoholic", func() {
			soda := estimator.Event{Timestamp: now, ABVPercent: 0, VolumeML: 1000}

			Convey("Then it contributes no alcohol regardless of volume", func() {
				So(est.AlcoholGrams(soda), ShouldEqual, 0.0)
				So(est.BACAt(150, []estimator.Event{soda}, now.Add(time.Hour)), ShouldEqual, 0.0)
			})
		})

		Convey("When two identical beverages are consumed simultaneously", func() {
			one := est.BACAt(150, []estimator.Event{beer}, now)
			two := est.BACAt(150, []estimator.Event{beer, beer}, now)

			Convey("Then the estimate is non-decreasing in alcohol mass", func() {
				So(two, ShouldBeGreaterThanOrEqualTo, one)
				So(two, ShouldEqual, 0.066)
			})
		})

		Convey("When holding a single event fixed and moving the instant forward", func() {
			t1 := est.BACAt(150, []estimator.Event{beer}, now.Add(30*time.Minute))
			t2 := est.BACAt(150, []estimator.Event{beer}, now.Add(90*time.Minute))

			Convey("Then the estimate decays monotonically", func() {
				So(t1, ShouldBeGreaterThanOrEqualTo, t2)
			})
		})

		Convey("When an implausibly large amount is consumed", func() {
			keg := estimator.Event{Timestamp: now, ABVPercent: 40, VolumeML: 10000}

			Convey("Then the estimate is clamped to the display cap", func() {
				So(est.BACAt(100, []estimator.Event{keg}, now), ShouldEqual, estimator.DefaultDisplayCap)
			})
		})

		Convey("Then the clamp invariant holds across a spread of inputs", func() {
			weights := []float64{-5, 0, 90, 150, 300}
			hours := []time.Duration{0, time.Hour, 4 * time.Hour, 24 * time.Hour}
			for _, w := range weights {
				for _, h := range hours {
					got := est.BACAt(w, []estimator.Event{beer}, now.Add(h))
					So(got, ShouldBeGreaterThanOrEqualTo, 0.0)
					So(got, ShouldBeLessThanOrEqualTo, estimator.DefaultDisplayCap)
				}
			}
		})
	})

	Convey("Given adjusted physiological tunables", t, func() {
		now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)
		beer := estimator.Event{Timestamp: now, ABVPercent: 5.0, VolumeML: 355}

		Convey("When using the female distribution ratio", func() {
			est := estimator.New(estimator.WithDistributionRatio(estimator.FemaleDistributionRatio))
			avg := estimator.New()

			Convey("Then the same intake estimates higher", func() {
				So(est.BACAt(150, []estimator.Event{beer}, now),
					ShouldBeGreaterThan, avg.BACAt(150, []estimator.Event{beer}, now))
			})
		})

		Convey("When elimination is disabled in all but name", func() {
			est := estimator.New(estimator.WithEliminationRate(0.0001))

			Convey("Then the estimate barely moves over two hours", func() {
				So(est.BACAt(150, []estimator.Event{beer}, now.Add(2*time.Hour)), ShouldEqual, 0.033)
			})
		})

		Convey("When precision is widened", func() {
			est := estimator.New(estimator.WithPrecision(5))
			So(est.BACAt(150, []estimator.Event{beer}, now), ShouldAlmostEqual, 0.03320, 0.000005)
		})

		Convey("When options receive invalid values", func() {
			est := estimator.New(
				estimator.WithEthanolDensity(-1),
				estimator.WithDistributionRatio(0),
				estimator.WithEliminationRate(-0.5),
				estimator.WithDisplayCap(0),
				estimator.WithPrecision(-1),
				estimator.WithPoundsToKilograms(0),
				estimator.WithWindow(-time.Hour),
				estimator.WithSampleInterval(0),
			)

			Convey("Then defaults are kept", func() {
				So(est.BACAt(150, []estimator.Event{beer}, now), ShouldEqual, 0.033)
				So(est.Window(), ShouldEqual, estimator.DefaultWindow)
				So(est.SampleInterval(), ShouldEqual, estimator.DefaultSampleInterval)
				So(est.DisplayCap(), ShouldEqual, estimator.DefaultDisplayCap)
			})
		})
	})
}

func TestTimeline(t *testing.T) {
	Convey("Given an estimator and a six-hour window", t, func() {
		est := estimator.New()
		end := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)
		start := end.Add(-6 * time.Hour)
		beer := estimator.Event{Timestamp: start.Add(30 * time.Minute), ABVPercent: 5.0, VolumeML: 355, Label: "Lager"}

		Convey("When sampling at 15-minute intervals", func() {
			points := est.Timeline(150, []estimator.Event{beer}, start, end, 15*time.Minute)

			Convey("Then the length follows floor((end-start)/interval)+1", func() {
				So(len(points), ShouldEqual, 25)
			})

			Convey("Then timestamps are strictly increasing from start to end", func() {
				So(points[0].TS.Equal(start), ShouldBeTrue)
				So(points[len(points)-1].TS.Equal(end), ShouldBeTrue)
				for i := 1; i < len(points); i++ {
					So(points[i].TS.After(points[i-1].TS), ShouldBeTrue)
				}
			})

			Convey("Then samples before the event are zero and each value matches BACAt", func() {
				So(points[0].BAC, ShouldEqual, 0.0)
				So(points[1].BAC, ShouldEqual, 0.0)
				for _, p := range points {
					So(p.BAC, ShouldEqual, est.BACAt(150, []estimator.Event{beer}, p.TS))
					So(p.BAC, ShouldBeGreaterThanOrEqualTo, 0.0)
					So(p.BAC, ShouldBeLessThanOrEqualTo, estimator.DefaultDisplayCap)
				}
			})
		})

		Convey("When the interval does not divide the window evenly", func() {
			points := est.Timeline(150, nil, start, start.Add(70*time.Minute), 30*time.Minute)

			Convey("Then the sweep stops at the last instant not after end", func() {
				So(len(points), ShouldEqual, 3)
			})
		})

		Convey("When the interval is non-positive", func() {
			points := est.Timeline(150, nil, start, end, 0)

			Convey("Then the default sample interval applies", func() {
				So(len(points), ShouldEqual, 25)
			})
		})

		Convey("When end precedes start", func() {
			So(est.Timeline(150, nil, end, start, 15*time.Minute), ShouldBeEmpty)
		})
	})
}

func TestMarkers(t *testing.T) {
	Convey("Given a sampled window with events in and out of it", t, func() {
		est := estimator.New()
		end := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)
		start := end.Add(-6 * time.Hour)
		inside := estimator.Event{Timestamp: start.Add(7 * time.Minute), ABVPercent: 5, VolumeML: 355, Label: "Lager"}
		before := estimator.Event{Timestamp: start.Add(-time.Hour), ABVPercent: 5, VolumeML: 355}
		events := []estimator.Event{before, inside}
		points := est.Timeline(150, events, start, end, 15*time.Minute)

		Convey("When computing markers", func() {
			markers := est.Markers(events, points)

			Convey("Then only events inside the window are kept", func() {
				So(len(markers), ShouldEqual, 1)
				So(markers[0].Label, ShouldEqual, "Lager")
			})

			Convey("Then the marker aligns to the nearest sample and takes its value", func() {
				So(markers[0].SampleIndex, ShouldEqual, 0)
				So(markers[0].BAC, ShouldEqual, points[0].BAC)
			})
		})

		Convey("When there are no points", func() {
			So(est.Markers(events, nil), ShouldBeEmpty)
		})
	})
}
