package metrics_test

import (
	"testing"

	"github.com/brightersight/bactrack/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Then the registry is available for exposition", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})

		Convey("Then record helpers never panic", func() {
			So(func() {
				metrics.RecordEstimate(0.02)
				metrics.RecordTimelinePoints(25)
				metrics.RecordTimelinePoints(0)
				metrics.RecordCappedReading()
				metrics.RecordEventRecorded()
				metrics.UpdateSubjectsTracked(3)
				metrics.RecordHTTPRequest("bac", "GET", "200")
				metrics.RecordHTTPRequestDuration("bac", "GET", "200", 1.5)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("Then recorded series show up in the registry", func() {
			metrics.RecordEstimate(0.01)
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["bactrack_estimator_estimates_computed_total"], ShouldBeTrue)
			So(names["bactrack_estimator_estimation_duration_milliseconds"], ShouldBeTrue)
		})
	})

	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("bac"),
			metrics.WithHistogramBuckets([]float64{1, 5, 10}),
			metrics.WithMetricsEnabled(true),
		)

		Convey("Then construction registers all series", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Counters with no observations are still registered; gauges gather.
			So(len(families), ShouldBeGreaterThanOrEqualTo, 2)
		})
	})
}
