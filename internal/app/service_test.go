package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brightersight/bactrack/internal/adapters/repository"
	app "github.com/brightersight/bactrack/internal/app"
	"github.com/brightersight/bactrack/internal/domain/estimator"
	"github.com/brightersight/bactrack/internal/domain/model"
	"github.com/brightersight/bactrack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestService(ctx context.Context, now time.Time) *app.Service {
	_ = logger.Init()
	svc := app.New(
		app.WithStore(repository.NewMemStore(ctx)),
		app.WithEstimator(estimator.New()),
		app.WithLogger(logger.Get()),
		app.WithClock(func() time.Time { return now }),
	)
	_ = svc.Start(ctx)
	return svc
}

func TestService(t *testing.T) {
	Convey("Given a started service with a fixed clock", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)
		svc := newTestService(ctx, now)

		weight := 150.0
		subject, err := svc.RegisterSubject(ctx, "Ada", &weight)
		So(err, ShouldBeNil)

		Convey("When a beer is recorded with a zero timestamp", func() {
			recorded, err := svc.RecordEvent(ctx, model.Consumption{
				SubjectID:  subject.ID,
				ABVPercent: 5.0,
				VolumeML:   355,
				Label:      "Lager",
			})

			Convey("Then the clock fills the timestamp in UTC", func() {
				So(err, ShouldBeNil)
				So(recorded.ID, ShouldNotBeEmpty)
				So(recorded.Timestamp.Equal(now), ShouldBeTrue)
			})

			Convey("Then the current estimate matches the point formula", func() {
				reading, err := svc.CurrentBAC(ctx, subject.ID, time.Time{})
				So(err, ShouldBeNil)
				So(reading.BAC, ShouldEqual, 0.033)
				So(reading.AsOf.Equal(now), ShouldBeTrue)
				So(reading.Estimable, ShouldBeTrue)
			})

			Convey("Then two hours later elimination shows", func() {
				reading, err := svc.CurrentBAC(ctx, subject.ID, now.Add(2*time.Hour))
				So(err, ShouldBeNil)
				So(reading.BAC, ShouldEqual, 0.003)
			})

			Convey("And the default timeline covers the configured window", func() {
				tl, err := svc.TimelineFor(ctx, subject.ID, time.Time{}, time.Time{}, 0)
				So(err, ShouldBeNil)
				So(tl.Start.Equal(now.Add(-6*time.Hour)), ShouldBeTrue)
				So(tl.End.Equal(now), ShouldBeTrue)
				So(len(tl.Points), ShouldEqual, 25)
				So(tl.Points[len(tl.Points)-1].BAC, ShouldEqual, 0.033)

				Convey("And the event shows up as a marker on the last sample", func() {
					So(len(tl.Markers), ShouldEqual, 1)
					So(tl.Markers[0].Label, ShouldEqual, "Lager")
					So(tl.Markers[0].SampleIndex, ShouldEqual, len(tl.Points)-1)
					So(tl.Markers[0].BAC, ShouldEqual, 0.033)
				})
			})

			Convey("And the overview reports the drink count and estimate", func() {
				statuses, err := svc.Overview(ctx)
				So(err, ShouldBeNil)
				So(len(statuses), ShouldEqual, 1)
				So(statuses[0].Name, ShouldEqual, "Ada")
				So(statuses[0].DrinkCount, ShouldEqual, 1)
				So(statuses[0].BAC, ShouldEqual, 0.033)
			})
		})

		Convey("When recording with invalid beverage data", func() {
			_, err := svc.RecordEvent(ctx, model.Consumption{SubjectID: subject.ID, VolumeML: 0})
			So(errors.Is(err, app.ErrInvalidVolume), ShouldBeTrue)

			_, err = svc.RecordEvent(ctx, model.Consumption{SubjectID: subject.ID, VolumeML: 355, ABVPercent: -1})
			So(errors.Is(err, app.ErrInvalidABV), ShouldBeTrue)
		})

		Convey("When registering with a non-positive weight", func() {
			bad := -10.0
			_, err := svc.RegisterSubject(ctx, "Bad", &bad)
			So(errors.Is(err, app.ErrInvalidWeight), ShouldBeTrue)
		})

		Convey("When a subject has no weight on file", func() {
			noWeight, err := svc.RegisterSubject(ctx, "Grace", nil)
			So(err, ShouldBeNil)
			_, err = svc.RecordEvent(ctx, model.Consumption{
				SubjectID: noWeight.ID, ABVPercent: 40, VolumeML: 44,
			})
			So(err, ShouldBeNil)

			Convey("Then the reading is zero and flagged not estimable", func() {
				reading, err := svc.CurrentBAC(ctx, noWeight.ID, time.Time{})
				So(err, ShouldBeNil)
				So(reading.BAC, ShouldEqual, 0.0)
				So(reading.Estimable, ShouldBeFalse)
			})
		})

		Convey("When querying an unknown subject", func() {
			_, err := svc.CurrentBAC(ctx, "missing", time.Time{})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = svc.TimelineFor(ctx, "missing", time.Time{}, time.Time{}, 0)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When asking for stats", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["subjects"], ShouldEqual, 1)
			So(stats["window"], ShouldEqual, "6h0m0s")
			So(stats["sampleInterval"], ShouldEqual, "15m0s")
		})

		Convey("When the service stops", func() {
			svc.Stop()
			So(svc.GetStats()["started"], ShouldBeFalse)
		})
	})
}
