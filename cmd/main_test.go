package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/brightersight/bactrack/internal/adapters/http/api"
	"github.com/brightersight/bactrack/internal/adapters/http/swagger"
	app "github.com/brightersight/bactrack/internal/app"
	"github.com/brightersight/bactrack/internal/config"
	"github.com/brightersight/bactrack/internal/domain/estimator"
	"github.com/brightersight/bactrack/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		_ = logger.Init()

		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("BACTRACK_ADDR", ":4100")
			_ = os.Setenv("BACTRACK_PRECISION", "4")
			defer func() {
				_ = os.Unsetenv("BACTRACK_ADDR")
				_ = os.Unsetenv("BACTRACK_PRECISION")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":4100")
				convey.So(cfg.Precision, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When building the estimator from config", func() {
			cfg := config.New()
			est := estimator.New(
				estimator.WithEthanolDensity(cfg.EthanolDensity),
				estimator.WithDistributionRatio(cfg.DistributionRatio),
				estimator.WithEliminationRate(cfg.EliminationRate),
				estimator.WithDisplayCap(cfg.DisplayCap),
				estimator.WithPrecision(cfg.Precision),
				estimator.WithPoundsToKilograms(cfg.LbsToKg),
				estimator.WithWindow(cfg.Window()),
				estimator.WithSampleInterval(cfg.SampleInterval()),
			)

			convey.Convey("Then the defaults round-trip", func() {
				convey.So(est.Window(), convey.ShouldEqual, 6*time.Hour)
				convey.So(est.SampleInterval(), convey.ShouldEqual, 15*time.Minute)
				convey.So(est.DisplayCap(), convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When testing service and route wiring", func() {
			ctx := context.Background()
			svc := app.New(app.WithLogger(logger.Get()))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc).Register(ctx, mux)

			convey.Convey("Then the server value is constructible", func() {
				srv := &http.Server{
					Addr:              ":0",
					Handler:           mux,
					ReadTimeout:       readTimeout,
					WriteTimeout:      writeTimeout,
					IdleTimeout:       idleTimeout,
					ReadHeaderTimeout: readHeaderTimeout,
				}
				convey.So(srv, convey.ShouldNotBeNil)
			})
		})
	})
}
