package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the fairdraw namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "fairdraw")
				So(manager.subsystem, ShouldEqual, "draw")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("pfx_"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordDraw(4, 6, 0.2)

			Convey("Then names carry the prefix and labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, mf := range families {
					if mf.GetName() == "test_namespace_test_subsystem_pfx_draws_generated_total" {
						found = true
						So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
						So(mf.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestDrawMetrics(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When draws are recorded", func() {
			manager.RecordDraw(6, 6, 1.5)
			manager.RecordDraw(10, 15, 3.0)

			Convey("Then the counter and histograms advance", func() {
				So(testutil.ToFloat64(manager.drawsGenerated), ShouldEqual, 2)
				So(testutil.CollectAndCount(manager.matchesPerDraw), ShouldEqual, 1)
			})
		})

		Convey("When errors and recoveries are recorded", func() {
			manager.RecordDrawError("invalid_input")
			manager.RecordDrawError("invalid_input")
			manager.RecordRecovery("fill_deficit", 3)
			manager.RecordRecovery("trim_excess", 0)
			manager.RecordForcedRepeats(2)
			manager.RecordForcedRepeats(0)

			Convey("Then only positive amounts are counted", func() {
				So(testutil.ToFloat64(manager.drawErrors.WithLabelValues("invalid_input")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.drawRecoveries.WithLabelValues("fill_deficit")), ShouldEqual, 3)
				So(testutil.CollectAndCount(manager.drawRecoveries), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.forcedRepeats), ShouldEqual, 2)
			})
		})

		Convey("When the stored draw gauge is updated", func() {
			manager.UpdateStoredDraws(7)
			manager.UpdateStoredDraws(5)

			Convey("Then it holds the latest value", func() {
				So(testutil.ToFloat64(manager.storedDraws), ShouldEqual, 5)
			})
		})
	})
}

func TestHTTPAndErrorMetrics(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		manager.RecordHTTPRequest("/draws", "POST", 201)
		manager.RecordHTTPRequest("/draws", "POST", 201)
		manager.RecordHTTPRequestDuration("/draws", "POST", 201, 12)
		manager.RecordErrorByComponent("api", "bad_request")
		manager.RecordErrorByType("bad_request", "warning")
		manager.RecordErrorByEndpoint("/draws", "POST", "bad_request")
		manager.RecordErrorLatency("api", "bad_request", 1)

		So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("/draws", "POST", "201")), ShouldEqual, 2)
		So(testutil.ToFloat64(manager.errorRateByComponent.WithLabelValues("api", "bad_request")), ShouldEqual, 1)
		So(testutil.ToFloat64(manager.errorRateByType.WithLabelValues("bad_request", "warning")), ShouldEqual, 1)
		So(testutil.ToFloat64(manager.errorRateByEndpoint.WithLabelValues("/draws", "POST", "bad_request")), ShouldEqual, 1)
	})
}

func TestSystemMetrics(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		manager.UpdateSystemMemoryUsage(1024)
		manager.UpdateSystemGoroutineCount(12)
		manager.RecordSystemGCPauseTime(0.3)

		So(testutil.ToFloat64(manager.systemMemoryUsage), ShouldEqual, 1024)
		So(testutil.ToFloat64(manager.systemGoroutineCount), ShouldEqual, 12)
	})
}

func TestDisabledManager(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		manager := NewManager(
			WithPrometheusRegistry(prometheus.NewRegistry()),
			WithMetricsEnabled(false),
		)

		manager.RecordDraw(4, 6, 1)
		manager.RecordDrawError("x")
		manager.UpdateStoredDraws(3)

		Convey("Then observations are ignored", func() {
			So(testutil.ToFloat64(manager.drawsGenerated), ShouldEqual, 0)
			So(testutil.ToFloat64(manager.storedDraws), ShouldEqual, 0)
			So(testutil.CollectAndCount(manager.drawErrors), ShouldEqual, 0)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global registry", t, func() {
		before := testutil.ToFloat64(globalManager.drawsGenerated)

		RecordDraw(2, 1, 0.1)
		RecordRecovery("pad", 1)
		UpdateStoredDraws(1)
		RecordRepositoryQueryLatency(0.01)
		RecordRepositoryUpdateLatency(0.01)

		Convey("Then the package helpers record on it", func() {
			So(testutil.ToFloat64(globalManager.drawsGenerated), ShouldEqual, before+1)
			So(GetRegistry(), ShouldNotBeNil)

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
