package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then every collector is registered", func() {
				So(manager, ShouldNotBeNil)
				manager.cacheEntries.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names use the namespace and subsystem", func() {
				manager.cacheEntries.Set(1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_ns_test_sub_cache_entries" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestWebhookAndCacheMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording webhook fetches", func() {
			before := testutil.ToFloat64(globalManager.webhookFetches.WithLabelValues("metrics_test_source", OutcomeSuccess))
			RecordWebhookFetch("metrics_test_source", OutcomeSuccess, 12)
			RecordWebhookFetch("metrics_test_source", OutcomeSuccess, 30)
			UpdateSummaryItems("metrics_test_source", 4)

			Convey("Then counters and gauges reflect the calls", func() {
				after := testutil.ToFloat64(globalManager.webhookFetches.WithLabelValues("metrics_test_source", OutcomeSuccess))
				So(after-before, ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.summaryItems.WithLabelValues("metrics_test_source")), ShouldEqual, 4)
			})
		})

		Convey("When recording cache activity", func() {
			RecordCacheHit("metrics_test_key")
			RecordCacheMiss("metrics_test_key")
			RecordCacheLoad("metrics_test_key", true)
			RecordCacheLoad("metrics_test_key", false)
			UpdateCacheEntries(2)

			Convey("Then each label set is tracked separately", func() {
				So(testutil.ToFloat64(globalManager.cacheHits.WithLabelValues("metrics_test_key")), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.cacheMisses.WithLabelValues("metrics_test_key")), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.cacheLoads.WithLabelValues("metrics_test_key", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.cacheLoads.WithLabelValues("metrics_test_key", "error")), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.cacheEntries), ShouldEqual, 2)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording render, HTTP, error and system metrics", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordDashboardRender(true, 42)
					RecordDashboardRender(false, 7)
					RecordHTTPRequest("dashboard", "GET", "200")
					RecordHTTPRequestDuration("dashboard", "GET", "200", 5.0)
					RecordErrorByComponent("webhook", OutcomeStatus)
					RecordErrorByType("server_error", "high")
					RecordErrorByEndpoint("dashboard", "GET", "upstream_error")
					RecordErrorLatency("http", "upstream_error", 100.0)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.4)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordHTTPRequest("healthz", "GET", "200")

		Convey("Then it exposes govdash metrics only", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "govdash_dashboard_"), ShouldBeTrue)
			}
		})
	})
}
