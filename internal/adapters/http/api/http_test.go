package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/govdash/internal/adapters/http/api"
	"github.com/okian/govdash/internal/adapters/webhook"
	service "github.com/okian/govdash/internal/app"
	"github.com/okian/govdash/internal/domain/chart"
	"github.com/okian/govdash/internal/domain/model"
	"github.com/okian/govdash/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// Mock implementations for testing
type mockDependencies struct {
	dashboard    model.Dashboard
	dashboardErr error
	tables       map[string]model.SummaryTable
	series       map[string]model.CountSeries
	lookupErr    error
	clearErr     error
	cleared      int
}

func (m *mockDependencies) Dashboard(ctx context.Context) (model.Dashboard, error) {
	if m.dashboardErr != nil {
		return model.Dashboard{}, m.dashboardErr
	}
	return m.dashboard, nil
}

func (m *mockDependencies) Summaries(ctx context.Context, slug string) (model.SummaryTable, error) {
	if m.lookupErr != nil {
		return model.SummaryTable{}, m.lookupErr
	}
	t, ok := m.tables[slug]
	if !ok {
		return model.SummaryTable{}, fmt.Errorf("%w: %q", service.ErrUnknownSource, slug)
	}
	return t, nil
}

func (m *mockDependencies) Counts(ctx context.Context, slug string) (model.CountSeries, error) {
	if m.lookupErr != nil {
		return model.CountSeries{}, m.lookupErr
	}
	s, ok := m.series[slug]
	if !ok {
		return model.CountSeries{}, fmt.Errorf("%w: %q", service.ErrUnknownSource, slug)
	}
	return s, nil
}

func (m *mockDependencies) Chart(ctx context.Context, slug string) (chart.Spec, error) {
	s, err := m.Counts(ctx, slug)
	if err != nil {
		return chart.Spec{}, err
	}
	return chart.Bar("chart", s), nil
}

func (m *mockDependencies) ClearCache(ctx context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared++
	return nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func sampleSeries(field string, counts ...int) model.CountSeries {
	day := time.Date(2026, time.October, 11, 0, 0, 0, 0, time.UTC)
	points := make([]model.CountPoint, len(counts))
	for i, c := range counts {
		points[i] = model.CountPoint{Date: day.AddDate(0, 0, i), Count: c}
	}
	return model.CountSeries{Name: field, Field: field, Points: points}
}

func newMockDependencies() *mockDependencies {
	eo := sampleSeries("eo_count", 5, 3, 4, 6, 2, 8, 7)
	leg := sampleSeries("leg_count", 10, 12, 9, 15, 11, 14, 13)
	eoSpec, _ := chart.Bar("EOs per Day", eo).Script()
	legSpec, _ := chart.Line("Legislative Updates per Day", leg, true).Script()
	return &mockDependencies{
		dashboard: model.Dashboard{
			Title:    "Government Tracking Dashboard",
			Subtitle: template.HTML("<p><strong>Executive Orders</strong> this week</p>"),
			Metrics: []model.Metric{
				{Label: "EO Summaries", Value: 2},
				{Label: "Legislative Summaries", Value: 1},
			},
			Charts: []model.ChartPanel{
				{ID: "eo-chart", Title: "EOs per Day", Spec: eoSpec, Data: eo},
				{ID: "leg-chart", Title: "Legislative Updates per Day", Spec: legSpec, Data: leg},
			},
			Sections: []model.SummarySection{
				{ID: "eo-texts", Title: "Executive Order Texts", Items: []template.HTML{"<p>EO 14001</p>", "<p>EO 14002</p>"}},
				{ID: "congress-texts", Title: "Congressional Summaries", Items: []template.HTML{"<p>H.R. 1</p>"}},
			},
			GeneratedAt: time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC),
		},
		tables: map[string]model.SummaryTable{
			service.SlugExecutiveOrders: model.NewSummaryTable(service.SourceExecutiveOrders, []string{"<p>EO 14001</p>", "<p>EO 14002</p>"}),
			service.SlugCongress:        model.NewSummaryTable(service.SourceCongress, []string{"<p>H.R. 1</p>"}),
		},
		series: map[string]model.CountSeries{
			service.SlugExecutiveOrders: eo,
			service.SlugLegislative:     leg,
		},
	}
}

func newMux(deps *mockDependencies, stats api.StatsProvider) http.Handler {
	mux := http.NewServeMux()
	api.NewServer(deps, stats).Register(context.Background(), mux)
	return api.RequestIDMiddleware(mux)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := newMockDependencies()
		stats := &mockStatsProvider{stats: map[string]interface{}{"started": true}}
		h := newMux(deps, stats)

		Convey("Then health endpoint should be accessible", func() {
			w := serve(h, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And stats endpoint should be accessible", func() {
			w := serve(h, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["started"], ShouldEqual, true)
		})

		Convey("And unknown paths are not found", func() {
			w := serve(h, http.MethodGet, "/unknown")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And wrong methods are rejected", func() {
			So(serve(h, http.MethodPost, "/dashboard").Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(serve(h, http.MethodGet, "/api/cache/clear").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("And every response carries a request ID", func() {
			w := serve(h, http.MethodGet, "/stats")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)

			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w = httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("And a nil mux panics", func() {
			So(func() {
				api.NewServer(deps, stats).Register(context.Background(), nil)
			}, ShouldPanic)
		})
	})
}

func TestDashboardHandler(t *testing.T) {
	Convey("Given healthy dependencies", t, func() {
		deps := newMockDependencies()
		h := newMux(deps, nil)

		for _, path := range []string{"/", "/dashboard"} {
			Convey("When requesting "+path, func() {
				w := serve(h, http.MethodGet, path)
				body := w.Body.String()

				Convey("Then the page holds metrics, charts and sections", func() {
					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
					So(body, ShouldContainSubstring, "<title>Government Tracking Dashboard</title>")
					So(body, ShouldContainSubstring, "<strong>Executive Orders</strong>")
					So(body, ShouldContainSubstring, "EO Summaries")
					So(body, ShouldContainSubstring, "Legislative Summaries")
					So(body, ShouldContainSubstring, `id="eo-chart"`)
					So(body, ShouldContainSubstring, `id="leg-chart"`)
					So(body, ShouldContainSubstring, `"eo_count"`)
					So(body, ShouldContainSubstring, `<details id="eo-texts"`)
					So(body, ShouldContainSubstring, `<details id="congress-texts"`)
					So(body, ShouldContainSubstring, "<p>EO 14002</p>")
					So(body, ShouldContainSubstring, "Generated 2026-10-17 12:00 UTC")
				})
			})
		}
	})

	Convey("Given a failing upstream", t, func() {
		deps := newMockDependencies()
		deps.dashboardErr = fmt.Errorf("%w: %w", service.ErrRender, webhook.ErrMissingTexts)
		h := newMux(deps, nil)

		Convey("When requesting the dashboard", func() {
			w := serve(h, http.MethodGet, "/")

			Convey("Then the error page is shown with 502", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(w.Body.String(), ShouldContainSubstring, "Dashboard unavailable")
				So(w.Body.String(), ShouldContainSubstring, "texts")
				So(w.Body.String(), ShouldNotContainSubstring, "eo-chart")
				So(w.Body.String(), ShouldContainSubstring, w.Header().Get(api.RequestIDHeader))
			})
		})
	})
}

func TestSummariesHandler(t *testing.T) {
	Convey("Given the summaries endpoint", t, func() {
		deps := newMockDependencies()
		h := newMux(deps, nil)

		Convey("When requesting a known source", func() {
			w := serve(h, http.MethodGet, "/api/summaries/executive-orders")

			Convey("Then the table is returned in payload order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Source  string   `json:"source"`
					Columns []string `json:"columns"`
					Count   int      `json:"count"`
					Rows    []struct {
						HTML string `json:"summary_html"`
					} `json:"rows"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Source, ShouldEqual, service.SourceExecutiveOrders)
				So(body.Columns, ShouldResemble, []string{"summary_html"})
				So(body.Count, ShouldEqual, 2)
				So(body.Rows[0].HTML, ShouldEqual, "<p>EO 14001</p>")
				So(body.Rows[1].HTML, ShouldEqual, "<p>EO 14002</p>")
			})
		})

		Convey("When requesting an unknown source", func() {
			w := serve(h, http.MethodGet, "/api/summaries/senate")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, `"code":"not_found"`)
			})
		})

		Convey("When the upstream fails", func() {
			deps.lookupErr = fmt.Errorf("%w: congress: 503 Service Unavailable", webhook.ErrUnexpectedStatus)
			w := serve(h, http.MethodGet, "/api/summaries/congress")

			Convey("Then it is a bad gateway", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(w.Body.String(), ShouldContainSubstring, `"code":"upstream_error"`)
				So(w.Body.String(), ShouldContainSubstring, "503")
			})

			Convey("And the failure is counted as a high severity upstream error", func() {
				body := serve(h, http.MethodGet, "/healthz").Body.String()
				So(body, ShouldContainSubstring,
					`govdash_dashboard_errors_by_endpoint_total{endpoint="summaries",error_type="upstream_error",method="GET"}`)
				So(body, ShouldContainSubstring,
					`govdash_dashboard_errors_by_type_total{error_type="upstream_error",severity="high"}`)
			})
		})

		Convey("When the source is unknown", func() {
			serve(h, http.MethodGet, "/api/summaries/senate")

			Convey("Then it is counted as a medium severity not_found error", func() {
				body := serve(h, http.MethodGet, "/healthz").Body.String()
				So(body, ShouldContainSubstring,
					`govdash_dashboard_errors_by_endpoint_total{endpoint="summaries",error_type="not_found",method="GET"}`)
				So(body, ShouldContainSubstring,
					`govdash_dashboard_errors_by_type_total{error_type="not_found",severity="medium"}`)
			})
		})
	})
}

func TestCountsHandler(t *testing.T) {
	Convey("Given the counts and charts endpoints", t, func() {
		deps := newMockDependencies()
		h := newMux(deps, nil)

		Convey("When requesting a count series", func() {
			w := serve(h, http.MethodGet, "/api/counts/legislative")

			Convey("Then seven points are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body model.CountSeries
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Field, ShouldEqual, "leg_count")
				So(body.Points, ShouldHaveLength, 7)
				So(body.Points[3].Count, ShouldEqual, 15)
			})
		})

		Convey("When requesting a chart", func() {
			w := serve(h, http.MethodGet, "/api/charts/executive-orders")

			Convey("Then a Vega-Lite spec is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var spec map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &spec), ShouldBeNil)
				So(spec["$schema"], ShouldEqual, chart.SchemaURL)
				So(spec["data"].(map[string]interface{})["values"], ShouldHaveLength, 7)
			})
		})

		Convey("When requesting an unknown series", func() {
			So(serve(h, http.MethodGet, "/api/counts/congress").Code, ShouldEqual, http.StatusNotFound)
			So(serve(h, http.MethodGet, "/api/charts/congress").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCacheHandler(t *testing.T) {
	Convey("Given the cache clear endpoint", t, func() {
		deps := newMockDependencies()
		h := newMux(deps, nil)

		Convey("When clearing", func() {
			w := serve(h, http.MethodPost, "/api/cache/clear")

			Convey("Then the cache is flushed once", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"status":"cleared"`)
				So(deps.cleared, ShouldEqual, 1)
			})
		})

		Convey("When the service is not running", func() {
			deps.clearErr = service.ErrNotStarted
			w := serve(h, http.MethodPost, "/api/cache/clear")

			Convey("Then it is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(errors.Is(deps.clearErr, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}
