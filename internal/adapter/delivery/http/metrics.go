package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
)

const unmatchedRoute = "unmatched"

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	requests    *prometheus.CounterVec
	checkRuns   prometheus.Counter
	deactivated prometheus.Counter
	unreachable prometheus.Counter
	gatherer    prometheus.Gatherer
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		checkRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redirect_checks_total",
			Help: "Total number of completed redirect checks.",
		}),
		deactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redirect_check_deactivated_total",
			Help: "Total number of shortlinks deactivated by redirect checks.",
		}),
		unreachable: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redirect_check_unreachable_total",
			Help: "Total number of redirect URLs that could not be fetched.",
		}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.requests, m.checkRuns, m.deactivated, m.unreachable} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveCheck records the outcome of one redirect check.
func (m *Metrics) ObserveCheck(report *entity.CheckReport) {
	m.checkRuns.Inc()
	m.deactivated.Add(float64(report.Deactivated))
	m.unreachable.Add(float64(report.Unreachable))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// instrument counts requests by chi route pattern so path parameters do not
// explode the label space.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
