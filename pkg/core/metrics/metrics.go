// Package metrics exposes Prometheus counters for calculations, projection
// recalculations, store failures and HTTP latency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector of this package. It is separate from the
// global default registry so tests can read values without interference.
var Registry = prometheus.NewRegistry()

var (
	Calculations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pac",
		Name:      "calculations_total",
		Help:      "Actual PAC calculations by outcome (ok, no_sales).",
	}, []string{"outcome"})

	Recalculations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pac",
		Name:      "projection_recalculations_total",
		Help:      "Projection sheets pushed through the recalculation pipeline.",
	})

	SeedSources = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pac",
		Name:      "projection_seed_total",
		Help:      "Projection seeds by source (current, previous, empty).",
	}, []string{"source"})

	StoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pac",
		Name:      "store_errors_total",
		Help:      "Failed store operations by backend and operation.",
	}, []string{"backend", "op"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pac",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP handler latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "code"})
)

func init() {
	Registry.MustRegister(
		Calculations,
		Recalculations,
		SeedSources,
		StoreErrors,
		RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps h and observes its latency under route.
func Instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h.ServeHTTP(rec, r)
		RequestDuration.WithLabelValues(route, strconv.Itoa(rec.code)).Observe(time.Since(start).Seconds())
	})
}
