// Package metrics holds the Prometheus collectors of the dispatch service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dispatch outcomes.
const (
	OutcomeDispatched     = "dispatched"
	OutcomeNoSuchDistrict = "no_such_district"
	OutcomeNoFreeCourier  = "no_free_courier"
	OutcomeFailed         = "failed"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dispatch",
			Subsystem: "orders",
			Name:      "dispatch_total",
			Help:      "Order dispatch attempts by outcome.",
		},
		[]string{"outcome"},
	)

	completions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatch",
			Subsystem: "orders",
			Name:      "completed_total",
			Help:      "Orders completed.",
		},
	)

	completionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dispatch",
			Subsystem: "orders",
			Name:      "completion_duration_seconds",
			Help:      "Time from dispatch to completion.",
			Buckets:   prometheus.ExponentialBuckets(60, 2, 10), // 1m to ~8.5h
		},
	)

	statisticsCorrections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatch",
			Subsystem: "couriers",
			Name:      "statistics_corrections_total",
			Help:      "Courier statistics rewritten by the reconciliation job.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dispatch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		dispatches,
		completions,
		completionDuration,
		statisticsCorrections,
		httpRequests,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordDispatch counts one dispatch attempt.
func RecordDispatch(outcome string) {
	dispatches.WithLabelValues(outcome).Inc()
}

// RecordCompletion counts a completed order and observes how long it was in progress.
func RecordCompletion(d time.Duration) {
	completions.Inc()
	completionDuration.Observe(d.Seconds())
}

// RecordStatisticsCorrections adds the number of couriers fixed by one reconciliation run.
func RecordStatisticsCorrections(n int) {
	if n > 0 {
		statisticsCorrections.Add(float64(n))
	}
}

// RecordHTTPRequest counts a handled request by route template, not raw path, so
// ids do not blow up label cardinality.
func RecordHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
