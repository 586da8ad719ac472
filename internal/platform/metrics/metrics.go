// Package metrics holds the Prometheus collectors of the backend. All methods
// are nil-safe so callers may run without metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records issuing, printing and HTTP activity.
type Metrics struct {
	violationsIssued *prometheus.CounterVec
	saveFailures     *prometheus.CounterVec
	readFallbacks    *prometheus.CounterVec
	printDispatches  *prometheus.CounterVec
	signIns          *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers the collectors on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		violationsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kontrollavgift_violations_issued_total",
			Help: "Violation records saved.",
		}, []string{"company"}),
		saveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kontrollavgift_violation_save_failures_total",
			Help: "Violation saves that failed, by reason.",
		}, []string{"reason"}),
		readFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kontrollavgift_store_read_fallbacks_total",
			Help: "Store reads that failed and were answered with a fallback value.",
		}, []string{"operation"}),
		printDispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kontrollavgift_print_dispatches_total",
			Help: "Receipt documents handed to the printer application.",
		}, []string{"kind"}),
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kontrollavgift_sign_ins_total",
			Help: "Sign-in attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kontrollavgift_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kontrollavgift_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.violationsIssued, m.saveFailures, m.readFallbacks, m.printDispatches, m.signIns, m.httpRequests, m.httpDuration)
	return m
}

// IncViolationsIssued counts a saved violation record.
func (m *Metrics) IncViolationsIssued(company string) {
	if m == nil || m.violationsIssued == nil {
		return
	}
	m.violationsIssued.WithLabelValues(normalizeLabel(company)).Inc()
}

// IncSaveFailure counts a failed save; reason is "duplicate", "invalid" or "error".
func (m *Metrics) IncSaveFailure(reason string) {
	if m == nil || m.saveFailures == nil {
		return
	}
	m.saveFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncReadFallback counts a store read answered with a fallback.
func (m *Metrics) IncReadFallback(operation string) {
	if m == nil || m.readFallbacks == nil {
		return
	}
	m.readFallbacks.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncPrintDispatch counts a dispatch; kind is "issue" or "reprint".
func (m *Metrics) IncPrintDispatch(kind string) {
	if m == nil || m.printDispatches == nil {
		return
	}
	m.printDispatches.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncSignIn counts a sign-in attempt.
func (m *Metrics) IncSignIn(method string, ok bool) {
	if m == nil || m.signIns == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.signIns.WithLabelValues(normalizeLabel(method), outcome).Inc()
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}
	route = normalizeLabel(route)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
