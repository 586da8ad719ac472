package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncViolationsIssued("ACME")
	m.IncViolationsIssued("ACME")
	m.IncSaveFailure("duplicate")
	m.IncReadFallback("")
	m.IncPrintDispatch("reprint")
	m.IncSignIn("password", false)
	m.ObserveHTTPRequest("GET", "/health", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.violationsIssued.WithLabelValues("ACME")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saveFailures.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.readFallbacks.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.printDispatches.WithLabelValues("reprint")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.signIns.WithLabelValues("password", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncViolationsIssued("x")
		m.IncSaveFailure("error")
		m.IncReadFallback("list")
		m.IncPrintDispatch("issue")
		m.IncSignIn("google", true)
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
	})

	empty := New(nil)
	assert.NotPanics(t, func() { empty.IncViolationsIssued("x") })
}
