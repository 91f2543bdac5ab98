package metrics

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus instruments for the estimation service.
type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	estimatesServed  prometheus.Counter
	optInsRecorded   *prometheus.CounterVec
	rateLimitAllowed *prometheus.CounterVec
	rateLimitDenied  *prometheus.CounterVec
}

// New registers and returns the application metrics.
func New() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offsetcf_http_requests_total",
		Help: "Counts HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "offsetcf_http_duration_seconds",
		Help:    "HTTP request latency per method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	estimatesServed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "offsetcf_estimates_total",
		Help: "Offset estimates served.",
	})

	optInsRecorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offsetcf_opt_ins_total",
		Help: "Opt-in events recorded by store.",
	}, []string{"store"})

	rateLimitAllowed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offsetcf_rate_limit_allowed_total",
		Help: "Requests admitted by the rate limiter.",
	}, []string{"scope"})

	rateLimitDenied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offsetcf_rate_limit_denied_total",
		Help: "Requests rejected by the rate limiter.",
	}, []string{"scope"})

	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		estimatesServed,
		optInsRecorded,
		rateLimitAllowed,
		rateLimitDenied,
	)

	return &Metrics{
		httpRequests:     httpRequests,
		httpDuration:     httpDuration,
		estimatesServed:  estimatesServed,
		optInsRecorded:   optInsRecorded,
		rateLimitAllowed: rateLimitAllowed,
		rateLimitDenied:  rateLimitDenied,
	}
}

// GinMiddleware records request counts and latencies per route. Unmatched
// paths share a single label to keep cardinality bounded.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method

		m.httpRequests.WithLabelValues(method, route, statusLabel(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordEstimate increments the served estimate count.
func (m *Metrics) RecordEstimate() {
	if m == nil {
		return
	}
	m.estimatesServed.Inc()
}

// RecordOptIn increments opt-in counts for the given store.
func (m *Metrics) RecordOptIn(store string) {
	if m == nil {
		return
	}
	m.optInsRecorded.WithLabelValues(strings.TrimSpace(store)).Inc()
}

// RecordRateLimitAllowed increments rate limit admit counts.
func (m *Metrics) RecordRateLimitAllowed(scope string) {
	if m == nil {
		return
	}
	m.rateLimitAllowed.WithLabelValues(strings.TrimSpace(scope)).Inc()
}

// RecordRateLimitDenied increments rate limit reject counts.
func (m *Metrics) RecordRateLimitDenied(scope string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.WithLabelValues(strings.TrimSpace(scope)).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
