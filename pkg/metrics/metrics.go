package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solana_signer"

// Metrics owns its registry so that several servers (or tests) can coexist
// in one process.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	keypairsGenerated  prometheus.Counter
	messagesSigned     prometheus.Counter
	messagesVerified   *prometheus.CounterVec
	instructionsBuilt  *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	rateLimitedRequest prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}, []string{"method", "path"}),
		keypairsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "keys",
			Name:      "generated_total",
			Help:      "Total number of keypairs generated.",
		}),
		messagesSigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "signed_total",
			Help:      "Total number of messages signed.",
		}),
		messagesVerified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "verified_total",
			Help:      "Total number of signature verifications by outcome.",
		}, []string{"valid"}),
		instructionsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "instructions",
			Name:      "built_total",
			Help:      "Total number of instructions built by kind.",
		}, []string{"kind"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "operations",
			Name:      "failures_total",
			Help:      "Total number of failed operations by error kind.",
		}, []string{"operation", "kind"}),
		rateLimitedRequest: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter.",
		}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.keypairsGenerated,
		m.messagesSigned,
		m.messagesVerified,
		m.instructionsBuilt,
		m.operationFailures,
		m.rateLimitedRequest,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncrementInFlight() {
	m.httpInFlight.Inc()
}

func (m *Metrics) DecrementInFlight() {
	m.httpInFlight.Dec()
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordKeypairGenerated() {
	m.keypairsGenerated.Inc()
}

func (m *Metrics) RecordMessageSigned() {
	m.messagesSigned.Inc()
}

func (m *Metrics) RecordMessageVerified(valid bool) {
	m.messagesVerified.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

func (m *Metrics) RecordInstructionBuilt(kind string) {
	m.instructionsBuilt.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordFailure(operation, kind string) {
	m.operationFailures.WithLabelValues(operation, kind).Inc()
}

func (m *Metrics) RecordRateLimited() {
	m.rateLimitedRequest.Inc()
}
