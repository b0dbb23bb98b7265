// Package metrics provides Prometheus instrumentation for the client:
// promauto collectors wired to a promhttp.Handler for counters and
// histograms covering unary, streaming, and submit-tier activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector this client exposes, grouped by the
// transport tier or component that owns them.
type Metrics struct {
	registry *prometheus.Registry

	unaryRequests *prometheus.CounterVec
	unaryRetries  *prometheus.CounterVec
	unaryFailures *prometheus.CounterVec
	unaryLatency  *prometheus.HistogramVec

	streamFrames     *prometheus.CounterVec
	streamReconnects *prometheus.CounterVec

	submitTierExhausted *prometheus.CounterVec
}

// New registers a fresh collector set against its own registry, so
// multiple Clients in the same process don't collide on metric names.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		unaryRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_unary_requests_total",
			Help: "Total unary RPC attempts, by method.",
		}, []string{"method"}),
		unaryRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_unary_retries_total",
			Help: "Total unary RPC retries, by method.",
		}, []string{"method"}),
		unaryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_unary_failures_total",
			Help: "Total unary RPC calls that exhausted their retry budget, by method.",
		}, []string{"method"}),
		unaryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_unary_latency_seconds",
			Help:    "Unary RPC attempt latency in seconds, by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),

		streamFrames: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_stream_frames_total",
			Help: "Total data frames received on a server stream, by method.",
		}, []string{"method"}),
		streamReconnects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_stream_reconnects_total",
			Help: "Total server-stream reconnect attempts, by method.",
		}, []string{"method"}),

		submitTierExhausted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_submit_tier_exhausted_total",
			Help: "Total times a submission tier (rpc or rest) exhausted its attempt budget, by tier.",
		}, []string{"tier"}),
	}
}

// Handler returns an http.Handler serving this Metrics' collectors in the
// Prometheus text exposition format, for mounting at "/metrics".
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUnaryAttempt implements transport.MetricsRecorder.
func (m *Metrics) ObserveUnaryAttempt(method string) {
	m.unaryRequests.WithLabelValues(method).Inc()
}

// ObserveUnaryRetry implements transport.MetricsRecorder.
func (m *Metrics) ObserveUnaryRetry(method string) {
	m.unaryRetries.WithLabelValues(method).Inc()
}

// ObserveUnaryFailure implements transport.MetricsRecorder.
func (m *Metrics) ObserveUnaryFailure(method string) {
	m.unaryFailures.WithLabelValues(method).Inc()
}

// ObserveUnaryLatency implements transport.MetricsRecorder.
func (m *Metrics) ObserveUnaryLatency(method string, seconds float64) {
	m.unaryLatency.WithLabelValues(method).Observe(seconds)
}

// ObserveStreamFrame implements mirror.MetricsRecorder.
func (m *Metrics) ObserveStreamFrame(method string) {
	m.streamFrames.WithLabelValues(method).Inc()
}

// ObserveStreamReconnect implements mirror.MetricsRecorder.
func (m *Metrics) ObserveStreamReconnect(method string) {
	m.streamReconnects.WithLabelValues(method).Inc()
}

// ObserveTierExhausted records a submission tier running out of attempts;
// wire directly to submitter.Submitter.TierExhausted.
func (m *Metrics) ObserveTierExhausted(tier string) {
	m.submitTierExhausted.WithLabelValues(tier).Inc()
}
