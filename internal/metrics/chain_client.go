package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainAdmissionWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tta",
		Subsystem: "chain_client",
		Name:      "admission_wait_seconds",
		Help:      "Time spent waiting for a rate limiter token.",
		Buckets:   []float64{0, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
	})
	chainAdmissionRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tta",
		Subsystem: "chain_client",
		Name:      "admission_rejected_total",
		Help:      "Requests rejected because the limiter wait exceeded the ceiling.",
	})
	chainRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tta",
		Subsystem: "chain_client",
		Name:      "retries_total",
		Help:      "Retried node calls after transient failures.",
	}, []string{"operation"})
	chainExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tta",
		Subsystem: "chain_client",
		Name:      "retries_exhausted_total",
		Help:      "Node calls that failed after all attempts.",
	}, []string{"operation"})
)

// ChainClient tracks limiter admission and retry behaviour.
type ChainClient struct{}

// NewChainClient creates a ChainClient metrics collector.
func NewChainClient() *ChainClient {
	return &ChainClient{}
}

// ObserveAdmission records how long a call waited for a token, or that it was rejected.
func (ChainClient) ObserveAdmission(waited time.Duration, rejected bool) {
	if rejected {
		chainAdmissionRejectedTotal.Inc()
		return
	}
	chainAdmissionWait.Observe(waited.Seconds())
}

// ObserveRetry records a retry of operation.
func (ChainClient) ObserveRetry(operation string) {
	chainRetriesTotal.WithLabelValues(operation).Inc()
}

// ObserveExhausted records an operation that ran out of attempts.
func (ChainClient) ObserveExhausted(operation string) {
	chainExhaustedTotal.WithLabelValues(operation).Inc()
}
