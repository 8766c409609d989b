package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for summarization and export.
type Metrics struct {
	// Decoding
	DecodeTotal         *prometheus.CounterVec
	DroppedActionItems  prometheus.Counter
	ArchivedRawOutputs  prometheus.Counter
	SummaryCacheResults *prometheus.CounterVec

	// Model calls
	ModelRequestDuration *prometheus.HistogramVec

	// Exports
	ExportsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on the default registry.
//
// Registration happens once per process; later calls return the same
// instance.
//
// Metrics:
//   - meetmind_decode_total{stage} - decode outcomes, stage is direct,
//     schema_commas, sanitized, extraction_failed or parse_failed
//   - meetmind_dropped_action_items_total - action items discarded as malformed
//   - meetmind_raw_outputs_archived_total - undecodable outputs written to storage
//   - meetmind_summary_cache_total{result} - hit or miss
//   - meetmind_model_request_duration_seconds{provider,outcome}
//   - meetmind_exports_total{target,outcome}
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			DecodeTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "meetmind_decode_total",
					Help: "Total number of model outputs decoded, by repair stage",
				},
				[]string{"stage"},
			),

			DroppedActionItems: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "meetmind_dropped_action_items_total",
					Help: "Total number of action items dropped as malformed",
				},
			),

			ArchivedRawOutputs: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "meetmind_raw_outputs_archived_total",
					Help: "Total number of undecodable model outputs archived to object storage",
				},
			),

			SummaryCacheResults: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "meetmind_summary_cache_total",
					Help: "Summary cache lookups by result",
				},
				[]string{"result"},
			),

			ModelRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "meetmind_model_request_duration_seconds",
					Help:    "Duration of model calls in seconds",
					Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
				},
				[]string{"provider", "outcome"},
			),

			ExportsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "meetmind_exports_total",
					Help: "Total number of export operations by target and outcome",
				},
				[]string{"target", "outcome"},
			),
		}
	})

	return globalMetrics
}

// Outcome renders an error as a metric label value
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
