package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution outcomes.
const (
	OutcomeMatch   = "match"
	OutcomeNoMatch = "no_match"
	OutcomeInvalid = "invalid"
)

// Resolution Prometheus metrics.
var (
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolutions_total",
			Help:      "Total number of entity resolutions by outcome",
		},
		[]string{"outcome"},
	)

	ResolutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "resolution_duration_seconds",
			Help:      "Entity resolution duration in seconds",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	IndexErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "index_errors_total",
			Help:      "Index failures swallowed as no match",
		},
		[]string{"op"}, // "search" / "fetch"
	)
)

var registerOnce sync.Once

// RegisterResolutionMetrics registers the resolution metrics. Safe to call more than once.
func RegisterResolutionMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ResolutionsTotal)
		prometheus.MustRegister(ResolutionDuration)
		prometheus.MustRegister(IndexErrorsTotal)
	})
}
