package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	DetailsLookups   prometheus.Counter
	BackfillChunks   prometheus.Counter
	BackfillFailures prometheus.Counter
	LookupDuration   prometheus.Histogram
	ProviderErrors   *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the given registerer
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DetailsLookups: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "details_lookups_total",
			Help:      "The total number of details lookups served",
		}),
		BackfillChunks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backfill_chunks_total",
			Help:      "The total number of history chunks fetched",
		}),
		BackfillFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backfill_chunk_failures_total",
			Help:      "The total number of history chunks abandoned on fetch failure",
		}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "details_lookup_duration_seconds",
			Help:      "Time taken to serve a details lookup",
			Buckets:   prometheus.DefBuckets,
		}),
		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "The total number of upstream provider failures",
		}, []string{"provider"}),
	}
}
