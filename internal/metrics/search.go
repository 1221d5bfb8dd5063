package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptdex",
			Name:      "searches_total",
			Help:      "Total number of search executions",
		},
		[]string{"type", "status"}, // type: lexical/semantic/empty, status: ok/error
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptdex",
			Name:      "search_duration_seconds",
			Help:      "Search pipeline duration in seconds (cache misses only)",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"type"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptdex",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SemanticFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "promptdex",
			Name:      "semantic_fallbacks_total",
			Help:      "Semantic searches that fell back to lexical matching",
		},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchesTotal,
		SearchDuration,
		SearchCacheTotal,
		SemanticFallbacksTotal,
	)
}
