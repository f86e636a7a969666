package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Split metrics
	SplitRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairsplit_split_requests_total",
			Help: "Total number of split calculations",
		},
		[]string{"method", "status"},
	)

	SplitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fairsplit_split_duration_seconds",
			Help:    "Split calculation duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"method"},
	)

	SplitParticipants = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fairsplit_split_participants",
		Help:    "Number of participants per split request",
		Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100, 500, 1000},
	})

	RemainderUnits = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fairsplit_remainder_units",
			Help:    "Minimum currency units handed out as remainder by equal splits",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 1000},
		},
		[]string{"currency"},
	)

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fairsplit_batch_size",
		Help:    "Number of split requests per batch call",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})

	// Storage metrics
	StoredSplits = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fairsplit_stored_splits",
		Help: "Number of expense splits in persistent storage",
	})

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairsplit_storage_errors_total",
			Help: "Total number of failed storage operations",
		},
		[]string{"op"},
	)

	// Cache metrics
	SplitCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairsplit_split_cache_hits_total",
		Help: "Total number of split lookups served from memory",
	})

	SplitCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairsplit_split_cache_misses_total",
		Help: "Total number of split lookups that missed the memory cache",
	})

	SplitCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fairsplit_split_cache_size",
		Help: "Current number of entries in the split cache",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairsplit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fairsplit_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairsplit_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)
