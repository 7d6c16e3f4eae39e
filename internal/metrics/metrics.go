package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_cache_hits_total",
		Help: "Total number of memoized reads served from the cache.",
	},
		[]string{"prefix"},
	)

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_cache_misses_total",
		Help: "Total number of memoized reads that had to be recomputed.",
	},
		[]string{"prefix"},
	)

	CacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_cache_errors_total",
		Help: "Total number of cache failures treated as a miss.",
	},
		[]string{"operation"},
	)

	AggregationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_aggregation_errors_total",
		Help: "Total number of failed admin aggregations.",
	},
		[]string{"operation"},
	)

	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_job_runs_total",
		Help: "Total number of batch job runs by outcome.",
	},
		[]string{"job", "outcome"},
	)

	JobAffectedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_job_affected_rows_total",
		Help: "Total number of rows changed by batch jobs.",
	},
		[]string{"job"},
	)
)
