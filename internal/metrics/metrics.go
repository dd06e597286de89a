// Package metrics defines Prometheus metrics for deal-aggregator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "deals"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded.",
	})
)

// Source adapter metrics.
var (
	SourceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_requests_total",
		Help:      "Total requests dispatched to each source, including failed attempts.",
	}, []string{"source"})

	SourceDailyUsage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_daily_usage",
		Help:      "Requests used today per source.",
	}, []string{"source"})

	SourceQuotaHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_quota_hits_total",
		Help:      "Total number of calls rejected because the daily quota was exhausted.",
	}, []string{"source"})

	SourceRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_retries_total",
		Help:      "Total number of retried attempts per source.",
	}, []string{"source"})

	SourceFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_fetch_duration_seconds",
		Help:      "Duration of adapter fetches in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	SourceFetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_fetch_failures_total",
		Help:      "Total number of failed adapter fetches.",
	}, []string{"source"})
)

// Aggregation metrics.
var (
	DealsFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deals_fetched_total",
		Help:      "Total raw deals returned by each source.",
	}, []string{"source"})

	DealsAfterDedupTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deals_after_dedup_total",
		Help:      "Total deals surviving normalization and deduplication.",
	})

	AggregationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregation_duration_seconds",
		Help:      "Duration of uncached aggregator calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total aggregator cache hits.",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total aggregator cache misses.",
	})
)

// Scoring metrics.
var (
	ScoringDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scoring_distribution",
		Help:      "Distribution of computed deal scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0, 10, 20, ..., 100
	})

	SuspiciousDealsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suspicious_deals_total",
		Help:      "Total deals flagged as suspicious.",
	})
)

// Alert metrics.
var (
	AlertsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_sent_total",
		Help:      "Total number of hot-deal alerts sent.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification webhook calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Hot-deal engine metrics.
var (
	HotDealsRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hot_deals_run_duration_seconds",
		Help:      "Duration of hot-deal refresh runs in seconds.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
	})

	HotDealsRunErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hot_deals_run_errors_total",
		Help:      "Total number of failed hot-deal refresh runs.",
	})

	FeaturedDealsUpsertedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "featured_deals_upserted_total",
		Help:      "Total featured deal upserts, labelled by whether the deal was new.",
	}, []string{"new"})

	FeaturedDealsPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "featured_deals_pruned_total",
		Help:      "Total featured deals removed by the prune job.",
	})

	SchedulerNextHotDealsTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_hot_deals_timestamp",
		Help:      "Unix timestamp of the next scheduled hot-deal refresh.",
	})
)
