package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// DealsFetched compares raw deals per source with what survives dedup.
func DealsFetched() *timeseries.PanelBuilder {
	return series("Deals / min", "Raw deals returned per source and deals surviving deduplication",
		query{sumRate("deals_deals_fetched_total", "5m", "source") + " * 60", "{{source}}"},
		query{sumRate("deals_deals_after_dedup_total", "5m") + " * 60", "after dedup"},
	)
}

// AggregationDuration is p95 uncached aggregator call time per operation.
func AggregationDuration() *timeseries.PanelBuilder {
	return series("Aggregation Duration p95", "95th percentile uncached aggregator call duration by operation",
		query{quantile(0.95, "deals_aggregation_duration_seconds", "operation"), "{{operation}}"}).
		Unit("s")
}

// CacheHitRatio is the share of aggregator calls answered from cache.
func CacheHitRatio() *stat.PanelBuilder {
	return tally("Cache Hit Ratio", "Share of aggregator calls served from cache over 5 minutes",
		`deals:cache_hit_ratio:rate5m * 100`).
		Unit("percent").
		Thresholds(steps("red", step{50, "green"}))
}
