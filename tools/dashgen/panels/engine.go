package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// HotRunDuration is p95 duration of the scheduled hot-deal refresh.
func HotRunDuration() *timeseries.PanelBuilder {
	return series("Hot-Deal Run p95", "95th percentile duration of hot-deal refresh runs",
		query{quantile(0.95, "deals_hot_deals_run_duration_seconds"), "p95"}).
		Unit("s")
}

// HotRunErrors counts failed refresh runs over a day.
func HotRunErrors() *stat.PanelBuilder {
	return tally("Run Errors (24h)", "Hot-deal refresh runs that failed in the last 24 hours",
		sumIncrease("deals_hot_deals_run_errors_total", "24h")).
		Thresholds(warnAt(1, 3))
}

// FeaturedUpserts splits featured-deal writes into new and refreshed rows
// and shows pruning alongside.
func FeaturedUpserts() *timeseries.PanelBuilder {
	return series("Featured Deals / h", "Featured deals inserted, refreshed and pruned per hour",
		query{sumIncrease("deals_featured_deals_upserted_total", "1h", "new"), "new={{new}}"},
		query{sumIncrease("deals_featured_deals_pruned_total", "1h"), "pruned"},
	)
}
