package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SourceRequestRate is outbound calls per source, retries included.
func SourceRequestRate() *timeseries.PanelBuilder {
	return series("Source Requests", "Outbound requests per second by source, retries included",
		query{`deals:source_requests:rate5m`, "{{source}}"}).
		Unit("reqps")
}

// SourceDailyUsage is each source's counter against its daily limit.
func SourceDailyUsage() *timeseries.PanelBuilder {
	return series("Daily Usage", "Requests counted against each source's daily limit since the last reset",
		query{jobSel("deals_source_daily_usage"), "{{source}}"})
}

// QuotaHits counts requests refused by a daily limit over a day.
func QuotaHits() *stat.PanelBuilder {
	return tally("Quota Hits (24h)", "Requests refused because a source hit its daily limit",
		sumIncrease("deals_source_quota_hits_total", "24h", "source")).
		Thresholds(warnAt(1, 10))
}

// FetchLatency is p95 adapter fetch time per source.
func FetchLatency() *timeseries.PanelBuilder {
	return series("Fetch Duration p95", "95th percentile adapter fetch duration by source",
		query{quantile(0.95, "deals_source_fetch_duration_seconds", "source"), "{{source}}"}).
		Unit("s")
}

// FetchFailures is failed fetches per minute by source.
func FetchFailures() *timeseries.PanelBuilder {
	return series("Fetch Failures / min", "Adapter fetches that ended in an error, by source",
		query{`deals:source_failures:rate5m * 60`, "{{source}}"}).
		Thresholds(warnAt(0.1, 1)).
		ColorScheme(colorMode(dashboard.FieldColorModeIdThresholds))
}

// Retries is retried source requests per minute.
func Retries() *timeseries.PanelBuilder {
	return series("Retries / min", "Retried source requests per minute",
		query{sumRate("deals_source_retries_total", "5m", "source") + " * 60", "{{source}}"})
}
