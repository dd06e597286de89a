package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// probe shows a 0/1 probe gauge as a red or green tile.
func probe(title, description, metric string) *stat.PanelBuilder {
	return single(title, description, jobSel(metric)).
		Thresholds(steps("red", step{1, "green"})).
		ColorMode(common.BigValueColorModeBackground).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat is the liveness probe tile.
func HealthzStat() *stat.PanelBuilder {
	return probe("Healthz", "Liveness probe (1 = ok, 0 = failing)", "deals_healthz_up")
}

// ReadyzStat is the readiness probe tile, which follows the featured store.
func ReadyzStat() *stat.PanelBuilder {
	return probe("Readyz", "Featured store readiness (1 = ready, 0 = not ready)", "deals_readyz_up")
}

// EbayQuotaGauge shows today's eBay calls as a share of the daily allowance.
func EbayQuotaGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("eBay Quota %").
		Description("Browse API calls today as a percentage of the daily limit").
		Datasource(datasource()).
		Height(statHeight).
		Span(statWidth).
		WithTarget(target(query{
			expr: fmt.Sprintf(`deals_source_daily_usage{job=%q, source="ebay"} / %d * 100`, Job, EbayDailyLimit),
		}, 0)).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(warnAt(80, 95)).
		ColorScheme(colorMode(dashboard.FieldColorModeIdThresholds))
}

// NextHotDeals counts down to the next scheduled hot-deal refresh.
func NextHotDeals() *stat.PanelBuilder {
	return single("Next Hot-Deal Run", "Time until the scheduler's next hot-deal refresh",
		jobSel("deals_scheduler_next_hot_deals_timestamp")+" - time()").
		Unit("s")
}

// UptimeStat is time since the process started.
func UptimeStat() *stat.PanelBuilder {
	return single("Uptime", "Time since process start",
		"time() - "+jobSel("process_start_time_seconds")).
		Unit("s")
}
