// Package dashboards assembles Grafana dashboards from the panels package.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/deal-aggregator/tools/dashgen/panels"
)

type row struct {
	title  string
	panels []cog.Builder[dashboard.Panel]
}

// overviewRows follow a request's path: service health, the API, the
// sources behind it, aggregation and scoring, then the background
// hot-deal engine and its alerts.
func overviewRows() []row {
	return []row{
		{"Overview", []cog.Builder[dashboard.Panel]{
			panels.HealthzStat(),
			panels.ReadyzStat(),
			panels.EbayQuotaGauge(),
			panels.NextHotDeals(),
			panels.UptimeStat(),
		}},
		{"HTTP", []cog.Builder[dashboard.Panel]{
			panels.RequestRate(),
			panels.LatencyByRoute(),
			panels.ErrorRate(),
		}},
		{"Sources", []cog.Builder[dashboard.Panel]{
			panels.SourceRequestRate(),
			panels.SourceDailyUsage(),
			panels.QuotaHits(),
			panels.FetchLatency(),
			panels.FetchFailures(),
			panels.Retries(),
		}},
		{"Aggregation", []cog.Builder[dashboard.Panel]{
			panels.DealsFetched(),
			panels.AggregationDuration(),
			panels.CacheHitRatio(),
		}},
		{"Scoring", []cog.Builder[dashboard.Panel]{
			panels.ScoreDistribution(),
			panels.SuspiciousShare(),
		}},
		{"Hot Deals", []cog.Builder[dashboard.Panel]{
			panels.HotRunDuration(),
			panels.HotRunErrors(),
			panels.FeaturedUpserts(),
		}},
		{"Alerts", []cog.Builder[dashboard.Panel]{
			panels.AlertsRate(),
			panels.NotificationLatency(),
			panels.NotificationFailures(),
		}},
	}
}

// BuildOverview returns the "Deal Aggregator Overview" dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Deal Aggregator Overview").
		Uid("deals-overview").
		Tags([]string{"deals", "deal-aggregator"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(dashboard.NewDatasourceVariableBuilder("datasource").
			Label("Datasource").
			Type("prometheus"))

	for _, r := range overviewRows() {
		rb := dashboard.NewRowBuilder(r.title)
		for _, p := range r.panels {
			rb.WithPanel(p)
		}
		b.WithRow(rb)
	}
	return b
}
