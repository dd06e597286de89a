package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ScoreDistribution is the last hour of deal scores by histogram bucket.
func ScoreDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Score Distribution").
		Description("Overall deal scores (0-100) in the last hour").
		Datasource(datasource()).
		Height(rowHeight).
		Span(twoThirds).
		WithTarget(target(query{sumIncrease("deals_scoring_distribution_bucket", "1h", "le"), "{{le}}"}, 0)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(steps("green")).
		ColorScheme(colorMode(dashboard.FieldColorModeIdPaletteClassic))
}

// SuspiciousShare is the percentage of scored deals flagged suspicious.
func SuspiciousShare() *timeseries.PanelBuilder {
	expr := sumRate("deals_suspicious_deals_total", "15m") + " / " +
		sumRate("deals_scoring_distribution_count", "15m") + " * 100"
	return series("Suspicious %", "Share of scored deals flagged as suspicious",
		query{expr, "suspicious %"}).
		Unit("percent").
		Thresholds(warnAt(10, 25)).
		ColorScheme(colorMode(dashboard.FieldColorModeIdThresholds))
}
