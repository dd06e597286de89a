// Package panels builds the Grafana panels for the deal-aggregator
// dashboard. Raw series are scoped to the deal-aggregator scrape job;
// recording rules already are.
package panels

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the Prometheus scrape job name for deal-aggregator.
const Job = "deal-aggregator"

// EbayDailyLimit is the Browse API's daily call allowance.
const EbayDailyLimit = 5000

// Sizes on Grafana's 24-column grid.
const (
	statWidth  = 6
	statHeight = 4
	third      = 8
	twoThirds  = 16
	rowHeight  = 8
)

// query is one PromQL target and its legend.
type query struct {
	expr   string
	legend string
}

func jobSel(metric string) string {
	return metric + `{job="` + Job + `"}`
}

// sumRate is sum by (by) (rate(metric[window])) over the job's series.
func sumRate(metric, window string, by ...string) string {
	return aggregate("rate", metric, window, by)
}

// sumIncrease is sum by (by) (increase(metric[window])) over the job's series.
func sumIncrease(metric, window string, by ...string) string {
	return aggregate("increase", metric, window, by)
}

func aggregate(fn, metric, window string, by []string) string {
	inner := fmt.Sprintf("%s(%s[%s])", fn, jobSel(metric), window)
	if len(by) == 0 {
		return "sum(" + inner + ")"
	}
	return fmt.Sprintf("sum by (%s) (%s)", strings.Join(by, ", "), inner)
}

// quantile is the q-th quantile of a histogram over five minutes, kept
// apart by the extra labels.
func quantile(q float64, metric string, by ...string) string {
	return fmt.Sprintf("histogram_quantile(%.2f, %s)", q, sumRate(metric+"_bucket", "5m", append([]string{"le"}, by...)...))
}

func datasource() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

func target(q query, i int) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(q.expr).
		LegendFormat(q.legend).
		RefId(string(rune('A' + i)))
}

// series is a third-width line chart in the dashboard's house style.
func series(title, description string, queries ...query) *timeseries.PanelBuilder {
	p := timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(rowHeight).
		Span(third).
		DrawStyle(common.GraphDrawStyleLine).
		LineWidth(2).
		FillOpacity(10).
		Legend(tableLegend("mean", "max")).
		Tooltip(sortedTooltip()).
		Thresholds(steps("green")).
		ColorScheme(colorMode(dashboard.FieldColorModeIdPaletteClassic))
	for i, q := range queries {
		p.WithTarget(target(q, i))
	}
	return p
}

// tally is a row-height stat with a sparkline, for counts over a window.
func tally(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(rowHeight).
		Span(third).
		WithTarget(target(query{expr: expr}, 0)).
		ColorScheme(colorMode(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// single is a small stat in the overview row showing one current value.
func single(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(statHeight).
		Span(statWidth).
		WithTarget(target(query{expr: expr}, 0)).
		Thresholds(steps("green")).
		ColorScheme(colorMode(dashboard.FieldColorModeIdThresholds)).
		GraphMode(common.BigValueGraphModeNone)
}

// step switches the threshold color to color at from.
type step struct {
	from  float64
	color string
}

// steps builds absolute thresholds starting at base.
func steps(base string, more ...step) cog.Builder[dashboard.ThresholdsConfig] {
	ts := []dashboard.Threshold{{Color: base}}
	for _, s := range more {
		ts = append(ts, dashboard.Threshold{Value: cog.ToPtr(s.from), Color: s.color})
	}
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(ts)
}

// warnAt is green, then yellow from warn, then red from crit.
func warnAt(warn, crit float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps("green", step{warn, "yellow"}, step{crit, "red"})
}

func colorMode(m dashboard.FieldColorModeId) cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(m)
}

func tableLegend(calcs ...string) *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs(calcs)
}

func sortedTooltip() *common.VizTooltipOptionsBuilder {
	return common.NewVizTooltipOptionsBuilder().
		Mode(common.TooltipDisplayModeMulti).
		Sort(common.SortOrderDescending)
}
