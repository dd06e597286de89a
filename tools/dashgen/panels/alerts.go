package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// AlertsRate is hot-deal alerts delivered per hour.
func AlertsRate() *timeseries.PanelBuilder {
	return series("Alerts / h", "Hot-deal alerts delivered per hour",
		query{sumIncrease("deals_alerts_sent_total", "1h"), "alerts/h"})
}

// NotificationLatency is p95 Discord webhook latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return series("Notification Latency (p95)", "95th percentile Discord webhook latency",
		query{`deals:notification_duration:p95_5m`, "p95"}).
		Unit("s").
		Thresholds(warnAt(1, 5))
}

// NotificationFailures counts failed deliveries over a day.
func NotificationFailures() *stat.PanelBuilder {
	return tally("Notification Failures (24h)", "Failed alert deliveries in the last 24 hours",
		sumIncrease("deals_notification_failures_total", "24h")).
		Thresholds(warnAt(1, 5))
}
