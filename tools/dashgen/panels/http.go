package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate is API traffic across all routes.
func RequestRate() *timeseries.PanelBuilder {
	return series("Request Rate", "HTTP requests per second",
		query{`deals:http_requests:rate5m`, "req/s"}).
		Unit("reqps")
}

// LatencyByRoute is p95 latency per echo route template.
func LatencyByRoute() *timeseries.PanelBuilder {
	return series("Latency p95 by Route", "95th percentile HTTP request duration per route",
		query{quantile(0.95, "deals_http_request_duration_seconds", "path"), "{{path}}"}).
		Unit("s")
}

// ErrorRate is the share of requests answered with 5xx.
func ErrorRate() *timeseries.PanelBuilder {
	return series("Error Rate %", "HTTP 5xx responses as a percentage of all requests",
		query{`deals:http_errors:rate5m / deals:http_requests:rate5m * 100`, "error %"}).
		Unit("percent").
		Thresholds(warnAt(1, 5)).
		ColorScheme(colorMode(dashboard.FieldColorModeIdThresholds))
}
