package rules

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}

// RecordingRules precomputes the rates and ratios that dashboards and alert
// expressions share, so each is evaluated once per interval.
func RecordingRules(opts Options) PrometheusRule {
	return newPrometheusRule("deals-recording-rules", opts,
		RuleGroup{
			Name:     "deals-http",
			Interval: "30s",
			Rules: []Rule{
				record("deals:http_requests:rate5m",
					`sum(rate(deals_http_requests_total[5m]))`),
				record("deals:http_errors:rate5m",
					`sum(rate(deals_http_requests_total{status=~"5.."}[5m]))`),
			},
		},
		RuleGroup{
			Name: "deals-pipeline",
			Rules: []Rule{
				record("deals:source_requests:rate5m",
					`sum by (source) (rate(deals_source_requests_total[5m]))`),
				record("deals:source_failures:rate5m",
					`sum by (source) (rate(deals_source_fetch_failures_total[5m]))`),
				record("deals:cache_hit_ratio:rate5m",
					`sum(rate(deals_cache_hits_total[5m])) / `+
						`(sum(rate(deals_cache_hits_total[5m])) + sum(rate(deals_cache_misses_total[5m])))`),
				record("deals:notification_duration:p95_5m",
					`histogram_quantile(0.95, sum by (le) (rate(deals_notification_duration_seconds_bucket[5m])))`),
			},
		},
	)
}
