package rules

type severity string

const (
	critical severity = "critical"
	warning  severity = "warning"
)

func alert(name string, sev severity, expr, forDuration, summary, description string) Rule {
	return Rule{
		Alert:       name,
		Expr:        expr,
		For:         forDuration,
		Labels:      map[string]string{"severity": string(sev)},
		Annotations: map[string]string{"summary": summary, "description": description},
	}
}

// AlertRules returns the operational alerts: service availability first,
// then the health of the fetch and hot-deal pipeline behind it.
func AlertRules(opts Options) PrometheusRule {
	return newPrometheusRule("deals-alerts", opts,
		RuleGroup{
			Name: "deals-availability",
			Rules: []Rule{
				alert("DealsDown", critical,
					`absent(up{job="deal-aggregator"})`, "2m",
					"Deal aggregator is down",
					"The deal-aggregator job has been absent for more than 2 minutes."),
				alert("DealsReadinessDown", critical,
					`deals_readyz_up == 0`, "2m",
					"Featured deals store is unreachable",
					"The readiness probe has been failing for more than 2 minutes."),
				alert("DealsHighErrorRate", warning,
					`deals:http_errors:rate5m / deals:http_requests:rate5m > 0.05`, "5m",
					"High HTTP error rate on the deal aggregator",
					"More than 5% of API requests returned 5xx over the last 5 minutes."),
			},
		},
		RuleGroup{
			Name: "deals-pipeline",
			Rules: []Rule{
				alert("DealsSourceFailing", warning,
					`deals:source_failures:rate5m / deals:source_requests:rate5m > 0.5`, "10m",
					"Deal source {{ $labels.source }} is failing",
					"More than half of the fetches to {{ $labels.source }} have failed for 10 minutes."),
				alert("DealsEbayQuotaHigh", warning,
					`deals_source_daily_usage{source="ebay"} > 4000`, "5m",
					"eBay API daily usage is above 80% of the quota",
					"Daily eBay Browse API usage has passed 4000 of 5000 calls."),
				alert("DealsQuotaExhausted", warning,
					`increase(deals_source_quota_hits_total[5m]) > 0`, "0m",
					"Deal source {{ $labels.source }} reached its daily limit",
					"Requests to {{ $labels.source }} are refused until the midnight quota reset."),
				alert("DealsHotRunFailing", warning,
					`increase(deals_hot_deals_run_errors_total[30m]) > 2`, "0m",
					"Hot-deal refresh keeps failing",
					"More than two hot-deal refresh runs failed in the last 30 minutes."),
				alert("DealsNotificationFailures", warning,
					`increase(deals_notification_failures_total[5m]) > 0`, "1m",
					"Hot-deal alerts are failing to send",
					"One or more Discord webhook deliveries failed in the last 5 minutes."),
			},
		},
	)
}
