package main

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/deal-aggregator/tools/dashgen/rules"
)

// KnownMetrics is the set of metric names exported by deal-aggregator plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"deals_http_request_duration_seconds": true,
	"deals_http_requests_total":           true,

	// Health metrics.
	"deals_healthz_up": true,
	"deals_readyz_up":  true,

	// Source metrics.
	"deals_source_requests_total":         true,
	"deals_source_daily_usage":            true,
	"deals_source_quota_hits_total":       true,
	"deals_source_retries_total":          true,
	"deals_source_fetch_duration_seconds": true,
	"deals_source_fetch_failures_total":   true,

	// Aggregation metrics.
	"deals_deals_fetched_total":          true,
	"deals_deals_after_dedup_total":      true,
	"deals_aggregation_duration_seconds": true,
	"deals_cache_hits_total":             true,
	"deals_cache_misses_total":           true,

	// Scoring metrics.
	"deals_scoring_distribution":   true,
	"deals_suspicious_deals_total": true,

	// Alert metrics.
	"deals_alerts_sent_total":             true,
	"deals_notification_failures_total":   true,
	"deals_notification_duration_seconds": true,

	// Hot-deal engine metrics.
	"deals_hot_deals_run_duration_seconds":     true,
	"deals_hot_deals_run_errors_total":         true,
	"deals_featured_deals_upserted_total":      true,
	"deals_featured_deals_pruned_total":        true,
	"deals_scheduler_next_hot_deals_timestamp": true,

	// Recording rules.
	"deals:http_requests:rate5m":         true,
	"deals:http_errors:rate5m":           true,
	"deals:source_requests:rate5m":       true,
	"deals:source_failures:rate5m":       true,
	"deals:cache_hit_ratio:rate5m":       true,
	"deals:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Rule file formats.
const (
	FormatOperator = "operator" // PrometheusRule resources
	FormatPlain    = "plain"    // rule_files for a standalone Prometheus
)

// Config selects what dashgen renders and where it lands.
type Config struct {
	OutputDir  string
	Dashboard  bool
	Rules      bool
	RuleFormat string
	Rule       rules.Options
}

// DefaultConfig renders everything as operator resources into ../../deploy,
// which is the repository's deploy/ when run from tools/dashgen.
func DefaultConfig() Config {
	return Config{
		OutputDir:  "../../deploy",
		Dashboard:  true,
		Rules:      true,
		RuleFormat: FormatOperator,
		Rule:       rules.DefaultOptions(),
	}
}

// Validate rejects configs that would write nothing or an unknown format.
func (c Config) Validate() error {
	switch {
	case c.OutputDir == "":
		return errors.New("output directory must be set")
	case !c.Dashboard && !c.Rules:
		return errors.New("nothing to generate: enable the dashboard or the rules")
	case c.Rules && c.RuleFormat != FormatOperator && c.RuleFormat != FormatPlain:
		return fmt.Errorf("unknown rule format %q (want %s or %s)", c.RuleFormat, FormatOperator, FormatPlain)
	}
	return nil
}
