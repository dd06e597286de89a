package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/deal-aggregator/tools/dashgen/dashboards"
	"github.com/donaldgifford/deal-aggregator/tools/dashgen/rules"
	"github.com/donaldgifford/deal-aggregator/tools/dashgen/validate"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "plain rules", mutate: func(c *Config) { c.RuleFormat = FormatPlain }},
		{
			name:    "no output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: "output directory",
		},
		{
			name:    "nothing enabled",
			mutate:  func(c *Config) { c.Dashboard, c.Rules = false, false },
			wantErr: "nothing to generate",
		},
		{
			name:    "unknown rule format",
			mutate:  func(c *Config) { c.RuleFormat = "thanos" },
			wantErr: `unknown rule format "thanos"`,
		},
		{
			name:   "format ignored without rules",
			mutate: func(c *Config) { c.Rules, c.RuleFormat = false, "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "deals-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "Deal Aggregator Overview", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 7)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 25, totalPanels)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func ruleNames(cr rules.PrometheusRule) []string {
	var names []string
	for _, r := range cr.All() {
		names = append(names, r.Name())
	}
	return names
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules(rules.Options{Namespace: "monitoring", Labels: map[string]string{"release": "kps"}})
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, rules.ObjectMeta{
		Name:      "deals-recording-rules",
		Namespace: "monitoring",
		Labels:    map[string]string{"release": "kps"},
	}, cr.Metadata)

	require.Len(t, cr.Spec.Groups, 2)
	assert.Equal(t, "deals-http", cr.Spec.Groups[0].Name)
	assert.Equal(t, "30s", cr.Spec.Groups[0].Interval)
	assert.Equal(t, "deals-pipeline", cr.Spec.Groups[1].Name)

	assert.Equal(t, []string{
		"deals:http_requests:rate5m",
		"deals:http_errors:rate5m",
		"deals:source_requests:rate5m",
		"deals:source_failures:rate5m",
		"deals:cache_hit_ratio:rate5m",
		"deals:notification_duration:p95_5m",
	}, ruleNames(cr))
	for _, name := range ruleNames(cr) {
		assert.True(t, KnownMetrics[name], "recording rule %s missing from KnownMetrics", name)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
	assert.Contains(t, string(data), "namespace: monitoring")
}

func TestRecordingRules_OptionsLabelsAreCopied(t *testing.T) {
	t.Parallel()

	opts := rules.DefaultOptions()
	cr := rules.RecordingRules(opts)
	opts.Labels["prometheus"] = "changed"

	assert.Equal(t, "system-rules-prometheus", cr.Metadata.Labels["prometheus"])
	assert.Empty(t, cr.Metadata.Namespace)
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules(rules.DefaultOptions())
	assert.Equal(t, "deals-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 2)
	assert.Equal(t, "deals-availability", cr.Spec.Groups[0].Name)
	assert.Equal(t, "deals-pipeline", cr.Spec.Groups[1].Name)

	assert.Equal(t, []string{
		"DealsDown",
		"DealsReadinessDown",
		"DealsHighErrorRate",
		"DealsSourceFailing",
		"DealsEbayQuotaHigh",
		"DealsQuotaExhausted",
		"DealsHotRunFailing",
		"DealsNotificationFailures",
	}, ruleNames(cr))

	for _, rule := range cr.All() {
		assert.Contains(t, []string{"critical", "warning"}, rule.Labels["severity"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], rule.Alert)
	}
	assert.Equal(t, "critical", cr.Spec.Groups[0].Rules[0].Labels["severity"])

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestValidateRules_RejectsBadExpressions(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{Spec: rules.RuleFile{Groups: []rules.RuleGroup{
		{
			Name:     "broken",
			Interval: "every minute",
			Rules: []rules.Rule{
				{Record: "bad:syntax", Expr: `sum(rate(deals_http_requests_total[5m]`},
				{Record: "bad:metric", Expr: `rate(deals_listings_total[5m])`},
				{Expr: `up`},
				{Record: "ok:histogram", Expr: `sum(rate(deals_scoring_distribution_count[5m]))`},
				{Alert: "BadFor", Expr: `up == 0`, For: "5 minutes"},
			},
		},
		{
			Name:  "again",
			Rules: []rules.Rule{{Record: "ok:histogram", Expr: `up`}},
		},
	}}}

	result := validate.Rules(cr, KnownMetrics)
	assert.False(t, result.Ok())
	assert.Len(t, result.Errors, 6, "errors: %v", result.Errors)
	assert.Contains(t, strings.Join(result.Errors, "\n"), `already defined in group "broken"`)
}

func TestKnown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"deals_cache_hits_total", true},
		{"deals_source_fetch_duration_seconds_bucket", true},
		{"deals_scoring_distribution_sum", true},
		{"deals_cache_hits_total_bucket", false},
		{"spt_http_requests_total", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validate.Known(tt.name, KnownMetrics))
		})
	}
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputDir = dir
	require.NoError(t, run(cfg, false))

	dashJSON, err := os.ReadFile(filepath.Join(dir, "grafana", "data", "deals-overview.json"))
	require.NoError(t, err)
	var dash map[string]any
	require.NoError(t, json.Unmarshal(dashJSON, &dash))
	assert.Equal(t, "deals-overview", dash["uid"])

	for _, name := range []string{"deals-recording-rules.yaml", "deals-alerts.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, "prometheus", name))
		require.NoError(t, err, name)
		assert.True(t, len(data) > len(generatedHeader))
		assert.Equal(t, generatedHeader, string(data[:len(generatedHeader)]))

		var cr rules.PrometheusRule
		require.NoError(t, yaml.Unmarshal(data, &cr), name)
		assert.Equal(t, "PrometheusRule", cr.Kind)
	}
}

func TestRun_PlainRuleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputDir = dir
	cfg.Dashboard = false
	cfg.RuleFormat = FormatPlain
	require.NoError(t, run(cfg, false))

	entries, err := os.ReadDir(filepath.Join(dir, "prometheus"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"deals-alerts.rules.yml", "deals-recording-rules.rules.yml"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "prometheus", "deals-alerts.rules.yml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "apiVersion")

	var file rules.RuleFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.Len(t, file.Groups, 2)
	assert.Equal(t, "DealsDown", file.Groups[0].Rules[0].Alert)

	_, err = os.Stat(filepath.Join(dir, "grafana"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, Rules: true, RuleFormat: FormatOperator}
	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
