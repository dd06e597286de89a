// Package rules builds the deal-aggregator's Prometheus recording and alert
// rules. Each set is a Prometheus Operator PrometheusRule resource and can
// also be rendered as a plain rule file for a Prometheus configured through
// rule_files.
package rules

import "maps"

const (
	operatorAPIVersion = "monitoring.coreos.com/v1"
	operatorKind       = "PrometheusRule"
)

// Options place the generated resources in a cluster.
type Options struct {
	Namespace string
	// Labels must match the Prometheus instance's ruleSelector.
	Labels map[string]string
}

// DefaultOptions targets the shared system Prometheus.
func DefaultOptions() Options {
	return Options{Labels: map[string]string{"prometheus": "system-rules-prometheus"}}
}

// PrometheusRule is the Prometheus Operator custom resource.
type PrometheusRule struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Metadata   ObjectMeta `yaml:"metadata"`
	Spec       RuleFile   `yaml:"spec"`
}

// ObjectMeta is the subset of Kubernetes object metadata the resource needs.
type ObjectMeta struct {
	Name      string            `yaml:"name"`
	Namespace string            `yaml:"namespace,omitempty"`
	Labels    map[string]string `yaml:"labels,omitempty"`
}

// RuleFile is a list of rule groups. It is both the resource spec and the
// top-level shape of a plain Prometheus rule file.
type RuleFile struct {
	Groups []RuleGroup `yaml:"groups"`
}

// RuleGroup is evaluated as a unit at Interval, or the global interval.
type RuleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is a recording rule when Record is set and an alert when Alert is.
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// Name is the record or alert name.
func (r Rule) Name() string {
	if r.Alert != "" {
		return r.Alert
	}
	return r.Record
}

func newPrometheusRule(name string, opts Options, groups ...RuleGroup) PrometheusRule {
	return PrometheusRule{
		APIVersion: operatorAPIVersion,
		Kind:       operatorKind,
		Metadata: ObjectMeta{
			Name:      name,
			Namespace: opts.Namespace,
			Labels:    maps.Clone(opts.Labels),
		},
		Spec: RuleFile{Groups: groups},
	}
}

// File returns the rule groups without the resource envelope.
func (pr PrometheusRule) File() RuleFile {
	return pr.Spec
}

// All returns every rule across the groups, in order.
func (pr PrometheusRule) All() []Rule {
	var out []Rule
	for _, g := range pr.Spec.Groups {
		out = append(out, g.Rules...)
	}
	return out
}
