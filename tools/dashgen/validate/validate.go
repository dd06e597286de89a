// Package validate checks generated dashboards and rule files: every
// PromQL expression must parse, and every metric it selects must be one
// deal-aggregator exports or a recording rule defines.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/deal-aggregator/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation produced no errors.
func (r *Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// histogramSuffixes are the series a histogram exposes besides its base name.
var histogramSuffixes = []string{"_bucket", "_count", "_sum"}

// Expr parses expr and returns the metric names it selects.
func Expr(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names, nil
}

// Known reports whether name is in known, directly or as a histogram
// series of a known base metric.
func Known(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

func (r *Result) checkExpr(where, expr string, known map[string]bool) {
	names, err := Expr(expr)
	if err != nil {
		r.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}
	if len(names) == 0 {
		r.warnf("%s: expression %q selects no metrics", where, expr)
	}
	for _, name := range names {
		if !Known(name, known) {
			r.errorf("%s: unknown metric %q", where, name)
		}
	}
}

type panelJSON struct {
	Title   string `json:"title"`
	Targets []struct {
		Expr  string `json:"expr"`
		RefID string `json:"refId"`
	} `json:"targets"`
	Panels []panelJSON `json:"panels"`
}

// Dashboard validates every panel target in dash. The dashboard is walked
// through its JSON form, which is what Grafana loads.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.errorf("marshaling dashboard: %v", err)
		return r
	}
	var root struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		r.errorf("decoding dashboard: %v", err)
		return r
	}

	var walk func(panels []panelJSON)
	walk = func(panels []panelJSON) {
		for _, p := range panels {
			walk(p.Panels)
			if len(p.Panels) > 0 || p.Targets == nil {
				continue
			}
			refs := make(map[string]bool, len(p.Targets))
			for _, t := range p.Targets {
				if refs[t.RefID] {
					r.errorf("panel %q: duplicate refId %q", p.Title, t.RefID)
				}
				refs[t.RefID] = true
				r.checkExpr(fmt.Sprintf("panel %q", p.Title), t.Expr, known)
			}
		}
	}
	walk(root.Panels)
	return r
}

// Rules validates a rule resource: every rule is named, recording names are
// unique, durations parse, and every expression passes Expr.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	records := make(map[string]string)

	for _, g := range cr.Spec.Groups {
		checkDuration(&r, "group "+g.Name+" interval", g.Interval)

		for _, rule := range g.Rules {
			name := rule.Name()
			if name == "" {
				r.errorf("group %q: rule without record or alert name", g.Name)
				continue
			}
			where := g.Name + "/" + name

			if rule.Record != "" {
				if prev, dup := records[rule.Record]; dup {
					r.errorf("%s: recording rule already defined in group %q", where, prev)
				}
				records[rule.Record] = g.Name
			}
			checkDuration(&r, where+" for", rule.For)
			r.checkExpr(where, rule.Expr, known)
		}
	}
	return r
}

func checkDuration(r *Result, where, d string) {
	if d == "" {
		return
	}
	if _, err := model.ParseDuration(d); err != nil {
		r.errorf("%s: %v", where, err)
	}
}
