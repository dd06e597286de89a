package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/deal-aggregator/tools/dashgen/dashboards"
	"github.com/donaldgifford/deal-aggregator/tools/dashgen/rules"
	"github.com/donaldgifford/deal-aggregator/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	cfg := DefaultConfig()
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "output directory")
	flag.StringVar(&cfg.RuleFormat, "rule-format", cfg.RuleFormat, "rule output: operator or plain")
	flag.StringVar(&cfg.Rule.Namespace, "namespace", "", "namespace for PrometheusRule resources")
	flag.BoolVar(&cfg.Dashboard, "dashboard", cfg.Dashboard, "render the Grafana dashboard")
	flag.BoolVar(&cfg.Rules, "rules", cfg.Rules, "render the Prometheus rules")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

func generate(cfg Config) ([]artifact, error) {
	var out []artifact

	if cfg.Dashboard {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building overview dashboard: %w", err)
		}
		if err := report("dashboard", validate.Dashboard(dash, KnownMetrics)); err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling dashboard: %w", err)
		}
		out = append(out, artifact{
			path: filepath.Join("grafana", "data", "deals-overview.json"),
			data: append(data, '\n'),
		})
	}

	if cfg.Rules {
		for _, cr := range []rules.PrometheusRule{rules.RecordingRules(cfg.Rule), rules.AlertRules(cfg.Rule)} {
			if err := report(cr.Metadata.Name, validate.Rules(cr, KnownMetrics)); err != nil {
				return nil, err
			}
			a, err := ruleArtifact(cr, cfg.RuleFormat)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
	}

	return out, nil
}

func ruleArtifact(cr rules.PrometheusRule, format string) (artifact, error) {
	var doc any = cr
	name := cr.Metadata.Name + ".yaml"
	if format == FormatPlain {
		doc, name = cr.File(), cr.Metadata.Name+".rules.yml"
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return artifact{}, fmt.Errorf("marshaling %s: %w", cr.Metadata.Name, err)
	}
	return artifact{
		path: filepath.Join("prometheus", name),
		data: append([]byte(generatedHeader), data...),
	}, nil
}

func report(what string, r validate.Result) error {
	for _, w := range r.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", what, w)
	}
	if r.Ok() {
		return nil
	}
	return fmt.Errorf("%s failed validation:\n  %s", what, strings.Join(r.Errors, "\n  "))
}
