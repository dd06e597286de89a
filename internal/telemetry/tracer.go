// Package telemetry wires OpenTelemetry tracing plus OTLP metric and log
// export.
// When disabled, the global no-op providers stay in place and every helper
// remains safe to call.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// InstrumentationName scopes every tracer and meter created here.
const InstrumentationName = "github.com/donaldgifford/deal-aggregator"

const shutdownTimeout = 10 * time.Second

// Config holds telemetry settings.
type Config struct {
	Enabled        bool
	Endpoint       string
	Insecure       bool
	SampleRatio    float64
	ServiceName    string
	ServiceVersion string
	MetricsEnabled bool
	LogsEnabled    bool
	ExportInterval time.Duration
}

// Provider owns the tracer and meter providers for the process lifetime.
type Provider struct {
	tracer *sdktrace.TracerProvider
	meter  *MeterProvider
	logs   *LogProvider
	log    *slog.Logger
}

// Setup installs global OpenTelemetry providers from cfg. With Enabled false
// it returns a Provider whose Shutdown is a no-op.
func Setup(ctx context.Context, cfg Config, log *slog.Logger) (*Provider, error) {
	p := &Provider{log: log}
	if !cfg.Enabled {
		log.Debug("telemetry disabled, using no-op providers")
		return p, nil
	}

	res := newResource(cfg)

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithDialOption(dialOptions(cfg)...),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	p.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)
	otel.SetTracerProvider(p.tracer)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.MetricsEnabled {
		p.meter, err = NewMeterProvider(ctx, cfg, res)
		if err != nil {
			_ = p.tracer.Shutdown(ctx)
			return nil, err
		}
	}

	if cfg.LogsEnabled {
		p.logs, err = NewLogProvider(ctx, cfg, res)
		if err != nil {
			_ = p.meter.Shutdown(ctx)
			_ = p.tracer.Shutdown(ctx)
			return nil, err
		}
	}

	log.Info("telemetry initialized",
		"endpoint", cfg.Endpoint,
		"sample_ratio", cfg.SampleRatio,
		"metrics", cfg.MetricsEnabled,
		"logs", cfg.LogsEnabled,
	)
	return p, nil
}

// Shutdown flushes pending spans and metrics.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tracer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if err := p.tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down tracer provider: %w", err))
	}
	if err := p.meter.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := p.logs.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogHandler is the OTLP log handler, or nil when log export is off.
func (p *Provider) LogHandler() slog.Handler {
	if p == nil {
		return nil
	}
	return p.logs.Handler()
}

// Enabled reports whether a real exporter is installed.
func (p *Provider) Enabled() bool {
	return p != nil && p.tracer != nil
}

// StartSpan starts an internal span on the global tracer provider.
func StartSpan(
	ctx context.Context,
	name string,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func newResource(cfg Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName(cfg)),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)
}

func serviceName(cfg Config) string {
	if cfg.ServiceName == "" {
		return "deal-aggregator"
	}
	return cfg.ServiceName
}

// dialOptions are shared by every exporter so collectors can
// tell deal-aggregator versions apart.
func dialOptions(cfg Config) []grpc.DialOption {
	ua := serviceName(cfg)
	if cfg.ServiceVersion != "" {
		ua += "/" + cfg.ServiceVersion
	}
	return []grpc.DialOption{grpc.WithUserAgent(ua)}
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}
