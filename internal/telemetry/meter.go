package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const defaultExportInterval = 60 * time.Second

// MeterProvider pushes OpenTelemetry metrics to an OTLP collector alongside
// the Prometheus pull endpoint.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
}

// NewMeterProvider creates an OTLP gRPC metric pipeline and installs it
// globally.
func NewMeterProvider(ctx context.Context, cfg Config, res *resource.Resource) (*MeterProvider, error) {
	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithDialOption(dialOptions(cfg)...),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp)

	return &MeterProvider{provider: mp}, nil
}

// Shutdown flushes and stops the metric pipeline.
func (m *MeterProvider) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	if err := m.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down meter provider: %w", err)
	}
	return nil
}

type instruments struct {
	aggregations metric.Int64Counter
	dealsServed  metric.Int64Histogram
}

// The global meter delegates to whichever provider is installed later, so
// the instruments can be created on first use.
var loadInstruments = sync.OnceValue(func() *instruments {
	meter := otel.Meter(InstrumentationName)
	inst := &instruments{}
	inst.aggregations, _ = meter.Int64Counter("deals.aggregations",
		metric.WithDescription("Aggregator calls by operation and cache outcome."),
		metric.WithUnit("{call}"),
	)
	inst.dealsServed, _ = meter.Int64Histogram("deals.served",
		metric.WithDescription("Deals returned per aggregator call."),
		metric.WithUnit("{deal}"),
	)
	return inst
})

// RecordAggregation records one aggregator call.
func RecordAggregation(ctx context.Context, operation string, cached bool, deals int) {
	inst := loadInstruments()
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("cached", cached),
	)
	if inst.aggregations != nil {
		inst.aggregations.Add(ctx, 1, attrs)
	}
	if inst.dealsServed != nil {
		inst.dealsServed.Record(ctx, int64(deals), attrs)
	}
}
