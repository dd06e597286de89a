package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
)

// LogProvider ships slog records to an OTLP collector.
type LogProvider struct {
	provider *sdklog.LoggerProvider
}

// NewLogProvider creates a batching OTLP gRPC log pipeline and installs it
// globally.
func NewLogProvider(ctx context.Context, cfg Config, res *resource.Resource) (*LogProvider, error) {
	opts := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(cfg.Endpoint),
		otlploggrpc.WithDialOption(dialOptions(cfg)...),
	}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP log exporter: %w", err)
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(lp)

	return &LogProvider{provider: lp}, nil
}

// Handler returns an slog.Handler feeding this pipeline, or nil when there
// is no pipeline.
func (l *LogProvider) Handler() slog.Handler {
	if l == nil || l.provider == nil {
		return nil
	}
	return otelslog.NewHandler(InstrumentationName, otelslog.WithLoggerProvider(l.provider))
}

// Shutdown flushes buffered records and stops the exporter.
func (l *LogProvider) Shutdown(ctx context.Context) error {
	if l == nil || l.provider == nil {
		return nil
	}
	if err := l.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down logger provider: %w", err)
	}
	return nil
}
