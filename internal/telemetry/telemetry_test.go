package telemetry

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/donaldgifford/deal-aggregator/pkg/logger"
)

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	p, err := Setup(context.Background(), Config{Enabled: false}, logger.Discard())
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestShutdown_NilProvider(t *testing.T) {
	t.Parallel()

	var p *Provider
	require.NoError(t, p.Shutdown(context.Background()))
	assert.False(t, p.Enabled())
}

func TestStartSpan_NoopProvider(t *testing.T) {
	t.Parallel()

	ctx, span := StartSpan(context.Background(), "test.span", attribute.String("k", "v"))
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
}

func TestRecordAggregation_NoopProvider(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		RecordAggregation(context.Background(), "fetch", false, 12)
		RecordAggregation(context.Background(), "fetch", true, 12)
	})
}

func TestSampler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 1, want: sdktrace.AlwaysSample().Description()},
		{ratio: 0, want: sdktrace.NeverSample().Description()},
		{ratio: 0.25, want: sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.25)).Description()},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sampler(tt.ratio).Description())
	}
}

func TestNewResource_DefaultServiceName(t *testing.T) {
	t.Parallel()

	res := newResource(Config{ServiceVersion: "v1.2.3"})

	var name string
	for _, kv := range res.Attributes() {
		if kv.Key == "service.name" {
			name = kv.Value.AsString()
		}
	}
	assert.Equal(t, "deal-aggregator", name)
}

func TestServiceNameAndDialOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "deal-aggregator", serviceName(Config{}))
	assert.Equal(t, "deals-staging", serviceName(Config{ServiceName: "deals-staging"}))

	assert.Len(t, dialOptions(Config{}), 1)
	assert.Len(t, dialOptions(Config{ServiceName: "x", ServiceVersion: "1.2.3"}), 1)
}

func TestLogHandler_Disabled(t *testing.T) {
	t.Parallel()

	p, err := Setup(context.Background(), Config{LogsEnabled: true}, logger.Discard())
	require.NoError(t, err)
	assert.Nil(t, p.LogHandler(), "log export needs telemetry enabled")

	var nilProvider *Provider
	assert.Nil(t, nilProvider.LogHandler())

	var lp *LogProvider
	assert.Nil(t, lp.Handler())
	require.NoError(t, lp.Shutdown(context.Background()))
}

func TestLogProvider_Handler(t *testing.T) {
	t.Parallel()

	lp := &LogProvider{provider: sdklog.NewLoggerProvider()}
	h := lp.Handler()
	require.NotNil(t, h)

	slog.New(h).Info("featured deal stored", "source", "slickdeals")
	require.NoError(t, lp.Shutdown(context.Background()))
}
