// Package source defines the contract every deal source adapter implements
// and the shared bookkeeping around a single fetch.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/metrics"
	"github.com/donaldgifford/deal-aggregator/internal/telemetry"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// Adapter fetches deals from one external source. Implementations never
// return a Go error or panic out of FetchDeals or SearchDeals: failures are
// reported as a FetchResult with Success=false.
type Adapter interface {
	Name() domain.Source
	FetchDeals(ctx context.Context, q domain.Query) domain.FetchResult
	SearchDeals(ctx context.Context, q domain.Query) domain.FetchResult
	Stats() fetch.Stats
	Configured() bool
	ResetDaily()
}

// ErrNotConfigured marks an adapter that is missing credentials. Collect
// reports it as a successful, empty fetch.
var ErrNotConfigured = errors.New("not configured")

// ErrEmptyQuery is returned by SearchDeals without query text.
var ErrEmptyQuery = errors.New("search query is empty")

// NotConfigured wraps msg so that Collect treats it as a soft failure.
func NotConfigured(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotConfigured, msg)
}

// Collect runs fn and packages its outcome as a FetchResult, recording
// duration, failure and volume metrics plus a trace span. op names the
// operation in the span ("fetch" or "search").
func Collect(
	ctx context.Context,
	name domain.Source,
	op string,
	ex *fetch.Executor,
	fn func(ctx context.Context) ([]domain.RawDeal, error),
) domain.FetchResult {
	ctx, span := telemetry.StartSpan(ctx, "source."+op,
		attribute.String("deal.source", string(name)),
	)
	defer span.End()

	start := time.Now()
	deals, err := fn(ctx)
	elapsed := time.Since(start)

	metrics.SourceFetchDuration.WithLabelValues(string(name)).Observe(elapsed.Seconds())

	res := domain.FetchResult{
		Source:    name,
		FetchedAt: start,
		Duration:  elapsed,
	}
	if ex != nil {
		res.RateLimit = ex.RateLimit()
	}

	switch {
	case errors.Is(err, ErrNotConfigured):
		res.Success = true
		res.Deals = []domain.RawDeal{}
		res.Error = trimNotConfigured(err)
		span.SetAttributes(attribute.Bool("deal.configured", false))
	case err != nil:
		res.Deals = []domain.RawDeal{}
		res.Error = err.Error()
		metrics.SourceFetchFailuresTotal.WithLabelValues(string(name)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	default:
		res.Success = true
		if deals == nil {
			deals = []domain.RawDeal{}
		}
		res.Deals = deals
		metrics.DealsFetchedTotal.WithLabelValues(string(name)).Add(float64(len(deals)))
		span.SetAttributes(attribute.Int("deal.count", len(deals)))
	}

	return res
}

// Failed builds a failure result without running anything.
func Failed(name domain.Source, err error) domain.FetchResult {
	metrics.SourceFetchFailuresTotal.WithLabelValues(string(name)).Inc()
	return domain.FetchResult{
		Source:    name,
		Deals:     []domain.RawDeal{},
		FetchedAt: time.Now(),
		Error:     err.Error(),
	}
}

func trimNotConfigured(err error) string {
	return strings.TrimPrefix(err.Error(), ErrNotConfigured.Error()+": ")
}
