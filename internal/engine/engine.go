// Package engine runs the periodic hot-deal pipeline: refresh the hot list
// from every source, persist it as featured deals, and alert on the best.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/donaldgifford/deal-aggregator/internal/metrics"
	"github.com/donaldgifford/deal-aggregator/internal/notify"
	"github.com/donaldgifford/deal-aggregator/internal/store"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const (
	defaultHotLimit       = 20
	defaultAlertThreshold = 85
	defaultAlertLimit     = 25
	defaultRetention      = 7 * 24 * time.Hour
)

// HotDealFinder is the part of the aggregator the engine drives.
type HotDealFinder interface {
	RefreshHotDeals(ctx context.Context, limit int) (*domain.AggregatorResult, error)
	ResetQuotas()
}

// RunSummary reports what one hot-deal run did.
type RunSummary struct {
	Fetched  int
	Upserted int
	New      int
	Alerted  int
	Failed   []domain.Source
}

// Engine orchestrates hot-deal refresh, persistence, and alerting.
type Engine struct {
	finder   HotDealFinder
	store    store.Store
	notifier notify.Notifier
	log      *slog.Logger

	hotLimit       int
	alertThreshold int
	alertLimit     int
	retention      time.Duration
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	f HotDealFinder,
	s store.Store,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		finder:         f,
		store:          s,
		notifier:       n,
		log:            slog.Default(),
		hotLimit:       defaultHotLimit,
		alertThreshold: defaultAlertThreshold,
		alertLimit:     defaultAlertLimit,
		retention:      defaultRetention,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithHotLimit sets how many hot deals each run requests.
func WithHotLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.hotLimit = n
		}
	}
}

// WithAlertThreshold sets the minimum score that triggers a notification.
func WithAlertThreshold(score int) EngineOption {
	return func(e *Engine) {
		e.alertThreshold = score
	}
}

// WithAlertLimit caps the deals notified per run.
func WithAlertLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.alertLimit = n
		}
	}
}

// WithRetention sets how long featured deals are kept after their last refresh.
func WithRetention(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.retention = d
		}
	}
}

// RunHotDeals refreshes the hot list bypassing the cache, upserts every deal
// into the featured store, and notifies about pending deals above the alert
// threshold. Upsert failures are logged and do not stop the run; alerts are
// always processed so earlier failed sends get retried.
func (eng *Engine) RunHotDeals(ctx context.Context) (RunSummary, error) {
	start := time.Now()
	defer func() {
		metrics.HotDealsRunDuration.Observe(time.Since(start).Seconds())
	}()

	var summary RunSummary

	res, err := eng.finder.RefreshHotDeals(ctx, eng.hotLimit)
	if err != nil {
		metrics.HotDealsRunErrorsTotal.Inc()
		return summary, fmt.Errorf("refreshing hot deals: %w", err)
	}

	summary.Fetched = len(res.Deals)
	for _, st := range res.Sources {
		if !st.Success {
			summary.Failed = append(summary.Failed, st.Source)
		}
	}

	var errs []error
	for i := range res.Deals {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		f := store.FeaturedFromDeal(&res.Deals[i])
		isNew, err := eng.store.UpsertFeaturedDeal(ctx, &f)
		if err != nil {
			eng.log.Error("featured upsert failed",
				"source", f.Source,
				"source_id", f.SourceID,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}

		metrics.FeaturedDealsUpsertedTotal.WithLabelValues(strconv.FormatBool(isNew)).Inc()
		summary.Upserted++
		if isNew {
			summary.New++
		}
	}

	alerted, alertErr := ProcessAlerts(ctx, eng.store, eng.notifier, eng.alertThreshold, eng.alertLimit)
	summary.Alerted = alerted
	if alertErr != nil {
		eng.log.Error("alert processing failed", "error", alertErr)
		errs = append(errs, alertErr)
	}

	eng.log.Info("hot deals run complete",
		"fetched", summary.Fetched,
		"upserted", summary.Upserted,
		"new", summary.New,
		"alerted", summary.Alerted,
		"failed_sources", len(summary.Failed),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if len(errs) > 0 {
		metrics.HotDealsRunErrorsTotal.Inc()
		return summary, errors.Join(errs...)
	}
	return summary, nil
}

// ResetQuotas starts a new daily quota window for every source.
func (eng *Engine) ResetQuotas() {
	eng.finder.ResetQuotas()
}

// PruneFeatured deletes featured deals not refreshed within the retention window.
func (eng *Engine) PruneFeatured(ctx context.Context) (int, error) {
	n, err := eng.store.PruneFeaturedDeals(ctx, eng.retention)
	if err != nil {
		return 0, fmt.Errorf("pruning featured deals: %w", err)
	}
	metrics.FeaturedDealsPrunedTotal.Add(float64(n))
	eng.log.Info("featured deals pruned", "removed", n, "retention", eng.retention.String())
	return n, nil
}
