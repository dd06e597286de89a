// Package fetch provides the rate-limited executor every source adapter runs
// its network calls through: a daily quota, a single-slot per-minute pacer,
// a per-attempt timeout and exponential-backoff retries.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/deal-aggregator/internal/metrics"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

var (
	// ErrQuotaExceeded is returned when the daily request quota has been used up.
	ErrQuotaExceeded = errors.New("daily request quota exceeded")

	// ErrSourceDisabled is returned by every call on a disabled source.
	ErrSourceDisabled = errors.New("source is disabled")
)

const (
	defaultMaxRetries     = 3
	defaultBackoffBase    = time.Second
	defaultRequestTimeout = 15 * time.Second
)

// Executor runs units of work against one source. Requests are counted
// before each attempt runs, so failed attempts consume quota too.
type Executor struct {
	source   domain.Source
	enabled  bool
	limiter  *rate.Limiter
	maxDaily int64
	daily    atomic.Int64

	mu      sync.Mutex
	resetAt time.Time

	maxRetries     int
	backoffBase    time.Duration
	requestTimeout time.Duration
	log            *slog.Logger
	nowFunc        func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(e *Executor) {
		e.nowFunc = f
	}
}

// WithMaxRetries sets the total number of attempts per unit of work.
func WithMaxRetries(n int) Option {
	return func(e *Executor) {
		e.maxRetries = n
	}
}

// WithBackoffBase sets the first retry delay. Later delays double.
func WithBackoffBase(d time.Duration) Option {
	return func(e *Executor) {
		e.backoffBase = d
	}
}

// WithRequestTimeout bounds each individual attempt.
func WithRequestTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.requestTimeout = d
	}
}

// WithEnabled marks the executor's source as enabled or disabled in Stats.
func WithEnabled(enabled bool) Option {
	return func(e *Executor) {
		e.enabled = enabled
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		e.log = l
	}
}

// NewExecutor creates an executor for source. A RequestsPerMinute of zero
// disables pacing; a RequestsPerDay of zero disables the daily quota.
func NewExecutor(source domain.Source, limit domain.RateLimit, opts ...Option) *Executor {
	e := &Executor{
		source:         source,
		enabled:        true,
		limiter:        newPacer(limit.RequestsPerMinute),
		maxDaily:       limit.RequestsPerDay,
		maxRetries:     defaultMaxRetries,
		backoffBase:    defaultBackoffBase,
		requestTimeout: defaultRequestTimeout,
		log:            slog.Default(),
		nowFunc:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resetAt = nextMidnight(e.nowFunc())
	return e
}

// newPacer returns a limiter with a burst of one, so consecutive dispatches
// are spaced at least a minute/rpm apart.
func newPacer(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

// Do runs op with pacing, quota enforcement and retries. The error from the
// final attempt is returned when every attempt fails. Quota exhaustion is
// never retried.
func (e *Executor) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if !e.enabled {
		return ErrSourceDisabled
	}

	attempts := 0

	operation := func() error {
		if err := e.acquire(ctx); err != nil {
			return backoff.Permanent(err)
		}

		attempts++
		if attempts > 1 {
			metrics.SourceRetriesTotal.WithLabelValues(string(e.source)).Inc()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.requestTimeout)
		defer cancel()
		return op(attemptCtx)
	}

	notify := func(err error, wait time.Duration) {
		e.log.Warn("source request failed, retrying",
			"source", e.source,
			"attempt", attempts,
			"max_attempts", e.attemptLimit(),
			"retry_in", wait,
			"error", err,
		)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(e.newBackOff(), ctx), notify)
}

// Execute runs op through ex and returns its value.
func Execute[T any](
	ctx context.Context,
	ex *Executor,
	op func(ctx context.Context) (T, error),
) (T, error) {
	var out T
	err := ex.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func (e *Executor) attemptLimit() int {
	if e.maxRetries < 1 {
		return 1
	}
	return e.maxRetries
}

// newBackOff sleeps backoffBase * 2^attempt between attempts and stops after
// the configured number of attempts.
func (e *Executor) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.backoffBase
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = e.backoffBase << 10
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithMaxRetries(b, uint64(e.attemptLimit()-1))
}

// acquire enforces the quota and the pacer, then records the request.
func (e *Executor) acquire(ctx context.Context) error {
	if err := e.checkQuota(); err != nil {
		return err
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacing wait: %w", err)
	}

	// Re-check under the lock: concurrent callers may have drained the
	// quota while this one was paced.
	e.mu.Lock()
	e.resetIfDueLocked()
	if e.maxDaily > 0 && e.daily.Load() >= e.maxDaily {
		e.mu.Unlock()
		return e.quotaError()
	}
	used := e.daily.Add(1)
	e.mu.Unlock()

	metrics.SourceRequestsTotal.WithLabelValues(string(e.source)).Inc()
	metrics.SourceDailyUsage.WithLabelValues(string(e.source)).Set(float64(used))
	return nil
}

func (e *Executor) checkQuota() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetIfDueLocked()
	if e.maxDaily > 0 && e.daily.Load() >= e.maxDaily {
		return e.quotaError()
	}
	return nil
}

func (e *Executor) quotaError() error {
	metrics.SourceQuotaHitsTotal.WithLabelValues(string(e.source)).Inc()
	return fmt.Errorf("%s: %w (%d/%d)", e.source, ErrQuotaExceeded, e.daily.Load(), e.maxDaily)
}

func (e *Executor) resetIfDueLocked() {
	now := e.nowFunc()
	if !now.Before(e.resetAt) {
		e.daily.Store(0)
		e.resetAt = nextMidnight(now)
	}
}

// ResetDaily clears the daily counter and schedules the next reset for the
// following local midnight.
func (e *Executor) ResetDaily() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.daily.Store(0)
	e.resetAt = nextMidnight(e.nowFunc())
	metrics.SourceDailyUsage.WithLabelValues(string(e.source)).Set(0)
}

// Stats is an observability snapshot of an executor.
type Stats struct {
	Source        domain.Source `json:"source"`
	Enabled       bool          `json:"enabled"`
	RequestsToday int64         `json:"requests_today"`
	DailyLimit    int64         `json:"daily_limit"`
	Remaining     int64         `json:"remaining"` // -1 when unlimited
	ResetAt       time.Time     `json:"reset_at"`
}

// Stats returns the executor's current counters.
func (e *Executor) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetIfDueLocked()
	return Stats{
		Source:        e.source,
		Enabled:       e.enabled,
		RequestsToday: e.daily.Load(),
		DailyLimit:    e.maxDaily,
		Remaining:     e.remainingLocked(),
		ResetAt:       e.resetAt,
	}
}

// RateLimit returns the quota info reported on each FetchResult.
func (e *Executor) RateLimit() domain.RateLimitInfo {
	s := e.Stats()
	return domain.RateLimitInfo{Remaining: s.Remaining, ResetAt: s.ResetAt}
}

func (e *Executor) remainingLocked() int64 {
	if e.maxDaily <= 0 {
		return -1
	}
	return max(e.maxDaily-e.daily.Load(), 0)
}

func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
