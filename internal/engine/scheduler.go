package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/deal-aggregator/internal/metrics"
)

// Scheduled job names. They double as the "job" log attribute.
const (
	jobHotDeals   = "hot_deals"
	jobQuotaReset = "quota_reset"
	jobPrune      = "prune"
)

const pruneTimeout = 5 * time.Minute

type job struct {
	spec string
	// timeout bounds one run; zero means no deadline.
	timeout time.Duration
	run     func(context.Context) error
}

// Scheduler runs the engine's periodic work on cron: the hot-deal refresh
// every interval, quota reset at midnight and featured-deal pruning at
// 03:30. A job still running when its next tick fires skips that tick.
type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
	jobs map[string]job
	ids  map[string]cron.EntryID
}

// NewScheduler registers the engine's jobs. Nothing runs until Start.
func NewScheduler(eng *Engine, hotDealsInterval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if hotDealsInterval <= 0 {
		return nil, fmt.Errorf("hot deals interval must be positive, got %s", hotDealsInterval)
	}
	if log == nil {
		log = slog.Default()
	}

	cronLog := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelWarn))
	s := &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
		log:  log,
		jobs: map[string]job{
			jobHotDeals: {
				spec:    "@every " + hotDealsInterval.String(),
				timeout: hotDealsInterval,
				run: func(ctx context.Context) error {
					_, err := eng.RunHotDeals(ctx)
					return err
				},
			},
			jobQuotaReset: {
				spec: "@midnight",
				run: func(context.Context) error {
					eng.ResetQuotas()
					return nil
				},
			},
			jobPrune: {
				spec:    "30 3 * * *",
				timeout: pruneTimeout,
				run: func(ctx context.Context) error {
					_, err := eng.PruneFeatured(ctx)
					return err
				},
			},
		},
		ids: make(map[string]cron.EntryID),
	}

	for name, j := range s.jobs {
		id, err := s.cron.AddFunc(j.spec, func() { s.run(name) })
		if err != nil {
			return nil, fmt.Errorf("scheduling %s: %w", name, err)
		}
		s.ids[name] = id
	}
	return s, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.SyncNextRunTimestamps()
	s.log.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop halts the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next hot-deal run time as a gauge.
func (s *Scheduler) SyncNextRunTimestamps() {
	if next := s.cron.Entry(s.ids[jobHotDeals]).Next; !next.IsZero() {
		metrics.SchedulerNextHotDealsTimestamp.Set(float64(next.Unix()))
	}
}

// run executes the named job once under its deadline.
func (s *Scheduler) run(name string) {
	j := s.jobs[name]
	log := s.log.With("job", name)

	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := j.run(ctx); err != nil {
		log.Error("scheduled job failed", "error", err, "duration", time.Since(start))
	} else {
		log.Debug("scheduled job finished", "duration", time.Since(start))
	}

	if name == jobHotDeals {
		s.SyncNextRunTimestamps()
	}
}
