package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/cache"
	"github.com/donaldgifford/deal-aggregator/internal/config"
	"github.com/donaldgifford/deal-aggregator/internal/ebay"
	"github.com/donaldgifford/deal-aggregator/internal/feed"
	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/notify"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	"github.com/donaldgifford/deal-aggregator/internal/store"
	"github.com/donaldgifford/deal-aggregator/pkg/logger"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// newExecutor builds the rate-limited executor for one source.
func newExecutor(
	cfg *config.Config,
	settings *config.SourceSettings,
	name domain.Source,
	log *slog.Logger,
) *fetch.Executor {
	sc := settings.Domain(name, "", cfg.Schedule.HotDealsInterval)
	return fetch.NewExecutor(sc.Name, sc.RateLimit,
		fetch.WithEnabled(sc.Enabled),
		fetch.WithMaxRetries(cfg.Aggregator.MaxRetries),
		fetch.WithBackoffBase(cfg.Aggregator.BackoffBase),
		fetch.WithRequestTimeout(cfg.Aggregator.RequestTimeout),
		fetch.WithLogger(logger.ForSource(log, string(name))),
	)
}

// buildRegistry registers an adapter for every source. Disabled sources are
// still registered so their stats stay visible; their executors refuse work.
func buildRegistry(cfg *config.Config, log *slog.Logger) *source.Registry {
	src := &cfg.Sources
	feedOpts := []feed.Option{feed.WithLogger(log)}
	if ua := cfg.Aggregator.UserAgent; ua != "" {
		feedOpts = append(feedOpts, feed.WithUserAgent(ua))
	}

	reg := source.NewRegistry()
	reg.Register(buildEbay(cfg, log))
	reg.Register(feed.NewCuratedAdapter(domain.SourceSlickdeals,
		src.Slickdeals.FeedURL, src.Slickdeals.SearchURL,
		newExecutor(cfg, &src.Slickdeals.SourceSettings, domain.SourceSlickdeals, log),
		feedOpts...,
	))
	reg.Register(feed.NewCuratedAdapter(domain.SourceDealnews,
		src.Dealnews.FeedURL, src.Dealnews.SearchURL,
		newExecutor(cfg, &src.Dealnews.SourceSettings, domain.SourceDealnews, log),
		feedOpts...,
	))
	reg.Register(feed.NewClassifiedsAdapter(domain.SourceCraigslist,
		feed.ClassifiedsConfig{
			URLTemplate:   src.Craigslist.URLTemplate,
			Cities:        src.Craigslist.Cities,
			TopCities:     src.Craigslist.TopCities,
			CategoryCodes: src.Craigslist.CategoryCodes,
		},
		newExecutor(cfg, &src.Craigslist.SourceSettings, domain.SourceCraigslist, log),
		feedOpts...,
	))
	return reg
}

func buildEbay(cfg *config.Config, log *slog.Logger) *ebay.Adapter {
	ec := &cfg.Sources.Ebay
	ex := newExecutor(cfg, &ec.SourceSettings, domain.SourceEbay, log)
	opts := []ebay.AdapterOption{
		ebay.WithLogger(log),
		ebay.WithPageSize(ec.PageSize),
		ebay.WithMaxPages(ec.MaxPages),
	}
	if len(ec.CategoryQueries) > 0 {
		opts = append(opts, ebay.WithCategoryQueries(ec.CategoryQueries))
	}

	if !ec.HasCredentials() {
		log.Warn("ebay credentials not set, adapter will report not configured")
		return ebay.NewAdapter(nil, ex, opts...)
	}

	tokens := ebay.NewOAuthTokenProvider(ec.AppID, ec.CertID, ebay.WithTokenURL(ec.TokenURL))
	client := ebay.NewBrowseClient(tokens,
		ebay.WithBrowseURL(ec.BrowseURL),
		ebay.WithMarketplace(ec.Marketplace),
	)
	return ebay.NewAdapter(client, ex, opts...)
}

func buildAggregator(cfg *config.Config, log *slog.Logger) *aggregator.Aggregator {
	ac := &cfg.Aggregator
	return aggregator.New(buildRegistry(cfg, log),
		aggregator.WithLogger(log),
		aggregator.WithDefaultSources(ac.DefaultSources...),
		aggregator.WithCache(cache.New[domain.AggregatorResult](
			cache.WithSweepInterval(ac.SweepInterval),
		)),
		aggregator.WithTTLs(ac.ListingTTL, ac.SearchTTL, ac.HotTTL),
		aggregator.WithHotThreshold(ac.HotThreshold),
	)
}

// openStore connects to Postgres when a database is configured and falls
// back to an in-process store otherwise. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, func(), error) {
	if !cfg.Database.Enabled() {
		log.Warn("no database configured, featured deals are kept in memory")
		return store.NewMemoryStore(), func() {}, nil
	}

	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), cfg.Database.PoolSize)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	log.Info("featured store ready", "host", cfg.Database.Host, "database", cfg.Database.Name)
	return pg, pg.Close, nil
}

func buildNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	dc := cfg.Notifications.Discord
	if dc.Enabled && dc.WebhookURL != "" {
		var opts []notify.DiscordOption
		if dc.Username != "" {
			opts = append(opts, notify.WithUsername(dc.Username))
		}
		return notify.NewDiscordNotifier(dc.WebhookURL, opts...)
	}
	return notify.NewNoOpNotifier(log)
}
