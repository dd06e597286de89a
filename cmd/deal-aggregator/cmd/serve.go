package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/api/handlers"
	mw "github.com/donaldgifford/deal-aggregator/internal/api/middleware"
	"github.com/donaldgifford/deal-aggregator/internal/config"
	"github.com/donaldgifford/deal-aggregator/internal/engine"
	"github.com/donaldgifford/deal-aggregator/internal/store"
	"github.com/donaldgifford/deal-aggregator/internal/telemetry"
	"github.com/donaldgifford/deal-aggregator/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Setup(ctx, telemetryConfig(cfg), log)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("telemetry shutdown", "error", err)
		}
	}()
	if h := tp.LogHandler(); h != nil {
		log = logger.Tee(log, h)
		slog.SetDefault(log)
	}

	agg := buildAggregator(cfg, log)
	defer agg.Close()

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	eng := engine.NewEngine(agg, st, buildNotifier(cfg, log),
		engine.WithLogger(log),
		engine.WithHotLimit(cfg.Schedule.HotDealsLimit),
		engine.WithAlertThreshold(cfg.Notifications.Discord.AlertThreshold),
	)
	sched, err := engine.NewScheduler(eng, cfg.Schedule.HotDealsInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	e := newServer(cfg, agg, st, log)

	sched.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler jobs still running at shutdown")
	}

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newServer builds the echo instance with operational endpoints and the
// huma-described API mounted on it.
func newServer(
	cfg *config.Config,
	agg *aggregator.Aggregator,
	st store.Store,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(mw.Recovery(log), mw.RequestLog(log), mw.Metrics())

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("deal-aggregator API", Version))
	handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(agg))
	handlers.RegisterFeaturedRoutes(api, handlers.NewFeaturedHandler(st))
	handlers.RegisterSourceRoutes(api, handlers.NewSourcesHandler(agg))

	return e
}

func telemetryConfig(cfg *config.Config) telemetry.Config {
	t := cfg.Telemetry
	return telemetry.Config{
		Enabled:        t.Enabled,
		Endpoint:       t.Endpoint,
		Insecure:       t.Insecure,
		SampleRatio:    t.SampleRatio,
		ServiceName:    t.ServiceName,
		ServiceVersion: Version,
		MetricsEnabled: t.MetricsEnabled,
		LogsEnabled:    t.LogsEnabled,
		ExportInterval: t.ExportInterval,
	}
}
