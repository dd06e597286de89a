package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/deal-aggregator/internal/config"
	"github.com/donaldgifford/deal-aggregator/internal/store"
	"github.com/donaldgifford/deal-aggregator/pkg/logger"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply featured store schema migrations",
	Long: `Apply the embedded SQL migrations to the featured deals database.
With --status, list each migration and when it was applied without changing
anything.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "list migrations instead of applying them")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Database.Enabled() {
		return errors.New("database.host is not set, nothing to migrate")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), cfg.Database.PoolSize)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pg.Close()

	if migrateStatus {
		states, err := pg.MigrationStatus(ctx)
		if err != nil {
			return err
		}
		return writeMigrations(cmd.OutOrStdout(), states)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format).With("host", cfg.Database.Host)
	applied, err := pg.ApplyMigrations(ctx)
	for _, v := range applied {
		log.Info("applied migration", "version", v)
	}
	if err != nil {
		return err
	}
	log.Info("schema up to date", "applied", len(applied))
	return nil
}

func writeMigrations(w io.Writer, states []store.MigrationState) error {
	t := newTable("VERSION", "APPLIED")
	for _, st := range states {
		applied := "pending"
		if st.AppliedAt != nil {
			applied = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		t.add(st.Version, applied)
	}
	return t.render(w)
}
