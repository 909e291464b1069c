package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"finance-reports/internal/cache"
	"finance-reports/internal/service"
	"finance-reports/internal/store"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			slog.Info("Running database migrations...")
			if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			slog.Info("Migration completed successfully")
			return nil
		},
	}
}

func seedDemoCmd() *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Seed demo categories and transactions for a user (idempotent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", userFlag, err)
			}

			db, err := store.Open(ctx, cfg.DatabaseURL, store.ConnectOptions{
				MaxRetries: cfg.DBMaxRetries,
				RetryDelay: cfg.DBRetryDelay,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			st := store.New(db)
			defer st.Close()

			inserted, err := store.SeedDemoData(ctx, st, userID, time.Now())
			if err != nil {
				return fmt.Errorf("seeding demo data failed: %w", err)
			}
			if inserted == 0 {
				slog.Info("User already has transactions, nothing seeded", "user_id", userID)
				return nil
			}
			slog.Info("Demo data seeded", "user_id", userID, "transactions", inserted)

			// Reports cached before the seed would hide the new rows.
			if !cfg.CacheEnabled() {
				return nil
			}
			client, err := cache.Open(ctx, cfg.RedisURL)
			if err != nil {
				slog.Warn("Redis unavailable, cached reports expire on their own", "error", err)
				return nil
			}
			defer client.Close()
			return service.NewReports(st, cache.NewReportCache(client, cfg.CacheTTL)).Invalidate(ctx, userID)
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "user id (UUID) to seed data for")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
