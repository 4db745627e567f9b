package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"announcehub/config"
	"announcehub/internal/repository/postgres"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := sql.Open("postgres", cfg.DBUrl)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
