package main

import (
	"context"
	"ctwatch/internal/config"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand that applies database
// migrations to the latest version using goose.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the SQL storage to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := logger.WithFields(context.Background(), zap.String("driver", cfg.Storage.Driver))

			if cfg.Storage.Driver == storage.DriverJSON || cfg.Storage.Driver == "" {
				logger.Info(ctx, "json storage has no schema, nothing to migrate")

				return
			}

			strg, err := openSQL(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not open storage", zap.Error(err))
			}
			defer func() {
				if err := strg.Close(); err != nil {
					logger.Warn(ctx, "could not close storage", zap.Error(err))
				}
			}()

			if err = strg.Migrate(); err != nil {
				logger.Fatal(ctx, "could not migrate storage", zap.Error(err)) //nolint: gocritic
			}
			logger.Info(ctx, "storage migrated")
		},
	}

	return cmd
}
