// Package main provides the CLI entrypoint for ctwatch.
// It wires subcommands (monitor, check, migrate, jwt), loads configuration, and initializes logging.
package main

import (
	"context"
	"ctwatch/internal/config"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/notifier"
	"ctwatch/pkg/notifier/slack"
	"ctwatch/pkg/notifier/telegram"
	"ctwatch/pkg/storage"
	"ctwatch/pkg/storage/jsonfile"
	"ctwatch/pkg/storage/sqlstore"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openStorage opens the backend selected by cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage.Driver == storage.DriverJSON || cfg.Storage.Driver == "" {
		strg, err := jsonfile.New(jsonfile.Options{
			DomainsPath:         cfg.Storage.JSON.DomainsPath,
			KnownSubdomainsPath: cfg.Storage.JSON.KnownSubdomainsPath,
		})
		if err != nil {
			return nil, err
		}

		return strg, nil
	}

	strg, err := openSQL(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return strg, nil
}

// openSQL opens one of the goqu backed stores.
func openSQL(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	switch cfg.Storage.Driver {
	case storage.DriverPostgres:
		return sqlstore.NewPostgres(ctx, sqlstore.PostgresOptions{
			Username:           cfg.Storage.Postgres.Username,
			Password:           cfg.Storage.Postgres.Password,
			Host:               cfg.Storage.Postgres.Host,
			Port:               cfg.Storage.Postgres.Port,
			Database:           cfg.Storage.Postgres.DatabaseName,
			ConnMaxLifetime:    cfg.Storage.Postgres.ConnMaxLifetime,
			ConnMaxIdleTime:    cfg.Storage.Postgres.ConnMaxIdleTime,
			MaxOpenConnections: cfg.Storage.Postgres.MaxOpenConnections,
			MaxIdleConnections: cfg.Storage.Postgres.MaxIdleConnections,
			SslMode:            cfg.Storage.Postgres.SslMode,
		})
	case storage.DriverSQLite, "sqlite":
		return sqlstore.NewSQLite(sqlstore.SQLiteOptions{Path: cfg.Storage.SQLite.Path})
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, cfg.Storage.Driver)
	}
}

// getStorage opens the configured storage and returns it along with a cleanup
// function that closes it.
func getStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func()) {
	strg, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "could not open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	return strg, func() {
		logger.Info(ctx, "closing storage...")
		if err = strg.Close(); err != nil {
			logger.Warn(ctx, "could not close storage", zap.Error(err))
		}
	}
}

// newNotifier builds the notification fan-out. Events are always logged; Telegram
// and Slack are added when configured.
func newNotifier(cfg *config.Config) (notifier.Multi, error) {
	sinks := notifier.Multi{notifier.Log{}}

	if cfg.Notifier.Telegram.Token != "" || cfg.Notifier.Telegram.ChatID != "" {
		tg, err := telegram.New(telegram.Options{
			Token:   cfg.Notifier.Telegram.Token,
			ChatID:  cfg.Notifier.Telegram.ChatID,
			BaseURL: cfg.Notifier.Telegram.BaseURL,
			Timeout: cfg.Notifier.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create telegram notifier: %w", err)
		}
		sinks = append(sinks, tg)
	}

	if cfg.Notifier.Slack.WebhookURL != "" {
		sl, err := slack.New(slack.Options{
			WebhookURL: cfg.Notifier.Slack.WebhookURL,
			Timeout:    cfg.Notifier.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create slack notifier: %w", err)
		}
		sinks = append(sinks, sl)
	}

	return sinks, nil
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "ctwatch",
		Short: "Watches certificate transparency logs for new subdomains",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	if err = logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not setup logger: ", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		monitorCommand(cfg),
		checkCommand(cfg),
		migrateCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync(ctx)
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
