package main

import (
	"context"
	"ctwatch/internal/api"
	"ctwatch/internal/api/handler/v1handler"
	"ctwatch/internal/config"
	"ctwatch/internal/monitor"
	"ctwatch/pkg/certlog/crtsh"
	"ctwatch/pkg/clock"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/metrics"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupMetrics exports otel instruments to the default prometheus registry served on
// the metrics path. It returns the recorder and a function flushing the provider.
func setupMetrics(ctx context.Context) (*metrics.Recorder, func(ctx context.Context)) {
	mp, err := metrics.NewPrometheusProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	recorder, err := metrics.New(mp)
	if err != nil {
		logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
	}

	return recorder, func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not shutdown meter provider", zap.Error(err))
		}
	}
}

// serve runs server until it is shut down. A listener that fails for any other
// reason is restarted after delay, unless ctx is done by then.
func serve(ctx context.Context, server *http.Server, delay time.Duration) {
	for {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return
		}

		logger.Error(ctx, "webserver failed, restarting", zap.Error(err), zap.Duration("delay", delay))
		if err = clock.Sleep(ctx, delay); err != nil {
			return
		}
	}
}

func setupServer(ctx context.Context, cfg *config.Config, svc monitor.Service) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{Deps: v1handler.Deps{Monitor: svc}}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go serve(ctx, server, cfg.HTTP.RestartDelay)

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func monitorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Starts the API server and the monitoring loop",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			recorder, stopMetrics := setupMetrics(ctx)

			sinks, err := newNotifier(cfg)
			if err != nil {
				logger.Fatal(ctx, "could not create notifier", zap.Error(err))
			}

			client := crtsh.New(crtsh.Options{
				BaseURL:     cfg.CertLog.BaseURL,
				UserAgent:   cfg.CertLog.UserAgent,
				Timeout:     cfg.CertLog.Timeout,
				MaxAttempts: cfg.CertLog.MaxAttempts,
				Metrics:     recorder,
			})

			schedulerOptions := monitor.NewSchedulerOptions(cfg)
			schedulerOptions.Metrics = recorder
			scheduler := monitor.NewScheduler(strg, client, monitor.NewDiffer(strg), sinks, schedulerOptions)
			svc := monitor.New(strg, scheduler)

			if err = monitor.SeedDomains(ctx, svc, cfg.Monitor.SeedDomains); err != nil {
				logger.Fatal(ctx, "could not seed domains", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, svc)

			if cfg.Monitor.StartOnBoot {
				svc.StartMonitoring(ctx)
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			svc.StopMonitoring(shutdownCtx)
			stopWebserver(shutdownCtx)
			scheduler.Wait()
			stopMetrics(shutdownCtx)
		},
	}

	return cmd
}
