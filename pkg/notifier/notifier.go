package notifier

import (
	"context"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/logger"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Log writes every event to the context logger. It never fails.
type Log struct{}

// Ensure Log implements Notifier.
var _ Notifier = Log{}

// Notify implements Notifier.
func (Log) Notify(ctx context.Context, event domain.Event) error {
	fields := []zap.Field{zap.String("event", string(event.Kind))}
	if event.Domain != "" {
		fields = append(fields, zap.String("domain", event.Domain))
	}

	switch event.Kind {
	case domain.EventNewSubdomains:
		logger.Info(ctx, "new subdomains detected", append(fields, zap.Strings("hostnames", event.Hostnames))...)
	case domain.EventScanError:
		logger.Warn(ctx, "scan failed", append(fields, zap.String("message", event.Message))...)
	case domain.EventPersistError:
		logger.Error(ctx, "new subdomains could not be saved",
			append(fields, zap.Strings("hostnames", event.Hostnames), zap.String("message", event.Message))...)
	case domain.EventCycleClean:
		logger.Info(ctx, "no new subdomains this cycle",
			append(fields, zap.Strings("domains", event.Domains), zap.Duration("nextScanIn", event.NextScanIn))...)
	default:
		logger.Info(ctx, "monitor event", fields...)
	}

	return nil
}

// Multi delivers each event to every notifier, even when some fail.
type Multi []Notifier

// Ensure Multi implements Notifier.
var _ Notifier = Multi(nil)

// Notify implements Notifier. The returned error joins every delivery failure.
func (m Multi) Notify(ctx context.Context, event domain.Event) error {
	var errs []error
	for i, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
