package monitor

import (
	"context"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/serrors"
	"ctwatch/pkg/storage"
	"fmt"

	"go.uber.org/zap"
)

// service is the concrete implementation of the Service interface.
// It validates operator input and delegates to the storage layer and the scheduler.
type service struct {
	storage   storage.AllStorage
	scheduler *Scheduler
}

// StartMonitoring implements Service.
func (s service) StartMonitoring(ctx context.Context) bool {
	started := s.scheduler.Start(ctx)
	if started {
		logger.Info(ctx, "monitoring started")
	}

	return started
}

// StopMonitoring implements Service.
func (s service) StopMonitoring(ctx context.Context) bool {
	stopped := s.scheduler.Stop()
	if stopped {
		logger.Info(ctx, "monitoring stopped")
	}

	return stopped
}

// Monitoring implements Service.
func (s service) Monitoring(_ context.Context) Status {
	return s.scheduler.Status()
}

// AddDomain implements Service.
func (s service) AddDomain(ctx context.Context, raw string) (string, error) {
	name, err := domain.ParseMonitoredDomain(raw)
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	added, err := s.storage.AddDomain(ctx, name)
	if err != nil {
		return "", fmt.Errorf("could not add domain: %w", err)
	}
	if !added {
		return name, serrors.With(serrors.ErrConflict, "%s is already being monitored", name)
	}
	logger.Info(ctx, "domain added", zap.String("domain", name))

	return name, nil
}

// RemoveDomain implements Service. Hostnames already known for the domain are kept,
// so adding it back later does not report them again.
func (s service) RemoveDomain(ctx context.Context, raw string) error {
	name := domain.NormalizeHostname(raw)
	if name == "" {
		return serrors.With(serrors.ErrBadRequest, "domain name required")
	}

	removed, err := s.storage.RemoveDomain(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove domain: %w", err)
	}
	if !removed {
		return serrors.With(serrors.ErrNotFound, "%s is not being monitored", name)
	}
	logger.Info(ctx, "domain removed", zap.String("domain", name))

	return nil
}

// ListDomains implements Service.
func (s service) ListDomains(ctx context.Context) ([]string, error) {
	domains, err := s.storage.Domains(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list domains: %w", err)
	}

	return domains, nil
}

// KnownSubdomains implements Service.
func (s service) KnownSubdomains(ctx context.Context, raw string) ([]string, error) {
	name := domain.NormalizeHostname(raw)
	if name == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "domain name required")
	}

	known, err := s.storage.KnownSubdomains(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not get known subdomains: %w", err)
	}

	return known, nil
}

// New creates a Service backed by the provided storage and scheduler.
func New(st storage.AllStorage, scheduler *Scheduler) Service {
	return &service{
		storage:   st,
		scheduler: scheduler,
	}
}

// SeedDomains adds every valid name that is not monitored yet. Invalid names are
// logged and skipped, so a bad entry in the configuration never blocks startup.
func SeedDomains(ctx context.Context, svc Service, names []string) error {
	for _, raw := range names {
		name, err := svc.AddDomain(ctx, raw)
		switch {
		case err == nil:
		case serrors.KindOf(err) == serrors.ErrConflict:
			logger.Debug(ctx, "seed domain already monitored", zap.String("domain", name))
		case serrors.KindOf(err) == serrors.ErrBadRequest:
			logger.Warn(ctx, "skipping invalid seed domain", zap.String("raw", raw), zap.Error(err))
		default:
			return fmt.Errorf("could not seed domain %q: %w", raw, err)
		}
	}

	return nil
}
