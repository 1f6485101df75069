// Package monitor is the monitoring engine: the scan loop, the diff against the
// known-subdomain store and the operator actions that drive both.
package monitor

import (
	"context"
	"time"
)

// Status is a point-in-time view of the monitoring loop.
type Status struct {
	// Running reports whether monitoring is enabled.
	Running bool
	// LastCycleStartedAt is the start of the most recent cycle, zero if none ran yet.
	LastCycleStartedAt time.Time
	// LastCycleFinishedAt is the end of the most recent completed cycle, zero if none completed yet.
	LastCycleFinishedAt time.Time
	// LastCycleClean reports whether the most recent completed cycle found nothing new.
	LastCycleClean bool
	// NextCycleAt is when the next cycle starts, zero while a cycle is in progress or monitoring is off.
	NextCycleAt time.Time
}

// Service is the set of operator actions.
//
//go:generate mockgen -package mockmonitor -source=interface.go -destination=mock/mockmonitor.go *
type Service interface {
	// StartMonitoring enables the scan loop. It reports false if monitoring was already running.
	StartMonitoring(ctx context.Context) bool
	// StopMonitoring disables the scan loop. It reports false if monitoring was not running.
	StopMonitoring(ctx context.Context) bool
	// Monitoring returns the current loop status.
	Monitoring(ctx context.Context) Status
	// AddDomain validates raw and appends it to the monitored list, returning the stored name.
	// Invalid input yields serrors.ErrBadRequest, an already monitored domain serrors.ErrConflict.
	AddDomain(ctx context.Context, raw string) (string, error)
	// RemoveDomain deletes a domain from the monitored list, or returns serrors.ErrNotFound.
	RemoveDomain(ctx context.Context, raw string) error
	// ListDomains returns the monitored domains in insertion order.
	ListDomains(ctx context.Context) ([]string, error)
	// KnownSubdomains returns the hostnames already reported for a domain.
	KnownSubdomains(ctx context.Context, raw string) ([]string, error)
}
