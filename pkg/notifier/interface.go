// Package notifier delivers monitoring events to operators. Implementations live in
// subpackages (telegram, slack); this package holds the shared interface, the message
// rendering and the log and fan-out sinks.
package notifier

import (
	"context"
	"ctwatch/pkg/domain"
)

// Notifier delivers a single event. Delivery is best-effort: callers log a returned
// error and move on, they never retry.
//
//go:generate mockgen -package mocknotifier -source=interface.go -destination=mock/mocknotifier.go *
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}
