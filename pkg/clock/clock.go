// Package clock holds time helpers shared by the scan loop, the crt.sh client and the
// webserver supervisor.
package clock

import (
	"context"
	"time"
)

// Sleep blocks for d or until ctx is done, whichever happens first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err() //nolint: wrapcheck
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint: wrapcheck
	case <-t.C:
		return nil
	}
}
