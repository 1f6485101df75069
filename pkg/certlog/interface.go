// Package certlog defines the abstraction over certificate-transparency search
// services used to discover hostnames issued under a domain.
package certlog

import "context"

// Client queries a certificate-transparency log for every certificate issued
// under a domain.
//
//go:generate mockgen -package mockcertlog -source=interface.go -destination=mock/mockcertlog.go *
type Client interface {
	// Fetch returns the normalized, deduplicated hostnames found in certificates
	// issued for domain and any of its subdomains, in first-seen order.
	// An empty result with a nil error is a valid outcome.
	Fetch(ctx context.Context, domain string) ([]string, error)
}
