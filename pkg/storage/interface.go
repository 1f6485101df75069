// Package storage defines the core storage interfaces that the application relies on.
// It abstracts persistence of the monitored domain list and of the known-subdomain
// store so that different backends (JSON files, PostgreSQL, SQLite) can provide
// concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// DomainStorage persists the insertion-ordered list of monitored domains.
type DomainStorage interface {
	// Domains returns every monitored domain in insertion order.
	Domains(ctx context.Context) ([]string, error)
	// AddDomain appends name to the list. It reports false if name was already present.
	AddDomain(ctx context.Context, name string) (bool, error)
	// RemoveDomain deletes name from the list. It reports false if name was not present.
	// Hostnames already known for the domain are kept.
	RemoveDomain(ctx context.Context, name string) (bool, error)
}

// SubdomainStorage persists the append-only set of hostnames observed per domain.
type SubdomainStorage interface {
	// KnownSubdomains returns the hostnames recorded for domain in the order they were
	// recorded. An unknown domain yields an empty slice.
	KnownSubdomains(ctx context.Context, domain string) ([]string, error)
	// AddSubdomains records hostnames for domain. Hostnames already recorded are ignored.
	// The call returns only after the hostnames are durably stored.
	AddSubdomains(ctx context.Context, domain string, hostnames []string) error
}

// AllStorage is a composite interface that includes all domain-specific storage
// capabilities required by the application.
type AllStorage interface {
	DomainStorage
	SubdomainStorage
}

// Storage describes a storage handle with lifecycle management.
type Storage interface {
	AllStorage

	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error
}
