// Package jsonfile implements storage.Storage on top of two JSON documents: one
// holding the monitored domain list and one mapping each domain to its known
// hostnames. Both documents are loaded once and rewritten atomically after every
// mutation.
package jsonfile

import (
	"context"
	"ctwatch/pkg/storage"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/renameio/v2"
)

// Options define where the documents live.
type Options struct {
	// DomainsPath is the file holding the monitored domain list.
	DomainsPath string
	// KnownSubdomainsPath is the file holding the known hostnames per domain.
	KnownSubdomainsPath string
}

// domainsDocument is the on-disk layout of DomainsPath.
type domainsDocument struct {
	Domains []string `json:"domains"`
}

// Store keeps both documents in memory guarded by mu. In-memory state only changes
// after the corresponding document was written successfully.
type Store struct {
	options Options

	mu      sync.RWMutex
	domains []string
	known   map[string][]string
}

// Ensure Store implements storage.Storage.
var _ storage.Storage = (*Store)(nil)

// New loads both documents. Missing files are treated as empty.
func New(opts Options) (*Store, error) {
	if opts.DomainsPath == "" || opts.KnownSubdomainsPath == "" {
		return nil, errors.New("both document paths are required")
	}

	s := &Store{options: opts, known: map[string][]string{}}

	var doc domainsDocument
	if err := readDocument(opts.DomainsPath, &doc); err != nil {
		return nil, fmt.Errorf("could not load domains: %w", err)
	}
	s.domains = doc.Domains

	if err := readDocument(opts.KnownSubdomainsPath, &s.known); err != nil {
		return nil, fmt.Errorf("could not load known subdomains: %w", err)
	}
	if s.known == nil {
		s.known = map[string][]string{}
	}

	return s, nil
}

// Domains implements storage.DomainStorage.
func (s *Store) Domains(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.domains), nil
}

// AddDomain implements storage.DomainStorage.
func (s *Store) AddDomain(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.domains, name) {
		return false, nil
	}

	next := append(slices.Clone(s.domains), name)
	if err := writeDocument(s.options.DomainsPath, domainsDocument{Domains: next}); err != nil {
		return false, fmt.Errorf("could not save domains: %w", err)
	}
	s.domains = next

	return true, nil
}

// RemoveDomain implements storage.DomainStorage.
func (s *Store) RemoveDomain(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.domains, name)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.domains), idx, idx+1)
	if err := writeDocument(s.options.DomainsPath, domainsDocument{Domains: next}); err != nil {
		return false, fmt.Errorf("could not save domains: %w", err)
	}
	s.domains = next

	return true, nil
}

// KnownSubdomains implements storage.SubdomainStorage.
func (s *Store) KnownSubdomains(_ context.Context, domain string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	known := slices.Clone(s.known[domain])
	if known == nil {
		known = []string{}
	}

	return known, nil
}

// AddSubdomains implements storage.SubdomainStorage.
func (s *Store) AddSubdomains(_ context.Context, domain string, hostnames []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.known[domain]
	next := slices.Clone(current)
	for _, h := range hostnames {
		if !slices.Contains(next, h) {
			next = append(next, h)
		}
	}
	if len(next) == len(current) {
		return nil
	}

	doc := make(map[string][]string, len(s.known)+1)
	for d, hs := range s.known {
		doc[d] = hs
	}
	doc[domain] = next

	if err := writeDocument(s.options.KnownSubdomainsPath, doc); err != nil {
		return fmt.Errorf("could not save known subdomains: %w", err)
	}
	s.known = doc

	return nil
}

// Close implements storage.Storage. Every mutation is already on disk.
func (s *Store) Close() error { return nil }

func readDocument(path string, v any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	if len(b) == 0 {
		return nil
	}
	if err = json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not decode %s: %w", path, err)
	}

	return nil
}

// writeDocument atomically replaces path with the JSON encoding of v, so a crash
// never leaves a truncated document behind.
func writeDocument(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}
	if err = renameio.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("could not replace %s: %w", path, err)
	}

	return nil
}
