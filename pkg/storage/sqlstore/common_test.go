package sqlstore_test

import (
	"context"
	"ctwatch/pkg/storage"
	"testing"

	"github.com/stretchr/testify/require"
)

// testDomains exercises storage.DomainStorage semantics shared by every dialect.
func testDomains(t *testing.T, s storage.Storage) {
	t.Helper()
	ctx := context.Background()

	domains, err := s.Domains(ctx)
	require.NoError(t, err)
	require.Empty(t, domains)

	for _, name := range []string{"example.com", "example.org", "example.net"} {
		added, err := s.AddDomain(ctx, name)
		require.NoError(t, err)
		require.True(t, added)
	}

	added, err := s.AddDomain(ctx, "example.org")
	require.NoError(t, err)
	require.False(t, added)

	domains, err = s.Domains(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"example.com", "example.org", "example.net"}, domains)

	removed, err := s.RemoveDomain(ctx, "example.org")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = s.RemoveDomain(ctx, "example.org")
	require.NoError(t, err)
	require.False(t, removed)

	domains, err = s.Domains(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"example.com", "example.net"}, domains)
}

// testKnownSubdomains exercises storage.SubdomainStorage semantics shared by every dialect.
func testKnownSubdomains(t *testing.T, s storage.Storage) {
	t.Helper()
	ctx := context.Background()

	known, err := s.KnownSubdomains(ctx, "example.com")
	require.NoError(t, err)
	require.NotNil(t, known)
	require.Empty(t, known)

	require.NoError(t, s.AddSubdomains(ctx, "example.com", nil))
	require.NoError(t, s.AddSubdomains(ctx, "example.com", []string{"a.example.com", "b.example.com"}))
	require.NoError(t, s.AddSubdomains(ctx, "example.com", []string{"b.example.com", "c.example.com", "c.example.com"}))
	require.NoError(t, s.AddSubdomains(ctx, "example.org", []string{"a.example.com"}))

	known, err = s.KnownSubdomains(ctx, "example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"a.example.com", "b.example.com", "c.example.com"}, known)

	known, err = s.KnownSubdomains(ctx, "example.org")
	require.NoError(t, err)
	require.Equal(t, []string{"a.example.com"}, known)

	// removing a monitored domain does not forget its hostnames
	_, err = s.AddDomain(ctx, "example.com")
	require.NoError(t, err)
	_, err = s.RemoveDomain(ctx, "example.com")
	require.NoError(t, err)

	known, err = s.KnownSubdomains(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, known, 3)
}
