package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

// KnownSubdomains implements storage.SubdomainStorage. Hostnames are returned in the
// order they were recorded.
func (s *Store) KnownSubdomains(ctx context.Context, domain string) ([]string, error) {
	hostnames := []string{}
	if err := s.Builder.From(subdomainsTable).
		Select("hostname").
		Where(goqu.I("domain").Eq(domain)).
		Order(goqu.I("id").Asc()).
		Executor().ScanValsContext(ctx, &hostnames); err != nil {
		return nil, fmt.Errorf("could not list known subdomains: %w", err)
	}

	return hostnames, nil
}

// AddSubdomains implements storage.SubdomainStorage. All hostnames are inserted in one
// transaction; hostnames already recorded for the domain are skipped.
func (s *Store) AddSubdomains(ctx context.Context, domain string, hostnames []string) error {
	if len(hostnames) == 0 {
		return nil
	}

	rows := make([]SubdomainRow, 0, len(hostnames))
	for _, h := range hostnames {
		rows = append(rows, SubdomainRow{Domain: domain, Hostname: h})
	}

	insert := func(tx *Store) error {
		for start := 0; start < len(rows); start += insertChunkSize {
			end := min(start+insertChunkSize, len(rows))
			if _, err := tx.Builder.Insert(subdomainsTable).
				Rows(rows[start:end]).
				OnConflict(goqu.DoNothing()).
				Executor().ExecContext(ctx); err != nil {
				return fmt.Errorf("could not insert known subdomains: %w", err)
			}
		}

		return nil
	}

	if _, inTx := s.DB.(*sql.Tx); inTx {
		return insert(s)
	}

	return s.WithTx(ctx, insert)
}
