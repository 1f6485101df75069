package sqlstore

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

// Domains implements storage.DomainStorage. Rows are returned in insertion order.
func (s *Store) Domains(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := s.Builder.From(domainsTable).
		Select("name").
		Order(goqu.I("id").Asc()).
		Executor().ScanValsContext(ctx, &names); err != nil {
		return nil, fmt.Errorf("could not list domains: %w", err)
	}

	return names, nil
}

// AddDomain implements storage.DomainStorage.
func (s *Store) AddDomain(ctx context.Context, name string) (bool, error) {
	res, err := s.Builder.Insert(domainsTable).
		Rows(DomainRow{Name: name}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not insert domain: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get affected rows: %w", err)
	}

	return n > 0, nil
}

// RemoveDomain implements storage.DomainStorage. Known subdomains of the domain are kept.
func (s *Store) RemoveDomain(ctx context.Context, name string) (bool, error) {
	res, err := s.Builder.Delete(domainsTable).
		Where(goqu.I("name").Eq(name)).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete domain: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get affected rows: %w", err)
	}

	return n > 0, nil
}
