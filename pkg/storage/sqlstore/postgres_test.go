package sqlstore_test

import (
	"context"
	"ctwatch/pkg/storage"
	"ctwatch/pkg/storage/sqlstore"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "testdb"
)

type postgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      int
}

func startPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDB,
		},
		WaitingFor: wait.ForListeningPort("5432"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &postgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func setupPostgres(t *testing.T) *sqlstore.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	// start container
	pgContainer, err := startPostgresContainer(ctx)
	require.NoError(t, err)

	// create postgres instance
	pg, err := sqlstore.NewPostgres(ctx, sqlstore.PostgresOptions{
		Username:           testUser,
		Password:           testPassword,
		Host:               pgContainer.Host,
		Port:               pgContainer.Port,
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 1,
	})
	require.NoError(t, err)

	// the listening port may be up before postgres accepts connections
	require.Eventually(t, func() bool {
		return pg.DB.(*sql.DB).PingContext(ctx) == nil
	}, 30*time.Second, 250*time.Millisecond)

	// run migrations
	require.NoError(t, pg.Migrate())

	t.Cleanup(func() {
		_ = pg.Close()
		_ = pgContainer.Container.Terminate(ctx)
	})

	return pg
}

func TestPostgres_Domains(t *testing.T) {
	pg := setupPostgres(t)
	testDomains(t, pg)
}

func TestPostgres_KnownSubdomains(t *testing.T) {
	pg := setupPostgres(t)
	testKnownSubdomains(t, pg)
}

func TestPostgres_ConcurrentAddSubdomains(t *testing.T) {
	pg := setupPostgres(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, pg.AddSubdomains(ctx, "example.com", []string{"a.example.com", "b.example.com"}))
		}()
	}
	wg.Wait()

	known, err := pg.KnownSubdomains(ctx, "example.com")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a.example.com", "b.example.com"}, known)
}

func TestPostgres_Tx(t *testing.T) {
	pg := setupPostgres(t)
	ctx := context.Background()

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	_, err = tx.AddDomain(ctx, "example.com")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	domains, err := pg.Domains(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"example.com"}, domains)
}
