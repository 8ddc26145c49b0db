//go:build integration

package sqldb

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vadimbarashkov/flashurl/internal/entity"
	"github.com/vadimbarashkov/flashurl/pkg/database"
)

func setupPostgres(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	pgUser := "test"
	pgPassword := "test"
	pgDB := "flashurl"

	pgCont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDB,
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgCont.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	pgHost, err := pgCont.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	pgPort, err := pgCont.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort.Int(), pgDB)

	if err := database.RunMigrations(dsn); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := database.New(ctx, database.DriverPostgres, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestURLRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	repo := NewURLRepository(setupPostgres(t))

	saved, err := repo.Save(ctx, "abc123", "https://example.com")
	require.NoError(t, err)

	byCode, err := repo.RetrieveByShortCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, saved, byCode)

	byURL, err := repo.RetrieveByLongURL(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, saved, byURL)

	_, err = repo.Save(ctx, "abc123", "https://example.org")
	assert.ErrorIs(t, err, entity.ErrURLExists)

	_, err = repo.Save(ctx, "xyz789", "https://example.com")
	assert.ErrorIs(t, err, entity.ErrURLExists)

	_, err = repo.RetrieveByShortCode(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, entity.ErrURLNotFound)
}
