// Package testutil provides test helpers including container management.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rubika-tools/aocomp/internal/config"
	"github.com/rubika-tools/aocomp/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL test container and returns
// a connected Pool.
//
// Precondition: Docker must be available.
// Postcondition: Returns a running container with a connected pool,
// or fails the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}

	t.Logf("postgres container started [%s]", time.Since(start))

	pc := &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(ctx)
	})

	return pc
}

// NewPool starts a PostgreSQL container, applies the schema, and returns the
// raw connection pool. Cleanup is registered on t.
//
// Precondition: Docker must be available.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pc := NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return pc.RawPool
}

// ApplyMigrations runs the schema creation SQL directly for tests.
// This avoids requiring the migrate tool in the test environment.
//
// Precondition: Pool must be connected.
// Postcondition: Every application table exists in the test database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			id               UUID             PRIMARY KEY DEFAULT gen_random_uuid(),
			name             VARCHAR(64)      NOT NULL UNIQUE,
			breed            VARCHAR(16)      NOT NULL,
			profession       VARCHAR(32)      NOT NULL,
			level            INT              NOT NULL,
			side             VARCHAR(16)      NOT NULL,
			crit             DOUBLE PRECISION NOT NULL DEFAULT 0,
			aggdef           DOUBLE PRECISION NOT NULL DEFAULT 0,
			abilities        JSONB            NOT NULL DEFAULT '{}',
			weapon_skills    JSONB            NOT NULL DEFAULT '{}',
			special_skills   JSONB            NOT NULL DEFAULT '{}',
			initiatives      JSONB            NOT NULL DEFAULT '{}',
			damage_modifiers JSONB            NOT NULL DEFAULT '{}',
			aao              INT              NOT NULL DEFAULT 0,
			wrangle          INT              NOT NULL DEFAULT 0,
			created_at       TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles (name);

		CREATE TABLE IF NOT EXISTS favorites (
			id         UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
			profile_id UUID        NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
			item_aoid  INT         NOT NULL,
			item_name  TEXT        NOT NULL,
			item_ql    INT         NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (profile_id, item_aoid)
		);
		CREATE INDEX IF NOT EXISTS idx_favorites_profile ON favorites (profile_id);

		CREATE TABLE IF NOT EXISTS farm_entries (
			id         UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
			profile_id UUID        NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
			boss_name  TEXT        NOT NULL,
			playfield  TEXT        NOT NULL DEFAULT '',
			item_name  TEXT        NOT NULL DEFAULT '',
			done       BOOLEAN     NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_farm_entries_profile ON farm_entries (profile_id);

		CREATE TABLE IF NOT EXISTS search_history (
			id         BIGSERIAL   PRIMARY KEY,
			kind       VARCHAR(16) NOT NULL,
			query      TEXT        NOT NULL,
			results    INT         NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_search_history_created ON search_history (created_at DESC);
	`

	_, err := pc.RawPool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	t.Logf("migrations applied [%s]", time.Since(start))
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}
