// Package dbtest opens a migrated Postgres database for repository tests.
// Tests are skipped unless ASCEND_TEST_DB_HOST is set; every call gets its own
// schema, dropped when the test ends.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"ascend/internal/config"
	"ascend/internal/database"
	"ascend/internal/database/migration"
	"ascend/internal/database/postgres"
	"ascend/migrations"

	"github.com/google/uuid"
)

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Config reads ASCEND_TEST_DB_*; ok is false when no test database is configured.
func Config() (cfg config.DatabaseConfig, ok bool) {
	host := env("ASCEND_TEST_DB_HOST", "")
	if host == "" {
		return config.DatabaseConfig{}, false
	}
	return config.DatabaseConfig{
		DBHost:         host,
		DBPort:         env("ASCEND_TEST_DB_PORT", "5432"),
		DBName:         env("ASCEND_TEST_DB_NAME", "ascend_test"),
		DBUser:         env("ASCEND_TEST_DB_USER", "postgres"),
		DBPassword:     env("ASCEND_TEST_DB_PASSWORD", ""),
		DBSSLMode:      env("ASCEND_TEST_DB_SSL_MODE", "disable"),
		ConnectTimeout: 5 * time.Second,
		PoolMaxConns:   4,
	}, true
}

// Open returns a pool bound to a fresh schema with all migrations applied.
func Open(t testing.TB) database.DB {
	t.Helper()
	cfg, ok := Config()
	if !ok {
		t.Skip("ASCEND_TEST_DB_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	admin, err := postgres.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA %s`, schema)); err != nil {
		_ = admin.Close()
		t.Fatalf("create schema: %v", err)
	}

	scoped := cfg
	scoped.DBSearchPath = schema + ",public"
	db, err := postgres.Connect(ctx, scoped)
	if err != nil {
		_ = admin.Close()
		t.Fatalf("connect schema %s: %v", schema, err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_, _ = admin.Exec(context.Background(), fmt.Sprintf(`DROP SCHEMA IF EXISTS %s CASCADE`, schema))
		_ = admin.Close()
	})

	if err := (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a bare account row and returns its id.
func CreateUser(t testing.TB, db database.DB, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if _, err := db.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, name) VALUES ($1, $2, 'x', 'Test')`, id, email,
	); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}
