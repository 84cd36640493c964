package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_DRIVER", "DATA_DIR", "HTTP_ADDR", "MAX_UPLOAD_MB", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_DB", "portfolio")
	t.Setenv("MAX_CONCURRENCY", "8")
	t.Setenv("RATE_LIMIT_MS", "not-a-number")

	cfg := Load()
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, 0, cfg.RateLimitMs, "invalid ints fall back to the default")
	assert.Contains(t, cfg.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DSN(), "dbname=portfolio")
}

func TestDSN(t *testing.T) {
	dir := t.TempDir()

	sqlite := &Config{DBDriver: DriverSQLite, DataDir: dir}
	assert.True(t, strings.HasPrefix(sqlite.DSN(), filepath.Join(dir, "real_estate.db")))
	assert.Contains(t, sqlite.DSN(), "_pragma=journal_mode(wal)")

	cgo := &Config{DBDriver: DriverSQLiteCGO, DataDir: dir}
	assert.Contains(t, cgo.DSN(), "_journal_mode=WAL")

	pg := &Config{DBDriver: DriverPostgres, DatabaseURL: "postgres://u:p@h/db"}
	assert.Equal(t, "postgres://u:p@h/db", pg.DSN())
}
