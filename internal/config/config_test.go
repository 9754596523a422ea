package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
database:
  host: db.internal
  port: 5433
  user: app
  password: secret
  database: appdb
  schema: tenant1
  max_conns: 40
  connect_timeout: 3s
logging:
  level: debug
  format: console
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	db := cfg.DatabaseConfig()
	assert.Equal(t, "db.internal", db.Host)
	assert.Equal(t, 5433, db.Port)
	assert.Equal(t, "tenant1", db.Schema)
	assert.Equal(t, int32(40), db.MaxConns)
	assert.Equal(t, 3*time.Second, db.ConnectTimeout)
	// Unset fields keep production defaults.
	assert.Equal(t, int32(5), db.MinConns)
	assert.Equal(t, "disable", db.SSLMode)

	log := cfg.LoggerConfig()
	assert.Equal(t, "debug", log.Level)
	assert.Equal(t, "console", log.Format)
}

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte(`
database:
  host: localhost
  user: postgres
  database: postgres
`))
	require.NoError(t, err)

	db := cfg.DatabaseConfig()
	assert.Equal(t, 5432, db.Port)
	assert.Equal(t, "public", db.Schema)

	log := cfg.LoggerConfig()
	assert.Equal(t, "info", log.Level)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`database: {port: 5432}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")

	_, err = Parse([]byte(`{not yaml`))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "appdb", cfg.Database.Database)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
