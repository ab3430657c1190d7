package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebuladb/nebula/internal/database"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.MySQL)
	assert.Empty(t, cfg.Nebula.LastConnection)
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store := NewStoreAt(path)

	cfg := NewAppConfig()
	cfg.MySQL["local"] = StoredConnection{
		Host:     "localhost",
		Port:     3306,
		Username: "root",
		Password: "s3cret",
		Database: "shop",
	}
	cfg.SQLite["scratch"] = StoredConnection{File: "/tmp/scratch.db"}
	cfg.Nebula.LastConnection = "local"
	cfg.Nebula.Theme = "dark"

	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.MySQL, loaded.MySQL)
	assert.Equal(t, cfg.SQLite, loaded.SQLite)
	assert.Equal(t, "local", loaded.Nebula.LastConnection)
	assert.Equal(t, "dark", loaded.Nebula.Theme)
}

func TestStore_LoadHandwrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[mysql.prod]
host = "db.internal"
port = 3307
username = "app"
ssl_enabled = true

[postgres.analytics]
host = "pg.internal"
database = "metrics"

[nebula]
theme = "light"
`), 0o644))

	cfg, err := NewStoreAt(path).Load()
	require.NoError(t, err)

	prod, ok := cfg.MySQL["prod"]
	require.True(t, ok)
	assert.Equal(t, "db.internal", prod.Host)
	assert.Equal(t, 3307, prod.Port)
	assert.True(t, prod.SSLEnabled)

	_, ok = cfg.Postgres["analytics"]
	assert.True(t, ok)
	assert.Equal(t, "light", cfg.Nebula.Theme)
}

func TestStore_LoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[mysql\nbroken"), 0o644))

	_, err := NewStoreAt(path).Load()
	assert.Error(t, err)
}

func TestConnections_MintsIdentityAndDefaults(t *testing.T) {
	cfg := NewAppConfig()
	cfg.Postgres["analytics"] = StoredConnection{Host: "pg.internal"}

	conns := cfg.Connections()
	require.Len(t, conns, 1)

	c := conns[0]
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", c.ID.String())
	assert.Equal(t, "analytics", c.Name, "profile key is the fallback name")
	assert.Equal(t, database.BackendPostgres, c.Backend)
	assert.Equal(t, 5432, c.Port, "zero port falls back to the backend default")

	// Each materialization mints fresh ids.
	again := cfg.Connections()
	require.Len(t, again, 1)
	assert.NotEqual(t, c.ID, again[0].ID)
}

func TestPutConnection(t *testing.T) {
	cfg := NewAppConfig()

	conn := database.NewConnectionConfig()
	conn.Name = "local"
	conn.Database = "shop"
	cfg.PutConnection(conn)

	stored, ok := cfg.MySQL["local"]
	require.True(t, ok)
	assert.Equal(t, "shop", stored.Database)
	assert.Equal(t, "root", stored.Username)

	// Replacing the same name overwrites in place.
	conn.Database = "crm"
	cfg.PutConnection(conn)
	assert.Equal(t, "crm", cfg.MySQL["local"].Database)
	assert.Len(t, cfg.MySQL, 1)
}

func TestPutConnection_NilSection(t *testing.T) {
	var cfg AppConfig // decoded files can leave sections nil

	conn := database.NewConnectionConfig()
	conn.Name = "scratch"
	conn.Backend = database.BackendSQLite
	conn.FilePath = "/tmp/scratch.db"
	cfg.PutConnection(conn)

	assert.Equal(t, "/tmp/scratch.db", cfg.SQLite["scratch"].File)
}
