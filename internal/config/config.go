// Package config persists connection profiles and app settings as a TOML
// file under the user's config directory. The core never touches this on
// its own — the caller loads profiles at startup and saves them when the
// user edits a connection form.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/nebuladb/nebula/internal/database"
)

// StoredConnection is one connection profile as written to disk. It carries
// no runtime identity — ids are minted when profiles are materialized.
type StoredConnection struct {
	Name       string `toml:"name,omitempty"`
	Host       string `toml:"host,omitempty"`
	Port       int    `toml:"port,omitempty"`
	Username   string `toml:"username,omitempty"`
	Password   string `toml:"password,omitempty"`
	Database   string `toml:"database,omitempty"`
	SSLEnabled bool   `toml:"ssl_enabled,omitempty"`
	Color      string `toml:"color,omitempty"`
	File       string `toml:"file,omitempty"` // sqlite database file
}

// Settings holds app-level preferences.
type Settings struct {
	LastConnection string `toml:"last_connection,omitempty"`
	Theme          string `toml:"theme,omitempty"`
}

// AppConfig mirrors the on-disk config.toml layout: one section per backend
// holding named profiles, plus app settings.
type AppConfig struct {
	MySQL    map[string]StoredConnection `toml:"mysql"`
	Postgres map[string]StoredConnection `toml:"postgres"`
	SQLite   map[string]StoredConnection `toml:"sqlite"`
	MongoDB  map[string]StoredConnection `toml:"mongodb"`
	Nebula   Settings                    `toml:"nebula"`
}

// NewAppConfig returns an empty config with all sections allocated.
func NewAppConfig() *AppConfig {
	return &AppConfig{
		MySQL:    map[string]StoredConnection{},
		Postgres: map[string]StoredConnection{},
		SQLite:   map[string]StoredConnection{},
		MongoDB:  map[string]StoredConnection{},
	}
}

// Connections materializes every stored profile as a runtime
// ConnectionConfig, minting a fresh id for each.
func (c *AppConfig) Connections() []database.ConnectionConfig {
	var out []database.ConnectionConfig
	for _, sec := range []struct {
		backend  database.Backend
		profiles map[string]StoredConnection
	}{
		{database.BackendMySQL, c.MySQL},
		{database.BackendPostgres, c.Postgres},
		{database.BackendSQLite, c.SQLite},
		{database.BackendMongoDB, c.MongoDB},
	} {
		for key, stored := range sec.profiles {
			out = append(out, stored.toConnectionConfig(key, sec.backend))
		}
	}
	return out
}

func (s StoredConnection) toConnectionConfig(key string, backend database.Backend) database.ConnectionConfig {
	name := s.Name
	if name == "" {
		name = key
	}
	port := s.Port
	if port == 0 {
		port = backend.DefaultPort()
	}
	return database.ConnectionConfig{
		ID:         uuid.New(),
		Name:       name,
		Backend:    backend,
		Host:       s.Host,
		Port:       port,
		Username:   s.Username,
		Password:   s.Password,
		Database:   s.Database,
		SSLEnabled: s.SSLEnabled,
		Color:      s.Color,
		FilePath:   s.File,
	}
}

// PutConnection stores (or replaces) the profile for cfg under its display
// name, in the section matching its backend.
func (c *AppConfig) PutConnection(cfg database.ConnectionConfig) {
	stored := StoredConnection{
		Name:       cfg.Name,
		Host:       cfg.Host,
		Port:       cfg.Port,
		Username:   cfg.Username,
		Password:   cfg.Password,
		Database:   cfg.Database,
		SSLEnabled: cfg.SSLEnabled,
		Color:      cfg.Color,
		File:       cfg.FilePath,
	}
	switch cfg.Backend {
	case database.BackendMySQL:
		ensure(&c.MySQL)[cfg.Name] = stored
	case database.BackendPostgres:
		ensure(&c.Postgres)[cfg.Name] = stored
	case database.BackendSQLite:
		ensure(&c.SQLite)[cfg.Name] = stored
	case database.BackendMongoDB:
		ensure(&c.MongoDB)[cfg.Name] = stored
	}
}

func ensure(m *map[string]StoredConnection) map[string]StoredConnection {
	if *m == nil {
		*m = map[string]StoredConnection{}
	}
	return *m
}

// Store reads and writes the config file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store over the default location,
// ~/.config/nebula/config.toml.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config directory not found: %w", err)
	}
	return &Store{path: filepath.Join(home, ".config", "nebula", "config.toml")}, nil
}

// NewStoreAt returns a Store over an explicit path, for tests and portable
// installs.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load reads the config file. A missing file is not an error — it yields an
// empty config, which the first Save will create.
func (s *Store) Load() (*AppConfig, error) {
	cfg := NewAppConfig()
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(s.path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config file, creating its directory if needed.
func (s *Store) Save(cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return nil
}
