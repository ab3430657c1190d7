package database

import "github.com/google/uuid"

// Backend identifies the database engine a connection targets.
type Backend string

const (
	BackendMySQL    Backend = "mysql"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendMongoDB  Backend = "mongodb"
)

// DefaultPort returns the engine's conventional port. SQLite is file-backed
// and has none.
func (b Backend) DefaultPort() int {
	switch b {
	case BackendMySQL:
		return 3306
	case BackendPostgres:
		return 5432
	case BackendMongoDB:
		return 27017
	default:
		return 0
	}
}

// DisplayName returns the human-readable engine name.
func (b Backend) DisplayName() string {
	switch b {
	case BackendMySQL:
		return "MySQL"
	case BackendPostgres:
		return "PostgreSQL"
	case BackendSQLite:
		return "SQLite"
	case BackendMongoDB:
		return "MongoDB"
	default:
		return string(b)
	}
}

// ConnectionConfig holds everything needed to open one connection. It is
// created by the caller (a form or a stored profile), consumed once by the
// factory, and never persisted by this core itself.
type ConnectionConfig struct {
	ID         uuid.UUID
	Name       string
	Backend    Backend
	Host       string
	Port       int
	Username   string
	Password   string
	Database   string
	SSLEnabled bool
	Color      string // optional display color, empty = none
	FilePath   string // SQLite database file; ":memory:" for an in-memory DB
}

// NewConnectionConfig returns a fresh config with the defaults a connection
// form starts from.
func NewConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		ID:       uuid.New(),
		Name:     "New Connection",
		Backend:  BackendMySQL,
		Host:     "localhost",
		Port:     3306,
		Username: "root",
	}
}
