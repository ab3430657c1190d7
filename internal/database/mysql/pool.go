package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nebuladb/nebula/internal/database"
)

const (
	// maxOpenConns caps the physical connection pool. The cap is fixed —
	// this core multiplexes logical operations over a small, bounded set
	// of sockets and does not expose pool tuning.
	maxOpenConns    = 5
	maxIdleConns    = 2
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 10 * time.Minute
)

// buildPool opens a *sql.DB for the config with the fixed pool bounds.
// Opening does not dial; the first use does.
func buildPool(cfg database.ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	return db, nil
}

// buildDSN constructs the go-sql-driver DSN. parseTime stays off so
// temporal columns arrive in their raw textual form for the DateTime
// variant.
func buildDSN(cfg database.ConnectionConfig) string {
	port := cfg.Port
	if port == 0 {
		port = cfg.Backend.DefaultPort()
	}
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database,
	)
	if cfg.SSLEnabled {
		dsn += "?tls=true"
	}
	return dsn
}
