// Package mysql implements database.Connection for MySQL-family servers
// over database/sql with the go-sql-driver wire driver.
package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql" // register "mysql" driver

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
)

// Conn is a live MySQL connection pool. It is safe for concurrent use; the
// contract-level Guard additionally serializes logical operations issued by
// the bridge.
type Conn struct {
	db *sql.DB
}

// Connect opens the bounded connection pool for cfg and verifies it with a
// ping. Auth failures, unreachable hosts and bad database names all surface
// as a connection failure here, carrying the transport's error text — the
// contract does not distinguish them further at connect time.
func Connect(ctx context.Context, cfg database.ConnectionConfig) (*Conn, error) {
	db, err := buildPool(cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid mysql configuration", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, err.Error(), err)
	}
	return &Conn{db: db}, nil
}

// TestConnection runs the liveness probe.
func (c *Conn) TestConnection(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "SELECT 1"); err != nil {
		return errs.Wrap(errs.ErrKindConnectionFailed, err.Error(), err)
	}
	return nil
}

// ExecuteQuery runs sql verbatim and materializes the full result set.
func (c *Conn) ExecuteQuery(ctx context.Context, sqlText string) (*database.QueryResult, error) {
	start := time.Now()

	rows, err := c.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	defer rows.Close()

	columns, data, err := database.ReadRows(rows, ColumnKind)
	if err != nil {
		return nil, err
	}

	return &database.QueryResult{
		Columns:   columns,
		Rows:      data,
		ElapsedMS: time.Since(start).Milliseconds(),
	}, nil
}

// ExecuteStatement runs sql verbatim and returns the affected-row count.
func (c *Conn) ExecuteStatement(ctx context.Context, sqlText string) (int64, error) {
	res, err := c.db.ExecContext(ctx, sqlText)
	if err != nil {
		return 0, mapError(err, "statement failed")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err, "failed to read affected rows")
	}
	return n, nil
}

// GetTableData pages through the qualified table with the caller's bounds.
func (c *Conn) GetTableData(ctx context.Context, db, table string, limit, offset int) (*database.QueryResult, error) {
	return c.ExecuteQuery(ctx, database.TableDataSQL(database.DialectMySQL, db, table, limit, offset))
}

// Close shuts down the connection pool. Call exactly once.
func (c *Conn) Close(_ context.Context) error {
	return c.db.Close()
}
