// Package sqlite implements database.Connection for SQLite files over
// database/sql with the CGO-free modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite" // register "sqlite" driver

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
)

const maxOpenConns = 5

// Conn is a live SQLite connection. An in-memory database is pinned to a
// single physical connection — every pooled connection would otherwise see
// its own empty database.
type Conn struct {
	db *sql.DB
}

// Connect opens the SQLite file named by the config and verifies it with a
// ping. The file path comes from FilePath, falling back to Database for
// profiles that store it there.
func Connect(ctx context.Context, cfg database.ConnectionConfig) (*Conn, error) {
	path := cfg.FilePath
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		return nil, errs.New(errs.ErrKindConnectionFailed, "sqlite requires a database file path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid sqlite configuration", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(maxOpenConns)
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
	return c.ExecuteQuery(ctx, database.TableDataSQL(database.DialectSQLite, db, table, limit, offset))
}

// Close shuts down the connection. Call exactly once.
func (c *Conn) Close(_ context.Context) error {
	return c.db.Close()
}

// mapError translates driver errors into the unified taxonomy. SQLite has
// no wire protocol, so connection-kind failures only occur at open time;
// everything else is a query failure.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}
	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
