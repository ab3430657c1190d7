// Package postgres implements database.Connection for PostgreSQL servers
// backed by a pgx/v5 connection pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
)

const maxConns = 5

// Conn is a live PostgreSQL connection pool. It is safe for concurrent use;
// the contract-level Guard additionally serializes logical operations
// issued by the bridge.
type Conn struct {
	pool *pgxpool.Pool
}

// Connect opens the bounded connection pool for cfg and verifies it with a
// ping. All connect-time failures surface as a connection failure carrying
// the transport's error text.
func Connect(ctx context.Context, cfg database.ConnectionConfig) (*Conn, error) {
	poolCfg, err := pgxpool.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid postgres configuration", err)
	}
	poolCfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, err.Error(), err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, err.Error(), err)
	}
	return &Conn{pool: pool}, nil
}

// buildDSN constructs the postgres connection URL from the config.
func buildDSN(cfg database.ConnectionConfig) string {
	port := cfg.Port
	if port == 0 {
		port = cfg.Backend.DefaultPort()
	}
	sslMode := "disable"
	if cfg.SSLEnabled {
		sslMode = "require"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database, sslMode,
	)
}

// TestConnection runs the liveness probe.
func (c *Conn) TestConnection(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, "SELECT 1"); err != nil {
		return errs.Wrap(errs.ErrKindConnectionFailed, err.Error(), err)
	}
	return nil
}

// ExecuteQuery runs sql verbatim and materializes the full result set.
func (c *Conn) ExecuteQuery(ctx context.Context, sqlText string) (*database.QueryResult, error) {
	start := time.Now()

	rows, err := c.pool.Query(ctx, sqlText)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	defer rows.Close()

	columns, kinds := describeColumns(rows)

	data := make([][]database.CellValue, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, mapError(err, "failed to read row")
		}
		row := make([]database.CellValue, len(columns))
		for i := range row {
			var raw any
			if i < len(values) {
				raw = normalizeValue(values[i])
			}
			row[i] = database.Coerce(kinds[i], raw)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error during row iteration")
	}

	return &database.QueryResult{
		Columns:   columns,
		Rows:      data,
		ElapsedMS: time.Since(start).Milliseconds(),
	}, nil
}

// describeColumns reads column metadata off the open result set. pgx does
// not report nullability inline, so columns default to the permissive
// nullable / non-primary-key flags.
func describeColumns(rows pgx.Rows) ([]database.ColumnInfo, []database.Kind) {
	fds := rows.FieldDescriptions()
	typeMap := rows.Conn().TypeMap()

	columns := make([]database.ColumnInfo, len(fds))
	kinds := make([]database.Kind, len(fds))
	for i, fd := range fds {
		typeName := "unknown"
		if dt, ok := typeMap.TypeForOID(fd.DataTypeOID); ok {
			typeName = dt.Name
		}
		columns[i] = database.ColumnInfo{
			Name:     string(fd.Name),
			DataType: typeName,
			Nullable: true,
		}
		kinds[i] = ColumnKind(typeName)
	}
	return columns, kinds
}

// ExecuteStatement runs sql verbatim and returns the affected-row count.
func (c *Conn) ExecuteStatement(ctx context.Context, sqlText string) (int64, error) {
	tag, err := c.pool.Exec(ctx, sqlText)
	if err != nil {
		return 0, mapError(err, "statement failed")
	}
	return tag.RowsAffected(), nil
}

// GetTableData pages through the qualified table with the caller's bounds.
// The database qualifier is dropped: postgres cannot query across
// databases, so the page always comes from the connected one.
func (c *Conn) GetTableData(ctx context.Context, _, table string, limit, offset int) (*database.QueryResult, error) {
	return c.ExecuteQuery(ctx, database.TableDataSQL(database.DialectPostgres, "", table, limit, offset))
}

// Close drains the connection pool. Call exactly once.
func (c *Conn) Close(_ context.Context) error {
	c.pool.Close()
	return nil
}
