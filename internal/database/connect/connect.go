// Package connect constructs live connections from typed configuration.
// It is the only package that knows which backend tags have drivers.
package connect

import (
	"context"
	"fmt"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/database/mysql"
	"github.com/nebuladb/nebula/internal/database/postgres"
	"github.com/nebuladb/nebula/internal/database/sqlite"
	"github.com/nebuladb/nebula/internal/errs"
)

// Open dispatches by backend tag to the matching driver's connect routine.
// Tags without an implemented driver fail with UnsupportedType before any
// I/O is attempted, so callers can tell "not yet supported" apart from
// "attempted and failed".
func Open(ctx context.Context, cfg database.ConnectionConfig) (database.Connection, error) {
	switch cfg.Backend {
	case database.BackendMySQL:
		return mysql.Connect(ctx, cfg)
	case database.BackendPostgres:
		return postgres.Connect(ctx, cfg)
	case database.BackendSQLite:
		return sqlite.Connect(ctx, cfg)
	case database.BackendMongoDB:
		return nil, errs.New(errs.ErrKindUnsupportedType, "MongoDB support coming soon")
	default:
		return nil, errs.New(errs.ErrKindUnsupportedType,
			fmt.Sprintf("unknown backend type %q", cfg.Backend))
	}
}
