// Package bridge lets a synchronous, frame-driven caller drive blocking
// database operations without ever blocking its own tick. Each logical
// operation kind owns one Slot; operations run on background goroutines
// against the Guard-wrapped live connection and are observed by
// non-blocking polls, exactly once each.
package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/database/connect"
	"github.com/nebuladb/nebula/internal/logger"
)

// Keyed pairs an operation result with the database name it was scoped to,
// so out-of-order completions land in the right cache key.
type Keyed[T any] struct {
	Database string
	Value    T
}

// Bridge owns the live connection for a session and the completion slot of
// every operation kind. The Start/Poll side must be driven from a single
// goroutine (the caller's tick loop); the background tasks it spawns are
// serialized on the connection by the Guard.
//
// There is no cancellation: a superseded or abandoned operation runs to
// completion and its result is discarded.
type Bridge struct {
	guard *database.Guard
	log   *logger.Logger
	wg    sync.WaitGroup

	connecting Slot[struct{}]
	testing    Slot[struct{}]
	databases  Slot[[]database.DatabaseInfo]
	tables     Slot[Keyed[[]database.TableInfo]]
	views      Slot[Keyed[[]database.ViewInfo]]
	query      Slot[*database.QueryResult]
}

// New creates a Bridge with no connection yet.
func New(log *logger.Logger) *Bridge {
	if log == nil {
		log = logger.New(nil)
	}
	return &Bridge{
		guard: database.NewGuard(),
		log:   log,
	}
}

// spawn runs one operation on the background scheduler and arms its slot.
func spawn[T any](b *Bridge, s *Slot[T], name string, run func(ctx context.Context) (T, error)) {
	ch := s.start()
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		v, err := run(context.Background())
		if err != nil {
			b.log.With().Str("op", name).Err(err).Logger().Error("operation failed")
		}
		ch <- outcome[T]{value: v, err: err}
	}()
}

// guarded adapts a connection operation into a run function, holding the
// exclusive lock for the operation's whole duration.
func guarded[T any](b *Bridge, op func(ctx context.Context, conn database.Connection) (T, error)) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var out T
		err := b.guard.Do(func(conn database.Connection) error {
			var err error
			out, err = op(ctx, conn)
			return err
		})
		return out, err
	}
}

// Connected reports whether the bridge holds a live connection.
func (b *Bridge) Connected() bool { return b.guard.Connected() }

// StartConnect builds a connection for cfg, probes it, and adopts it as the
// session connection, replacing (and closing) any previous one.
func (b *Bridge) StartConnect(cfg database.ConnectionConfig) {
	spawn(b, &b.connecting, "connect", func(ctx context.Context) (struct{}, error) {
		conn, err := connect.Open(ctx, cfg)
		if err != nil {
			return struct{}{}, err
		}
		if err := conn.TestConnection(ctx); err != nil {
			_ = conn.Close(ctx)
			return struct{}{}, err
		}
		if prev := b.guard.Adopt(conn); prev != nil {
			_ = prev.Close(ctx)
		}
		return struct{}{}, nil
	})
}

// PollConnect observes the connect slot.
func (b *Bridge) PollConnect() (err error, ok bool) {
	_, err, ok = b.connecting.Poll()
	return err, ok
}

// ConnectPending reports an outstanding connect.
func (b *Bridge) ConnectPending() bool { return b.connecting.Pending() }

// StartTest builds a throwaway connection for cfg, probes it, and closes
// it. The session connection is untouched.
func (b *Bridge) StartTest(cfg database.ConnectionConfig) {
	spawn(b, &b.testing, "test-connection", func(ctx context.Context) (struct{}, error) {
		conn, err := connect.Open(ctx, cfg)
		if err != nil {
			return struct{}{}, err
		}
		err = conn.TestConnection(ctx)
		_ = conn.Close(ctx)
		return struct{}{}, err
	})
}

// PollTest observes the test-connection slot.
func (b *Bridge) PollTest() (err error, ok bool) {
	_, err, ok = b.testing.Poll()
	return err, ok
}

// TestPending reports an outstanding connection test.
func (b *Bridge) TestPending() bool { return b.testing.Pending() }

// StartListDatabases lists the databases of the session connection.
func (b *Bridge) StartListDatabases() {
	spawn(b, &b.databases, "list-databases",
		guarded(b, func(ctx context.Context, conn database.Connection) ([]database.DatabaseInfo, error) {
			return conn.ListDatabases(ctx)
		}))
}

// PollDatabases observes the list-databases slot.
func (b *Bridge) PollDatabases() ([]database.DatabaseInfo, error, bool) {
	return b.databases.Poll()
}

// DatabasesPending reports an outstanding database listing.
func (b *Bridge) DatabasesPending() bool { return b.databases.Pending() }

// StartListTables lists the base tables of db on the session connection.
func (b *Bridge) StartListTables(db string) {
	spawn(b, &b.tables, "list-tables",
		guarded(b, func(ctx context.Context, conn database.Connection) (Keyed[[]database.TableInfo], error) {
			tables, err := conn.ListTables(ctx, db)
			return Keyed[[]database.TableInfo]{Database: db, Value: tables}, err
		}))
}

// PollTables observes the list-tables slot. The returned key is the
// database the listing was scoped to.
func (b *Bridge) PollTables() (Keyed[[]database.TableInfo], error, bool) {
	return b.tables.Poll()
}

// TablesPending reports an outstanding table listing.
func (b *Bridge) TablesPending() bool { return b.tables.Pending() }

// StartListViews lists the views of db on the session connection.
func (b *Bridge) StartListViews(db string) {
	spawn(b, &b.views, "list-views",
		guarded(b, func(ctx context.Context, conn database.Connection) (Keyed[[]database.ViewInfo], error) {
			views, err := conn.ListViews(ctx, db)
			return Keyed[[]database.ViewInfo]{Database: db, Value: views}, err
		}))
}

// PollViews observes the list-views slot.
func (b *Bridge) PollViews() (Keyed[[]database.ViewInfo], error, bool) {
	return b.views.Poll()
}

// ViewsPending reports an outstanding view listing.
func (b *Bridge) ViewsPending() bool { return b.views.Pending() }

// StartQuery runs sql on the session connection. Result-producing SQL goes
// through ExecuteQuery; everything else runs as a statement and its
// affected-row count is folded into the statement shape of QueryResult.
func (b *Bridge) StartQuery(sql string) {
	spawn(b, &b.query, "run-query",
		guarded(b, func(ctx context.Context, conn database.Connection) (*database.QueryResult, error) {
			if database.IsResultProducing(sql) {
				return conn.ExecuteQuery(ctx, sql)
			}
			start := time.Now()
			affected, err := conn.ExecuteStatement(ctx, sql)
			if err != nil {
				return nil, err
			}
			return database.StatementResult(affected, time.Since(start).Milliseconds()), nil
		}))
}

// PollQuery observes the run-query slot.
func (b *Bridge) PollQuery() (*database.QueryResult, error, bool) {
	return b.query.Poll()
}

// QueryPending reports an outstanding query.
func (b *Bridge) QueryPending() bool { return b.query.Pending() }

// AnyPending reports whether any slot has an outstanding operation — the
// caller uses this to keep its tick loop hot while work is in flight.
func (b *Bridge) AnyPending() bool {
	return b.connecting.Pending() || b.testing.Pending() ||
		b.databases.Pending() || b.tables.Pending() ||
		b.views.Pending() || b.query.Pending()
}

// Close releases the session connection, if any. In-flight operations are
// not interrupted; their results are discarded.
func (b *Bridge) Close(ctx context.Context) error {
	return b.guard.Close(ctx)
}
