package bridge

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
	"github.com/nebuladb/nebula/internal/logger"
)

// fakeConn counts overlapping calls so tests can prove the Guard serializes
// every operation on the shared connection.
type fakeConn struct {
	delay      time.Duration
	inFlight   atomic.Int32
	overlapped atomic.Bool
	queries    atomic.Int32
	statements atomic.Int32
}

func (f *fakeConn) enter() {
	if f.inFlight.Add(1) > 1 {
		f.overlapped.Store(true)
	}
	time.Sleep(f.delay)
}

func (f *fakeConn) leave() { f.inFlight.Add(-1) }

func (f *fakeConn) TestConnection(context.Context) error {
	f.enter()
	defer f.leave()
	return nil
}

func (f *fakeConn) ListDatabases(context.Context) ([]database.DatabaseInfo, error) {
	f.enter()
	defer f.leave()
	return []database.DatabaseInfo{{Name: "alpha"}, {Name: "beta"}}, nil
}

func (f *fakeConn) ListTables(_ context.Context, db string) ([]database.TableInfo, error) {
	f.enter()
	defer f.leave()
	return []database.TableInfo{{Name: db + "_t1", Database: db}}, nil
}

func (f *fakeConn) ListViews(_ context.Context, db string) ([]database.ViewInfo, error) {
	f.enter()
	defer f.leave()
	return []database.ViewInfo{{Name: db + "_v1", Database: db}}, nil
}

func (f *fakeConn) DescribeTable(_ context.Context, db, table string) (*database.TableInfo, error) {
	f.enter()
	defer f.leave()
	return &database.TableInfo{Name: table, Database: db}, nil
}

func (f *fakeConn) ListIndexes(context.Context, string, string) ([]database.IndexInfo, error) {
	f.enter()
	defer f.leave()
	return nil, nil
}

func (f *fakeConn) ExecuteQuery(context.Context, string) (*database.QueryResult, error) {
	f.enter()
	defer f.leave()
	f.queries.Add(1)
	return &database.QueryResult{
		Columns: []database.ColumnInfo{{Name: "n"}},
		Rows:    [][]database.CellValue{{database.IntCell(1)}},
	}, nil
}

func (f *fakeConn) ExecuteStatement(context.Context, string) (int64, error) {
	f.enter()
	defer f.leave()
	f.statements.Add(1)
	return 3, nil
}

func (f *fakeConn) GetTableData(context.Context, string, string, int, int) (*database.QueryResult, error) {
	f.enter()
	defer f.leave()
	return &database.QueryResult{}, nil
}

func (f *fakeConn) Close(context.Context) error { return nil }

// newBridgeWith installs conn as the session connection directly, bypassing
// the factory.
func newBridgeWith(t *testing.T, conn database.Connection) *Bridge {
	t.Helper()
	b := New(logger.Nop())
	b.guard.Adopt(conn)
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b
}

// poll drives fn until it reports done, failing the test after a deadline.
func poll(t *testing.T, fn func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !fn() {
		if time.Now().After(deadline) {
			t.Fatal("operation never completed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBridge_NoConnection(t *testing.T) {
	b := New(logger.Nop())
	assert.False(t, b.Connected())

	b.StartListDatabases()

	var opErr error
	poll(t, func() bool {
		_, err, ok := b.PollDatabases()
		opErr = err
		return ok
	})
	require.Error(t, opErr)
	assert.True(t, errs.IsConnectionFailed(opErr))
}

func TestBridge_ListDatabases(t *testing.T) {
	b := newBridgeWith(t, &fakeConn{})
	assert.True(t, b.Connected())

	b.StartListDatabases()
	assert.True(t, b.DatabasesPending())
	assert.True(t, b.AnyPending())

	var got []database.DatabaseInfo
	poll(t, func() bool {
		dbs, err, ok := b.PollDatabases()
		require.NoError(t, err)
		got = dbs
		return ok
	})
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Name)

	// Delivered once; the slot reads idle from here on.
	assert.False(t, b.DatabasesPending())
	_, _, ok := b.PollDatabases()
	assert.False(t, ok)
}

func TestBridge_KeyedResults(t *testing.T) {
	b := newBridgeWith(t, &fakeConn{})

	b.StartListTables("shop")
	var tables Keyed[[]database.TableInfo]
	poll(t, func() bool {
		k, err, ok := b.PollTables()
		require.NoError(t, err)
		tables = k
		return ok
	})
	assert.Equal(t, "shop", tables.Database)
	require.Len(t, tables.Value, 1)
	assert.Equal(t, "shop_t1", tables.Value[0].Name)

	b.StartListViews("crm")
	var views Keyed[[]database.ViewInfo]
	poll(t, func() bool {
		k, err, ok := b.PollViews()
		require.NoError(t, err)
		views = k
		return ok
	})
	assert.Equal(t, "crm", views.Database)
}

func TestBridge_QueryClassification(t *testing.T) {
	fake := &fakeConn{}
	b := newBridgeWith(t, fake)

	b.StartQuery("SELECT 1")
	var result *database.QueryResult
	poll(t, func() bool {
		r, err, ok := b.PollQuery()
		require.NoError(t, err)
		result = r
		return ok
	})
	require.NotNil(t, result)
	assert.Nil(t, result.AffectedRows)
	assert.Equal(t, int32(1), fake.queries.Load())
	assert.Equal(t, int32(0), fake.statements.Load())

	b.StartQuery("DELETE FROM t")
	poll(t, func() bool {
		r, err, ok := b.PollQuery()
		require.NoError(t, err)
		result = r
		return ok
	})
	require.NotNil(t, result.AffectedRows)
	assert.Equal(t, int64(3), *result.AffectedRows)
	assert.Empty(t, result.Rows)
	assert.Equal(t, int32(1), fake.statements.Load())
}

func TestBridge_OperationsSerializeOnConnection(t *testing.T) {
	fake := &fakeConn{delay: 10 * time.Millisecond}
	b := newBridgeWith(t, fake)

	// Different operation kinds in flight at once; the Guard must keep them
	// from touching the connection concurrently.
	b.StartListDatabases()
	b.StartListTables("alpha")
	b.StartListViews("alpha")
	b.StartQuery("SELECT 1")

	poll(t, func() bool {
		b.PollDatabases()
		b.PollTables()
		b.PollViews()
		b.PollQuery()
		return !b.AnyPending()
	})

	assert.False(t, fake.overlapped.Load(), "operations overlapped on the shared connection")
}

func TestBridge_ConnectAdoptsAndTests(t *testing.T) {
	b := New(logger.Nop())
	t.Cleanup(func() { _ = b.Close(context.Background()) })

	cfg := database.NewConnectionConfig()
	cfg.Backend = database.BackendSQLite
	cfg.FilePath = ":memory:"

	b.StartConnect(cfg)
	assert.True(t, b.ConnectPending())

	var connErr error
	poll(t, func() bool {
		err, ok := b.PollConnect()
		connErr = err
		return ok
	})
	require.NoError(t, connErr)
	assert.True(t, b.Connected())
}

func TestBridge_ConnectFailureLeavesSessionIntact(t *testing.T) {
	prev := &fakeConn{}
	b := newBridgeWith(t, prev)

	cfg := database.NewConnectionConfig()
	cfg.Backend = database.BackendMongoDB // unsupported: Open fails before I/O

	b.StartConnect(cfg)

	var connErr error
	poll(t, func() bool {
		err, ok := b.PollConnect()
		connErr = err
		return ok
	})
	require.Error(t, connErr)
	assert.True(t, errs.IsUnsupportedType(connErr))
	assert.True(t, b.Connected(), "failed connect must not drop the previous session")
}

func TestBridge_TestConnectionIsThrowaway(t *testing.T) {
	b := New(logger.Nop())
	t.Cleanup(func() { _ = b.Close(context.Background()) })

	cfg := database.NewConnectionConfig()
	cfg.Backend = database.BackendSQLite
	cfg.FilePath = ":memory:"

	b.StartTest(cfg)

	var testErr error
	poll(t, func() bool {
		err, ok := b.PollTest()
		testErr = err
		return ok
	})
	require.NoError(t, testErr)
	assert.False(t, b.Connected(), "test must not adopt a session connection")
}
