package database

import "context"

// Connection is the central contract every backend driver implements.
// All layers above this package talk only to this interface — they never
// import the mysql, postgres or sqlite packages directly.
//
// Every method may block on network I/O and honours ctx for that I/O.
// Every failure is a typed *errs.Error; no driver-native error type crosses
// this boundary.
type Connection interface {
	// TestConnection runs a liveness probe against the server.
	TestConnection(ctx context.Context) error

	// ListDatabases returns the databases visible to the connected user,
	// in the backend's native order.
	ListDatabases(ctx context.Context) ([]DatabaseInfo, error)

	// ListTables returns the base tables of the given database. Views are
	// excluded by the introspection query itself, not filtered afterwards.
	ListTables(ctx context.Context, database string) ([]TableInfo, error)

	// ListViews returns the views of the given database.
	ListViews(ctx context.Context, database string) ([]ViewInfo, error)

	// DescribeTable returns the table with its full column sequence in
	// ordinal order. Fails with a query error if the table does not exist.
	DescribeTable(ctx context.Context, database, table string) (*TableInfo, error)

	// ListIndexes returns the indexes defined over the given table.
	ListIndexes(ctx context.Context, database, table string) ([]IndexInfo, error)

	// ExecuteQuery runs SQL expected to produce a result set. The statement
	// text is passed through verbatim.
	ExecuteQuery(ctx context.Context, sql string) (*QueryResult, error)

	// ExecuteStatement runs SQL with side effects only and returns the
	// affected-row count.
	ExecuteStatement(ctx context.Context, sql string) (int64, error)

	// GetTableData returns a page of rows from the qualified table.
	// Limit and offset are taken as given — validation is the caller's job.
	GetTableData(ctx context.Context, database, table string, limit, offset int) (*QueryResult, error)

	// Close releases the underlying transport resources. Call it exactly
	// once; behavior after a second call is undefined.
	Close(ctx context.Context) error
}
