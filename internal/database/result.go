package database

// ColumnInfo describes one column of a query result set. Nullability and
// primary-key flags are best-effort: when the backend does not report them
// inline with the result, they default to the permissive values
// (nullable true, primary key false).
type ColumnInfo struct {
	Name         string
	DataType     string // backend-native type name, not normalized
	Nullable     bool
	IsPrimaryKey bool
}

// QueryResult is the uniform outcome of executing SQL.
//
// Exactly one of two shapes is populated:
//   - a result set: Columns and Rows filled, AffectedRows nil;
//   - a statement outcome: AffectedRows set, Columns and Rows empty.
//
// Every row has exactly len(Columns) cells, aligned positionally.
type QueryResult struct {
	Columns      []ColumnInfo
	Rows         [][]CellValue
	AffectedRows *int64
	ElapsedMS    int64 // wall-clock duration of issue-to-materialize, whole ms
}

// StatementResult builds the non-query shape of QueryResult.
func StatementResult(affected int64, elapsedMS int64) *QueryResult {
	return &QueryResult{AffectedRows: &affected, ElapsedMS: elapsedMS}
}
