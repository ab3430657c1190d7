package database

// Schema entities are read-only snapshots fetched on demand. They are never
// mutated in place — a refresh replaces the whole slice for its key.

// DatabaseInfo describes one database (or schema namespace) on the server.
type DatabaseInfo struct {
	Name         string
	CharacterSet *string
	Collation    *string
}

// TableInfo describes a base table. Row count and data size are server-side
// estimates and may be absent or stale.
type TableInfo struct {
	Name     string
	Database string
	Engine   *string
	RowCount *int64
	DataSize *int64
	Columns  []ColumnDetails // ordinal order; empty unless populated by DescribeTable
}

// ViewInfo describes a view. Definition is the backend-reported view text,
// absent when the connected user may not read it.
type ViewInfo struct {
	Name       string
	Database   string
	Definition *string
}

// ColumnDetails is the full introspected description of one table column.
type ColumnDetails struct {
	Name            string
	DataType        string // backend-native type string, e.g. "varchar(255)"
	Nullable        bool
	DefaultValue    *string
	IsPrimaryKey    bool
	IsAutoIncrement bool
	Comment         *string
}

// IndexInfo describes one index over a table, with its column names in
// index order.
type IndexInfo struct {
	Name      string
	Table     string
	Columns   []string
	IsUnique  bool
	IsPrimary bool
}
