package postgres

import (
	"context"
	"fmt"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
)

// ListDatabases returns the non-template databases of the server in the
// backend's native order.
func (c *Conn) ListDatabases(ctx context.Context) ([]database.DatabaseInfo, error) {
	const q = `
		SELECT datname, pg_encoding_to_char(encoding), datcollate
		FROM pg_database
		WHERE datistemplate = false`

	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list databases")
	}
	defer rows.Close()

	var dbs []database.DatabaseInfo
	for rows.Next() {
		var (
			name     string
			encoding *string
			collate  *string
		)
		if err := rows.Scan(&name, &encoding, &collate); err != nil {
			continue
		}
		dbs = append(dbs, database.DatabaseInfo{
			Name:         name,
			CharacterSet: encoding,
			Collation:    collate,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating databases")
	}
	return dbs, nil
}

// ListTables returns the base tables visible in the public schema of db.
// A postgres session cannot introspect other databases, so asking about a
// database other than the connected one yields an empty result rather than
// an error.
func (c *Conn) ListTables(ctx context.Context, db string) ([]database.TableInfo, error) {
	q := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_catalog = '%s'
		  AND table_schema  = 'public'
		  AND table_type    = 'BASE TABLE'`, db)

	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []database.TableInfo
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		tables = append(tables, database.TableInfo{Name: name, Database: db})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating tables")
	}
	return tables, nil
}

// ListViews returns the views of the public schema of db.
func (c *Conn) ListViews(ctx context.Context, db string) ([]database.ViewInfo, error) {
	q := fmt.Sprintf(`
		SELECT table_name, view_definition
		FROM information_schema.views
		WHERE table_catalog = '%s'
		  AND table_schema  = 'public'`, db)

	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list views")
	}
	defer rows.Close()

	var views []database.ViewInfo
	for rows.Next() {
		var (
			name       string
			definition *string
		)
		if err := rows.Scan(&name, &definition); err != nil {
			continue
		}
		views = append(views, database.ViewInfo{
			Name:       name,
			Database:   db,
			Definition: definition,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating views")
	}
	return views, nil
}

// DescribeTable returns the table's columns in ordinal order. Sequence and
// identity columns report as auto-increment.
func (c *Conn) DescribeTable(ctx context.Context, db, table string) (*database.TableInfo, error) {
	q := fmt.Sprintf(`
		SELECT c.column_name,
		       c.data_type,
		       c.is_nullable,
		       c.column_default,
		       (pk.column_name IS NOT NULL),
		       (c.column_default LIKE 'nextval(%%' OR c.is_identity = 'YES')
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON  kcu.constraint_name = tc.constraint_name
			  AND kcu.table_schema    = tc.table_schema
			  AND kcu.table_name      = tc.table_name
			WHERE tc.constraint_type = 'PRIMARY KEY'
			  AND tc.table_schema    = 'public'
			  AND tc.table_name      = '%s'
		) pk ON pk.column_name = c.column_name
		WHERE c.table_schema = 'public' AND c.table_name = '%s'
		ORDER BY c.ordinal_position`, table, table)

	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to describe table")
	}
	defer rows.Close()

	var columns []database.ColumnDetails
	for rows.Next() {
		var (
			name     string
			dataType string
			nullable string
			defVal   *string
			isPK     bool
			isAuto   bool
		)
		if err := rows.Scan(&name, &dataType, &nullable, &defVal, &isPK, &isAuto); err != nil {
			continue
		}
		columns = append(columns, database.ColumnDetails{
			Name:            name,
			DataType:        dataType,
			Nullable:        nullable == "YES",
			DefaultValue:    defVal,
			IsPrimaryKey:    isPK,
			IsAutoIncrement: isAuto,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating columns")
	}

	if len(columns) == 0 {
		return nil, errs.New(errs.ErrKindQueryFailed,
			fmt.Sprintf("unknown table %s.%s", db, table))
	}

	return &database.TableInfo{
		Name:     table,
		Database: db,
		Columns:  columns,
	}, nil
}

// ListIndexes returns the table's indexes with column names in index order.
func (c *Conn) ListIndexes(ctx context.Context, _, table string) ([]database.IndexInfo, error) {
	q := fmt.Sprintf(`
		SELECT i.relname, a.attname, ix.indisunique, ix.indisprimary
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i  ON i.oid = ix.indexrelid
		JOIN unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord) ON true
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
		WHERE t.relname = '%s'
		  AND t.relnamespace = 'public'::regnamespace
		ORDER BY i.relname, k.ord`, table)

	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list indexes")
	}
	defer rows.Close()

	var (
		indexes []database.IndexInfo
		byName  = map[string]int{}
	)
	for rows.Next() {
		var (
			name    string
			column  string
			unique  bool
			primary bool
		)
		if err := rows.Scan(&name, &column, &unique, &primary); err != nil {
			continue
		}
		if i, ok := byName[name]; ok {
			indexes[i].Columns = append(indexes[i].Columns, column)
			continue
		}
		byName[name] = len(indexes)
		indexes = append(indexes, database.IndexInfo{
			Name:      name,
			Table:     table,
			Columns:   []string{column},
			IsUnique:  unique,
			IsPrimary: primary,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating indexes")
	}
	return indexes, nil
}
