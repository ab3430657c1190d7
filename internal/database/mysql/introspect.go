package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
)

// information_schema marker tokens. These are free-text values returned by
// the server, matched by equality or substring, not enums.
const (
	primaryKeyMarker    = "PRI"
	autoIncrementMarker = "auto_increment"
)

// ListDatabases issues SHOW DATABASES and maps each returned name. Rows that
// fail to scan are dropped — introspection is best-effort, not transactional.
func (c *Conn) ListDatabases(ctx context.Context) ([]database.DatabaseInfo, error) {
	rows, err := c.db.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, mapError(err, "failed to list databases")
	}
	defer rows.Close()

	var dbs []database.DatabaseInfo
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		dbs = append(dbs, database.DatabaseInfo{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating databases")
	}
	return dbs, nil
}

// ListTables returns the base tables of db. Views never appear: the query
// restricts TABLE_TYPE at the source.
func (c *Conn) ListTables(ctx context.Context, db string) ([]database.TableInfo, error) {
	q := fmt.Sprintf(`
		SELECT TABLE_NAME, ENGINE, TABLE_ROWS, DATA_LENGTH
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = '%s' AND TABLE_TYPE = 'BASE TABLE'`, db)

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []database.TableInfo
	for rows.Next() {
		var (
			name     string
			engine   sql.NullString
			rowCount sql.NullInt64
			dataSize sql.NullInt64
		)
		if err := rows.Scan(&name, &engine, &rowCount, &dataSize); err != nil {
			continue
		}
		tables = append(tables, database.TableInfo{
			Name:     name,
			Database: db,
			Engine:   nullableString(engine),
			RowCount: nullableInt(rowCount),
			DataSize: nullableInt(dataSize),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating tables")
	}
	return tables, nil
}

// ListViews returns the views of db with their definitions where readable.
func (c *Conn) ListViews(ctx context.Context, db string) ([]database.ViewInfo, error) {
	q := fmt.Sprintf(`
		SELECT TABLE_NAME, VIEW_DEFINITION
		FROM information_schema.VIEWS
		WHERE TABLE_SCHEMA = '%s'`, db)

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list views")
	}
	defer rows.Close()

	var views []database.ViewInfo
	for rows.Next() {
		var (
			name       string
			definition sql.NullString
		)
		if err := rows.Scan(&name, &definition); err != nil {
			continue
		}
		views = append(views, database.ViewInfo{
			Name:       name,
			Database:   db,
			Definition: nullableString(definition),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating views")
	}
	return views, nil
}

// DescribeTable returns the table's columns in ordinal order. A table the
// catalog does not know yields a query failure, not an empty result.
func (c *Conn) DescribeTable(ctx context.Context, db, table string) (*database.TableInfo, error) {
	q := fmt.Sprintf(`
		SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT,
		       COLUMN_KEY, EXTRA, COLUMN_COMMENT
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = '%s' AND TABLE_NAME = '%s'
		ORDER BY ORDINAL_POSITION`, db, table)

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to describe table")
	}
	defer rows.Close()

	var columns []database.ColumnDetails
	for rows.Next() {
		var (
			name      string
			dataType  string
			nullable  string
			defVal    sql.NullString
			columnKey sql.NullString
			extra     sql.NullString
			comment   sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &nullable, &defVal, &columnKey, &extra, &comment); err != nil {
			continue
		}
		columns = append(columns, database.ColumnDetails{
			Name:            name,
			DataType:        dataType,
			Nullable:        nullable == "YES",
			DefaultValue:    nullableString(defVal),
			IsPrimaryKey:    columnKey.String == primaryKeyMarker,
			IsAutoIncrement: strings.Contains(extra.String, autoIncrementMarker),
			Comment:         nullableString(comment),
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
func (c *Conn) ListIndexes(ctx context.Context, db, table string) ([]database.IndexInfo, error) {
	q := fmt.Sprintf(`
		SELECT INDEX_NAME, COLUMN_NAME, NON_UNIQUE
		FROM information_schema.STATISTICS
		WHERE TABLE_SCHEMA = '%s' AND TABLE_NAME = '%s'
		ORDER BY INDEX_NAME, SEQ_IN_INDEX`, db, table)

	rows, err := c.db.QueryContext(ctx, q)
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
			name      string
			column    string
			nonUnique int
		)
		if err := rows.Scan(&name, &column, &nonUnique); err != nil {
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
			IsUnique:  nonUnique == 0,
			IsPrimary: name == "PRIMARY",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating indexes")
	}
	return indexes, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
