package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
)

// ListDatabases returns the attached databases ("main", "temp", plus any
// ATTACHed files), in the order the engine reports them.
func (c *Conn) ListDatabases(ctx context.Context) ([]database.DatabaseInfo, error) {
	rows, err := c.db.QueryContext(ctx, "PRAGMA database_list")
	if err != nil {
		return nil, mapError(err, "failed to list databases")
	}
	defer rows.Close()

	var dbs []database.DatabaseInfo
	for rows.Next() {
		var (
			seq  int
			name string
			file sql.NullString
		)
		if err := rows.Scan(&seq, &name, &file); err != nil {
			continue
		}
		dbs = append(dbs, database.DatabaseInfo{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating databases")
	}
	return dbs, nil
}

// ListTables returns the base tables of the attached database db. The
// sqlite_master filter excludes views and the engine's internal tables.
func (c *Conn) ListTables(ctx context.Context, db string) ([]database.TableInfo, error) {
	q := fmt.Sprintf(`
		SELECT name FROM %s.sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%%'`, db)

	rows, err := c.db.QueryContext(ctx, q)
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

// ListViews returns the views of db with their CREATE statements as the
// definition text.
func (c *Conn) ListViews(ctx context.Context, db string) ([]database.ViewInfo, error) {
	q := fmt.Sprintf(`
		SELECT name, sql FROM %s.sqlite_master
		WHERE type = 'view'`, db)

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
		v := database.ViewInfo{Name: name, Database: db}
		if definition.Valid {
			def := definition.String
			v.Definition = &def
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating views")
	}
	return views, nil
}

// DescribeTable returns the table's columns in ordinal order via
// PRAGMA table_info. A table the catalog does not know yields a query
// failure, not an empty result.
func (c *Conn) DescribeTable(ctx context.Context, db, table string) (*database.TableInfo, error) {
	q := fmt.Sprintf("PRAGMA %s.table_info('%s')", db, table)

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to describe table")
	}
	defer rows.Close()

	var columns []database.ColumnDetails
	for rows.Next() {
		var (
			cid      int
			name     string
			dataType string
			notNull  int
			defVal   sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defVal, &pk); err != nil {
			continue
		}
		col := database.ColumnDetails{
			Name:         name,
			DataType:     dataType,
			Nullable:     notNull == 0,
			IsPrimaryKey: pk > 0,
		}
		if defVal.Valid {
			d := defVal.String
			col.DefaultValue = &d
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating columns")
	}

	if len(columns) == 0 {
		return nil, errs.New(errs.ErrKindQueryFailed,
			fmt.Sprintf("unknown table %s.%s", db, table))
	}

	// AUTOINCREMENT only shows up in the original CREATE TABLE text, so the
	// flag is a substring check against sqlite_master.
	if sqlText, err := c.tableSQL(ctx, db, table); err == nil && strings.Contains(strings.ToUpper(sqlText), "AUTOINCREMENT") {
		for i := range columns {
			if columns[i].IsPrimaryKey {
				columns[i].IsAutoIncrement = true
			}
		}
	}

	return &database.TableInfo{
		Name:     table,
		Database: db,
		Columns:  columns,
	}, nil
}

// ListIndexes returns the table's indexes with column names in index order.
func (c *Conn) ListIndexes(ctx context.Context, db, table string) ([]database.IndexInfo, error) {
	q := fmt.Sprintf("PRAGMA %s.index_list('%s')", db, table)

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapError(err, "failed to list indexes")
	}

	type listed struct {
		name    string
		unique  bool
		primary bool
	}
	var names []listed
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			continue
		}
		names = append(names, listed{name: name, unique: unique == 1, primary: origin == "pk"})
	}
	iterErr := rows.Err()
	rows.Close()
	if iterErr != nil {
		return nil, mapError(iterErr, "error iterating indexes")
	}

	var indexes []database.IndexInfo
	for _, ix := range names {
		cols, err := c.indexColumns(ctx, db, ix.name)
		if err != nil {
			continue
		}
		indexes = append(indexes, database.IndexInfo{
			Name:      ix.name,
			Table:     table,
			Columns:   cols,
			IsUnique:  ix.unique,
			IsPrimary: ix.primary,
		})
	}
	return indexes, nil
}

func (c *Conn) indexColumns(ctx context.Context, db, index string) ([]string, error) {
	q := fmt.Sprintf("PRAGMA %s.index_info('%s')", db, index)

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			seqno int
			cid   int
			name  sql.NullString
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			continue
		}
		if name.Valid {
			cols = append(cols, name.String)
		}
	}
	return cols, rows.Err()
}

func (c *Conn) tableSQL(ctx context.Context, db, table string) (string, error) {
	q := fmt.Sprintf(`SELECT sql FROM %s.sqlite_master WHERE type = 'table' AND name = '%s'`, db, table)

	var sqlText sql.NullString
	if err := c.db.QueryRowContext(ctx, q).Scan(&sqlText); err != nil {
		return "", err
	}
	return sqlText.String, nil
}
