package database

import (
	"database/sql"

	"github.com/nebuladb/nebula/internal/errs"
)

// TypeMapper resolves a backend-native column type name to the CellValue
// variant it materializes as. Implementations must be total and
// deterministic: the same type name always yields the same Kind.
type TypeMapper func(nativeType string) Kind

// ReadRows drains a database/sql result set into the value model, shared by
// every driver built on database/sql. Column metadata comes from the result
// set itself; when the driver cannot report nullability it defaults to
// nullable. Per-cell conversion failures degrade to Null — a single
// unreadable cell never fails the row.
//
// ReadRows does not close rows; callers own the Close.
func ReadRows(rows *sql.Rows, mapType TypeMapper) ([]ColumnInfo, [][]CellValue, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to read column metadata", err)
	}

	columns := make([]ColumnInfo, len(colTypes))
	kinds := make([]Kind, len(colTypes))
	for i, ct := range colTypes {
		nullable := true
		if n, ok := ct.Nullable(); ok {
			nullable = n
		}
		columns[i] = ColumnInfo{
			Name:     ct.Name(),
			DataType: ct.DatabaseTypeName(),
			Nullable: nullable,
		}
		kinds[i] = mapType(ct.DatabaseTypeName())
	}

	data := make([][]CellValue, 0)
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to scan row", err)
		}

		row := make([]CellValue, len(columns))
		for i := range raw {
			row[i] = Coerce(kinds[i], raw[i])
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errs.Wrap(errs.ErrKindQueryFailed, "error during row iteration", err)
	}

	return columns, data, nil
}
