package mysql

import (
	"strings"

	"github.com/nebuladb/nebula/internal/database"
)

// ColumnKind maps a MySQL column type name, as reported by the driver, to
// its CellValue variant. The function is total and deterministic; names not
// covered by a family below fall through to String.
func ColumnKind(nativeType string) database.Kind {
	t := strings.ToUpper(nativeType)
	t = strings.TrimPrefix(t, "UNSIGNED ")
	t = strings.TrimSuffix(t, " UNSIGNED")

	switch t {
	case "BOOLEAN", "BOOL":
		return database.KindBool
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR":
		return database.KindInt
	case "FLOAT", "DOUBLE", "DECIMAL", "NUMERIC":
		return database.KindFloat
	case "DATE", "TIME", "DATETIME", "TIMESTAMP":
		return database.KindDateTime
	case "JSON":
		return database.KindJSON
	case "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BINARY", "VARBINARY", "BIT", "GEOMETRY":
		return database.KindBytes
	default:
		return database.KindString
	}
}
