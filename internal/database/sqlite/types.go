package sqlite

import (
	"strings"

	"github.com/nebuladb/nebula/internal/database"
)

// ColumnKind maps a SQLite declared column type to its CellValue variant.
// SQLite columns carry free-form declared types, so classification follows
// the engine's own affinity rules by substring. Expression columns report
// no declared type at all and fall through to String. The function is total
// and deterministic.
func ColumnKind(nativeType string) database.Kind {
	t := strings.ToUpper(nativeType)

	switch {
	case t == "BOOLEAN" || t == "BOOL":
		return database.KindBool
	case t == "JSON":
		return database.KindJSON
	case strings.Contains(t, "DATE") || strings.Contains(t, "TIME"):
		return database.KindDateTime
	case strings.Contains(t, "INT"):
		return database.KindInt
	case strings.Contains(t, "REAL") || strings.Contains(t, "FLOA") ||
		strings.Contains(t, "DOUB") || strings.Contains(t, "DECIMAL") ||
		strings.Contains(t, "NUMERIC"):
		return database.KindFloat
	case strings.Contains(t, "BLOB") || strings.Contains(t, "BINARY"):
		return database.KindBytes
	default:
		return database.KindString
	}
}
