package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nebuladb/nebula/internal/database"
)

// ColumnKind maps a postgres type name (as registered in the pgx type map)
// to its CellValue variant. The function is total and deterministic; names
// not covered by a family below fall through to String.
func ColumnKind(typeName string) database.Kind {
	switch strings.ToLower(typeName) {
	case "bool":
		return database.KindBool
	case "int2", "int4", "int8":
		return database.KindInt
	case "float4", "float8", "numeric":
		return database.KindFloat
	case "date", "time", "timetz", "timestamp", "timestamptz", "interval":
		return database.KindDateTime
	case "json", "jsonb":
		return database.KindJSON
	case "bytea":
		return database.KindBytes
	default:
		return database.KindString
	}
}

// normalizeValue unwraps pgtype carriers that Coerce has no business
// knowing about, so numeric and uuid columns materialize instead of
// degrading to Null.
func normalizeValue(raw any) any {
	switch v := raw.(type) {
	case pgtype.Numeric:
		if f, err := v.Float64Value(); err == nil && f.Valid {
			return f.Float64
		}
		return nil
	case [16]byte: // uuid wire representation
		return formatUUID(v)
	default:
		return raw
	}
}

const hexDigits = "0123456789abcdef"

func formatUUID(b [16]byte) string {
	var out [36]byte
	i := 0
	for j, v := range b {
		switch j {
		case 4, 6, 8, 10:
			out[i] = '-'
			i++
		}
		out[i] = hexDigits[v>>4]
		out[i+1] = hexDigits[v&0xf]
		i += 2
	}
	return string(out[:])
}
