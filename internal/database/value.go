package database

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind tags the variant held by a CellValue.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt      // 64-bit signed, any backend integer width is widened
	KindFloat    // 64-bit, covers floating and fixed-decimal types
	KindString   // catch-all for textual and unclassified types
	KindBytes    // binary / blob family
	KindDateTime // raw textual form as reported by the backend, not reparsed
	KindJSON     // raw textual form of native JSON columns
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindDateTime:
		return "datetime"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// CellValue is the backend-independent representation of a single cell in a
// query result. Exactly one variant is populated, selected by Kind.
// The zero value is Null.
type CellValue struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string // payload for String, DateTime and JSON
	Bytes []byte
}

// Null is the CellValue every failed conversion degrades to.
var Null = CellValue{Kind: KindNull}

func BoolCell(b bool) CellValue      { return CellValue{Kind: KindBool, Bool: b} }
func IntCell(i int64) CellValue      { return CellValue{Kind: KindInt, Int: i} }
func FloatCell(f float64) CellValue  { return CellValue{Kind: KindFloat, Float: f} }
func StringCell(s string) CellValue  { return CellValue{Kind: KindString, Str: s} }
func BytesCell(b []byte) CellValue   { return CellValue{Kind: KindBytes, Bytes: b} }
func DateTimeCell(s string) CellValue { return CellValue{Kind: KindDateTime, Str: s} }
func JSONCell(s string) CellValue    { return CellValue{Kind: KindJSON, Str: s} }

// IsNull reports whether the cell holds no value.
func (v CellValue) IsNull() bool { return v.Kind == KindNull }

// String renders the cell for display. Binary payloads render as a length
// placeholder rather than raw bytes.
func (v CellValue) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBytes:
		return fmt.Sprintf("<%d bytes>", len(v.Bytes))
	default:
		return v.Str
	}
}

// timeLayout is how temporal values that arrive as time.Time are rendered
// into the textual DateTime variant.
const timeLayout = "2006-01-02 15:04:05"

// Coerce converts a raw driver value into the CellValue variant selected by
// kind. It is total: any value that cannot be converted yields Null, so one
// unreadable cell never aborts materialization of its row.
func Coerce(kind Kind, raw any) CellValue {
	if raw == nil {
		return Null
	}

	switch kind {
	case KindBool:
		return coerceBool(raw)
	case KindInt:
		return coerceInt(raw)
	case KindFloat:
		return coerceFloat(raw)
	case KindBytes:
		switch b := raw.(type) {
		case []byte:
			out := make([]byte, len(b))
			copy(out, b)
			return BytesCell(out)
		case string:
			return BytesCell([]byte(b))
		}
		return Null
	case KindDateTime:
		if s, ok := coerceText(raw); ok {
			return DateTimeCell(s)
		}
		return Null
	case KindJSON:
		if s, ok := coerceText(raw); ok {
			return JSONCell(s)
		}
		// Some drivers decode JSON columns into Go maps; re-render as text.
		if b, err := json.Marshal(raw); err == nil {
			return JSONCell(string(b))
		}
		return Null
	case KindString:
		if s, ok := coerceText(raw); ok {
			return StringCell(s)
		}
		return Null
	default:
		return Null
	}
}

func coerceBool(raw any) CellValue {
	switch v := raw.(type) {
	case bool:
		return BoolCell(v)
	case int64:
		return BoolCell(v != 0)
	case []byte:
		if b, err := strconv.ParseBool(string(v)); err == nil {
			return BoolCell(b)
		}
		if n, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return BoolCell(n != 0)
		}
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return BoolCell(b)
		}
	}
	return Null
}

func coerceInt(raw any) CellValue {
	switch v := raw.(type) {
	case int64:
		return IntCell(v)
	case int32:
		return IntCell(int64(v))
	case int16:
		return IntCell(int64(v))
	case int8:
		return IntCell(int64(v))
	case int:
		return IntCell(int64(v))
	case uint64:
		if v <= 1<<63-1 {
			return IntCell(int64(v))
		}
	case []byte:
		if n, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return IntCell(n)
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return IntCell(n)
		}
	}
	return Null
}

func coerceFloat(raw any) CellValue {
	switch v := raw.(type) {
	case float64:
		return FloatCell(v)
	case float32:
		return FloatCell(float64(v))
	case int64:
		return FloatCell(float64(v))
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return FloatCell(f)
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return FloatCell(f)
		}
	}
	return Null
}

// coerceText renders raw as text for the String/DateTime/JSON variants.
func coerceText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case time.Time:
		return v.Format(timeLayout), true
	case bool, int, int8, int16, int32, int64, uint, uint32, uint64, float32, float64:
		return fmt.Sprint(v), true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}
