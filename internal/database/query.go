package database

import (
	"fmt"
	"strings"
)

// Dialect controls which identifier-quoting convention SQL builders emit.
type Dialect int

const (
	// DialectMySQL quotes identifiers with backticks.
	DialectMySQL Dialect = iota

	// DialectPostgres quotes identifiers with double quotes.
	DialectPostgres

	// DialectSQLite quotes identifiers with double quotes.
	DialectSQLite
)

// QuoteIdentifier quotes a database, table or column name in the dialect's
// native convention, doubling embedded quote characters. This guards the
// generated SQL against names containing syntax-breaking characters — it is
// identifier quoting only, not value escaping.
func QuoteIdentifier(d Dialect, name string) string {
	if d == DialectMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// TableDataSQL builds the bounded SELECT used to page through a table's
// rows. Limit and offset are caller-supplied and emitted as given.
func TableDataSQL(d Dialect, database, table string, limit, offset int) string {
	qualified := QuoteIdentifier(d, table)
	if database != "" {
		qualified = QuoteIdentifier(d, database) + "." + qualified
	}
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d", qualified, limit, offset)
}

// IsResultProducing reports whether sql should be routed to ExecuteQuery
// rather than ExecuteStatement. The classification looks only at the first
// keyword; anything unrecognized is treated as a side-effect statement.
func IsResultProducing(sql string) bool {
	head := strings.ToUpper(strings.TrimSpace(sql))
	for _, kw := range []string{"SELECT", "SHOW", "DESCRIBE", "EXPLAIN", "PRAGMA", "WITH"} {
		if strings.HasPrefix(head, kw) {
			return true
		}
	}
	return false
}
