package mysql

import (
	"context"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/nebuladb/nebula/internal/errs"
)

// MySQL server error numbers.
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errAccessDeniedDB    = 1044
	errAccessDenied      = 1045
	errUnknownDatabase   = 1049
	errTooManyConns      = 1040
	errTooManyUserConns  = 1203
	errBadFieldError     = 1054
	errParseError        = 1064
	errNoSuchTable       = 1146
	errQueryInterrupted  = 1317
	errLockWaitTimeout   = 1205
)

// mapError translates a go-sql-driver error into the unified taxonomy,
// preserving the server's message text.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return errs.Wrap(
			classifyCode(mysqlErr.Number),
			fmt.Sprintf("%s: %s", msg, mysqlErr.Message),
			err,
		)
	}

	// Anything without a server error number is a transport-level failure.
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// classifyCode maps MySQL error numbers to ErrKind.
func classifyCode(code uint16) errs.ErrKind {
	switch code {
	case errAccessDenied, errAccessDeniedDB:
		return errs.ErrKindAuthenticationFailed
	case errUnknownDatabase:
		return errs.ErrKindDatabaseNotFound
	case errTooManyConns, errTooManyUserConns:
		return errs.ErrKindConnectionFailed
	case errLockWaitTimeout, errQueryInterrupted:
		return errs.ErrKindTimeout
	case errBadFieldError, errParseError, errNoSuchTable:
		return errs.ErrKindQueryFailed
	default:
		return errs.ErrKindQueryFailed
	}
}
