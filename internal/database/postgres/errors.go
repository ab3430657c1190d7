package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nebuladb/nebula/internal/errs"
)

// SQLSTATE codes of interest.
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeInvalidPassword  = "28P01"
	codeInvalidAuthSpec  = "28000"
	codeInvalidCatalog   = "3D000" // unknown database
	codeQueryCanceled    = "57014"
	classConnection      = "08" // connection exceptions
	classInsufficientRes = "53" // too many connections, out of memory
)

// mapError translates a pgx error into the unified taxonomy, preserving the
// server's message text.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errs.Wrap(
			classifyCode(pgErr.Code),
			fmt.Sprintf("%s: %s", msg, pgErr.Message),
			err,
		)
	}

	// Anything without a SQLSTATE is a transport-level failure.
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// classifyCode maps SQLSTATE codes to ErrKind.
func classifyCode(code string) errs.ErrKind {
	switch code {
	case codeInvalidPassword, codeInvalidAuthSpec:
		return errs.ErrKindAuthenticationFailed
	case codeInvalidCatalog:
		return errs.ErrKindDatabaseNotFound
	case codeQueryCanceled:
		return errs.ErrKindTimeout
	}
	switch {
	case strings.HasPrefix(code, classConnection), strings.HasPrefix(code, classInsufficientRes):
		return errs.ErrKindConnectionFailed
	default:
		return errs.ErrKindQueryFailed
	}
}
