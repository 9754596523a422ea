package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gridbase/gridbase/internal/errs"
)

// SQLSTATE class prefixes.
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	sqlstateClassConnection = "08" // connection exceptions
	sqlstateClassConstraint = "23" // integrity constraint violations
	sqlstateClassSyntax     = "42" // syntax errors / undefined objects
)

// mapError translates pgx / pgconn native errors into *errs.Error, keeping
// the engine message as the cause so diagnostics survive the wrapping.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := errs.ErrKindQueryFailed
		switch {
		case strings.HasPrefix(pgErr.Code, sqlstateClassConstraint):
			kind = errs.ErrKindConstraintViolation
		case strings.HasPrefix(pgErr.Code, sqlstateClassConnection):
			kind = errs.ErrKindConnectionFailed
		case strings.HasPrefix(pgErr.Code, sqlstateClassSyntax):
			kind = errs.ErrKindQueryFailed
		}
		return errs.Wrap(kind, fmt.Sprintf("%s: %s", msg, pgErr.Message), err)
	}

	// An already-classified error keeps its kind; only the message prefix
	// from the innermost wrap survives.
	var classified *errs.Error
	if errors.As(err, &classified) && classified.Kind != errs.ErrKindUnknown {
		return errs.Wrap(classified.Kind, msg, err)
	}

	// Fallthrough: network, TLS, auth — all connection-level.
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
