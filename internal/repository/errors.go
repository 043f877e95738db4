package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Common errors for repository operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already exists")
	ErrPasteNotFound  = errors.New("paste not found")
	ErrPasteUUIDTaken = errors.New("paste uuid already exists")
)

// isUniqueViolation reports whether err is a PostgreSQL unique_violation,
// optionally restricted to one named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pq.ErrorCode(pgErr.Code).Name() != "unique_violation" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
