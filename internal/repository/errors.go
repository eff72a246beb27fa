package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared by all repositories. Handlers map these onto
// HTTP statuses; everything else surfaces as an internal error.
var (
	// ErrNotFound indicates the requested entity does not exist
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates a constraint violation: deleting a customer
	// still referenced by invoices, or reusing a unique service
	// description.
	ErrConflict = errors.New("constraint conflict")
)

// postgres error codes for constraint violations
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// conflictError translates constraint-violation database errors into
// ErrConflict so callers don't depend on driver internals.
func conflictError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgForeignKeyViolation || pgErr.Code == pgUniqueViolation {
			return ErrConflict
		}
	}
	return err
}
