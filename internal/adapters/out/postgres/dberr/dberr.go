// Package dberr turns driver errors into persistence errors that carry the
// engine error code (SQLSTATE on PostgreSQL).
package dberr

import (
	"errors"

	"ordersync/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UniqueViolation is the SQLSTATE of a duplicate key.
const UniqueViolation = "23505"

// Number returns the engine error code carried by err, or "" when the driver
// exposes none. Both the pgx driver used by gorm and lib/pq are recognised.
func Number(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsUniqueViolation reports a duplicate key, translated by gorm or raw.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || Number(err) == UniqueViolation
}

// Wrap classifies err as a PersistenceError for operation. Errors that are
// already classified pass through unchanged.
func Wrap(operation string, err error) error {
	if err == nil {
		return nil
	}

	var persistenceErr *errs.PersistenceError
	if errors.Is(err, errs.ErrNotConfigured) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.As(err, &persistenceErr) {
		return err
	}

	wrapped := errs.NewPersistenceError(operation, err)
	wrapped.DBErrorNumber = Number(err)
	return wrapped
}
