package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"taskapp/internal/store"
)

// PostgreSQL error codes this store cares about.
const (
	// uniqueViolationCode is the error code for unique constraint violations.
	uniqueViolationCode = "23505"

	// notNullViolationCode is the error code for not null violations.
	notNullViolationCode = "23502"

	// checkViolationCode is the error code for check constraint violations.
	checkViolationCode = "23514"

	// stringTruncationCode is the error code raised when a value
	// exceeds a varchar column's declared length.
	stringTruncationCode = "22001"
)

// MapError maps a database error to the matching store sentinel,
// wrapping the original error to preserve context. Errors with no
// specific mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ColumnName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case stringTruncationCode:
			return fmt.Errorf("%w: value too long for column: %v",
				store.ErrInvalidEntity, err)
		}
	}

	return err
}

// IsNotFoundError checks if the error represents a "not found"
// outcome, covering both sql.ErrNoRows and wrapped store.ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, store.ErrNotFound)
}
