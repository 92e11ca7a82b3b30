package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound indicates the requested key does not resolve to a row.
	ErrNotFound = errors.New("record not found")
	// ErrUniqueViolation indicates an insert or update broke a unique
	// constraint (e.g. a duplicate department name).
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrForeignKey indicates a foreign key constraint failed: a write
	// referenced a missing row, or a delete left dependent rows behind.
	ErrForeignKey = errors.New("foreign key violation")
)

// Classify maps low-level pgx errors onto the sentinel errors above so that
// services can translate storage faults into user-visible responses. The
// violated constraint name is kept in the message so callers can attribute
// the failure to a field. Errors with no special meaning pass through
// unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrUniqueViolation)
		case "23503":
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrForeignKey)
		}
	}
	return err
}
