package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgRaiseException      = "P0001"
)

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation, by SQLSTATE when available and by message otherwise.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if code := pgCode(err); code == pgUniqueViolation {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether the error is a Postgres restrict/
// foreign key violation (for example deleting an inventory row that orders
// still reference).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if code := pgCode(err); code == pgForeignKeyViolation {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}

// IsRaisedException reports whether the error came from a plpgsql RAISE
// EXCEPTION, which is how the usage-quantity trigger rejects oversell.
func IsRaisedException(err error) bool {
	return pgCode(err) == pgRaiseException
}

func pgCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
