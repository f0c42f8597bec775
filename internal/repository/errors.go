package repository

import (
	"database/sql"
	"errors"
	"strings"

	"team-collab/internal/apperror"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isUniqueViolation reports whether err is a unique constraint failure on
// either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}

// notFoundOr maps sql.ErrNoRows to notFound and anything else to an
// internal error described by operation.
func notFoundOr(err error, notFound *apperror.Error, operation string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return apperror.Internal(operation, err)
}

func expectAffected(result sql.Result, notFound *apperror.Error, operation string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Internal(operation, err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
