package database

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrConflict is matched by every unique-constraint violation
var ErrConflict = errors.New("unique constraint violated")

// ConflictError reports a statement rejected by a uniqueness constraint
type ConflictError struct {
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	if e.Constraint == "" {
		return "conflict: " + e.Err.Error()
	}
	return "conflict on " + e.Constraint + ": " + e.Err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrConflict) match any ConflictError
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// uniqueViolation inspects driver errors for unique-constraint failures and
// returns the offending constraint or column when the driver reports one.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return pqErr.Constraint, true
		}
		return "", false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return sqliteConstraint(liteErr.Error()), true
		}
		if code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE") {
			return sqliteConstraint(liteErr.Error()), true
		}
		return "", false
	}

	// Fall back to message inspection for wrapped or proxied drivers
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed") {
		return "", true
	}
	return "", false
}

// sqliteConstraint extracts "user.username" from
// "constraint failed: UNIQUE constraint failed: user.username (2067)".
func sqliteConstraint(msg string) string {
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	rest := msg[i+len(marker):]
	if j := strings.IndexAny(rest, " ,"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
