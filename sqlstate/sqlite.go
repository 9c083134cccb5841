package sqlstate

import (
	"errors"
	"strings"

	"modernc.org/sqlite"

	"github.com/strata-repo/fault"
)

// SQLite primary result codes (https://sqlite.org/rescode.html).
const (
	sqliteBusy       = 5
	sqliteLocked     = 6
	sqliteReadOnly   = 8
	sqliteIOErr      = 10
	sqliteFull       = 13
	sqliteCantOpen   = 14
	sqliteConstraint = 19
	sqliteMismatch   = 20
	sqliteAuth       = 23
)

// Extended constraint selectors: the high byte of an extended
// SQLITE_CONSTRAINT code.
const (
	constraintCheck      = 1
	constraintForeignKey = 3
	constraintNotNull    = 5
	constraintPrimaryKey = 6
	constraintTrigger    = 7
	constraintUnique     = 8
	constraintDataType   = 12
)

// classifySQLite maps SQLite driver errors to fault kinds. It prefers the
// typed error's result code and falls back to the constraint text for bare
// codes and stringified errors.
func classifySQLite(err error) (fault.Kind, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code&0xff == sqliteConstraint && code>>8 == 0 {
			// Primary-only constraint code; the message names the
			// constraint class.
			if kind, ok := kindForSQLiteMessage(err.Error()); ok {
				return kind, true
			}
			return fault.KindConstraintViolation, true
		}
		return kindForSQLiteCode(code), true
	}
	return kindForSQLiteMessage(err.Error())
}

// kindForSQLiteCode maps a SQLite result code to a fault kind.
func kindForSQLiteCode(code int) fault.Kind {
	if code&0xff == sqliteConstraint {
		switch code >> 8 {
		case constraintUnique, constraintPrimaryKey:
			return fault.KindItemExists
		case constraintForeignKey, constraintTrigger:
			return fault.KindReferentialIntegrity
		case constraintDataType:
			return fault.KindValueFormat
		case constraintCheck, constraintNotNull:
			return fault.KindConstraintViolation
		default:
			return fault.KindConstraintViolation
		}
	}

	switch code & 0xff {
	case sqliteBusy, sqliteLocked:
		return fault.KindLockConflict
	case sqliteReadOnly, sqliteAuth:
		return fault.KindAccessDenied
	case sqliteIOErr, sqliteFull, sqliteCantOpen:
		return fault.KindUnavailable
	case sqliteMismatch:
		return fault.KindValueFormat
	default:
		return fault.KindInternal
	}
}

// kindForSQLiteMessage matches the constraint text SQLite puts in error
// messages.
func kindForSQLiteMessage(msg string) (fault.Kind, bool) {
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "PRIMARY KEY constraint failed"):
		return fault.KindItemExists, true
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fault.KindReferentialIntegrity, true
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return fault.KindConstraintViolation, true
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "database table is locked"):
		return fault.KindLockConflict, true
	default:
		return "", false
	}
}
