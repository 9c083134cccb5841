// Package sqlstate classifies SQL driver failures into repository faults.
//
// Repository backends built on database/sql surface driver-specific errors
// for constraint breaches, lock contention and lost connections. Wrap turns
// those into faults so callers handle one taxonomy regardless of the
// backing store. SQLite (modernc.org/sqlite) and MySQL
// (github.com/go-sql-driver/mysql) are covered; unrecognized failures
// become internal faults with the cause preserved.
package sqlstate

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/strata-repo/fault"
)

// Wrap classifies err and returns it as a fault wrapping the original
// error. op names the failed operation and becomes the fault message.
//
// Nil returns nil. Errors that already carry a fault and context
// cancellations pass through unchanged, so errors.Is(err, context.Canceled)
// keeps working at call sites.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}

	var fe *fault.Error
	if errors.As(err, &fe) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fault.Wrap(fault.KindItemNotFound, err, op)
	}
	if errors.Is(err, sql.ErrTxDone) {
		return fault.Wrap(fault.KindInvalidItemState, err, op)
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fault.Wrap(fault.KindUnavailable, err, op)
	}

	if kind, ok := classifyMySQL(err); ok {
		return fault.Wrap(kind, err, op)
	}
	if kind, ok := classifySQLite(err); ok {
		return fault.Wrap(kind, err, op)
	}

	// Network failures outside the drivers' typed errors.
	var netErr net.Error
	if errors.As(err, &netErr) || isConnectionError(err) {
		return fault.Wrap(fault.KindUnavailable, err, op)
	}

	return fault.Wrap(fault.KindInternal, err, op)
}

// isConnectionError matches the stringly connection failures drivers
// sometimes surface instead of typed errors.
func isConnectionError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe")
}
