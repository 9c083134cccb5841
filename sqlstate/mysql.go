package sqlstate

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/strata-repo/fault"
)

// MySQL server error numbers this package understands. Names follow the
// manual's ER_* and CR_* symbols; CR_* codes show up as server errors when
// a proxy surfaces them.
const (
	mysqlConCount            = 1040 // ER_CON_COUNT_ERROR
	mysqlAccessDenied        = 1045 // ER_ACCESS_DENIED_ERROR
	mysqlDBAccessDenied      = 1044 // ER_DBACCESS_DENIED_ERROR
	mysqlBadNullColumn       = 1048 // ER_BAD_NULL_ERROR
	mysqlUnknownDatabase     = 1049 // ER_BAD_DB_ERROR
	mysqlServerShutdown      = 1053 // ER_SERVER_SHUTDOWN
	mysqlDupEntry            = 1062 // ER_DUP_ENTRY
	mysqlTableAccessDenied   = 1142 // ER_TABLEACCESS_DENIED_ERROR
	mysqlLockWaitTimeout     = 1205 // ER_LOCK_WAIT_TIMEOUT
	mysqlLockDeadlock        = 1213 // ER_LOCK_DEADLOCK
	mysqlNoReferencedRowOld  = 1216 // ER_NO_REFERENCED_ROW
	mysqlRowIsReferencedOld  = 1217 // ER_ROW_IS_REFERENCED
	mysqlDataTruncated       = 1265 // WARN_DATA_TRUNCATED
	mysqlDataTooLong         = 1406 // ER_DATA_TOO_LONG
	mysqlRowIsReferenced     = 1451 // ER_ROW_IS_REFERENCED_2
	mysqlNoReferencedRow     = 1452 // ER_NO_REFERENCED_ROW_2
	mysqlCheckViolated       = 3819 // ER_CHECK_CONSTRAINT_VIOLATED
	mysqlConstraintFailed    = 4025 // ER_CONSTRAINT_FAILED
	mysqlTooManyUserConns    = 1203 // ER_TOO_MANY_USER_CONNECTIONS
	mysqlConnectionError     = 2002 // CR_CONNECTION_ERROR
	mysqlConnHostError       = 2003 // CR_CONN_HOST_ERROR
	mysqlServerGone          = 2006 // CR_SERVER_GONE_ERROR
	mysqlServerLost          = 2013 // CR_SERVER_LOST
)

// classifyMySQL maps go-sql-driver errors to fault kinds.
func classifyMySQL(err error) (fault.Kind, bool) {
	if errors.Is(err, mysql.ErrInvalidConn) {
		return fault.KindUnavailable, true
	}

	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return "", false
	}

	switch me.Number {
	case mysqlDupEntry:
		return fault.KindItemExists, true
	case mysqlRowIsReferenced, mysqlNoReferencedRow,
		mysqlRowIsReferencedOld, mysqlNoReferencedRowOld:
		return fault.KindReferentialIntegrity, true
	case mysqlBadNullColumn, mysqlCheckViolated, mysqlConstraintFailed:
		return fault.KindConstraintViolation, true
	case mysqlLockWaitTimeout, mysqlLockDeadlock:
		return fault.KindLockConflict, true
	case mysqlDataTooLong, mysqlDataTruncated:
		return fault.KindValueFormat, true
	case mysqlAccessDenied:
		return fault.KindLoginFailed, true
	case mysqlDBAccessDenied, mysqlTableAccessDenied:
		return fault.KindAccessDenied, true
	case mysqlUnknownDatabase:
		return fault.KindNoSuchWorkspace, true
	case mysqlConCount, mysqlTooManyUserConns, mysqlServerShutdown,
		mysqlConnectionError, mysqlConnHostError, mysqlServerGone, mysqlServerLost:
		return fault.KindUnavailable, true
	default:
		return fault.KindInternal, true
	}
}
