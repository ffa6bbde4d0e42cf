package ygggo_dbclient

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

// ConfigurationError reports a missing or malformed configuration source.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %q: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConnectionError reports an initial or reconnect failure.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports a driver execution failure that was not recovered by the
// reconnect path.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ErrorClass is an error classification used by the retry path.
type ErrorClass int

const (
	ErrClassUnknown ErrorClass = iota
	// ErrClassDroppedConn marks errors that indicate the server closed the
	// connection; these trigger one reconnect and one retry.
	ErrClassDroppedConn
	// ErrClassQuery marks any other execution failure; never retried.
	ErrClassQuery
)

// goneAwaySignature is the error-message substring used as a heuristic to
// detect that the server closed an idle connection.
const goneAwaySignature = "server has gone away"

// CR_SERVER_GONE_ERROR and CR_SERVER_LOST client error numbers.
const (
	errServerGone uint16 = 2006
	errServerLost uint16 = 2013
)

// Classify classifies err for the retry path.
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrClassUnknown
	}
	if isDroppedConn(err) {
		return ErrClassDroppedConn
	}
	return ErrClassQuery
}

func isDroppedConn(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		if me.Number == errServerGone || me.Number == errServerLost {
			return true
		}
	}
	return strings.Contains(err.Error(), goneAwaySignature)
}
