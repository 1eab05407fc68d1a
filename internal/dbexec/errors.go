package dbexec

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrorKind classifies execution failures so callers can branch on kind
// rather than on message text.
type ErrorKind int

const (
	// KindConnectionUnavailable means no connection could be acquired.
	// Recoverable by caller retry, never fatal to the process.
	KindConnectionUnavailable ErrorKind = iota
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
	// KindStatementRejected means the database refused the statement,
	// for example a guard trigger fired or a foreign key was violated.
	KindStatementRejected
)

// MySQL error numbers this layer distinguishes.
const (
	mysqlErrDuplicateEntry = 1062
)

// ExecError carries the classified kind plus the underlying diagnostic
// code and message for logging and client-facing detail.
type ExecError struct {
	Kind    ErrorKind
	Code    uint16
	Message string
}

func (e *ExecError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}
	return e.Message
}

// IsConflict reports whether the error is a uniqueness violation.
func (e *ExecError) IsConflict() bool {
	return e != nil && e.Kind == KindConflict
}

func connectionUnavailable(err error) *ExecError {
	return &ExecError{
		Kind:    KindConnectionUnavailable,
		Message: fmt.Sprintf("failed to connect to database: %v", err),
	}
}

// translate maps a driver error to its classified form. Duplicate-key
// errors become Conflict; everything else the statement ran into is a
// rejection with the diagnostic code preserved.
func translate(err error) *ExecError {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		kind := KindStatementRejected
		if mysqlErr.Number == mysqlErrDuplicateEntry {
			kind = KindConflict
		}
		return &ExecError{Kind: kind, Code: mysqlErr.Number, Message: mysqlErr.Message}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ExecError{Kind: KindConnectionUnavailable, Message: err.Error()}
	}
	return &ExecError{Kind: KindStatementRejected, Message: err.Error()}
}
