// Package service implements the entity operations behind the HTTP layer:
// sanitize, validate, plan, execute, and report a structured status the
// transport can map to a response code.
package service

import (
	"landwand-api/internal/dbexec"
	"landwand-api/internal/logging"
)

// Status is the outcome class of one operation. Callers branch on it, not
// on message text, except where the message itself is the contract
// (validation messages).
type Status int

const (
	StatusSuccess Status = iota
	StatusValidationError
	StatusNotFound
	StatusConflict
	StatusServerError
)

// Result is the outcome of one operation. Record holds the affected row
// for single-row operations; Records holds the result set for reads.
type Result struct {
	Status  Status
	Message string
	Record  dbexec.Row
	Records []dbexec.Row
}

// Service exposes CRUD operations over user accounts and property
// listings. It holds no per-request state; all state lives in the call
// chain of each operation.
type Service struct {
	exec   *dbexec.Executor
	logger *logging.Logger
}

// New creates a service over the given executor.
func New(exec *dbexec.Executor, logger *logging.Logger) *Service {
	return &Service{exec: exec, logger: logger}
}

func success(message string, record dbexec.Row) Result {
	return Result{Status: StatusSuccess, Message: message, Record: record}
}

func successList(message string, records []dbexec.Row) Result {
	return Result{Status: StatusSuccess, Message: message, Records: records}
}

func validationError(message string) Result {
	return Result{Status: StatusValidationError, Message: message}
}

func notFound(message string) Result {
	return Result{Status: StatusNotFound, Message: message}
}

func conflict(message string) Result {
	return Result{Status: StatusConflict, Message: message}
}

func serverError(message string) Result {
	return Result{Status: StatusServerError, Message: message}
}

// mutationFailure maps an execution error to the caller-facing status.
func mutationFailure(prefix string, err *dbexec.ExecError) Result {
	if err == nil {
		return serverError(prefix)
	}
	if err.IsConflict() {
		return conflict(prefix + ": " + err.Message)
	}
	return serverError(prefix + ": " + err.Error())
}
