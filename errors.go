package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrConnection    = errors.New("connection failed")
	ErrNotFound      = errors.New("not found")
	ErrSchema        = errors.New("no introspectable columns")
	ErrExecution     = errors.New("statement failed")
	ErrNoActiveTable = errors.New("no active table selected")
	ErrInternal      = errors.New("internal state error")
)

// StatementError is returned when SQLite rejects a statement or the
// statement did not affect the expected number of rows.
type StatementError struct {
	Query string
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%v (query: %s)", e.Err, e.Query)
}

func (e *StatementError) Unwrap() error { return e.Err }

// Is makes every StatementError match ErrExecution.
func (e *StatementError) Is(target error) bool {
	return target == ErrExecution
}

func newStatementError(query string, err error) error {
	return &StatementError{Query: query, Err: err}
}
