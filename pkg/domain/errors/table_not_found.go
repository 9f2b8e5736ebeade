package domain

import (
	"errors"
	"fmt"
)

var ErrTableNotFound = errors.New("table not found")

type tableNotFoundError struct {
	Table string
	cause error
}

func (e *tableNotFoundError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("table '%s' not found", e.Table)
	}
	return fmt.Sprintf("table '%s' not found: %v", e.Table, e.cause)
}

func (e *tableNotFoundError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrTableNotFound}
	}
	return []error{ErrTableNotFound, e.cause}
}

func NewTableNotFoundError(table string, cause error) error {
	return &tableNotFoundError{
		Table: table,
		cause: cause,
	}
}
