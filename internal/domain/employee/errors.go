package employee

import (
	"errors"
	"strings"
)

// Employee directory errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is not active")
)

// NoMatchError reports which filter combination resolved to zero employees.
// Raising instead of returning an empty list is a deliberate policy choice,
// kept behind a configuration switch.
type NoMatchError struct {
	Filters []string
}

func (e *NoMatchError) Error() string {
	return "no employees match the given filters: " + strings.Join(e.Filters, " + ")
}
