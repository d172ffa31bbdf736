package hubtools

import (
	"errors"
	"fmt"
)

// ErrRequired is wrapped by an ArgumentError when a required field is absent
// or empty.
var ErrRequired = errors.New("is required")

// ArgumentError reports arguments that could not be decoded or validated.
// No hub request is made when a call fails with an ArgumentError.
type ArgumentError struct {
	Tool  string
	Field string // Empty when the arguments as a whole failed to decode.
	Err   error
}

func (e *ArgumentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: invalid arguments: %v", e.Tool, e.Err)
	}

	return fmt.Sprintf("%s: %s %v", e.Tool, e.Field, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// InvalidActionError is returned by automation_management for an action
// outside create, modify, and delete.
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("Invalid action: %s", e.Action)
}

func missing(field string) *ArgumentError {
	return &ArgumentError{Field: field, Err: ErrRequired}
}
