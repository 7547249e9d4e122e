package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes
var (
	// ErrMalformedRecord indicates a dataset row with the wrong arity or an unparsable value
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidArgument indicates a query parameter outside its domain
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)

// InvalidArgumentError describes a rejected query parameter.
type InvalidArgumentError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Param, e.Value, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidArgument)
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
