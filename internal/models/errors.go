package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotConnected is returned when an accessor is used before the
	// backends are connected and their databases selected.
	ErrNotConnected = errors.New("not connected to the database backends")
)

// ConnectionError reports a backend that could not be reached or rejected
// the supplied credentials.
type ConnectionError struct {
	Backend string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Backend, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup miss.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports an input rejected before reaching a backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PartialWriteError reports a multi-backend write that stopped half-way.
// Completed lists the steps that were applied and are not rolled back.
type PartialWriteError struct {
	Completed []string
	Failed    string
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: %s failed after [%s]: %v",
		e.Failed, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
