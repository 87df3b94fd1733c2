package engine

import (
	"errors"
	"fmt"
)

// RuntimeError describes a failure detected while processing a
// reconfiguration request. It is recorded, never propagated: the
// scheduler stores the message in the request's Detail and carries on.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Target is the affected organelle identifier.
	Target string

	// RequestID is the reconfiguration request id.
	RequestID string

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeUnknownTarget indicates the request addressed a target that
	// was not present in the targets mapping.
	ErrCodeUnknownTarget RuntimeErrorCode = "UNKNOWN_TARGET"

	// ErrCodeApplyFailed indicates the target's Reconfigure call
	// returned an error or panicked.
	ErrCodeApplyFailed RuntimeErrorCode = "APPLY_FAILED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: target %s: %v", e.Code, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: target %s", e.Code, e.Target)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsUnknownTarget reports whether err is an unknown-target error.
// Uses errors.As to handle wrapped errors.
func IsUnknownTarget(err error) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Code == ErrCodeUnknownTarget
}

// IsApplyFailed reports whether err is an apply failure.
// Uses errors.As to handle wrapped errors.
func IsApplyFailed(err error) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Code == ErrCodeApplyFailed
}
