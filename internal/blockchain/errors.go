package blockchain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for caller input rejected before any network call.
var ErrInvalidArgument = errors.New("invalid argument")

// TransportError is a network level failure: dial, timeout, bad status or unreadable body.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rpc transport %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is an error object returned by the node, or a response the node sent
// without a usable result.
type ProtocolError struct {
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("rpc error: %s", e.Message)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Error is the terminal failure of an operation after all attempts were used
// or the backoff wait was interrupted.
type Error struct {
	Operation   string
	MaxAttempts int
	// Err is the failure of the last attempt.
	Err error
	// Interrupted is set when the context ended during a backoff wait.
	Interrupted error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("failed to %s after %d attempts", e.Operation, e.MaxAttempts)
	if e.Interrupted != nil {
		msg += fmt.Sprintf(" (interrupted: %v)", e.Interrupted)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Interrupted != nil {
		errs = append(errs, e.Interrupted)
	}
	return errs
}
