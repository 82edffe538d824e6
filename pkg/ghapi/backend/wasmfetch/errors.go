package wasmfetch

import (
	"errors"
	"fmt"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// Error is the failure type of this backend.
type Error struct {
	Kind ghapi.BackendErrorKind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("wasmfetch %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// AdapterError converts e into the umbrella error.
func (e *Error) AdapterError() *ghapi.AdapterError {
	return &ghapi.AdapterError{Description: e.Error(), Source: e}
}

func newError(kind ghapi.BackendErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func unimplemented(op string) *Error {
	return &Error{Kind: ghapi.KindUnimplemented, Op: op, Err: ghapi.ErrUnimplemented}
}

// Static errors for err113 compliance.
var (
	ErrNoHost       = errors.New("no fetch host available on this platform")
	ErrHostRejected = errors.New("fetch promise rejected")
)
