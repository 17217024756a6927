/*
Package errors defines the coded errors returned by the vSphere client
packages. Every error carries a code registered in the internal code table so
callers can classify failures with errors.Is against the sentinels below.
*/
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	errs "github.com/bdlm/errors"
	std "github.com/bdlm/std/error"

	"github.com/mkenney/vsphere/internal/codes"
)

/*
Error is a coded failure. Op names the operation that failed, Ref the managed
object it was acting on (if any), Detail any additional context and Err the
underlying cause, usually a transport error from the RPC session.
*/
type Error struct {
	Code   std.Code
	Op     string
	Ref    string
	Detail string
	Err    error
}

var (
	ErrInvalidSelection = &Error{Code: codes.ErrInvalidSelection}
	ErrEmptyFilter      = &Error{Code: codes.ErrEmptyFilter}
	ErrInvalidSpec      = &Error{Code: codes.ErrInvalidSpec}
	ErrSession          = &Error{Code: codes.ErrSession}
	ErrFilterCreate     = &Error{Code: codes.ErrFilterCreate}
	ErrQueryFailed      = &Error{Code: codes.ErrQueryFailed}
	ErrInvalidPowerOp   = &Error{Code: codes.ErrInvalidPowerOp}
	ErrObjectsNotFound  = &Error{Code: codes.ErrObjectsNotFound}
	ErrNoTargets        = &Error{Code: codes.ErrNoTargets}
	ErrPowerOpFailed    = &Error{Code: codes.ErrPowerOpFailed}
	ErrCancelled        = &Error{Code: codes.ErrCancelled}
	ErrTimedOut         = &Error{Code: codes.ErrTimedOut}
	ErrInvalidConfig    = &Error{Code: codes.ErrInvalidConfig}
)

/*
New returns a coded error for op with no underlying cause.
*/
func New(code std.Code, op string, detail string, args ...interface{}) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Code: code, Op: op, Detail: detail}
}

/*
Wrap returns a coded error for op caused by err. The cause is kept unchanged
and is reachable with errors.Unwrap.
*/
func Wrap(err error, code std.Code, op string, ref fmt.Stringer) *Error {
	e := &Error{Code: code, Op: op, Err: err}
	if nil != ref {
		e.Ref = ref.String()
	}
	return e
}

/*
Error implements error.
*/
func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if "" != e.Op {
		op := e.Op
		if "" != e.Ref {
			op = fmt.Sprintf("%s %s", op, e.Ref)
		}
		parts = append(parts, op)
	}
	parts = append(parts, Message(e.Code))
	if "" != e.Detail {
		parts = append(parts, e.Detail)
	}
	if nil != e.Err {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

/*
Unwrap returns the underlying cause.
*/
func (e *Error) Unwrap() error {
	return e.Err
}

/*
Is reports whether target is an *Error with the same code.
*/
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

/*
Message returns the registered internal description for code.
*/
func Message(code std.Code) string {
	if c, ok := errs.Codes[code]; ok {
		return c.Detail()
	}
	return errs.Codes[codes.ErrUnspecified].Detail()
}

/*
Code returns the code of the first *Error in err's chain, or ErrUnspecified.
*/
func Code(err error) std.Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return codes.ErrUnspecified
}
