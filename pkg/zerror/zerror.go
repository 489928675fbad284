package zerror

import (
	"fmt"
)

// ZError is an error carrying a transport-neutral status, a stable code and a
// client-facing message. Handlers translate the status into their own protocol.
type ZError struct {
	parent error
	status Status
	code   string
	msg    string
}

// NewZError builds a ZError. Codes are upper snake case, e.g. PRODUCT_NOT_FOUND.
func NewZError(parent error, status Status, code, msg string) ZError {
	return ZError{parent: parent, status: status, code: code, msg: msg}
}

func (e ZError) Error() string {
	if e.parent == nil {
		return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
	}
	return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
}

// WrapParent returns a copy of a predefined error with parent as its cause.
func (e ZError) WrapParent(parent error) ZError {
	if parent != nil {
		e.parent = parent
	}
	return e
}

func (e ZError) Unwrap() error { return e.parent }

// Is matches any ZError with the same status and code, whatever its parent.
func (e ZError) Is(target error) bool {
	t, ok := target.(ZError)
	return ok && e.code == t.code && e.status == t.status
}

func (e ZError) Status() Status { return e.status }
func (e ZError) Code() string   { return e.code }
func (e ZError) Msg() string    { return e.msg }

func NewBadRequest(code, msg string) ZError {
	return NewZError(nil, StatusBadRequest, code, msg)
}

func NewValidationFailed(code, msg string) ZError {
	return NewZError(nil, StatusValidationFailed, code, msg)
}

func NewForbidden(code, msg string) ZError {
	return NewZError(nil, StatusForbidden, code, msg)
}

func NewNotFound(code, msg string) ZError {
	return NewZError(nil, StatusNotFound, code, msg)
}

func NewMethodNotAllowed(code, msg string) ZError {
	return NewZError(nil, StatusMethodNotAllowed, code, msg)
}

func NewServiceUnavailable(code, msg string) ZError {
	return NewZError(nil, StatusServiceUnavailable, code, msg)
}
