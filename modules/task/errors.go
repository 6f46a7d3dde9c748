package task

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned by repositories when no row matches the id.
var ErrTaskNotFound = errors.New("task not found")

// ErrorKind classifies an expected service failure so transports can map it
// to a status code without string matching.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindInternal        ErrorKind = "internal"
)

// Error is the uniform failure representation produced by the task service.
type Error struct {
	Kind   ErrorKind
	Field  string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func newValidationError(field, detail string) *Error {
	return &Error{Kind: KindValidation, Field: field, Detail: detail}
}

func newNotFoundError() *Error {
	return &Error{Kind: KindNotFound, Detail: "task not found"}
}

func newInvalidArgumentError(detail string) *Error {
	return &Error{Kind: KindInvalidArgument, Detail: detail}
}

// ErrorInfo is the wire form of Error, embedded in service replies so the
// kind survives the request-reply hop between modules.
type ErrorInfo struct {
	Kind   ErrorKind `json:"kind"`
	Field  string    `json:"field,omitempty"`
	Detail string    `json:"detail"`
}

// wireError converts any service error into its wire form.
func wireError(err error) *ErrorInfo {
	var te *Error
	if errors.As(err, &te) {
		return &ErrorInfo{Kind: te.Kind, Field: te.Field, Detail: te.Detail}
	}
	return &ErrorInfo{Kind: KindInternal, Detail: err.Error()}
}

// toError rebuilds the typed error on the consuming side of the hop.
func (i *ErrorInfo) toError() *Error {
	return &Error{Kind: i.Kind, Field: i.Field, Detail: i.Detail}
}
