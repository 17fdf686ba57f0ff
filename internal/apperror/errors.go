// Package apperror holds the typed failures returned by the stock core.
//
// Every use case returns either nil or an *Error. Callers branch on the Kind
// (or use errors.Is against the exported sentinels); only KindConflict is
// meant to be retried automatically.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation                  Kind = "VALIDATION"
	KindDuplicateSerial             Kind = "DUPLICATE_SERIAL"
	KindQuantityExceeded            Kind = "QUANTITY_EXCEEDED"
	KindInsufficientStock           Kind = "INSUFFICIENT_STOCK"
	KindInsufficientSerializedUnits Kind = "INSUFFICIENT_SERIALIZED_UNITS"
	KindNoActiveWarranty            Kind = "NO_ACTIVE_WARRANTY"
	KindConflict                    Kind = "CONFLICT"
	KindNotFound                    Kind = "NOT_FOUND"
	KindInternal                    Kind = "INTERNAL"
)

// Sentinels for errors.Is. Two *Error values match when their kinds match.
var (
	ErrValidation                  = &Error{Kind: KindValidation}
	ErrDuplicateSerial             = &Error{Kind: KindDuplicateSerial}
	ErrQuantityExceeded            = &Error{Kind: KindQuantityExceeded}
	ErrInsufficientStock           = &Error{Kind: KindInsufficientStock}
	ErrInsufficientSerializedUnits = &Error{Kind: KindInsufficientSerializedUnits}
	ErrNoActiveWarranty            = &Error{Kind: KindNoActiveWarranty}
	ErrConflict                    = &Error{Kind: KindConflict}
	ErrNotFound                    = &Error{Kind: KindNotFound}
	ErrInternal                    = &Error{Kind: KindInternal}
)

type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// With returns a copy of e with key set in its details.
func (e *Error) With(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value

	cp := *e
	cp.Details = details
	return &cp
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(entity, id string) *Error {
	return New(KindNotFound, "%s not found", entity).With("entity", entity).With("id", id)
}

func Conflict(err error) *Error {
	return Wrap(KindConflict, err, "resource is busy, retry the request")
}

func Internal(err error) *Error {
	return Wrap(KindInternal, err, "internal error")
}

// KindOf reports the kind of err. Untyped errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsRetryable(err error) bool {
	return KindOf(err) == KindConflict
}

// Ensure wraps untyped errors as internal and leaves typed ones untouched.
func Ensure(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Internal(err)
}
