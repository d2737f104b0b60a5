// Package errors is the project error type: a machine code, a client safe message,
// an optional field and the wrapped cause.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine readable error class. It travels as a string on the wire
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota + 1
	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is for transient failures where retry may succeed
	ErrorCodeUnavailable
	// ErrorCodeInvalidArgument is for well formed input the service cannot act on
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is for struct validation failures
	ErrorCodeValidation
	// ErrorCodeJSON is for undecodable bodies
	ErrorCodeJSON
	// ErrorCodeTooLarge is for bodies or batches over a configured limit
	ErrorCodeTooLarge
	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound
	// ErrorCodeDuplicateKey is for unique constraint violations
	ErrorCodeDuplicateKey
	// ErrorCodeDB is for other database failures
	ErrorCodeDB
)

var codeNames = map[ErrorCode]string{
	ErrorCodeUnknown:         "unknown",
	ErrorCodePanic:           "panic",
	ErrorCodeUnavailable:     "unavailable",
	ErrorCodeInvalidArgument: "invalid_argument",
	ErrorCodeValidation:      "validation",
	ErrorCodeJSON:            "json",
	ErrorCodeTooLarge:        "too_large",
	ErrorCodeNotFound:        "not_found",
	ErrorCodeDuplicateKey:    "duplicate_key",
	ErrorCodeDB:              "db",
}

// String returns the wire name, "" for the zero value
func (c ErrorCode) String() string {
	if c == 0 {
		return ""
	}
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown"
}

// MarshalText makes codes render by name in JSON
func (c ErrorCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText parses a wire name; unknown names decode as ErrorCodeUnknown
func (c *ErrorCode) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "" {
		*c = 0
		return nil
	}
	for code, name := range codeNames {
		if name == s {
			*c = code
			return nil
		}
	}
	*c = ErrorCodeUnknown
	return nil
}

// HTTPStatusCode maps a code to an HTTP status
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrorCodeDuplicateKey:
		return http.StatusConflict
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured project error
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the client facing form of an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, if any
func (e *Error) Field() string { return e.field }

// ToWire drops the cause; only msg reaches clients
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error to a Wire. Foreign errors become unknown with a generic message
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: "internal error"}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf returns the code of err, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to an HTTP status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As finds the first *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithField returns a copy of err with field set; foreign errors pass through
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// New returns an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns an *Error around orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only a non-nil err
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// TooLargef returns a too large error
func TooLargef(format string, a ...any) error { return Newf(ErrorCodeTooLarge, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unavailablef returns an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// DBf returns a database error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// Internalf returns an unknown error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// HTTP returns status and wire together
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}
