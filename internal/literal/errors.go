package literal

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes recoverable literal errors.
type ErrorCode string

const (
	// ErrCodeFormat indicates a lexical form that does not match its datatype.
	ErrCodeFormat ErrorCode = "FORMAT"

	// ErrCodeType indicates an operand whose kind cannot take part in a
	// coercion or comparison.
	ErrCodeType ErrorCode = "TYPE"

	// ErrCodeCast indicates a cast outside the legality matrix.
	ErrCodeCast ErrorCode = "CAST"

	// ErrCodeQName indicates a prefixed name that could not be resolved.
	ErrCodeQName ErrorCode = "QNAME"
)

// Error is a recoverable literal error. Callers inspect Code with errors.As
// or the Is*Error helpers.
type Error struct {
	Code    ErrorCode
	Message string

	// Datatype is the registry label of the offending datatype (FORMAT only).
	Datatype string

	// Text is the raw lexical form that failed (FORMAT and QNAME).
	Text string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newFormatError(label, text string) *Error {
	return &Error{
		Code:     ErrCodeFormat,
		Message:  fmt.Sprintf("Illegal type %s string '%s'", label, text),
		Datatype: label,
		Text:     text,
	}
}

func newTypeError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeType, Message: fmt.Sprintf(format, args...)}
}

func newCastError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeCast, Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code ErrorCode) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// IsFormatError returns true if err is a lexical format error.
func IsFormatError(err error) bool { return hasCode(err, ErrCodeFormat) }

// IsTypeError returns true if err is a coercion or comparison type error.
func IsTypeError(err error) bool { return hasCode(err, ErrCodeType) }

// IsCastError returns true if err is a cast legality error.
func IsCastError(err error) bool { return hasCode(err, ErrCodeCast) }

// IsQNameError returns true if err is a qname resolution error.
func IsQNameError(err error) bool { return hasCode(err, ErrCodeQName) }
