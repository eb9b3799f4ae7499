package errors

import (
	"errors"
	"fmt"
)

// Code is a stable error code for programmatic handling.
type Code string

const (
	CodeUnknown      Code = "unknown"
	CodeInvalid      Code = "invalid"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal"
)

// AppError carries a code, a client-safe message, an optional wrapped cause,
// and for validation failures the full list of violated-field messages.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Fields  []string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AppError) Unwrap() error { return e.Err }

// New creates a new AppError with code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with code and message.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// Validation builds an invalid-input error carrying every violated-field
// message collected by the validation layer.
func Validation(fields []string) *AppError {
	return &AppError{Code: CodeInvalid, Message: "validation failed", Fields: fields}
}

// IsCode checks if an error has the provided code (through unwrapping).
func IsCode(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// FieldMessages returns the violated-field messages if err is a validation
// AppError, nil otherwise.
func FieldMessages(err error) []string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}
