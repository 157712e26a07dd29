// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package errors defines the error taxonomy used across vaultsync.
// Every failure surfaced to the operator is one of these types, so the
// CLI can report what stage of the pipeline broke and which group or
// key was at fault.
package errors

import (
	"errors"
	"fmt"
)

// Error types
const (
	// ErrInputNotFound is returned when the secrets file does not exist
	ErrInputNotFound = "input_not_found"

	// ErrParse is returned when the secrets file cannot be parsed
	ErrParse = "parse"

	// ErrEmptyInput is returned when the secrets file contains no groups
	ErrEmptyInput = "empty_input"

	// ErrSchema is returned when a group violates the flat key/value shape
	ErrSchema = "schema"

	// ErrPrecondition is returned when a cluster precheck fails
	ErrPrecondition = "precondition"

	// ErrExecution is returned when a remote command exits non-zero
	ErrExecution = "execution"

	// ErrTimeout is returned when a remote call exceeds its deadline
	ErrTimeout = "timeout"

	// ErrConfig is returned when configuration cannot be resolved
	ErrConfig = "config"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewInputNotFoundError creates a new input not found error
func NewInputNotFoundError(message string, cause error) *Error {
	return NewError(ErrInputNotFound, message, cause)
}

// NewParseError creates a new parse error
func NewParseError(message string, cause error) *Error {
	return NewError(ErrParse, message, cause)
}

// NewEmptyInputError creates a new empty input error
func NewEmptyInputError(message string, cause error) *Error {
	return NewError(ErrEmptyInput, message, cause)
}

// NewSchemaError creates a new schema error
func NewSchemaError(message string, cause error) *Error {
	return NewError(ErrSchema, message, cause)
}

// NewPreconditionError creates a new precondition error
func NewPreconditionError(message string, cause error) *Error {
	return NewError(ErrPrecondition, message, cause)
}

// NewExecutionError creates a new execution error
func NewExecutionError(message string, cause error) *Error {
	return NewError(ErrExecution, message, cause)
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *Error {
	return NewError(ErrTimeout, message, cause)
}

// NewConfigError creates a new config error
func NewConfigError(message string, cause error) *Error {
	return NewError(ErrConfig, message, cause)
}

// isType checks whether err (or anything it wraps) is an *Error of the
// given type.
func isType(err error, errorType string) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == errorType
}

// IsInputNotFound checks if the error is an input not found error
func IsInputNotFound(err error) bool {
	return isType(err, ErrInputNotFound)
}

// IsParse checks if the error is a parse error
func IsParse(err error) bool {
	return isType(err, ErrParse)
}

// IsEmptyInput checks if the error is an empty input error
func IsEmptyInput(err error) bool {
	return isType(err, ErrEmptyInput)
}

// IsSchema checks if the error is a schema error
func IsSchema(err error) bool {
	return isType(err, ErrSchema)
}

// IsPrecondition checks if the error is a precondition error
func IsPrecondition(err error) bool {
	return isType(err, ErrPrecondition)
}

// IsExecution checks if the error is an execution error
func IsExecution(err error) bool {
	return isType(err, ErrExecution)
}

// IsTimeout checks if the error is a timeout error
func IsTimeout(err error) bool {
	return isType(err, ErrTimeout)
}

// IsConfig checks if the error is a config error
func IsConfig(err error) bool {
	return isType(err, ErrConfig)
}
