// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown          = "UNKNOWN_ERROR"
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeFileOpenFailure  = "FILE_OPEN_FAILURE"
	CodeParseError       = "PARSE_ERROR"
	CodeWeightOverflow   = "WEIGHT_OVERFLOW"
	CodeNodeNotFound     = "NODE_NOT_FOUND"
	CodeOutOfRange       = "OUT_OF_RANGE"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrInvalidArguments = New(CodeInvalidArguments, "invalid arguments")
	ErrFileOpenFailure  = New(CodeFileOpenFailure, "failed to open file")
	ErrParseError       = New(CodeParseError, "failed to parse graph")
	ErrWeightOverflow   = New(CodeWeightOverflow, "edge weight exceeds 32 bits")
	ErrNodeNotFound     = New(CodeNodeNotFound, "node not found")
	ErrOutOfRange       = New(CodeOutOfRange, "vertex index out of range")
)

// IsInvalidArguments checks if the error is an invalid-arguments error.
func IsInvalidArguments(err error) bool {
	return errors.Is(err, ErrInvalidArguments)
}

// IsFileOpenFailure checks if the error is a file-open-failure error.
func IsFileOpenFailure(err error) bool {
	return errors.Is(err, ErrFileOpenFailure)
}

// IsParseError checks if the error is a parse error.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParseError)
}

// IsWeightOverflow checks if the error is a weight-overflow error.
func IsWeightOverflow(err error) bool {
	return errors.Is(err, ErrWeightOverflow)
}

// IsNodeNotFound checks if the error is a node-not-found error.
func IsNodeNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// IsOutOfRange checks if the error is an out-of-range error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// ErrorInfo provides error information mapping (name -> code).
var ErrorInfo = map[string]string{
	"InvalidArguments": CodeInvalidArguments,
	"FileOpenFailure":  CodeFileOpenFailure,
	"ParseError":       CodeParseError,
	"WeightOverflow":   CodeWeightOverflow,
	"NodeNotFound":     CodeNodeNotFound,
	"OutOfRange":       CodeOutOfRange,
}
