package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Format resolution errors
	ErrUnsupportedFormat  ErrorCode = "UNSUPPORTED_FORMAT"
	ErrIdenticalFormats   ErrorCode = "IDENTICAL_FORMATS"
	ErrFormatUndetermined ErrorCode = "FORMAT_UNDETERMINED"
	ErrTargetUndetermined ErrorCode = "TARGET_UNDETERMINED"

	// Conversion errors
	ErrParseFailure ErrorCode = "PARSE_FAILURE"
	ErrDumpFailure  ErrorCode = "DUMP_FAILURE"

	// Environment errors
	ErrIOFailure ErrorCode = "IO_FAILURE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// Detail keys shared between packages
const (
	DetailLine    = "line"
	DetailColumn  = "column"
	DetailPath    = "path"
	DetailFormat  = "format"
	DetailChoices = "choices"
)

// FileconvError represents a structured error with code and details
type FileconvError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FileconvError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FileconvError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FileconvError) Is(target error) bool {
	var targetErr *FileconvError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FileconvError with the given code and message
func New(code ErrorCode, message string) *FileconvError {
	return &FileconvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FileconvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FileconvError {
	return &FileconvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FileconvError
func Wrap(err error, code ErrorCode, message string) *FileconvError {
	if err == nil {
		return nil
	}
	return &FileconvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FileconvError {
	if err == nil {
		return nil
	}
	return &FileconvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FileconvError) WithDetail(key string, value interface{}) *FileconvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *FileconvError) WithDetails(details map[string]interface{}) *FileconvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithPosition records a 1-based line and column. A zero column means the
// underlying parser did not report one.
func (e *FileconvError) WithPosition(line, column int) *FileconvError {
	if line <= 0 {
		return e
	}
	e.WithDetail(DetailLine, line)
	return e.WithDetail(DetailColumn, column)
}

// ParseFailure creates a PARSE_FAILURE error located at line and column.
func ParseFailure(message string, line, column int) *FileconvError {
	return New(ErrParseFailure, message).WithPosition(line, column)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fcErr *FileconvError
	if errors.As(err, &fcErr) {
		return fcErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FileconvError
func GetErrorCode(err error) ErrorCode {
	var fcErr *FileconvError
	if errors.As(err, &fcErr) {
		return fcErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FileconvError
func GetErrorDetails(err error) map[string]interface{} {
	var fcErr *FileconvError
	if errors.As(err, &fcErr) {
		return fcErr.Details
	}
	return nil
}

// Position returns the line and column recorded on err. ok is false when
// the error carries no location.
func Position(err error) (line, column int, ok bool) {
	details := GetErrorDetails(err)
	if details == nil {
		return 0, 0, false
	}
	line, ok = details[DetailLine].(int)
	if !ok {
		return 0, 0, false
	}
	column, _ = details[DetailColumn].(int)
	return line, column, true
}
