// Package errors provides a lightweight structured error type (DocSourceError)
// for category-based classification of loader failures in the core and CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a DocSource error for classification
type ErrorCategory string

const (
	// Resolution and pipeline errors raised by the core
	CategoryPath      ErrorCategory = "path"
	CategoryTransform ErrorCategory = "transform"
	CategoryInternal  ErrorCategory = "internal"

	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Shim I/O errors
	CategoryFileSystem ErrorCategory = "filesystem"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DocSourceError is a structured error with category, retryability, and context
type DocSourceError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocSourceError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocSourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocSourceError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocSourceError) WithContext(key string, value any) *DocSourceError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocSourceError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocSourceError {
	return &DocSourceError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocSourceError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocSourceError {
	return &DocSourceError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost DocSourceError in err's chain.
func As(err error) (*DocSourceError, bool) {
	var dse *DocSourceError
	if stderrors.As(err, &dse) {
		return dse, true
	}
	return nil, false
}

// IsCategory checks if an error (or anything it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dse, ok := As(err); ok {
		return dse.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if dse, ok := As(err); ok {
		return dse.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocSourceError
func GetCategory(err error) ErrorCategory {
	if dse, ok := As(err); ok {
		return dse.Category
	}
	return CategoryInternal
}
