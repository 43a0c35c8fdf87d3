package errors

import "fmt"

// Convenience functions for common error patterns

// Core errors

// InvalidPath reports a virtual file path that cannot be resolved against the root.
func InvalidPath(path, root, reason string) *DocSourceError {
	return New(CategoryPath, SeverityFatal, fmt.Sprintf("invalid virtual file path %q: %s", path, reason)).
		WithContext("path", path).
		WithContext("root_dir", root).
		WithContext("reason", reason)
}

// TransformerFailed wraps an error returned by a transformer. The cause is
// kept unchanged so callers can match it with errors.Is.
func TransformerFailed(index int, name string, cause error) *DocSourceError {
	return Wrap(cause, CategoryTransform, SeverityFatal, fmt.Sprintf("transformer %q failed", name)).
		WithContext("index", index).
		WithContext("transformer", name)
}

// InvariantViolation reports a logic defect in the core.
func InvariantViolation(message string) *DocSourceError {
	return New(CategoryInternal, SeverityFatal, message)
}

// Config errors

func ConfigNotFound(path string) *DocSourceError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *DocSourceError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("invalid configuration: %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

func ValidationFailed(field, reason string) *DocSourceError {
	return New(CategoryValidation, SeverityFatal, fmt.Sprintf("validation failed: %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Shim errors

func FileSystem(operation, path string, cause error) *DocSourceError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func InternalError(message string, cause error) *DocSourceError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
