// Package errors provides a lightweight structured error type (BuildError)
// for category-based classification of build failures in the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a build error for classification.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig  ErrorCategory = "config"
	CategoryContent ErrorCategory = "content" // malformed document metadata

	// Rendering errors
	CategoryTemplate ErrorCategory = "template" // referenced layout not found or broken
	CategoryRender   ErrorCategory = "render"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryPublish    ErrorCategory = "publish"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the build
	SeverityWarning ErrorSeverity = "warning" // Recorded, build continues
)

// BuildError is a structured error with category, severity, and context.
// Every build error that concerns a specific source file carries its path so
// the operator can act on it directly.
type BuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Path     string        `json:"path,omitempty"`
	Cause    error         `json:"cause,omitempty"`
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Category, e.Message, e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Category, e.Message, e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *BuildError) Unwrap() error { return e.Cause }

// WithPath attaches the offending file path to the error.
func (e *BuildError) WithPath(path string) *BuildError {
	e.Path = path
	return e
}

// New creates a new fatal BuildError.
func New(category ErrorCategory, message string) *BuildError {
	return &BuildError{Category: category, Severity: SeverityFatal, Message: message}
}

// Wrap creates a new fatal BuildError that wraps an existing error.
func Wrap(err error, category ErrorCategory, message string) *BuildError {
	return &BuildError{Category: category, Severity: SeverityFatal, Message: message, Cause: err}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or CategoryInternal if the
// error is not a BuildError.
func GetCategory(err error) ErrorCategory {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Category
	}
	return CategoryInternal
}

// MalformedDocument reports a content file whose metadata header is missing or
// unparsable.
func MalformedDocument(path string, cause error) *BuildError {
	return &BuildError{
		Category: CategoryContent,
		Severity: SeverityFatal,
		Message:  "malformed document",
		Path:     path,
		Cause:    cause,
	}
}

// MissingTemplate reports a document referencing a layout that is not known to
// the template set.
func MissingTemplate(layout, path string) *BuildError {
	return &BuildError{
		Category: CategoryTemplate,
		Severity: SeverityFatal,
		Message:  fmt.Sprintf("layout %q not found", layout),
		Path:     path,
	}
}

// IOFailure reports a filesystem read/write error.
func IOFailure(path string, cause error) *BuildError {
	return &BuildError{
		Category: CategoryFileSystem,
		Severity: SeverityFatal,
		Message:  "filesystem operation failed",
		Path:     path,
		Cause:    cause,
	}
}
