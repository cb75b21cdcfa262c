// Package errors provides enhanced error handling with categories and
// structured context for the verde services. It wraps the standard errors
// package, so callers can use it as a drop-in replacement.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory represents the type of error for aggregation and handling
type ErrorCategory string

const (
	CategoryNetwork       ErrorCategory = "network"
	CategoryTimeout       ErrorCategory = "timeout"
	CategoryNotFound      ErrorCategory = "not-found"
	CategoryValidation    ErrorCategory = "validation"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryLimit         ErrorCategory = "rate-limit"
	CategoryJSONParsing   ErrorCategory = "json-parsing"
	CategoryImageFetch    ErrorCategory = "image-fetch"
	CategoryCache         ErrorCategory = "cache"
	CategoryGeneric       ErrorCategory = "generic"
)

// EnhancedError wraps an error with category, component and structured
// context. The zero context map is allocated lazily by the builder.
type EnhancedError struct {
	Err       error
	Component string
	Category  ErrorCategory
	Context   map[string]any
	Timestamp time.Time
}

// Error implements the error interface
func (e *EnhancedError) Error() string {
	return e.Err.Error()
}

// Unwrap supports errors.Is/As chains
func (e *EnhancedError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error or its chain
func (e *EnhancedError) Is(target error) bool {
	if other, ok := target.(*EnhancedError); ok {
		return e.Category == other.Category && errors.Is(e.Err, other.Err)
	}
	return errors.Is(e.Err, target)
}

// ErrorBuilder provides a fluent API for constructing enhanced errors
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New starts building an enhanced error from an existing error
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err, category: CategoryGeneric}
}

// Newf starts building an enhanced error from a format string.
// The %w verb is supported for wrapping.
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component that produced the error
func (b *ErrorBuilder) Component(component string) *ErrorBuilder {
	b.component = component
	return b
}

// Category sets the error category
func (b *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	b.category = category
	return b
}

// Context adds a key-value pair to the error context
func (b *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if b.context == nil {
		b.context = make(map[string]any)
	}
	b.context[key] = value
	return b
}

// Build finalizes the enhanced error
func (b *ErrorBuilder) Build() *EnhancedError {
	return &EnhancedError{
		Err:       b.err,
		Component: b.component,
		Category:  b.category,
		Context:   b.context,
		Timestamp: time.Now(),
	}
}

// --- Standard library passthroughs ---

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the standard errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// NewStd creates a plain standard library error without enhancement
func NewStd(text string) error {
	return errors.New(text)
}

// IsCategory reports whether err is an EnhancedError of the given category
func IsCategory(err error, category ErrorCategory) bool {
	var ee *EnhancedError
	if errors.As(err, &ee) {
		return ee.Category == category
	}
	return false
}

// IsNotFound reports whether err represents a not-found condition
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}

// IsTimeout reports whether err represents a timeout
func IsTimeout(err error) bool {
	return IsCategory(err, CategoryTimeout)
}
