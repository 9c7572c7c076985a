// Package errors provides error handling utilities.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeMissingCloudName indicates that no cloud name was configured
	TypeMissingCloudName Type = "MISSING_CLOUD_NAME"

	// TypeMissingSecret indicates that signing needs an API secret that is absent
	TypeMissingSecret Type = "MISSING_SECRET"

	// TypeUnsupportedSuffix indicates an SEO suffix on an unsupported asset/delivery type
	TypeUnsupportedSuffix Type = "UNSUPPORTED_SUFFIX"

	// TypeInvalidAuthToken indicates an auth token that cannot be generated
	TypeInvalidAuthToken Type = "INVALID_AUTH_TOKEN"

	// TypeMalformedConfiguration indicates a configuration source that failed to parse
	TypeMalformedConfiguration Type = "MALFORMED_CONFIGURATION"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotSupported indicates an unsupported operation
	TypeNotSupported Type = "NOT_SUPPORTED"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error, or any error it wraps, is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// TypeOf returns the type of a domain error, or TypeInternal for foreign errors
func TypeOf(err error) Type {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Inputf creates a formatted input error
func Inputf(format string, args ...interface{}) *Error {
	return Newf(TypeInput, format, args...)
}

// MissingCloudName creates the error raised when no cloud name is configured
func MissingCloudName() *Error {
	return New(TypeMissingCloudName, "must supply cloud_name in configuration")
}

// MissingSecret creates the error raised when signing has no API secret
func MissingSecret() *Error {
	return New(TypeMissingSecret, "must supply api_secret to sign urls")
}

// UnsupportedSuffix creates the error raised for a suffix on an unsupported delivery type
func UnsupportedSuffix(assetType, deliveryType string, allowed []string) *Error {
	e := Newf(TypeUnsupportedSuffix,
		"URL suffix is not supported for %s/%s, allowed delivery types for %s: %s",
		assetType, deliveryType, assetType, strings.Join(allowed, ", "))
	return e.WithContext("asset_type", assetType).WithContext("allowed", allowed)
}

// InvalidAuthToken creates an auth token generation error
func InvalidAuthToken(message string) *Error {
	return New(TypeInvalidAuthToken, message)
}

// MalformedConfiguration wraps a configuration decoding failure
func MalformedConfiguration(message string, cause error) *Error {
	return Wrap(TypeMalformedConfiguration, message, cause)
}

// NotSupported creates a not supported error
func NotSupported(operation string) *Error {
	return Newf(TypeNotSupported, "operation not supported: %s", operation)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
