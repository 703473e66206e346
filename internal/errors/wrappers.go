package errors

import (
	"fmt"
	"go/token"
)

// LocationFromPosition converts a token position into a SourceLocation
func LocationFromPosition(pos token.Position) SourceLocation {
	return SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

// NewMalformedInput reports source that breaks a structural precondition
func NewMalformedInput(pos token.Position, format string, args ...interface{}) *BaseError {
	return Newf(MalformedInputCode, format, args...).WithLocation(LocationFromPosition(pos))
}

// NewSerializationFailure reports a type that has no textual manifest form
func NewSerializationFailure(pos token.Position, format string, args ...interface{}) *BaseError {
	return Newf(SerializationFailureCode, format, args...).WithLocation(LocationFromPosition(pos))
}

// WrapParseError wraps a Go syntax error found while parsing a contract file
func WrapParseError(item string, cause error) *BaseError {
	return Wrap(MalformedInputCode, fmt.Sprintf("failed to parse %s", item), cause).
		WithSuggestion("Check the file for Go syntax errors; only integer literals accept a unit suffix")
}

// WrapFileSystemError wraps file system related errors. The message is the
// underlying error text with nothing added.
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	err := Wrap(IOFailureCode, "", cause).
		WithContext("operation", operation).
		WithContext("path", path)
	err.Raw = true
	return err
}

// WrapSerializationError wraps an encoding failure
func WrapSerializationError(item string, cause error) *BaseError {
	return Wrap(SerializationFailureCode, fmt.Sprintf("failed to serialize %s", item), cause)
}

// WrapGenerateError wraps a failure while emitting generated code
func WrapGenerateError(item string, cause error) *BaseError {
	return Wrap(MalformedInputCode, fmt.Sprintf("failed to generate %s", item), cause)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// NewVerificationError reports a compiled binary that disagrees with its manifest
func NewVerificationError(format string, args ...interface{}) *BaseError {
	return Newf(VerificationErrorCode, format, args...)
}
