package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// KryogenError is a failure with a code, an optional source location and
// hints for the person running the generator
type KryogenError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// BaseError is the KryogenError every constructor in this package returns.
// The With* methods mutate the receiver and return it for chaining.
type BaseError struct {
	Code    ErrorCode
	Message string
	Loc     SourceLocation
	Cause   error

	// Raw makes Error() return the cause text untouched. IOFailure uses it so
	// the filesystem error reaches the user exactly as the OS reported it.
	Raw bool

	context map[string]interface{}
	hints   []string
}

func (e *BaseError) Error() string {
	if e.Raw && e.Cause != nil {
		return e.Cause.Error()
	}

	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context returns the key/value details attached with WithContext
func (e *BaseError) Context() map[string]interface{} {
	if e.context == nil {
		return map[string]interface{}{}
	}
	return e.context
}

func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.context == nil {
		e.context = make(map[string]interface{})
	}
	e.context[key] = value
	return e
}

func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.hints = append(e.hints, suggestion)
	return e
}

func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.hints = append(e.hints, suggestions...)
	return e
}

// New creates an error without a cause
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message, hints: []string{}}
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to cause. The cause keeps a stack trace so
// verbose reporting can show where it was raised.
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	err := New(code, message)
	err.Cause = crdb.WithStackDepth(cause, 1)
	return err
}

// CodeOf returns the code of the first KryogenError in the chain
func CodeOf(err error) ErrorCode {
	var kerr KryogenError
	if crdb.As(err, &kerr) {
		return kerr.ErrorCode()
	}
	return UnknownErrorCode
}

// HasCode reports whether any error in the chain carries code. A
// MultipleErrors matches when any of its members does.
func HasCode(err error, code ErrorCode) bool {
	for ; err != nil; err = crdb.UnwrapOnce(err) {
		if multi, ok := err.(*MultipleErrors); ok {
			return multi.HasCode(code)
		}
		if kerr, ok := err.(KryogenError); ok && kerr.ErrorCode() == code {
			return true
		}
	}
	return false
}

// Error inspection, re-exported so callers need a single errors import.
var (
	Is = crdb.Is
	As = crdb.As
)

// MultipleErrors collects every problem found in one pass over a package
type MultipleErrors struct {
	Errors []KryogenError
}

// NewMultipleErrors creates an empty collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{Errors: []KryogenError{}}
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, err)
	}
	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

// ErrorCode is the code of the first collected error
func (e *MultipleErrors) ErrorCode() ErrorCode {
	if len(e.Errors) == 0 {
		return UnknownErrorCode
	}
	return e.Errors[0].ErrorCode()
}

// Location is the location of the first collected error
func (e *MultipleErrors) Location() SourceLocation {
	if len(e.Errors) == 0 {
		return SourceLocation{}
	}
	return e.Errors[0].Location()
}

// Context merges the members' context, prefixing each key with its index
func (e *MultipleErrors) Context() map[string]interface{} {
	merged := make(map[string]interface{})
	for i, err := range e.Errors {
		for key, value := range err.Context() {
			merged[fmt.Sprintf("error_%d_%s", i, key)] = value
		}
	}
	return merged
}

func (e *MultipleErrors) Suggestions() []string {
	var all []string
	for _, err := range e.Errors {
		all = append(all, err.Suggestions()...)
	}
	return all
}

func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

func (e *MultipleErrors) Add(err KryogenError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

// HasCode reports whether any collected error carries code
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrOrNil returns nil for an empty collection so callers can return it directly
func (e *MultipleErrors) ErrOrNil() error {
	if e == nil || e.IsEmpty() {
		return nil
	}
	return e
}
