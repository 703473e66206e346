package errors

import "fmt"

// ErrorCode classifies a failure for reporting and exit handling
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// MalformedInputCode marks source that does not satisfy the structural
	// preconditions of the transformer.
	MalformedInputCode

	// IOFailureCode marks a manifest or output file that could not be written.
	IOFailureCode

	// SerializationFailureCode marks a type that has no textual manifest form.
	SerializationFailureCode

	ConfigurationErrorCode
	VerificationErrorCode
)

var codeNames = map[ErrorCode]string{
	MalformedInputCode:       "MalformedInput",
	IOFailureCode:            "IOFailure",
	SerializationFailureCode: "SerializationFailure",
	ConfigurationErrorCode:   "ConfigurationError",
	VerificationErrorCode:    "VerificationError",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation is a position in a contract file. Lines and columns are 1-based.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// IsEmpty reports whether the location names no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}
