package annotations

import (
	"fmt"
	"strings"
)

// AnnotationError is a marker that could not be parsed or applied
type AnnotationError interface {
	error
	Location() SourceLocation
	Suggestion() string
	Code() ErrorCode
}

// ErrorCode classifies marker errors
type ErrorCode int

const (
	SyntaxErrorCode ErrorCode = iota
	ValidationErrorCode
	PlacementErrorCode
)

func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case ValidationErrorCode:
		return "ValidationError"
	case PlacementErrorCode:
		return "PlacementError"
	default:
		return "UnknownError"
	}
}

// MarkerError is a marker comment that does not match the grammar or its schema
type MarkerError struct {
	Kind ErrorCode
	Msg  string
	Loc  SourceLocation
	Hint string
}

func (e *MarkerError) Error() string {
	text := fmt.Sprintf("%s:%d:%d: %s", e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg)
	if e.Hint != "" {
		text += ". " + e.Hint
	}
	return text
}

func (e *MarkerError) Location() SourceLocation { return e.Loc }
func (e *MarkerError) Suggestion() string       { return e.Hint }
func (e *MarkerError) Code() ErrorCode          { return e.Kind }

// PlacementError reports a marker attached to a declaration it does not apply to
type PlacementError struct {
	Type   AnnotationType
	Target TargetKind
	Loc    SourceLocation
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s:%d:%d: //kryolite:%s cannot be attached to a %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column, e.Type, e.Target, e.Suggestion())
}

func (e *PlacementError) Location() SourceLocation { return e.Loc }
func (e *PlacementError) Code() ErrorCode          { return PlacementErrorCode }

func (e *PlacementError) Suggestion() string {
	if e.Type == ExportedAnnotation {
		return "Place //kryolite:exported on a function or method declaration"
	}
	return fmt.Sprintf("Place //kryolite:%s on a type declaration", e.Type)
}

// syntaxError reports marker text the grammar rejects. The raw comment picks
// the hint.
func syntaxError(msg string, loc SourceLocation, comment string) *MarkerError {
	var hint string
	lowered := strings.ToLower(comment)
	switch {
	case strings.HasPrefix(msg, "unknown annotation type"):
		hint = "Supported markers: smart_contract, state, exported, interface"
	case strings.Contains(lowered, "// kryolite"):
		hint = "Markers are directives: write //kryolite:<kind> with no space after the slashes"
	case strings.Contains(lowered, "interface"):
		hint = interfaceUsage
	default:
		hint = "Markers look like //kryolite:smart_contract"
	}
	return &MarkerError{Kind: SyntaxErrorCode, Msg: "syntax error: " + msg, Loc: loc, Hint: hint}
}

// parameterError reports a marker argument its schema rejects
func parameterError(parameter, expected, actual string, loc SourceLocation, annotationType AnnotationType) *MarkerError {
	hint := fmt.Sprintf("//kryolite:%s takes no parameters", annotationType)
	if annotationType == InterfaceAnnotation {
		hint = interfaceUsage
	}
	return &MarkerError{
		Kind: ValidationErrorCode,
		Msg:  fmt.Sprintf("parameter %s: expected %s, got %s", parameter, expected, actual),
		Loc:  loc,
		Hint: hint,
	}
}

const interfaceUsage = "Interface format: //kryolite:interface Name [-Methods=A,B]"
