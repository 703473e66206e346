package parser

import (
	"fmt"
	"go/token"

	"github.com/kryolite/kryogen/internal/annotations"
	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
)

// ParserErrorReporter turns parser findings into MalformedInput errors with suggestions
type ParserErrorReporter struct {
	parser *Parser
}

// NewParserErrorReporter creates a new parser error reporter
func NewParserErrorReporter(parser *Parser) *ParserErrorReporter {
	return &ParserErrorReporter{
		parser: parser,
	}
}

// ReportMarkerError converts a marker parse, schema or placement error
func (r *ParserErrorReporter) ReportMarkerError(err error, location annotations.SourceLocation) kerrors.KryogenError {
	loc := kerrors.SourceLocation{File: location.File, Line: location.Line, Column: location.Column}

	annotationErr, ok := err.(annotations.AnnotationError)
	if !ok {
		return kerrors.Wrap(kerrors.MalformedInputCode, "invalid marker", err).WithLocation(loc)
	}

	// the marker error text already starts with its location
	result := kerrors.Wrap(kerrors.MalformedInputCode, "invalid marker", err).
		WithLocation(loc).
		WithContext("marker_error", annotationErr.Code().String())
	result.Raw = true
	if hint := annotationErr.Suggestion(); hint != "" {
		result.WithSuggestion(hint)
	}
	return result
}

// ReportUnexportedFunction reports //kryolite:exported on a function whose name is not exported
func (r *ParserErrorReporter) ReportUnexportedFunction(name string, location annotations.SourceLocation) kerrors.KryogenError {
	loc := kerrors.SourceLocation{File: location.File, Line: location.Line, Column: location.Column}
	return kerrors.Newf(kerrors.MalformedInputCode, "function %s is marked //kryolite:exported but is not public", name).
		WithLocation(loc).
		WithSuggestion(fmt.Sprintf("Rename it to %s or remove the marker", capitalizeFirst(name)))
}

// ReportMissingConstructor reports a contract package without New
func (r *ParserErrorReporter) ReportMissingConstructor(metadata *models.PackageMetadata) error {
	root := metadata.RootType
	return kerrors.NewMalformedInput(metadata.RootPosition, "contract %s has no constructor", root).
		WithSuggestions(
			fmt.Sprintf("Declare func New() *%s in package %s", root, metadata.PackageName),
			"The constructor takes no parameters and returns the contract by value or by pointer",
		).
		WithContext("root_type", root)
}

// ReportConstructorError reports a New function with the wrong shape
func (r *ParserErrorReporter) ReportConstructorError(metadata *models.PackageMetadata, position token.Position, issue string) error {
	root := metadata.RootType
	return kerrors.NewMalformedInput(position, "constructor New %s", issue).
		WithSuggestion(fmt.Sprintf("Expected signature: func New() *%s", root)).
		WithContext("root_type", root).
		WithContext("issue", issue)
}

// ReportUnnamedParameter reports a parameter that cannot be named in the manifest
func (r *ParserErrorReporter) ReportUnnamedParameter(position token.Position, function string, index int) error {
	return kerrors.NewMalformedInput(position, "parameter %d of %s has no usable name", index+1, function).
		WithSuggestion("Give every parameter of an exported method a name other than _").
		WithContext("function", function)
}

// ReportSignatureError reports an exported function whose signature cannot be exported
func (r *ParserErrorReporter) ReportSignatureError(position token.Position, function, issue string) error {
	return kerrors.NewMalformedInput(position, "%s cannot be exported: %s", function, issue).
		WithContext("function", function)
}

// capitalizeFirst capitalizes the first letter of a string
func capitalizeFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
