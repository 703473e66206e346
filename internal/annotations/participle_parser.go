package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParticipleParser parses kryolite markers with alecthomas/participle
type ParticipleParser struct {
	parser   *participle.Parser[Marker]
	registry AnnotationRegistry
}

// Marker is the grammar root of a kryolite marker, without the leading "//"
type Marker struct {
	Prefix string `parser:"@Prefix"`
	Kind   string `parser:"@Ident"`
	Args   []*Arg `parser:"@@*"`
}

// Arg is either a named parameter or a bare positional word
type Arg struct {
	Named *NamedArg `parser:"  @@"`
	Word  *string   `parser:"| @(Ident | String | Number)"`
}

// NamedArg is a -Key or -Key=Value parameter
type NamedArg struct {
	Key   string    `parser:"Dash @Ident"`
	Value *ArgValue `parser:"( Equals @@ )?"`
}

// ArgValue is one value or a comma separated list of values
type ArgValue struct {
	Items []string `parser:"@(Ident | String | Number) ( Comma @(Ident | String | Number) )*"`
}

var markerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Prefix", Pattern: `kryolite:`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// NewParticipleParser creates a new parser using participle
func NewParticipleParser(registry AnnotationRegistry) *ParticipleParser {
	parser := participle.MustBuild[Marker](
		participle.Lexer(markerLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)

	return &ParticipleParser{
		parser:   parser,
		registry: registry,
	}
}

// ParseAnnotation parses one marker comment and validates it against its schema
func (p *ParticipleParser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return nil, syntaxError("annotation must start with '//'", location, text)
	}
	body := strings.TrimPrefix(text, "//")

	marker, err := p.parser.ParseString(location.File, body)
	if err != nil {
		return nil, syntaxError(err.Error(), location, text)
	}

	if p.registry == nil {
		annotationType, err := ParseAnnotationType(marker.Kind)
		if err != nil {
			return nil, syntaxError(err.Error(), location, text)
		}
		return &ParsedAnnotation{
			Type:       annotationType,
			Parameters: make(map[string]interface{}),
			Location:   location,
			Raw:        text,
		}, nil
	}

	schema, ok := p.registry.Lookup(marker.Kind)
	if !ok {
		return nil, syntaxError("unknown annotation type: "+marker.Kind, location, text)
	}
	parsed := &ParsedAnnotation{
		Type:       schema.Type,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        text,
	}

	if err := p.assignArguments(parsed, marker.Args, schema); err != nil {
		return nil, err
	}

	if err := p.validateAgainstSchema(parsed, schema); err != nil {
		return nil, err
	}

	return parsed, nil
}

// assignArguments maps positional words and named parameters onto the schema
func (p *ParticipleParser) assignArguments(parsed *ParsedAnnotation, args []*Arg, schema AnnotationSchema) error {
	position := 0
	for _, arg := range args {
		if arg.Word != nil {
			if position >= len(schema.Positional) {
				return parameterError("argument", "no positional argument",
					*arg.Word, parsed.Location, parsed.Type)
			}
			name := schema.Positional[position]
			parsed.Parameters[name] = convertParameterValue([]string{*arg.Word}, schema.Parameters[name])
			position++
			continue
		}

		named := arg.Named
		if _, exists := parsed.Parameters[named.Key]; exists {
			return parameterError(named.Key, "a single value", "a repeated parameter",
				parsed.Location, parsed.Type)
		}
		if named.Value == nil {
			return parameterError(named.Key, "-"+named.Key+"=<value>", "a bare flag",
				parsed.Location, parsed.Type)
		}
		parsed.Parameters[named.Key] = convertParameterValue(named.Value.Items, schema.Parameters[named.Key])
	}
	return nil
}

// convertParameterValue converts raw items to the type declared by the parameter spec
func convertParameterValue(items []string, spec ParameterSpec) interface{} {
	if spec.Type == StringSliceType {
		values := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				values = append(values, item)
			}
		}
		return values
	}
	return strings.Join(items, ",")
}

// validateAgainstSchema checks parameter names, validators and required parameters
func (p *ParticipleParser) validateAgainstSchema(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	for paramName, paramValue := range annotation.Parameters {
		paramSpec, exists := schema.Parameters[paramName]
		if !exists {
			return parameterError(paramName, "a known parameter", "unknown parameter",
				annotation.Location, annotation.Type)
		}

		if paramSpec.Validator != nil {
			if err := paramSpec.Validator(paramValue); err != nil {
				return parameterError(paramName, err.Error(), fmt.Sprintf("%v", paramValue),
					annotation.Location, annotation.Type)
			}
		}
	}

	for paramName, paramSpec := range schema.Parameters {
		if paramSpec.Required && !annotation.HasParameter(paramName) {
			return parameterError(paramName, "a value", "nothing",
				annotation.Location, annotation.Type)
		}
	}

	return nil
}
