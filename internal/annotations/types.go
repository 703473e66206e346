package annotations

import (
	"fmt"
	"strings"
)

// MarkerPrefix starts every kryolite marker comment
const MarkerPrefix = "//kryolite:"

// AnnotationType identifies one of the kryolite markers
type AnnotationType int

const (
	SmartContractAnnotation AnnotationType = iota
	StateAnnotation
	ExportedAnnotation
	InterfaceAnnotation
)

var annotationNames = []string{"smart_contract", "state", "exported", "interface"}

// String returns the marker name as written after //kryolite:
func (a AnnotationType) String() string {
	if a < 0 || int(a) >= len(annotationNames) {
		return "unknown"
	}
	return annotationNames[a]
}

// ParseAnnotationType maps a marker name to its type
func ParseAnnotationType(s string) (AnnotationType, error) {
	for i, name := range annotationNames {
		if name == s {
			return AnnotationType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown annotation type: %s", s)
}

// IsMarker reports whether a comment line is a kryolite marker
func IsMarker(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), MarkerPrefix)
}

// SourceLocation is the position of a marker comment. Lines and columns are 1-based.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// ParsedAnnotation is a marker with its parameters converted per its schema
type ParsedAnnotation struct {
	Type       AnnotationType
	Target     string // name of the declaration carrying the marker
	Parameters map[string]interface{}
	Location   SourceLocation
	Raw        string
}

// GetString returns a string parameter, or "" when it is absent
func (p *ParsedAnnotation) GetString(name string) string {
	value, _ := p.Parameters[name].(string)
	return value
}

// GetStringSlice returns a list parameter, or nil when it is absent
func (p *ParsedAnnotation) GetStringSlice(name string) []string {
	value, _ := p.Parameters[name].([]string)
	return value
}

// HasParameter reports whether the marker set name
func (p *ParsedAnnotation) HasParameter(name string) bool {
	_, ok := p.Parameters[name]
	return ok
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case StringSliceType:
		return "[]string"
	default:
		return "unknown"
	}
}

// ParameterSpec describes one annotation parameter
type ParameterSpec struct {
	Type        ParameterType           // Parameter type
	Required    bool                    // Whether parameter is required
	Description string                  // Parameter description
	Validator   func(interface{}) error // Custom validator function
}

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Description string                   // Human-readable description
	Positional  []string                 // Parameter names filled by bare words, in order
	Parameters  map[string]ParameterSpec // Parameters by name
	Targets     []TargetKind             // Declarations the marker may be attached to
	Repeatable  bool                     // Whether the marker may appear more than once
	Examples    []string                 // Usage examples
}

// TargetKind is the kind of declaration a marker is attached to
type TargetKind int

const (
	TypeTarget TargetKind = iota
	FuncTarget
	MethodTarget
)

// String returns the string representation of the target kind
func (k TargetKind) String() string {
	switch k {
	case TypeTarget:
		return "type"
	case FuncTarget:
		return "function"
	case MethodTarget:
		return "method"
	default:
		return "unknown"
	}
}

// AllowsTarget reports whether the schema accepts the declaration kind
func (s AnnotationSchema) AllowsTarget(kind TargetKind) bool {
	for _, allowed := range s.Targets {
		if allowed == kind {
			return true
		}
	}
	return false
}
