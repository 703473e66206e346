package models

import (
	"go/token"

	"github.com/dave/dst"
)

// DeclKind is the classification of a function declaration
type DeclKind int

const (
	// DeclIgnored is anything that takes no part in the export surface
	DeclIgnored DeclKind = iota
	// DeclConstructor is the zero-argument constructor or the reserved init name
	DeclConstructor
	// DeclQuery is a method with a value receiver
	DeclQuery
	// DeclMutation is a method with a pointer receiver
	DeclMutation
	// DeclStaticCall is an exported package function
	DeclStaticCall
)

// String returns the string representation of the kind
func (k DeclKind) String() string {
	switch k {
	case DeclConstructor:
		return "constructor"
	case DeclQuery:
		return "query"
	case DeclMutation:
		return "mutation"
	case DeclStaticCall:
		return "static"
	default:
		return "ignored"
	}
}

// IsExported reports whether the kind contributes a manifest entry
func (k DeclKind) IsExported() bool {
	return k == DeclQuery || k == DeclMutation || k == DeclStaticCall
}

// Declaration is a classified function declaration
type Declaration struct {
	Kind     DeclKind
	Name     string
	Receiver string // receiver type name, empty for package functions
	Block    int    // index of the owning block in PackageMetadata.Blocks
	Position token.Position

	Method MethodRecord

	// ParamNames and ParamTypes mirror Method.Params but keep the source
	// syntax so wrappers can reuse the exact parameter types.
	ParamNames []string
	ParamTypes []dst.Expr

	Func *dst.FuncDecl
	File *SourceFile
}
