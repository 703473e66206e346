package models

import (
	"go/ast"
	"go/token"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// BlockKind separates the contract's own method set from interface implementations
type BlockKind int

const (
	InherentBlock BlockKind = iota
	InterfaceBlock
)

// String returns the string representation of the block kind
func (k BlockKind) String() string {
	if k == InterfaceBlock {
		return "interface"
	}
	return "inherent"
}

// Block is one method set that contributes to the contract record
type Block struct {
	Kind     BlockKind
	Subject  string   // root type name or interface name
	Methods  []string // interface method names; nil for the inherent block
	Position token.Position
}

// Claims reports whether the block owns a method of the root type
func (b Block) Claims(name string) bool {
	if b.Kind == InherentBlock {
		return true
	}
	for _, method := range b.Methods {
		if method == name {
			return true
		}
	}
	return false
}

// SourceFile is one parsed contract file
type SourceFile struct {
	Path      string // file system path
	Name      string // base name
	Ast       *ast.File
	Dst       *dst.File
	Decorator *decorator.Decorator

	// Literals maps byte offsets of unit-suffixed integer literals to their unit
	Literals map[int]string
}

// ConstructorInfo describes the contract constructor
type ConstructorInfo struct {
	Name           string
	ReturnsPointer bool
	Position       token.Position
}

// PackageMetadata is everything kryogen knows about one contract package
type PackageMetadata struct {
	PackageName string // name of the Go package
	PackagePath string // file system path to the package
	Fset        *token.FileSet
	Files       []*SourceFile // sorted by file name

	RootType     string         // type carrying the smart_contract marker
	RootPosition token.Position // where the root type is declared
	StateType    string         // type carrying the state marker, if any
	Blocks       []Block        // in marker order
	Exported     map[string]bool

	// Interfaces maps interface names declared in the package to their method names
	Interfaces map[string][]string

	Constructor *ConstructorInfo
}

// HasContract reports whether the package declares a contract root
func (p *PackageMetadata) HasContract() bool {
	return p.RootType != ""
}

// HasInherentBlock reports whether the root type has a smart_contract block
func (p *PackageMetadata) HasInherentBlock() bool {
	for _, block := range p.Blocks {
		if block.Kind == InherentBlock {
			return true
		}
	}
	return false
}
