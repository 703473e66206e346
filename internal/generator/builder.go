package generator

import (
	"go/token"
	"strconv"

	"github.com/dave/dst"
)

// Builder produces the syntax nodes of the generated export surface.
// Every node is fresh, so the result can be printed without touching the
// decorated source files.
type Builder struct {
	runtime string // package name used to qualify runtime helpers
}

// NewBuilder creates a builder that calls runtime helpers through the given package name
func NewBuilder(runtime string) *Builder {
	return &Builder{runtime: runtime}
}

// Ident returns a new identifier
func (b *Builder) Ident(name string) *dst.Ident {
	return dst.NewIdent(name)
}

// Runtime returns a selector for a runtime helper, e.g. kryolite.Register
func (b *Builder) Runtime(name string) *dst.SelectorExpr {
	return &dst.SelectorExpr{X: dst.NewIdent(b.runtime), Sel: dst.NewIdent(name)}
}

// Instantiate applies a type argument to a generic runtime helper
func (b *Builder) Instantiate(name string, typeArg dst.Expr) *dst.IndexExpr {
	return &dst.IndexExpr{X: b.Runtime(name), Index: typeArg}
}

// Pointer returns *expr
func (b *Builder) Pointer(expr dst.Expr) *dst.StarExpr {
	return &dst.StarExpr{X: expr}
}

// AddressOf returns &expr
func (b *Builder) AddressOf(expr dst.Expr) *dst.UnaryExpr {
	return &dst.UnaryExpr{Op: token.AND, X: expr}
}

// Call returns fun(args...)
func (b *Builder) Call(fun dst.Expr, args ...dst.Expr) *dst.CallExpr {
	return &dst.CallExpr{Fun: fun, Args: args}
}

// Method returns recv.name
func (b *Builder) Method(recv dst.Expr, name string) *dst.SelectorExpr {
	return &dst.SelectorExpr{X: recv, Sel: dst.NewIdent(name)}
}

// Field returns a named parameter
func (b *Builder) Field(name string, typ dst.Expr) *dst.Field {
	return &dst.Field{Names: []*dst.Ident{dst.NewIdent(name)}, Type: typ}
}

// Result returns an unnamed result
func (b *Builder) Result(typ dst.Expr) *dst.Field {
	return &dst.Field{Type: typ}
}

// Expr wraps an expression into a statement
func (b *Builder) Expr(expr dst.Expr) *dst.ExprStmt {
	return &dst.ExprStmt{X: expr}
}

// Define returns name := value
func (b *Builder) Define(name string, value dst.Expr) *dst.AssignStmt {
	return &dst.AssignStmt{
		Lhs: []dst.Expr{dst.NewIdent(name)},
		Tok: token.DEFINE,
		Rhs: []dst.Expr{value},
	}
}

// Return returns a return statement
func (b *Builder) Return(results ...dst.Expr) *dst.ReturnStmt {
	return &dst.ReturnStmt{Results: results}
}

// Func returns a package level function declaration
func (b *Builder) Func(name string, params, results []*dst.Field, body ...dst.Stmt) *dst.FuncDecl {
	decl := &dst.FuncDecl{
		Name: dst.NewIdent(name),
		Type: &dst.FuncType{
			Params: &dst.FieldList{List: params},
		},
		Body: &dst.BlockStmt{List: body},
	}
	if len(results) > 0 {
		decl.Type.Results = &dst.FieldList{List: results}
	}
	// one statement per line, even for single statement bodies
	for _, stmt := range body {
		stmt.Decorations().Before = dst.NewLine
		stmt.Decorations().After = dst.NewLine
	}
	decl.Decs.Before = dst.EmptyLine
	decl.Decs.After = dst.EmptyLine
	return decl
}

// Export returns a function declaration tagged with an export directive
func (b *Builder) Export(symbol, name string, params, results []*dst.Field, body ...dst.Stmt) *dst.FuncDecl {
	decl := b.Func(name, params, results, body...)
	Tag(decl, symbol)
	return decl
}

// Import returns an import declaration for the given specs
func (b *Builder) Import(specs []ImportSpec) *dst.GenDecl {
	decl := &dst.GenDecl{Tok: token.IMPORT, Lparen: len(specs) > 1}
	for _, spec := range specs {
		importSpec := &dst.ImportSpec{
			Path: &dst.BasicLit{Kind: token.STRING, Value: strconv.Quote(spec.Path)},
		}
		if spec.Alias != "" && spec.Alias != packageNameOf(spec.Path) {
			importSpec.Name = dst.NewIdent(spec.Alias)
		}
		decl.Specs = append(decl.Specs, importSpec)
	}
	decl.Decs.After = dst.EmptyLine
	return decl
}

// Tag adds an export directive as the last line of a declaration's doc
// comment. Tagging twice with the same symbol is a no-op.
func Tag(decl *dst.FuncDecl, symbol string) {
	directive := ExportDirective(symbol)
	for _, line := range decl.Decs.Start {
		if line == directive {
			return
		}
	}
	decl.Decs.Start.Append(directive)
}

// ExportDirective returns the TinyGo export comment for a symbol
func ExportDirective(symbol string) string {
	return "//export " + symbol
}
