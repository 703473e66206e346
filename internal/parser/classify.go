package parser

import (
	"go/ast"
	"go/token"

	"github.com/dave/dst"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
)

// Classify tags a function declaration once, before any per-kind handling.
// Methods of the root type that no interface block claims are only exported
// when their name is exported.
func (p *Parser) Classify(metadata *models.PackageMetadata, decl *dst.FuncDecl) models.DeclKind {
	if !metadata.HasContract() {
		return models.DeclIgnored
	}
	name := decl.Name.Name

	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		switch {
		case name == ConstructorName || name == ReservedInitName:
			return models.DeclConstructor
		case metadata.Exported[name]:
			return models.DeclStaticCall
		default:
			return models.DeclIgnored
		}
	}

	receiver, pointer := receiverType(decl.Recv.List[0].Type)
	if receiver != metadata.RootType {
		return models.DeclIgnored
	}
	// the constructor names stay reserved for methods too
	if name == ConstructorName || name == ReservedInitName {
		return models.DeclConstructor
	}

	kind := models.DeclQuery
	if pointer {
		kind = models.DeclMutation
	}
	if BlockOf(metadata, kind, name) < 0 {
		return models.DeclIgnored
	}
	return kind
}

// BlockOf returns the index of the block that owns an exported declaration,
// or -1 when no block takes it. Interface blocks are checked first in marker
// order and skip the visibility check.
func BlockOf(metadata *models.PackageMetadata, kind models.DeclKind, name string) int {
	if kind == models.DeclQuery || kind == models.DeclMutation {
		for i, block := range metadata.Blocks {
			if block.Kind == models.InterfaceBlock && block.Claims(name) {
				return i
			}
		}
	}
	if !kind.IsExported() || !ast.IsExported(name) {
		return -1
	}
	for i, block := range metadata.Blocks {
		if block.Kind == models.InherentBlock {
			return i
		}
	}
	return -1
}

// Describe builds the Declaration of an exported function, rendering its
// parameters and result into a MethodRecord.
func (p *Parser) Describe(metadata *models.PackageMetadata, file *models.SourceFile, decl *dst.FuncDecl, kind models.DeclKind) (*models.Declaration, error) {
	name := decl.Name.Name
	position := declPosition(metadata, file, decl)

	d := &models.Declaration{
		Kind:     kind,
		Name:     name,
		Block:    BlockOf(metadata, kind, name),
		Position: position,
		Func:     decl,
		File:     file,
	}
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		d.Receiver, _ = receiverType(decl.Recv.List[0].Type)
	}

	method := models.MethodRecord{
		Name:       name,
		Readonly:   kind == models.DeclQuery,
		Params:     make([]models.ParamRecord, 0),
		ReturnType: models.VoidType,
	}

	if decl.Type.TypeParams != nil && decl.Type.TypeParams.NumFields() > 0 {
		return nil, p.reporter.ReportSignatureError(position, name, "type parameters cannot cross the host boundary")
	}

	if decl.Type.Params != nil {
		for index, field := range decl.Type.Params.List {
			if len(field.Names) == 0 {
				return nil, p.reporter.ReportUnnamedParameter(position, name, index)
			}
			rendered, err := RenderType(field.Type)
			if err != nil {
				return nil, kerrors.NewSerializationFailure(position, "parameter %s of %s: %v",
					field.Names[0].Name, name, err).WithCause(err)
			}
			for _, ident := range field.Names {
				if ident.Name == BlankIdentifier {
					return nil, p.reporter.ReportUnnamedParameter(position, name, index)
				}
				method.Params = append(method.Params, models.ParamRecord{Name: ident.Name, DeclaredType: rendered})
				d.ParamNames = append(d.ParamNames, ident.Name)
				d.ParamTypes = append(d.ParamTypes, field.Type)
			}
		}
	}

	if results := decl.Type.Results; results != nil && results.NumFields() > 0 {
		if results.NumFields() > 1 {
			return nil, kerrors.NewSerializationFailure(position,
				"%s returns %d values; an exported method returns at most one", name, results.NumFields()).
				WithSuggestion("Return a single struct that groups the values")
		}
		rendered, err := RenderType(results.List[0].Type)
		if err != nil {
			return nil, kerrors.NewSerializationFailure(position, "result of %s: %v", name, err).WithCause(err)
		}
		method.ReturnType = rendered
	}

	d.Method = method
	return d, nil
}

// receiverType returns the base type name of a receiver and whether it is a pointer
func receiverType(expr dst.Expr) (string, bool) {
	pointer := false
	if star, ok := expr.(*dst.StarExpr); ok {
		pointer = true
		expr = star.X
	}
	switch t := expr.(type) {
	case *dst.Ident:
		return t.Name, pointer
	case *dst.IndexExpr:
		if ident, ok := t.X.(*dst.Ident); ok {
			return ident.Name, pointer
		}
	case *dst.IndexListExpr:
		if ident, ok := t.X.(*dst.Ident); ok {
			return ident.Name, pointer
		}
	}
	return "", pointer
}

// declPosition maps a decorated declaration back to its source position
func declPosition(metadata *models.PackageMetadata, file *models.SourceFile, decl *dst.FuncDecl) token.Position {
	if file != nil && file.Decorator != nil && metadata.Fset != nil {
		if node, ok := file.Decorator.Ast.Nodes[decl]; ok && node != nil {
			return metadata.Fset.Position(node.Pos())
		}
	}
	if file != nil {
		return token.Position{Filename: file.Path}
	}
	return token.Position{}
}
