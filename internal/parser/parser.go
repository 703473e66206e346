package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/dave/dst/decorator"
	"go.uber.org/zap"

	"github.com/kryolite/kryogen/internal/annotations"
	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
	"github.com/kryolite/kryogen/internal/rewrite"
	"github.com/kryolite/kryogen/internal/utils"
)

// Parser reads a contract package into models.PackageMetadata
type Parser struct {
	registry annotations.AnnotationRegistry
	markers  *annotations.ParticipleParser
	rewriter *rewrite.Rewriter
	files    *utils.FileProcessor
	reporter *ParserErrorReporter
	logger   *zap.Logger
}

// NewParser creates a parser. A nil rewriter uses the default unit table and
// a nil logger discards log output.
func NewParser(rewriter *rewrite.Rewriter, logger *zap.Logger) *Parser {
	if rewriter == nil {
		rewriter = rewrite.New(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := annotations.DefaultRegistry()
	p := &Parser{
		registry: registry,
		markers:  annotations.NewParticipleParser(registry),
		rewriter: rewriter,
		files:    utils.NewFileProcessor(),
		logger:   logger.With(zap.String("component", "parser")),
	}
	p.reporter = NewParserErrorReporter(p)
	return p
}

// Rewriter returns the literal rewriter used for the prepass
func (p *Parser) Rewriter() *rewrite.Rewriter {
	return p.rewriter
}

type sourceText struct {
	path    string
	content []byte
}

// ParseDirectory reads every contract file of one package directory
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	paths, err := p.files.ContractFiles(path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, kerrors.Newf(kerrors.MalformedInputCode, "no Go files found in directory %s", path).
			WithSuggestion("Run kryogen on a directory that contains the contract package")
	}

	sources := make([]sourceText, 0, len(paths))
	for _, filePath := range paths {
		content, err := p.files.GetFileReader().ReadBytes(filePath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, sourceText{path: filePath, content: content})
	}

	return p.parseSources(path, sources)
}

// ParseSource parses a single contract file held in memory
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	return p.parseSources(filepath.Dir(filename), []sourceText{{path: filename, content: []byte(source)}})
}

func (p *Parser) parseSources(dir string, sources []sourceText) (*models.PackageMetadata, error) {
	fset := token.NewFileSet()
	metadata := &models.PackageMetadata{
		PackagePath: dir,
		Fset:        fset,
		Exported:    make(map[string]bool),
		Interfaces:  make(map[string][]string),
	}

	for _, src := range sources {
		file, err := p.parseFile(fset, src.path, src.content)
		if err != nil {
			return nil, err
		}
		if metadata.PackageName == "" {
			metadata.PackageName = file.Ast.Name.Name
		} else if file.Ast.Name.Name != metadata.PackageName {
			return nil, kerrors.NewMalformedInput(fset.Position(file.Ast.Name.Pos()),
				"multiple packages found in directory: %s and %s", metadata.PackageName, file.Ast.Name.Name)
		}
		metadata.Files = append(metadata.Files, file)
	}

	collected := &kerrors.MultipleErrors{}
	for _, file := range metadata.Files {
		p.extractMarkers(metadata, file, collected)
	}
	if err := collected.ErrOrNil(); err != nil {
		return nil, err
	}

	if !metadata.HasContract() {
		p.logger.Debug("package has no contract root", zap.String("package", metadata.PackageName))
		return metadata, nil
	}

	if err := p.resolveInterfaceBlocks(metadata); err != nil {
		return nil, err
	}
	if err := p.validateConstructor(metadata); err != nil {
		return nil, err
	}

	p.logger.Debug("parsed contract package",
		zap.String("package", metadata.PackageName),
		zap.String("root", metadata.RootType),
		zap.Int("files", len(metadata.Files)),
		zap.Int("blocks", len(metadata.Blocks)))

	return metadata, nil
}

// parseFile runs the literal prepass, parses the result and decorates it
func (p *Parser) parseFile(fset *token.FileSet, path string, content []byte) (*models.SourceFile, error) {
	prepared := p.rewriter.Prepare(path, content)

	astFile, err := parser.ParseFile(fset, path, prepared.Text, parser.ParseComments)
	if err != nil {
		return nil, kerrors.WrapParseError(filepath.Base(path), err)
	}

	dec := decorator.NewDecorator(fset)
	dstFile, err := dec.DecorateFile(astFile)
	if err != nil {
		return nil, kerrors.WrapParseError(filepath.Base(path), err)
	}

	return &models.SourceFile{
		Path:      path,
		Name:      filepath.Base(path),
		Ast:       astFile,
		Dst:       dstFile,
		Decorator: dec,
		Literals:  prepared.Literals,
	}, nil
}

// extractMarkers reads the kryolite markers of one file into metadata
func (p *Parser) extractMarkers(metadata *models.PackageMetadata, file *models.SourceFile, collected *kerrors.MultipleErrors) {
	for _, decl := range file.Ast.Decls {
		switch node := decl.(type) {
		case *ast.GenDecl:
			if node.Tok != token.TYPE {
				continue
			}
			for _, spec := range node.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if iface, ok := typeSpec.Type.(*ast.InterfaceType); ok {
					metadata.Interfaces[typeSpec.Name.Name] = interfaceMethods(iface)
				}

				doc := typeSpec.Doc
				if doc == nil && len(node.Specs) == 1 {
					doc = node.Doc
				}
				markers := p.readMarkers(metadata.Fset, doc, typeSpec.Name.Name, annotations.TypeTarget, collected)
				p.applyTypeMarkers(metadata, typeSpec, markers, collected)
			}
		case *ast.FuncDecl:
			target := annotations.FuncTarget
			if node.Recv != nil {
				target = annotations.MethodTarget
			}
			markers := p.readMarkers(metadata.Fset, node.Doc, node.Name.Name, target, collected)
			for _, marker := range markers {
				if target != annotations.FuncTarget {
					continue
				}
				if !ast.IsExported(node.Name.Name) {
					collected.Add(p.reporter.ReportUnexportedFunction(node.Name.Name, marker.Location))
					continue
				}
				metadata.Exported[node.Name.Name] = true
			}
		}
	}
}

// readMarkers parses every marker comment of a doc group and checks placement
func (p *Parser) readMarkers(fset *token.FileSet, doc *ast.CommentGroup, target string, kind annotations.TargetKind, collected *kerrors.MultipleErrors) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}

	var markers []*annotations.ParsedAnnotation
	seen := make(map[annotations.AnnotationType]bool)
	for _, comment := range doc.List {
		if !annotations.IsMarker(comment.Text) {
			continue
		}
		pos := fset.Position(comment.Pos())
		location := annotations.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}

		parsed, err := p.markers.ParseAnnotation(comment.Text, location)
		if err != nil {
			collected.Add(p.reporter.ReportMarkerError(err, location))
			continue
		}
		parsed.Target = target

		schema, err := p.registry.Schema(parsed.Type)
		if err == nil && !schema.AllowsTarget(kind) {
			placement := &annotations.PlacementError{Type: parsed.Type, Target: kind, Loc: location}
			collected.Add(p.reporter.ReportMarkerError(placement, location))
			continue
		}
		if err == nil && seen[parsed.Type] && !schema.Repeatable {
			repeated := &annotations.MarkerError{
				Kind: annotations.ValidationErrorCode,
				Msg:  fmt.Sprintf("//kryolite:%s appears more than once on %s", parsed.Type, target),
				Loc:  location,
				Hint: "Remove the duplicate marker",
			}
			collected.Add(p.reporter.ReportMarkerError(repeated, location))
			continue
		}
		seen[parsed.Type] = true
		markers = append(markers, parsed)
	}
	return markers
}

// applyTypeMarkers records contract, state and interface markers of a type
func (p *Parser) applyTypeMarkers(metadata *models.PackageMetadata, spec *ast.TypeSpec, markers []*annotations.ParsedAnnotation, collected *kerrors.MultipleErrors) {
	name := spec.Name.Name
	position := metadata.Fset.Position(spec.Pos())
	isRoot := false
	var interfaceMarker, stateMarker *annotations.ParsedAnnotation

	for _, marker := range markers {
		markerPos := token.Position{Filename: marker.Location.File, Line: marker.Location.Line, Column: marker.Location.Column}

		switch marker.Type {
		case annotations.SmartContractAnnotation:
			if metadata.RootType != "" {
				collected.Add(kerrors.NewMalformedInput(markerPos,
					"%s is already the contract root; a package declares exactly one //kryolite:smart_contract type", metadata.RootType))
				continue
			}
			metadata.RootType = name
			metadata.RootPosition = position
			metadata.Blocks = append(metadata.Blocks, models.Block{Kind: models.InherentBlock, Subject: name, Position: markerPos})
			isRoot = true

		case annotations.InterfaceAnnotation:
			interfaceMarker = marker
			subject, qualified := interfaceSubject(marker.GetString("Name"))
			methods := marker.GetStringSlice("Methods")
			if qualified && methods == nil {
				collected.Add(kerrors.NewMalformedInput(markerPos,
					"interface %s is declared in another package", marker.GetString("Name")).
					WithSuggestion("List its methods explicitly: //kryolite:interface " + marker.GetString("Name") + " -Methods=A,B"))
				continue
			}
			if p.hasInterfaceBlock(metadata, subject) {
				collected.Add(kerrors.NewMalformedInput(markerPos, "interface %s is implemented more than once", subject))
				continue
			}
			metadata.Blocks = append(metadata.Blocks, models.Block{
				Kind:     models.InterfaceBlock,
				Subject:  subject,
				Methods:  methods,
				Position: markerPos,
			})

		case annotations.StateAnnotation:
			stateMarker = marker
		}
	}

	// the snapshot is taken from the registered contract instance, so only the
	// root type can carry its state
	if stateMarker != nil {
		if isRoot {
			metadata.StateType = name
		} else {
			pos := token.Position{Filename: stateMarker.Location.File, Line: stateMarker.Location.Line, Column: stateMarker.Location.Column}
			collected.Add(kerrors.NewMalformedInput(pos,
				"//kryolite:state on %s requires //kryolite:smart_contract on the same type", name).
				WithSuggestion("Move the state marker to the contract type and keep " + name + " as one of its fields"))
		}
	}

	if interfaceMarker != nil && !isRoot && metadata.RootType != name {
		pos := token.Position{Filename: interfaceMarker.Location.File, Line: interfaceMarker.Location.Line, Column: interfaceMarker.Location.Column}
		collected.Add(kerrors.NewMalformedInput(pos,
			"//kryolite:interface on %s requires //kryolite:smart_contract on the same type", name))
	}
}

func (p *Parser) hasInterfaceBlock(metadata *models.PackageMetadata, subject string) bool {
	for _, block := range metadata.Blocks {
		if block.Kind == models.InterfaceBlock && block.Subject == subject {
			return true
		}
	}
	return false
}

// resolveInterfaceBlocks fills the method sets of interface blocks that rely
// on an interface declared in the package
func (p *Parser) resolveInterfaceBlocks(metadata *models.PackageMetadata) error {
	for i := range metadata.Blocks {
		block := &metadata.Blocks[i]
		if block.Kind != models.InterfaceBlock || block.Methods != nil {
			continue
		}
		methods, ok := metadata.Interfaces[block.Subject]
		if !ok {
			return kerrors.NewMalformedInput(block.Position, "interface %s is not declared in package %s",
				block.Subject, metadata.PackageName).
				WithSuggestion("Declare the interface in the package or list its methods with -Methods=A,B")
		}
		block.Methods = methods
	}
	return nil
}

// validateConstructor checks that New exists, takes no parameters and
// returns the root type by value or by pointer
func (p *Parser) validateConstructor(metadata *models.PackageMetadata) error {
	for _, file := range metadata.Files {
		for _, decl := range file.Ast.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != ConstructorName {
				continue
			}
			position := metadata.Fset.Position(fn.Pos())

			if fn.Type.TypeParams != nil && fn.Type.TypeParams.NumFields() > 0 {
				return p.reporter.ReportConstructorError(metadata, position, "must not have type parameters")
			}
			if fn.Type.Params.NumFields() != 0 {
				return p.reporter.ReportConstructorError(metadata, position, "must not take parameters")
			}
			if fn.Type.Results == nil || fn.Type.Results.NumFields() != 1 {
				return p.reporter.ReportConstructorError(metadata, position, "must return exactly one value")
			}

			pointer, ok := constructorResult(fn.Type.Results.List[0].Type, metadata.RootType)
			if !ok {
				return p.reporter.ReportConstructorError(metadata, position,
					fmt.Sprintf("must return %s or *%s", metadata.RootType, metadata.RootType))
			}

			metadata.Constructor = &models.ConstructorInfo{
				Name:           ConstructorName,
				ReturnsPointer: pointer,
				Position:       position,
			}
			return nil
		}
	}

	return p.reporter.ReportMissingConstructor(metadata)
}

// constructorResult reports whether expr names the root type and whether it is a pointer
func constructorResult(expr ast.Expr, root string) (pointer bool, ok bool) {
	if star, isStar := expr.(*ast.StarExpr); isStar {
		pointer = true
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return pointer, t.Name == root
	case *ast.IndexExpr:
		ident, isIdent := t.X.(*ast.Ident)
		return pointer, isIdent && ident.Name == root
	case *ast.IndexListExpr:
		ident, isIdent := t.X.(*ast.Ident)
		return pointer, isIdent && ident.Name == root
	}
	return false, false
}

// interfaceMethods lists the explicitly declared methods of an interface type
func interfaceMethods(iface *ast.InterfaceType) []string {
	methods := make([]string, 0)
	if iface.Methods == nil {
		return methods
	}
	for _, field := range iface.Methods.List {
		if _, ok := field.Type.(*ast.FuncType); !ok {
			continue
		}
		for _, name := range field.Names {
			methods = append(methods, name.Name)
		}
	}
	return methods
}

// interfaceSubject drops a package qualifier from an interface name
func interfaceSubject(name string) (subject string, qualified bool) {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:], true
	}
	return name, false
}
