package generator

import (
	"bytes"
	"path/filepath"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"go.uber.org/zap"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
	"github.com/kryolite/kryogen/internal/parser"
	"github.com/kryolite/kryogen/internal/transform"
	"github.com/kryolite/kryogen/internal/utils"
)

const (
	// GeneratedFileName is the file holding the synthesized exports
	GeneratedFileName = parser.GeneratedFilePrefix + "contract.go"

	DefaultOutputDir     = "build"
	DefaultRuntimeImport = "github.com/kryolite/kryogen/pkg/kryolite"

	InitSymbol    = "__init"
	DestroySymbol = "__destroy"
	StateSymbol   = "__state"

	// ExportPrefix names the wrapper function of an exported method
	ExportPrefix = "kryoliteExport"

	generatedHeader = "// Code generated by kryogen. DO NOT EDIT."
)

// Generator writes the rewritten sources of a contract package together with
// its export surface
type Generator struct {
	runtimeImport string
	outputDir     string
	logger        *zap.Logger
}

// NewGenerator creates a generator. Empty arguments select the defaults.
func NewGenerator(runtimeImport, outputDir string, logger *zap.Logger) *Generator {
	if runtimeImport == "" {
		runtimeImport = DefaultRuntimeImport
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		runtimeImport: runtimeImport,
		outputDir:     outputDir,
		logger:        logger.With(zap.String("component", "generator")),
	}
}

// OutputDir returns the directory generated files of a package go to
func (g *Generator) OutputDir(packagePath string) string {
	if filepath.IsAbs(g.outputDir) {
		return g.outputDir
	}
	return filepath.Join(packagePath, g.outputDir)
}

// GenerateModule builds the generated file set of one package. Void package
// functions are tagged in the rewritten sources instead of being wrapped.
func (g *Generator) GenerateModule(metadata *models.PackageMetadata, walked *transform.Result) (*models.GeneratedModule, error) {
	if metadata == nil || walked == nil {
		return nil, kerrors.New(kerrors.MalformedInputCode, "nothing to generate: package was not walked")
	}
	if !metadata.HasContract() {
		return nil, kerrors.Newf(kerrors.MalformedInputCode, "package %s declares no contract", metadata.PackageName)
	}
	if metadata.Constructor == nil {
		return nil, kerrors.NewMalformedInput(metadata.RootPosition, "contract %s has no constructor", metadata.RootType)
	}

	rootType, err := g.rootType(metadata)
	if err != nil {
		return nil, err
	}

	runtime := packageNameOf(g.runtimeImport)
	b := NewBuilder(runtime)
	im := NewImportManager()
	if err := im.Add(runtime, g.runtimeImport); err != nil {
		return nil, kerrors.WrapGenerateError(GeneratedFileName, err)
	}

	decls := []dst.Decl{g.initFunc(b, metadata), g.destroyFunc(b)}
	exports := []string{InitSymbol, DestroySymbol}

	if metadata.StateType != "" {
		decls = append(decls, g.stateFunc(b, dst.Clone(rootType).(dst.Expr)))
		exports = append(exports, StateSymbol)
	}

	for _, decl := range walked.Declarations {
		exports = append(exports, decl.Name)
		if decl.Kind == models.DeclStaticCall && !decl.Method.HasReturn() {
			Tag(decl.Func, decl.Name)
			continue
		}
		fn, err := g.exportFunc(b, im, rootType, decl)
		if err != nil {
			return nil, err
		}
		decls = append(decls, fn)
	}

	if needsMain(metadata) {
		decls = append(decls, b.Func("main", nil, nil))
	}

	outputDir := g.OutputDir(metadata.PackagePath)
	module := &models.GeneratedModule{
		PackageName: metadata.PackageName,
		OutputDir:   outputDir,
		Record:      walked.Record,
		Exports:     exports,
	}

	for _, file := range metadata.Files {
		var buf bytes.Buffer
		if err := decorator.Fprint(&buf, file.Dst); err != nil {
			return nil, kerrors.WrapGenerateError(file.Name, err)
		}
		path := filepath.Join(outputDir, file.Name)
		content, err := utils.FormatGoSource(path, buf.Bytes())
		if err != nil {
			return nil, err
		}
		module.Files = append(module.Files, models.GeneratedFile{Path: path, Content: content})
	}

	generated := &dst.File{
		Name:  b.Ident(metadata.PackageName),
		Decls: append([]dst.Decl{b.Import(im.Specs())}, decls...),
	}
	generated.Decs.Start.Append(generatedHeader)

	var buf bytes.Buffer
	if err := decorator.Fprint(&buf, generated); err != nil {
		return nil, kerrors.WrapGenerateError(GeneratedFileName, err)
	}
	path := filepath.Join(outputDir, GeneratedFileName)
	content, err := utils.FormatGoSource(path, buf.Bytes())
	if err != nil {
		return nil, err
	}
	module.Files = append(module.Files, models.GeneratedFile{Path: path, Content: content})

	g.logger.Debug("generated export surface",
		zap.String("package", metadata.PackageName),
		zap.Strings("exports", exports),
		zap.String("output", outputDir))

	return module, nil
}

// initFunc registers a fresh contract instance and hands its handle to the host
func (g *Generator) initFunc(b *Builder, metadata *models.PackageMetadata) *dst.FuncDecl {
	uint32Result := []*dst.Field{b.Result(b.Ident("uint32"))}
	constructor := b.Call(b.Ident(metadata.Constructor.Name))

	if metadata.Constructor.ReturnsPointer {
		return b.Export(InitSymbol, "kryoliteInit", nil, uint32Result,
			b.Return(b.Call(b.Runtime("Register"), constructor)))
	}
	return b.Export(InitSymbol, "kryoliteInit", nil, uint32Result,
		b.Define("instance", constructor),
		b.Return(b.Call(b.Runtime("Register"), b.AddressOf(b.Ident("instance")))))
}

func (g *Generator) destroyFunc(b *Builder) *dst.FuncDecl {
	return b.Export(DestroySymbol, "kryoliteDestroy",
		[]*dst.Field{b.Field("handle", b.Ident("uint32"))}, nil,
		b.Expr(b.Call(b.Runtime("Release"), b.Ident("handle"))))
}

func (g *Generator) stateFunc(b *Builder, stateType dst.Expr) *dst.FuncDecl {
	latest := b.Call(b.Instantiate("Latest", b.Pointer(stateType)))
	return b.Export(StateSymbol, "kryoliteState", nil, nil,
		b.Expr(b.Call(b.Runtime("SubmitState"), latest)))
}

// exportFunc builds the wrapper of one exported declaration. Methods take the
// instance handle first; results are pushed back to the host as JSON.
func (g *Generator) exportFunc(b *Builder, im *ImportManager, rootType dst.Expr, decl *models.Declaration) (*dst.FuncDecl, error) {
	var params []*dst.Field
	var target dst.Expr = b.Ident(decl.Name)

	if decl.Kind != models.DeclStaticCall {
		handle := handleName(decl.ParamNames)
		params = append(params, b.Field(handle, b.Ident("uint32")))
		instance := b.Call(b.Instantiate("Lookup", b.Pointer(dst.Clone(rootType).(dst.Expr))), b.Ident(handle))
		target = b.Method(instance, decl.Name)
	}

	args := make([]dst.Expr, 0, len(decl.ParamNames))
	for i, name := range decl.ParamNames {
		typ := dst.Clone(decl.ParamTypes[i]).(dst.Expr)
		if err := im.AddReferenced(decl.File, typ); err != nil {
			return nil, kerrors.WrapGenerateError(decl.Name, err).WithLocation(kerrors.LocationFromPosition(decl.Position))
		}
		params = append(params, b.Field(name, typ))
		args = append(args, b.Ident(name))
	}

	call := b.Call(target, args...)
	stmt := b.Expr(call)
	if decl.Method.HasReturn() {
		stmt = b.Expr(b.Call(b.Runtime("PushReturnJSON"), call))
	}
	return b.Export(decl.Name, ExportPrefix+decl.Name, params, nil, stmt), nil
}

// rootType returns the instance type produced by the constructor, without
// the pointer marker
func (g *Generator) rootType(metadata *models.PackageMetadata) (dst.Expr, error) {
	for _, file := range metadata.Files {
		for _, decl := range file.Dst.Decls {
			fn, ok := decl.(*dst.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != metadata.Constructor.Name {
				continue
			}
			if fn.Type.Results == nil || len(fn.Type.Results.List) != 1 {
				break
			}
			typ := fn.Type.Results.List[0].Type
			if star, ok := typ.(*dst.StarExpr); ok {
				typ = star.X
			}
			return dst.Clone(typ).(dst.Expr), nil
		}
	}
	return nil, kerrors.NewMalformedInput(metadata.Constructor.Position,
		"constructor %s of %s could not be located", metadata.Constructor.Name, metadata.RootType)
}

// handleName picks a handle parameter name that no method parameter uses
func handleName(params []string) string {
	name := "handle"
	for taken := true; taken; {
		taken = false
		for _, param := range params {
			if param == name {
				name = "_" + name
				taken = true
				break
			}
		}
	}
	return name
}

// needsMain reports whether a main package lacks its entry function
func needsMain(metadata *models.PackageMetadata) bool {
	if metadata.PackageName != "main" {
		return false
	}
	for _, file := range metadata.Files {
		for _, decl := range file.Dst.Decls {
			if fn, ok := decl.(*dst.FuncDecl); ok && fn.Recv == nil && fn.Name.Name == "main" {
				return false
			}
		}
	}
	return true
}
