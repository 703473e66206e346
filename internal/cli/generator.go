package cli

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/generator"
	"github.com/kryolite/kryogen/internal/manifest"
	"github.com/kryolite/kryogen/internal/models"
	"github.com/kryolite/kryogen/internal/parser"
	"github.com/kryolite/kryogen/internal/rewrite"
	"github.com/kryolite/kryogen/internal/transform"
	"github.com/kryolite/kryogen/internal/utils"
)

// Generator runs the contract pipeline over every package it is pointed at
type Generator struct {
	config         *Config
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	rewriter       *rewrite.Rewriter
	parser         parser.ContractParser
	codeGenerator  generator.CodeGenerator
	diagnostics    *utils.DiagnosticSystem
	logger         *zap.Logger
	summary        GenerationSummary
}

// PackageResult is the outcome of one package invocation
type PackageResult struct {
	RunID        string
	Dir          string
	ImportPath   string
	Module       *models.GeneratedModule
	ManifestPath string
	Rewritten    int
}

// NewGenerator creates a pipeline. A nil config selects the defaults, nil
// diagnostics print nothing and a nil logger discards structured logs.
func NewGenerator(config *Config, diagnostics *utils.DiagnosticSystem, logger *zap.Logger) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rewriter := config.Rewriter()
	return &Generator{
		config:         config,
		scanner:        NewDirectoryScanner(config.OutputDir),
		moduleResolver: NewModuleResolver(),
		rewriter:       rewriter,
		parser:         parser.NewParser(rewriter, logger),
		codeGenerator:  generator.NewGenerator(config.RuntimeImport, config.OutputDir, logger),
		diagnostics:    diagnostics,
		logger:         logger.With(zap.String("component", "pipeline")),
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run processes the packages under directories one after another. The first
// failing package stops the run.
func (g *Generator) Run(directories []string) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	if len(directories) == 0 {
		directories = []string{"./..."}
	}
	g.diagnostics.Debug("Scanning directories: %v", directories)

	g.diagnostics.StartProgress("Scanning directories for Go packages")
	packageDirs, err := g.scanner.ScanDirectories(directories)
	if err != nil {
		g.diagnostics.EndProgress(false)
		return err
	}
	g.diagnostics.EndProgress(true)
	g.summary.PackagesScanned = len(packageDirs)

	for _, dir := range packageDirs {
		result, err := g.GeneratePackage(dir)
		if err != nil {
			return err
		}
		if result == nil {
			g.diagnostics.Verbose("Skipping %s (no //kryolite:smart_contract type)", dir)
			continue
		}

		g.summary.ContractsGenerated++
		g.summary.MethodsExported += len(result.Module.Record.Methods)
		g.summary.LiteralsRewritten += result.Rewritten
		g.summary.Manifests = append(g.summary.Manifests, result.ManifestPath)
		for _, file := range result.Module.Files {
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.Path)
		}
	}

	g.logger.Info("generation finished",
		zap.Int("packages", g.summary.PackagesScanned),
		zap.Int("contracts", g.summary.ContractsGenerated),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// GeneratePackage runs parse, traversal, synthesis, file output and manifest
// flush for one package directory. A package without a contract type yields
// a nil result. Nothing is flushed to the manifest unless every earlier step
// succeeded.
func (g *Generator) GeneratePackage(dir string) (*PackageResult, error) {
	result := &PackageResult{
		RunID:      uuid.NewString(),
		Dir:        dir,
		ImportPath: g.moduleResolver.BuildPackagePath(dir),
	}
	logger := g.logger.With(
		zap.String("run_id", result.RunID),
		zap.String("package_dir", dir))

	metadata, err := g.parser.ParseDirectory(dir)
	if err != nil {
		return nil, g.annotate(err, result)
	}
	if !metadata.HasContract() {
		logger.Debug("no contract in package")
		return nil, nil
	}

	g.diagnostics.Section(packageTitle(metadata, result))
	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()

	g.diagnostics.StartProgress("Walking %s", metadata.RootType)
	walked, err := transform.NewWalker(g.parser, g.rewriter, logger).Walk(metadata)
	if err != nil {
		g.diagnostics.EndProgress(false)
		return nil, g.annotate(err, result)
	}
	g.diagnostics.EndProgress(true)
	result.Rewritten = walked.Rewritten

	g.diagnostics.StartProgress("Synthesizing exports")
	module, err := g.codeGenerator.GenerateModule(metadata, walked)
	if err != nil {
		g.diagnostics.EndProgress(false)
		return nil, g.annotate(err, result)
	}
	g.diagnostics.EndProgress(true)
	result.Module = module

	var written []string
	g.diagnostics.StartProgress("Writing %s", module.OutputDir)
	for _, file := range module.Files {
		if err := utils.WriteGoFile(file.Path, file.Content); err != nil {
			g.diagnostics.EndProgress(false)
			g.rollback(written, logger)
			return nil, g.annotate(err, result)
		}
		written = append(written, file.Path)
	}
	g.diagnostics.EndProgress(true)

	result.ManifestPath = g.manifestPath(dir)
	g.diagnostics.StartProgress("Writing manifest %s", result.ManifestPath)
	if err := manifest.NewWriter(result.ManifestPath, logger).Flush(module.Record); err != nil {
		g.diagnostics.EndProgress(false)
		g.rollback(written, logger)
		return nil, g.annotate(err, result)
	}
	g.diagnostics.EndProgress(true)

	for _, symbol := range module.Exports {
		g.diagnostics.List("%s", symbol)
	}
	logger.Info("contract generated",
		zap.String("contract", module.Record.Name),
		zap.Int("methods", len(module.Record.Methods)),
		zap.Int("literals", walked.Rewritten))

	return result, nil
}

// rollback removes the files an invocation wrote before it failed, so the
// export surface never outlives the manifest describing it
func (g *Generator) rollback(paths []string, logger *zap.Logger) {
	if len(paths) == 0 {
		return
	}
	removed, err := utils.NewFileProcessor().RemovePaths(paths)
	if err != nil {
		logger.Warn("rollback incomplete", zap.Strings("removed", removed), zap.Error(err))
		return
	}
	logger.Debug("rolled back generated files", zap.Strings("removed", removed))
}

func (g *Generator) manifestPath(dir string) string {
	if filepath.IsAbs(g.config.ManifestPath) {
		return g.config.ManifestPath
	}
	return filepath.Join(dir, g.config.ManifestPath)
}

// annotate attaches the package and run to a kryogen error so the reporter
// can show which invocation failed
func (g *Generator) annotate(err error, result *PackageResult) error {
	var base *kerrors.BaseError
	if kerrors.As(err, &base) {
		base.WithContext("package", result.Dir).WithContext("run_id", result.RunID)
	}
	return err
}

func packageTitle(metadata *models.PackageMetadata, result *PackageResult) string {
	if result.ImportPath != "" {
		return metadata.RootType + " (" + result.ImportPath + ")"
	}
	return metadata.RootType + " (" + metadata.PackageName + ")"
}
