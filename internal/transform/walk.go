// Package transform runs the single traversal over a parsed contract package.
//
// Each file is visited once with dstutil.Apply. The visit desugars unit
// literals in place and hands every exported declaration to the parser for
// description. Records are then appended to a fresh accumulator block by
// block, so the record lists inherent methods and interface implementations
// in marker order.
package transform

import (
	"go/ast"

	"github.com/dave/dst"
	"github.com/dave/dst/dstutil"
	"go.uber.org/zap"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
	"github.com/kryolite/kryogen/internal/parser"
	"github.com/kryolite/kryogen/internal/rewrite"
)

// Result is the outcome of one traversal
type Result struct {
	Record       models.ContractRecord
	Declarations []*models.Declaration // exported declarations in record order
	Rewritten    int                   // unit literals replaced
}

// Walker drives the traversal
type Walker struct {
	parser   parser.ContractParser
	rewriter *rewrite.Rewriter
	logger   *zap.Logger
}

// NewWalker creates a walker
func NewWalker(p parser.ContractParser, rewriter *rewrite.Rewriter, logger *zap.Logger) *Walker {
	if rewriter == nil {
		rewriter = rewrite.New(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		parser:   p,
		rewriter: rewriter,
		logger:   logger.With(zap.String("component", "transform")),
	}
}

// Walk rewrites the package in place and builds its contract record. Every
// call owns its accumulator, so packages never share state.
func (w *Walker) Walk(metadata *models.PackageMetadata) (*Result, error) {
	if !metadata.HasContract() {
		return nil, kerrors.Newf(kerrors.MalformedInputCode, "package %s declares no //kryolite:smart_contract type", metadata.PackageName)
	}

	result := &Result{}
	perBlock := make([][]*models.Declaration, len(metadata.Blocks))

	for _, file := range metadata.Files {
		var walkErr error
		lookup := LiteralLookup(metadata, file)

		dstutil.Apply(file.Dst, func(c *dstutil.Cursor) bool {
			if walkErr != nil {
				return false
			}
			if w.rewriter.RewriteCursor(c, lookup) {
				result.Rewritten++
			}
			return true
		}, func(c *dstutil.Cursor) bool {
			// signatures are described after their literals were rewritten
			if walkErr != nil {
				return false
			}
			fn, ok := c.Node().(*dst.FuncDecl)
			if !ok {
				return true
			}
			kind := w.parser.Classify(metadata, fn)
			if !kind.IsExported() {
				return true
			}
			decl, err := w.parser.Describe(metadata, file, fn, kind)
			if err != nil {
				walkErr = err
				return false
			}
			if decl.Block < 0 || decl.Block >= len(perBlock) {
				return true
			}
			perBlock[decl.Block] = append(perBlock[decl.Block], decl)
			return true
		})

		if walkErr != nil {
			return nil, walkErr
		}
	}

	acc := models.NewAccumulator()
	for i, block := range metadata.Blocks {
		if err := acc.Observe(block.Subject); err != nil {
			return nil, kerrors.NewMalformedInput(block.Position, "%v", err)
		}
		for _, decl := range perBlock[i] {
			if err := acc.Append(decl.Method); err != nil {
				return nil, kerrors.NewMalformedInput(decl.Position, "%s is exported twice", decl.Name).
					WithCause(err).
					WithSuggestion("A package function and a method of the contract cannot share a name")
			}
			result.Declarations = append(result.Declarations, decl)
		}
	}

	record, err := acc.Flush()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.MalformedInputCode, "contract record is empty", err)
	}
	result.Record = record

	w.logger.Debug("walked contract package",
		zap.String("contract", record.Name),
		zap.Int("methods", len(record.Methods)),
		zap.Int("literals", result.Rewritten))

	return result, nil
}

// LiteralLookup maps decorated literals of a file back to the units recorded
// by the prepass
func LiteralLookup(metadata *models.PackageMetadata, file *models.SourceFile) rewrite.UnitLookup {
	return func(lit *dst.BasicLit) (string, bool) {
		if len(file.Literals) == 0 || file.Decorator == nil {
			return "", false
		}
		node, ok := file.Decorator.Ast.Nodes[lit].(*ast.BasicLit)
		if !ok {
			return "", false
		}
		unit, ok := file.Literals[metadata.Fset.Position(node.Pos()).Offset]
		return unit, ok
	}
}

// Walk runs one traversal with a default logger
func Walk(metadata *models.PackageMetadata, p parser.ContractParser, rewriter *rewrite.Rewriter) (*Result, error) {
	return NewWalker(p, rewriter, nil).Walk(metadata)
}
