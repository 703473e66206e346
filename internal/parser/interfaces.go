package parser

import (
	"github.com/dave/dst"

	"github.com/kryolite/kryogen/internal/models"
)

// ContractParser defines the interface for reading a contract package into metadata
type ContractParser interface {
	ParseDirectory(path string) (*models.PackageMetadata, error)
	ParseSource(filename, source string) (*models.PackageMetadata, error)
	Classify(metadata *models.PackageMetadata, decl *dst.FuncDecl) models.DeclKind
	Describe(metadata *models.PackageMetadata, file *models.SourceFile, decl *dst.FuncDecl, kind models.DeclKind) (*models.Declaration, error)
}
