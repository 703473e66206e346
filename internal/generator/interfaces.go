package generator

import (
	"github.com/kryolite/kryogen/internal/models"
	"github.com/kryolite/kryogen/internal/transform"
)

// CodeGenerator synthesizes the export surface of a walked contract package
type CodeGenerator interface {
	GenerateModule(metadata *models.PackageMetadata, walked *transform.Result) (*models.GeneratedModule, error)
}
