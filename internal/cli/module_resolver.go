package cli

import (
	"github.com/kryolite/kryogen/internal/utils"
)

// ModuleResolver resolves import paths of package directories from go.mod
type ModuleResolver struct {
	goMod *utils.GoModParser
	cache map[string]string
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goMod: utils.NewGoModParser(utils.NewFileReader()),
		cache: make(map[string]string),
	}
}

// ResolveModuleName returns the module path of the go.mod governing dir
func (r *ModuleResolver) ResolveModuleName(dir string) (string, error) {
	goModPath, err := r.goMod.FindGoModFile(dir)
	if err != nil {
		return "", err
	}
	return r.goMod.ParseModuleName(goModPath)
}

// BuildPackagePath returns the import path of a package directory. Packages
// outside any module resolve to an empty path without error so they can
// still be generated.
func (r *ModuleResolver) BuildPackagePath(packageDir string) string {
	if path, ok := r.cache[packageDir]; ok {
		return path
	}
	path, err := r.goMod.ImportPath(packageDir)
	if err != nil {
		path = ""
	}
	r.cache[packageDir] = path
	return path
}
