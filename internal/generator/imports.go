package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/dst"

	"github.com/kryolite/kryogen/internal/models"
)

// ImportSpec is one import of the generated file
type ImportSpec struct {
	Alias string // package name used in the generated code
	Path  string
}

// ImportManager collects the imports of the generated file and rejects two
// packages claiming the same name
type ImportManager struct {
	byAlias map[string]string // alias -> path
}

// NewImportManager creates an empty import manager
func NewImportManager() *ImportManager {
	return &ImportManager{byAlias: make(map[string]string)}
}

// Add registers an import under an alias
func (im *ImportManager) Add(alias, path string) error {
	if existing, ok := im.byAlias[alias]; ok && existing != path {
		return fmt.Errorf("package name %s refers to both %s and %s", alias, existing, path)
	}
	im.byAlias[alias] = path
	return nil
}

// AddReferenced registers the imports a type expression from the given file refers to
func (im *ImportManager) AddReferenced(file *models.SourceFile, expr dst.Expr) error {
	var err error
	dst.Inspect(expr, func(node dst.Node) bool {
		if err != nil {
			return false
		}
		sel, ok := node.(*dst.SelectorExpr)
		if !ok {
			return true
		}
		pkg, ok := sel.X.(*dst.Ident)
		if !ok {
			return true
		}
		path, found := importPathOf(file, pkg.Name)
		if !found {
			err = fmt.Errorf("%s: no import provides package %s", file.Name, pkg.Name)
			return false
		}
		err = im.Add(pkg.Name, path)
		return false
	})
	return err
}

// Specs returns the collected imports sorted by path
func (im *ImportManager) Specs() []ImportSpec {
	specs := make([]ImportSpec, 0, len(im.byAlias))
	for alias, path := range im.byAlias {
		specs = append(specs, ImportSpec{Alias: alias, Path: path})
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})
	return specs
}

// importPathOf finds the import of a file that binds a package name
func importPathOf(file *models.SourceFile, name string) (string, bool) {
	if file == nil || file.Dst == nil {
		return "", false
	}
	for _, spec := range file.Dst.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		bound := packageNameOf(path)
		if spec.Name != nil {
			bound = spec.Name.Name
		}
		if bound == name {
			return path, true
		}
	}
	return "", false
}

// packageNameOf guesses the package name of an import path from its last
// element, skipping a major version suffix
func packageNameOf(path string) string {
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	if len(parts) > 1 && isMajorVersion(name) {
		name = parts[len(parts)-2]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "_")
}

func isMajorVersion(element string) bool {
	if len(element) < 2 || element[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(element[1:])
	return err == nil
}
