package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModParser maps package directories to import paths using go.mod files
type GoModParser struct {
	fileReader *FileReader
}

// NewGoModParser creates a parser that reads go.mod files through fileReader
func NewGoModParser(fileReader *FileReader) *GoModParser {
	return &GoModParser{fileReader: fileReader}
}

// ParseModuleName returns the module path declared by a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	goModPath = filepath.Clean(goModPath)
	if filepath.Base(goModPath) != "go.mod" {
		return "", fmt.Errorf("%s is not a go.mod file", goModPath)
	}

	content, err := p.fileReader.ReadBytes(goModPath)
	if err != nil {
		return "", err
	}
	module := modfile.ModulePath(content)
	if module == "" {
		return "", fmt.Errorf("%s has no module directive", goModPath)
	}
	return module, nil
}

// FindGoModFile returns the go.mod of the module containing startDir, which
// is the nearest one found walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "go.mod")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found in %s or any parent directory", startDir)
		}
		dir = parent
	}
}

// ImportPath returns the import path of the package in dir
func (p *GoModParser) ImportPath(dir string) (string, error) {
	goModPath, err := p.FindGoModFile(dir)
	if err != nil {
		return "", err
	}
	module, err := p.ParseModuleName(goModPath)
	if err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(filepath.Dir(goModPath), absDir)
	if err != nil {
		return "", err
	}
	switch {
	case rel == ".":
		return module, nil
	case rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("%s is outside module %s", dir, module)
	default:
		return path.Join(module, filepath.ToSlash(rel)), nil
	}
}
