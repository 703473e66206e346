package utils

import (
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	kerrors "github.com/kryolite/kryogen/internal/errors"
)

// formatOptions sorts and groups imports but never adds or drops one
var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// FormatGoSource formats generated Go source the way goimports does
func FormatGoSource(filename string, source []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, source, formatOptions)
	if err != nil {
		return nil, kerrors.WrapGenerateError(filepath.Base(filename), err)
	}
	return formatted, nil
}

// WriteGoFile writes a formatted file, creating its directory first
func WriteGoFile(filename string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return kerrors.WrapFileSystemError("create directory", filepath.Dir(filename), err)
	}
	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return kerrors.WrapFileSystemError("write", filename, err)
	}
	return nil
}
