package cli

import (
	"path/filepath"
	"strings"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/utils"
)

// RecursiveSuffix marks a directory argument that is scanned recursively
const RecursiveSuffix = "/..."

// DirectoryScanner resolves directory arguments into package directories
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a scanner. Every name in skip is excluded from
// recursive scans in addition to the built-in list.
func NewDirectoryScanner(skip ...string) *DirectoryScanner {
	fp := utils.NewFileProcessor()
	for _, name := range skip {
		fp.SkipDirectory(name)
	}
	return &DirectoryScanner{fileProcessor: fp}
}

// ScanDirectories returns the directories holding Go source files. A plain
// argument names exactly one package directory; dir/... walks the tree.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	for _, rootDir := range rootDirs {
		base, recursive := splitPattern(rootDir)

		cleanPath, err := filepath.Abs(base)
		if err != nil {
			return nil, kerrors.WrapFileSystemError("resolve", base, err)
		}

		var dirs []string
		if recursive {
			dirs, err = s.fileProcessor.ScanDirectoriesWithGoFiles([]string{cleanPath})
			if err != nil {
				return nil, err
			}
		} else {
			ok, err := s.fileProcessor.HasGoFiles(cleanPath)
			if err != nil {
				return nil, err
			}
			if ok {
				dirs = []string{cleanPath}
			}
		}

		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				packageDirs = append(packageDirs, dir)
			}
		}
	}

	return packageDirs, nil
}

// splitPattern strips a trailing /... and reports whether it was present
func splitPattern(dir string) (string, bool) {
	if dir == "..." {
		return ".", true
	}
	if strings.HasSuffix(dir, RecursiveSuffix) {
		base := strings.TrimSuffix(dir, RecursiveSuffix)
		if base == "" {
			base = "."
		}
		return base, true
	}
	return dir, false
}
