package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/kryolite/kryogen/internal/errors"
)

// GeneratedFilePrefix starts the name of every file kryogen writes
const GeneratedFilePrefix = "autogen_"

// FileProcessor lists contract files and package directories
type FileProcessor struct {
	fileReader *FileReader
	skipDirs   map[string]bool
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return NewFileProcessorWithReader(NewFileReader())
}

// NewFileProcessorWithReader creates a file processor with an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{
		fileReader: reader,
		skipDirs: map[string]bool{
			"vendor":       true,
			"node_modules": true,
			"testdata":     true,
			"build":        true,
			"dist":         true,
			"target":       true,
		},
	}
}

// FileFilter selects the files a scan treats as contract sources
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter selects the directories a recursive scan descends into
type DirectoryFilter func(path string, info fs.DirEntry) bool

// DefaultGoFileFilter accepts .go files that are neither tests nor generated
func DefaultGoFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasPrefix(name, GeneratedFilePrefix)
	}
}

// SkipDirectory excludes a directory name from recursive scans. Output
// directories are registered here so generated copies are never re-read.
func (fp *FileProcessor) SkipDirectory(name string) {
	if name = filepath.Base(filepath.Clean(name)); name != "." && name != string(filepath.Separator) {
		fp.skipDirs[name] = true
	}
}

// DirectoryFilter returns the filter used by recursive scans
func (fp *FileProcessor) DirectoryFilter() DirectoryFilter {
	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !fp.skipDirs[name]
	}
}

// ContractFiles returns the sorted paths of the source files of one package directory
func (fp *FileProcessor) ContractFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, kerrors.WrapFileSystemError("read directory", dir, err)
	}

	filter := DefaultGoFileFilter()
	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if filter(path, entry) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// HasGoFiles checks if a directory contains any contract source files
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	files, err := fp.ContractFiles(dir)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// ScanDirectoriesWithGoFiles walks each root and returns every directory that
// holds contract source files, sorted per root and without duplicates.
// Skipped and hidden directories are not descended into.
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)
	keepDir := fp.DirectoryFilter()
	isSource := DefaultGoFileFilter()

	for _, root := range rootDirs {
		var found []string
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return kerrors.WrapFileSystemError("read directory", path, err)
			}
			if entry.IsDir() {
				if path != root && !keepDir(path, entry) {
					return fs.SkipDir
				}
				return nil
			}

			dir := filepath.Dir(path)
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return kerrors.WrapFileSystemError("resolve", dir, err)
			}
			if !seen[absDir] && isSource(path, entry) {
				seen[absDir] = true
				found = append(found, dir)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		packageDirs = append(packageDirs, found...)
	}

	return packageDirs, nil
}

// RemovePaths deletes generated files and directories and returns the ones
// that existed. Missing paths are skipped.
func (fp *FileProcessor) RemovePaths(paths []string) ([]string, error) {
	var removed []string
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return removed, kerrors.WrapFileSystemError("stat", path, err)
		}

		if err := os.RemoveAll(path); err != nil {
			return removed, kerrors.WrapFileSystemError("remove", path, err)
		}
		fp.fileReader.InvalidateFile(path)
		removed = append(removed, path)
	}
	return removed, nil
}

// GetFileReader returns the underlying FileReader
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}
