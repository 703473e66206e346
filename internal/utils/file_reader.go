package utils

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/kryolite/kryogen/internal/errors"
)

// FileReader reads contract sources and go.mod files through a SourceCache
type FileReader struct {
	sources *SourceCache
}

// NewFileReader creates a reader with an empty cache
func NewFileReader() *FileReader {
	return &FileReader{sources: NewSourceCache()}
}

// ReadBytes returns the contents of a file. Read failures are IOFailure
// errors carrying the file system error text unchanged.
func (fr *FileReader) ReadBytes(filePath string) ([]byte, error) {
	cleanPath, err := fr.cleanPath(filePath)
	if err != nil {
		return nil, err
	}

	if cached, ok := fr.sources.Lookup(cleanPath); ok {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, kerrors.WrapFileSystemError("read", cleanPath, err)
	}

	// a file that vanished between read and stat is simply not cached
	_ = fr.sources.Store(cleanPath, content)

	return content, nil
}

// ReadFile returns the contents of a file as a string
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	content, err := fr.ReadBytes(filePath)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// InvalidateFile forgets the cached content of one file
func (fr *FileReader) InvalidateFile(filePath string) {
	fr.sources.Evict(filepath.Clean(filePath))
}

// CachedFiles returns the number of cached files
func (fr *FileReader) CachedFiles() int {
	return fr.sources.Len()
}

func (fr *FileReader) cleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", kerrors.Wrap(kerrors.IOFailureCode, fmt.Sprintf("cannot read %q", filePath), err)
	}
	return filepath.Clean(filePath), nil
}
