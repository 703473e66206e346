package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/kryolite/kryogen/internal/errors"
)

func TestFileReaderCaching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lottery.go")
	require.NoError(t, os.WriteFile(path, []byte("package lottery\n"), 0644))

	reader := NewFileReader()

	first, err := reader.ReadBytes(path)
	require.NoError(t, err)
	second, err := reader.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "package lottery\n", string(first))
	assert.Equal(t, string(first), second)
	assert.Equal(t, 1, reader.CachedFiles())

	reader.InvalidateFile(path)
	assert.Equal(t, 0, reader.CachedFiles())
}

func TestFileReaderMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.go")

	_, err := NewFileReader().ReadBytes(path)
	require.Error(t, err)

	assert.True(t, kerrors.HasCode(err, kerrors.IOFailureCode))

	var pathErr *fs.PathError
	require.True(t, kerrors.As(err, &pathErr))
	assert.Equal(t, pathErr.Error(), err.Error(), "the file system error text is reported unchanged")
}

func TestFileReaderEmptyPath(t *testing.T) {
	_, err := NewFileReader().ReadBytes("")
	assert.Error(t, err)
}
