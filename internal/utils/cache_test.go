package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceCacheServesUnchangedFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.go")
	require.NoError(t, os.WriteFile(path, []byte("package counter\n"), 0644))

	cache := NewSourceCache()
	_, ok := cache.Lookup(path)
	assert.False(t, ok)

	require.NoError(t, cache.Store(path, []byte("package counter\n")))
	content, ok := cache.Lookup(path)
	require.True(t, ok)
	assert.Equal(t, "package counter\n", string(content))
	assert.Equal(t, 1, cache.Len())

	cache.Evict(path)
	assert.Equal(t, 0, cache.Len())
}

func TestSourceCacheDropsEditedFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.go")
	require.NoError(t, os.WriteFile(path, []byte("package counter\n"), 0644))

	cache := NewSourceCache()
	require.NoError(t, cache.Store(path, []byte("package counter\n")))

	require.NoError(t, os.WriteFile(path, []byte("package counter\n\nvar total = 1kryo\n"), 0644))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	_, ok := cache.Lookup(path)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len(), "stale entries are evicted on lookup")
}

func TestSourceCacheStoreMissingFile(t *testing.T) {
	cache := NewSourceCache()
	assert.Error(t, cache.Store(filepath.Join(t.TempDir(), "missing.go"), nil))

	require.Equal(t, 0, cache.Len())
	cache.Reset()
	assert.Equal(t, 0, cache.Len())
}
