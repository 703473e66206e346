package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one version of a file on disk
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(info os.FileInfo) fileStamp {
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}

type sourceEntry struct {
	content []byte
	stamp   fileStamp
}

// SourceCache keeps file contents keyed by clean path. An entry is served
// only while the file on disk still has the stamp it was read with, so a
// contract edited between two runs of the same process is read again.
type SourceCache struct {
	mu      sync.RWMutex
	entries map[string]sourceEntry
}

// NewSourceCache creates an empty cache
func NewSourceCache() *SourceCache {
	return &SourceCache{entries: make(map[string]sourceEntry)}
}

// Lookup returns the cached content of path if the file is unchanged. Stale
// entries are evicted.
func (c *SourceCache) Lookup(path string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	info, err := os.Stat(path)
	if err == nil && stampOf(info) == entry.stamp {
		return entry.content, true
	}

	c.Evict(path)
	return nil, false
}

// Store records content for path under the current stamp of the file
func (c *SourceCache) Store(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[path] = sourceEntry{content: content, stamp: stampOf(info)}
	c.mu.Unlock()
	return nil
}

// Evict drops path from the cache
func (c *SourceCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Reset drops every entry
func (c *SourceCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]sourceEntry)
	c.mu.Unlock()
}

// Len returns the number of cached files
func (c *SourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
