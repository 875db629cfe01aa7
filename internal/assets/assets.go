// Package assets handles loading the viewer's data files from disk.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/sensorlab/internal/logger"
)

// Kind names what an asset is for, used in error reports.
type Kind string

// Asset kinds loaded by the viewer.
const (
	KindModel Kind = "model"
	KindTable Kind = "table"
)

// AssetLoadError reports a data file that could not be read or decoded.
type AssetLoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// Manager reads files relative to a data directory and caches their bytes.
type Manager struct {
	root  string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{
		root:  dir,
		cache: NewCache(),
	}
}

// Resolve returns the on-disk path for an asset path. Absolute paths are kept.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filepath.Join(m.root, path)
}

// Load reads an asset, serving repeats from the cache.
func (m *Manager) Load(kind Kind, path string) ([]byte, error) {
	full := m.Resolve(path)

	if data, ok := m.cache.Get(full); ok {
		return data, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, &AssetLoadError{Kind: kind, Path: full, Err: err}
	}

	m.cache.Set(full, data)
	logger.Debug("asset loaded",
		zap.String("kind", string(kind)),
		zap.String("path", full),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}

// LoadAsync reads an asset on a background goroutine.
func (m *Manager) LoadAsync(ctx context.Context, kind Kind, path string) *Future[[]byte] {
	return Go(ctx, func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, &AssetLoadError{Kind: kind, Path: m.Resolve(path), Err: err}
		}
		return m.Load(kind, path)
	})
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns the manager's cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
