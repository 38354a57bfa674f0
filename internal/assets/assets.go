// Package assets resolves and caches model, shader and texture files.
package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrNotFound marks a missing asset.
var ErrNotFound = errors.New("asset not found")

// Dirs names the asset subdirectories under a root.
type Dirs struct {
	Models   string
	Shaders  string
	Textures string
}

// DefaultDirs returns the standard layout.
func DefaultDirs() Dirs {
	return Dirs{Models: "models", Shaders: "shaders", Textures: "textures"}
}

// FileSystem maps asset names to paths under a root directory and caches
// file contents. It is safe for concurrent use.
type FileSystem struct {
	root  string
	dirs  Dirs
	cache *Cache
}

// NewFileSystem creates a resolver rooted at root.
func NewFileSystem(root string, dirs Dirs) *FileSystem {
	return &FileSystem{root: root, dirs: dirs, cache: NewCache()}
}

// Root returns the asset root directory.
func (f *FileSystem) Root() string { return f.root }

// ModelFileFullPath returns the path of a model file. Absolute names are returned as is.
func (f *FileSystem) ModelFileFullPath(name string) string {
	return f.fullPath(f.dirs.Models, name)
}

// ShaderFileFullPath returns the path of a compiled shader.
func (f *FileSystem) ShaderFileFullPath(name string) string {
	return f.fullPath(f.dirs.Shaders, name)
}

// TextureFileFullPath returns the path of a texture image.
func (f *FileSystem) TextureFileFullPath(name string) string {
	return f.fullPath(f.dirs.Textures, name)
}

func (f *FileSystem) fullPath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.root, dir, name)
}

// Read returns the contents of a file by full path, from cache when possible.
func (f *FileSystem) Read(path string) ([]byte, error) {
	if data, ok := f.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), ErrNotFound)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	f.cache.Set(path, data)
	return data, nil
}

// ReadShader reads a shader by name.
func (f *FileSystem) ReadShader(name string) ([]byte, error) {
	return f.Read(f.ShaderFileFullPath(name))
}

// ReadTexture reads a texture by name.
func (f *FileSystem) ReadTexture(name string) ([]byte, error) {
	return f.Read(f.TextureFileFullPath(name))
}

// Missing returns the names among shaders and textures that do not exist on disk.
func (f *FileSystem) Missing(shaders, textures []string) []string {
	var missing []string
	check := func(name, path string) {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, name)
		}
	}
	for _, s := range shaders {
		check(s, f.ShaderFileFullPath(s))
	}
	for _, t := range textures {
		check(t, f.TextureFileFullPath(t))
	}
	return missing
}

// Stats returns cache hit and miss counts.
func (f *FileSystem) Stats() (hits, misses int) {
	return f.cache.Stats()
}

// Purge drops all cached contents.
func (f *FileSystem) Purge() {
	f.cache.Clear()
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
	// Write lock: the counters change on every lookup.
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

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
