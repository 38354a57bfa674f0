package assets

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/Faultbox/gxengine/internal/engine/model"
	"github.com/Faultbox/gxengine/pkg/vertex"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFullPaths(t *testing.T) {
	fs := NewFileSystem("/data", DefaultDirs())

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"model", fs.ModelFileFullPath("viking_room.obj"), filepath.Join("/data", "models", "viking_room.obj")},
		{"shader", fs.ShaderFileFullPath("xyz-vert.spv"), filepath.Join("/data", "shaders", "xyz-vert.spv")},
		{"texture", fs.TextureFileFullPath("C4Crate.png"), filepath.Join("/data", "textures", "C4Crate.png")},
		{"absolute", fs.ModelFileFullPath("/tmp/cube.obj"), "/tmp/cube.obj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestRead_Caches(t *testing.T) {
	root := t.TempDir()
	fs := NewFileSystem(root, DefaultDirs())
	path := fs.ShaderFileFullPath("xyz-vert.spv")
	writeFile(t, path, "spirv")

	data, err := fs.Read(path)
	if err != nil || string(data) != "spirv" {
		t.Fatalf("Read() = %q, %v", data, err)
	}

	// Served from cache even after the file changes.
	writeFile(t, path, "changed")
	data, _ = fs.ReadShader("xyz-vert.spv")
	if string(data) != "spirv" {
		t.Errorf("second read = %q, want cached content", data)
	}

	hits, misses := fs.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits %d misses, want 1/1", hits, misses)
	}

	fs.Purge()
	data, _ = fs.Read(path)
	if string(data) != "changed" {
		t.Errorf("after purge = %q, want fresh content", data)
	}
}

func TestRead_NotFound(t *testing.T) {
	fs := NewFileSystem(t.TempDir(), DefaultDirs())

	_, err := fs.ReadTexture("missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if fs.cache.Len() != 0 {
		t.Error("failed reads must not be cached")
	}
}

func TestMissing(t *testing.T) {
	root := t.TempDir()
	fs := NewFileSystem(root, DefaultDirs())
	writeFile(t, fs.ShaderFileFullPath("xyz-vert.spv"), "v")
	writeFile(t, fs.TextureFileFullPath("viking_room.png"), "t")

	missing := fs.Missing(
		[]string{"xyz-vert.spv", "color-frag.spv"},
		[]string{"viking_room.png", "C4Crate.png"},
	)
	if len(missing) != 2 || missing[0] != "color-frag.spv" || missing[1] != "C4Crate.png" {
		t.Errorf("Missing() = %v", missing)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			c.Set(key, []byte{byte(i)})
			c.Get(key)
			c.Get("absent")
		}(i)
	}
	wg.Wait()

	hits, misses := c.Stats()
	if hits != 8 || misses != 8 || c.Len() != 8 {
		t.Errorf("hits %d misses %d len %d", hits, misses, c.Len())
	}
}

func TestFileSystem_ResolvesForLoader(t *testing.T) {
	root := t.TempDir()
	fs := NewFileSystem(root, DefaultDirs())
	writeFile(t, fs.ModelFileFullPath("tri.obj"), triangleOBJ)

	l := model.NewLoader(fs, model.WithParser(model.FastParser{Read: fs.Read}))

	var mesh model.Mesh
	attrs, err := l.LoadFile("tri.obj", &mesh)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if attrs != vertex.Position || len(mesh.Vertices) != 3 || len(mesh.Indices) != 3 {
		t.Errorf("attrs %s vertices %d indices %d", attrs, len(mesh.Vertices), len(mesh.Indices))
	}

	// Second load comes from the cache.
	if _, err := l.LoadFile("tri.obj", &mesh); err != nil {
		t.Fatalf("second LoadFile() error = %v", err)
	}
	if hits, _ := fs.Stats(); hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}
}
