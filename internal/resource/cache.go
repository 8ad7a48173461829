// Package resource keeps the render resources shared by every instance of an
// entity type. A type's bundle is loaded the first time it is acquired and
// lives until Release.
package resource

import (
	"errors"
	"fmt"
	"sync"

	"mini-scene/internal/graphics"
	"mini-scene/internal/logging"
)

// ErrLoad wraps every failure reported by the Loader.
var ErrLoad = errors.New("resource load failed")

// Loader creates GPU-facing resources. Failures are fatal for the kind being acquired.
type Loader interface {
	LoadMesh(name string) (*graphics.Mesh, error)
	LoadShader(vertexSource, fragmentSource string) (*graphics.Shader, error)
	LoadTexture(path string) (*graphics.Texture, error)
}

// Releaser is implemented by loaders that own the resources they created.
type Releaser interface {
	Release()
}

// Descriptor names the resources of one entity type.
type Descriptor struct {
	Kind           string
	Mesh           string
	VertexShader   string
	FragmentShader string
	Texture        string // optional
}

// Bundle is the shared, read-only resource set of one kind.
type Bundle struct {
	Kind    string
	Mesh    *graphics.Mesh
	Shader  *graphics.Shader
	Texture *graphics.Texture
}

type shaderKey struct {
	vertex, fragment string
}

// Cache maps kinds to bundles. Meshes, shaders and textures are also
// deduplicated by name so kinds sharing a mesh load it once.
type Cache struct {
	loader Loader

	mu       sync.RWMutex
	bundles  map[string]*Bundle
	meshes   map[string]*graphics.Mesh
	shaders  map[shaderKey]*graphics.Shader
	textures map[string]*graphics.Texture
	released bool
}

// NewCache creates an empty cache backed by loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader:   loader,
		bundles:  make(map[string]*Bundle),
		meshes:   make(map[string]*graphics.Mesh),
		shaders:  make(map[shaderKey]*graphics.Shader),
		textures: make(map[string]*graphics.Texture),
	}
}

// Acquire returns the bundle for d.Kind, loading it on first use.
// A failed load is not cached; the error wraps ErrLoad.
func (c *Cache) Acquire(d Descriptor) (*Bundle, error) {
	c.mu.RLock()
	if b, ok := c.bundles[d.Kind]; ok {
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if b, ok := c.bundles[d.Kind]; ok {
		return b, nil
	}
	if c.released {
		return nil, fmt.Errorf("%w: %s: cache already released", ErrLoad, d.Kind)
	}

	b, err := c.load(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, d.Kind, err)
	}
	c.bundles[d.Kind] = b
	logging.Logger().Info("loaded render resources", "kind", d.Kind, "mesh", d.Mesh, "texture", d.Texture)
	return b, nil
}

// MustAcquire is Acquire for callers that cannot recover: a missing asset
// at this point is a broken installation.
func (c *Cache) MustAcquire(d Descriptor) *Bundle {
	b, err := c.Acquire(d)
	if err != nil {
		panic(err)
	}
	return b
}

// Preload acquires every descriptor, stopping at the first failure.
func (c *Cache) Preload(ds ...Descriptor) error {
	for _, d := range ds {
		if _, err := c.Acquire(d); err != nil {
			return err
		}
	}
	return nil
}

// Loaded reports whether the kind has been acquired.
func (c *Cache) Loaded(kind string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bundles[kind]
	return ok
}

// Len returns the number of loaded kinds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bundles)
}

// Release drops every bundle and lets the loader free GPU memory.
// Later Acquire calls fail. Calling Release twice is harmless.
func (c *Cache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true

	clear(c.bundles)
	clear(c.meshes)
	clear(c.shaders)
	clear(c.textures)
	if r, ok := c.loader.(Releaser); ok {
		r.Release()
	}
	logging.Logger().Info("released render resources")
}

// load must be called with c.mu held.
func (c *Cache) load(d Descriptor) (*Bundle, error) {
	b := &Bundle{Kind: d.Kind}

	if m, ok := c.meshes[d.Mesh]; ok {
		b.Mesh = m
	} else {
		m, err := c.loader.LoadMesh(d.Mesh)
		if err != nil {
			return nil, err
		}
		c.meshes[d.Mesh] = m
		b.Mesh = m
	}

	key := shaderKey{d.VertexShader, d.FragmentShader}
	if s, ok := c.shaders[key]; ok {
		b.Shader = s
	} else {
		s, err := c.loader.LoadShader(d.VertexShader, d.FragmentShader)
		if err != nil {
			return nil, err
		}
		c.shaders[key] = s
		b.Shader = s
	}

	if d.Texture != "" {
		if t, ok := c.textures[d.Texture]; ok {
			b.Texture = t
		} else {
			t, err := c.loader.LoadTexture(d.Texture)
			if err != nil {
				return nil, err
			}
			c.textures[d.Texture] = t
			b.Texture = t
		}
	}
	return b, nil
}
