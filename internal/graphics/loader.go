package graphics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Built-in procedural meshes, available without any asset files
const (
	MeshCube   = "cube"
	MeshSphere = "sphere"
)

// GLLoader loads meshes, shaders and textures into the current GL context
// and remembers them so Release can free everything at teardown.
// It must be used from the thread that owns the context.
type GLLoader struct {
	assetsPath string

	mu       sync.Mutex
	meshes   []*Mesh
	shaders  []*Shader
	textures []*Texture
}

// NewGLLoader creates a loader reading models/ and textures/ under assetsPath
func NewGLLoader(assetsPath string) *GLLoader {
	return &GLLoader{assetsPath: assetsPath}
}

// LoadMesh returns a built-in mesh or parses models/<name> as Wavefront OBJ
func (l *GLLoader) LoadMesh(name string) (*Mesh, error) {
	data, err := ReadMeshData(l.assetsPath, name)
	if err != nil {
		return nil, err
	}

	m := UploadMesh(name, data)
	l.mu.Lock()
	l.meshes = append(l.meshes, m)
	l.mu.Unlock()
	return m, nil
}

// LoadShader compiles and links a program from GLSL sources
func (l *GLLoader) LoadShader(vertexSource, fragmentSource string) (*Shader, error) {
	s, err := NewShaderFromSource(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.shaders = append(l.shaders, s)
	l.mu.Unlock()
	return s, nil
}

// LoadTexture decodes textures/<path> and uploads it
func (l *GLLoader) LoadTexture(path string) (*Texture, error) {
	t, err := LoadTexture(filepath.Join(l.assetsPath, "textures", path))
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.textures = append(l.textures, t)
	l.mu.Unlock()
	return t, nil
}

// Release frees every resource created by this loader
func (l *GLLoader) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, m := range l.meshes {
		m.Dispose()
	}
	for _, s := range l.shaders {
		s.Dispose()
	}
	for _, t := range l.textures {
		t.Dispose()
	}
	l.meshes, l.shaders, l.textures = nil, nil, nil
}

// ReadMeshData builds a built-in mesh or parses assetsPath/models/<name>
func ReadMeshData(assetsPath, name string) (MeshData, error) {
	switch name {
	case MeshCube:
		return CubeMeshData(), nil
	case MeshSphere:
		return SphereMeshData(16, 24), nil
	}

	f, err := os.Open(filepath.Join(assetsPath, "models", name))
	if err != nil {
		return MeshData{}, fmt.Errorf("could not open mesh file: %w", err)
	}
	defer f.Close()
	data, err := ParseOBJ(f)
	if err != nil {
		return MeshData{}, fmt.Errorf("mesh %q: %w", name, err)
	}
	return data, nil
}

// HeadlessLoader reads and validates the same assets as GLLoader but keeps
// everything in main memory. Meshes and textures carry sizes only.
type HeadlessLoader struct {
	assetsPath string
}

// NewHeadlessLoader creates a loader reading models/ and textures/ under assetsPath
func NewHeadlessLoader(assetsPath string) *HeadlessLoader {
	return &HeadlessLoader{assetsPath: assetsPath}
}

// LoadMesh parses the mesh and keeps only its vertex count
func (l *HeadlessLoader) LoadMesh(name string) (*Mesh, error) {
	data, err := ReadMeshData(l.assetsPath, name)
	if err != nil {
		return nil, err
	}
	return &Mesh{Name: name, VertexCount: int32(data.VertexCount())}, nil
}

// LoadShader only checks that both stages have source
func (l *HeadlessLoader) LoadShader(vertexSource, fragmentSource string) (*Shader, error) {
	if vertexSource == "" || fragmentSource == "" {
		return nil, fmt.Errorf("empty shader source")
	}
	return &Shader{}, nil
}

// LoadTexture decodes textures/<path> and keeps only its size
func (l *HeadlessLoader) LoadTexture(path string) (*Texture, error) {
	rgba, err := ReadTexture(filepath.Join(l.assetsPath, "textures", path))
	if err != nil {
		return nil, err
	}
	b := rgba.Bounds()
	return &Texture{Width: b.Dx(), Height: b.Dy()}, nil
}
