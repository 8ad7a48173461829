package entity

import (
	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/resource"

	"github.com/go-gl/mathgl/mgl32"
)

// Render resources of every entity kind
var (
	ParticleDescriptor = resource.Descriptor{
		Kind:           "particle",
		Mesh:           graphics.MeshSphere,
		VertexShader:   graphics.ColorVertexShader,
		FragmentShader: graphics.ColorFragmentShader,
	}
	DuckDescriptor = resource.Descriptor{
		Kind:           "duck",
		Mesh:           "duck.obj",
		VertexShader:   graphics.ColorVertexShader,
		FragmentShader: graphics.TextureFragmentShader,
		Texture:        "duck.png",
	}
	AsteroidDescriptor = resource.Descriptor{
		Kind:           "asteroid",
		Mesh:           graphics.MeshSphere,
		VertexShader:   graphics.ColorVertexShader,
		FragmentShader: graphics.ColorFragmentShader,
	}
	CubeDescriptor = resource.Descriptor{
		Kind:           "cube",
		Mesh:           graphics.MeshCube,
		VertexShader:   graphics.ColorVertexShader,
		FragmentShader: graphics.ColorFragmentShader,
	}
)

// Descriptors lists every kind, for preloading at startup
func Descriptors() []resource.Descriptor {
	return []resource.Descriptor{ParticleDescriptor, DuckDescriptor, AsteroidDescriptor, CubeDescriptor}
}

// appearance is the shared bundle of one kind as seen by a single instance.
// A nil cache means the entity is simulated but never drawn.
type appearance struct {
	cache  *resource.Cache
	desc   resource.Descriptor
	bundle *resource.Bundle
}

func newAppearance(cache *resource.Cache, desc resource.Descriptor) appearance {
	a := appearance{cache: cache, desc: desc}
	if cache != nil {
		a.bundle = cache.MustAcquire(desc)
	}
	return a
}

func (a *appearance) draw(ctx renderer.RenderContext, model mgl32.Mat4, color mgl32.Vec3) {
	if a.bundle == nil {
		if a.cache == nil {
			return
		}
		a.bundle = a.cache.MustAcquire(a.desc)
	}
	ctx.Backend.Draw(ctx.Call(a.bundle.Mesh, a.bundle.Shader, a.bundle.Texture, model, color))
}
