package renderer

import (
	"mini-scene/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawCall is everything a backend needs to draw one entity
type DrawCall struct {
	Mesh    *graphics.Mesh
	Shader  *graphics.Shader
	Texture *graphics.Texture // nil for untextured entities

	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Color      mgl32.Vec3
}

// Backend performs draw calls. The scene never manages the graphics context itself.
type Backend interface {
	Draw(call DrawCall)
}

// RenderContext provides shared context for every entity rendered this frame
type RenderContext struct {
	Camera  *graphics.Camera
	Backend Backend
	DT      float64
}

// Call builds a draw call using the context camera's current view and projection
func (ctx RenderContext) Call(mesh *graphics.Mesh, shader *graphics.Shader, texture *graphics.Texture, model mgl32.Mat4, color mgl32.Vec3) DrawCall {
	return DrawCall{
		Mesh:       mesh,
		Shader:     shader,
		Texture:    texture,
		Model:      model,
		View:       ctx.Camera.View(),
		Projection: ctx.Camera.Projection(),
		Color:      color,
	}
}
