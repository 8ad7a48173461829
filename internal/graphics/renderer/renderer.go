package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLBackend issues draw calls against the current OpenGL context
type GLBackend struct {
	ClearColor mgl32.Vec4
}

// NewGLBackend configures global GL state and returns the backend.
// The GL context must be current on the calling thread.
func NewGLBackend() *GLBackend {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	return &GLBackend{ClearColor: mgl32.Vec4{0.1, 0.1, 0.1, 1.0}}
}

// BeginFrame clears the color and depth buffers
func (b *GLBackend) BeginFrame() {
	gl.ClearColor(b.ClearColor[0], b.ClearColor[1], b.ClearColor[2], b.ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetViewport updates the GL viewport after a framebuffer resize
func (b *GLBackend) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw binds the shader, sets the camera and model uniforms and draws the mesh
func (b *GLBackend) Draw(call DrawCall) {
	if call.Mesh == nil || call.Shader == nil {
		return
	}
	call.Shader.Use()
	call.Shader.SetMat4("ProjectionMatrix", call.Projection)
	call.Shader.SetMat4("ViewMatrix", call.View)
	call.Shader.SetMat4("ModelMatrix", call.Model)
	call.Shader.SetVec3("OverallColor", call.Color)

	if call.Texture != nil {
		call.Texture.Bind(0)
		call.Shader.SetInt("Texture", 0)
	}

	call.Mesh.Draw()
}
