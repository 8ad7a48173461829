package graphics

import _ "embed"

// GLSL sources shared by every entity type. All of them read the
// ModelMatrix, ViewMatrix, ProjectionMatrix and OverallColor uniforms.
var (
	//go:embed shaders/color.vert
	ColorVertexShader string

	//go:embed shaders/color.frag
	ColorFragmentShader string

	//go:embed shaders/texture.frag
	TextureFragmentShader string
)
