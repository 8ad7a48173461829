package graphics

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeMeshData(t *testing.T) {
	d := CubeMeshData()
	assert.Equal(t, 36, d.VertexCount())

	for i := 0; i < d.VertexCount(); i++ {
		v := d.Vertices[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
		for _, c := range v[:3] {
			assert.InDelta(t, 0.5, abs(c), 1e-6)
		}
		n := mgl32.Vec3{v[3], v[4], v[5]}
		assert.InDelta(t, 1, n.Len(), 1e-6)
	}
}

func TestSphereMeshData(t *testing.T) {
	d := SphereMeshData(4, 8)
	assert.Equal(t, 4*8*6, d.VertexCount())

	for i := 0; i < d.VertexCount(); i++ {
		v := d.Vertices[i*FloatsPerVertex:]
		assert.InDelta(t, 1, mgl32.Vec3{v[0], v[1], v[2]}.Len(), 1e-5)
	}
}

func TestParseOBJ(t *testing.T) {
	src := `# quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 1
vn 0 0 1
f 1/1/1 2/1/1 3/2/1 4/2/1
`
	d, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	// quad is fan-triangulated into two triangles
	require.Equal(t, 6, d.VertexCount())

	third := d.Vertices[2*FloatsPerVertex : 3*FloatsPerVertex]
	assert.Equal(t, []float32{1, 1, 0, 0, 0, 1, 1, 1}, third)
}

func TestParseOBJNegativeAndPositionOnly(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	d, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 3, d.VertexCount())
	// no vn: the counter-clockwise face normal is filled in
	assert.Equal(t, []float32{0, 1, 0, 0, 0, 1, 0, 0}, d.Vertices[2*FloatsPerVertex:])
}

func TestParseOBJErrors(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"bad float":      "v 0 x 0\n",
		"short vertex":   "v 0 0\n",
		"index range":    "v 0 0 0\nf 1 2 3\n",
		"two point face": "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
