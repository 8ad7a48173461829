package graphics

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the interleaved layout: position(3) normal(3) uv(2)
const FloatsPerVertex = 8

// MeshData is an interleaved, non-indexed triangle list ready for upload
type MeshData struct {
	Vertices []float32
}

// VertexCount returns the number of vertices in the triangle list
func (d MeshData) VertexCount() int {
	return len(d.Vertices) / FloatsPerVertex
}

func (d *MeshData) push(p, n mgl32.Vec3, uv mgl32.Vec2) {
	d.Vertices = append(d.Vertices, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
}

// Mesh is a mesh uploaded to the GPU
type Mesh struct {
	Name        string
	VAO         uint32
	VBO         uint32
	VertexCount int32
}

// UploadMesh creates the VAO/VBO pair for data
func UploadMesh(name string, data MeshData) *Mesh {
	m := &Mesh{Name: name, VertexCount: int32(data.VertexCount())}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	if len(data.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*4, gl.Ptr(data.Vertices), gl.STATIC_DRAW)
	}

	stride := int32(FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)
	return m
}

// Draw issues the draw call for the mesh. The caller binds the shader.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (m *Mesh) Dispose() {
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
}

// CubeMeshData returns a unit cube centered on the origin
func CubeMeshData() MeshData {
	faces := []struct {
		n      mgl32.Vec3
		corner [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var d MeshData
	for _, f := range faces {
		for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
			d.push(f.corner[i], f.n, uvs[i])
		}
	}
	return d
}

// SphereMeshData returns a UV sphere of radius 1
func SphereMeshData(stacks, slices int) MeshData {
	point := func(st, sl int) (mgl32.Vec3, mgl32.Vec2) {
		phi := math.Pi * float64(st) / float64(stacks)
		theta := 2 * math.Pi * float64(sl) / float64(slices)
		p := mgl32.Vec3{
			float32(math.Sin(phi) * math.Cos(theta)),
			float32(math.Cos(phi)),
			float32(math.Sin(phi) * math.Sin(theta)),
		}
		return p, mgl32.Vec2{float32(sl) / float32(slices), float32(st) / float32(stacks)}
	}

	var d MeshData
	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			p00, t00 := point(st, sl)
			p01, t01 := point(st, sl+1)
			p10, t10 := point(st+1, sl)
			p11, t11 := point(st+1, sl+1)
			// unit sphere: the position is its own normal
			d.push(p00, p00, t00)
			d.push(p10, p10, t10)
			d.push(p11, p11, t11)
			d.push(p11, p11, t11)
			d.push(p01, p01, t01)
			d.push(p00, p00, t00)
		}
	}
	return d
}

// ParseOBJ reads a Wavefront OBJ stream into a triangle list.
// Polygons are fan-triangulated. Corners without a normal get the flat face
// normal; missing texture coordinates are zero.
func ParseOBJ(r io.Reader) (MeshData, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		texcoords []mgl32.Vec2
		d         MeshData
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return MeshData{}, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			vec := mgl32.Vec3{v[0], v[1], v[2]}
			if fields[0] == "v" {
				positions = append(positions, vec)
			} else {
				normals = append(normals, vec)
			}
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return MeshData{}, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			texcoords = append(texcoords, mgl32.Vec2{v[0], v[1]})
		case "f":
			if len(fields) < 4 {
				return MeshData{}, fmt.Errorf("obj line %d: face needs at least 3 vertices", lineNo)
			}
			type corner struct {
				p, n mgl32.Vec3
				uv   mgl32.Vec2
			}
			corners := make([]corner, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				parts := strings.Split(ref, "/")
				pi, err := resolveIndex(parts[0], len(positions))
				if err != nil {
					return MeshData{}, fmt.Errorf("obj line %d: position %w", lineNo, err)
				}
				c := corner{p: positions[pi]}
				if len(parts) > 1 && parts[1] != "" {
					ti, err := resolveIndex(parts[1], len(texcoords))
					if err != nil {
						return MeshData{}, fmt.Errorf("obj line %d: texcoord %w", lineNo, err)
					}
					c.uv = texcoords[ti]
				}
				if len(parts) > 2 && parts[2] != "" {
					ni, err := resolveIndex(parts[2], len(normals))
					if err != nil {
						return MeshData{}, fmt.Errorf("obj line %d: normal %w", lineNo, err)
					}
					c.n = normals[ni]
				}
				corners = append(corners, c)
			}
			for i := 1; i+1 < len(corners); i++ {
				tri := [3]corner{corners[0], corners[i], corners[i+1]}
				flat := faceNormal(tri[0].p, tri[1].p, tri[2].p)
				for _, c := range tri {
					if c.n.Len() == 0 {
						c.n = flat
					}
					d.push(c.p, c.n, c.uv)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return MeshData{}, fmt.Errorf("could not read obj: %w", err)
	}
	if len(d.Vertices) == 0 {
		return MeshData{}, fmt.Errorf("obj contains no faces")
	}
	return d, nil
}

// faceNormal is used for corners without a vn reference. Degenerate triangles get zero.
func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to a slice index
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, err)
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, count)
	}
	return i, nil
}
