// Package preview is a software render backend. It draws every entity as a
// flat disc at its projected origin, which is enough to inspect a scene
// without a GL context.
package preview

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"mini-scene/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
)

// Disc is one projected draw call, in pixels
type Disc struct {
	X, Y, Radius float64
	Depth        float32 // clip-space w, larger is farther
	Color        mgl32.Vec3
}

// Backend collects draw calls for a frame and paints them back to front
type Backend struct {
	Background gg.RGBA

	dc     *gg.Context
	width  int
	height int
	discs  []Disc
}

// New creates a backend with a width x height canvas
func New(width, height int) *Backend {
	b := &Backend{
		Background: gg.RGB(0.1, 0.1, 0.1),
		dc:         gg.NewContext(width, height),
		width:      width,
		height:     height,
	}
	b.dc.ClearWithColor(b.Background)
	return b
}

// BeginFrame drops collected discs and clears the canvas
func (b *Backend) BeginFrame() {
	b.discs = b.discs[:0]
	b.dc.ClearWithColor(b.Background)
}

// Draw projects the model origin of call. Calls behind the camera or
// outside the view volume are dropped.
func (b *Backend) Draw(call renderer.DrawCall) {
	clip := call.Projection.Mul4(call.View).Mul4(call.Model).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	w := clip.W()
	if w <= 0 {
		return
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 || ndc.Z() > 1 {
		return
	}

	// largest axis scale of the model, seen at distance w
	scale := max(call.Model.Col(0).Vec3().Len(), call.Model.Col(1).Vec3().Len(), call.Model.Col(2).Vec3().Len())
	focal := call.Projection.At(1, 1) * float32(b.height) / 2
	r := float64(scale * focal / w / 2)

	b.discs = append(b.discs, Disc{
		X:      float64((ndc.X() + 1) / 2 * float32(b.width)),
		Y:      float64((1 - ndc.Y()) / 2 * float32(b.height)),
		Radius: max(r, 1),
		Depth:  w,
		Color:  call.Color,
	})
}

// Discs returns the discs collected this frame in draw order
func (b *Backend) Discs() []Disc {
	return b.discs
}

// Flush paints the collected discs, farthest first
func (b *Backend) Flush() error {
	sorted := slices.Clone(b.discs)
	slices.SortStableFunc(sorted, func(x, y Disc) int {
		return cmp.Compare(y.Depth, x.Depth)
	})
	for _, d := range sorted {
		b.dc.SetRGB(float64(d.Color.X()), float64(d.Color.Y()), float64(d.Color.Z()))
		b.dc.DrawCircle(d.X, d.Y, d.Radius)
		if err := b.dc.Fill(); err != nil {
			return fmt.Errorf("fill disc: %w", err)
		}
	}
	return nil
}

// SavePNG flushes and writes the canvas to path
func (b *Backend) SavePNG(path string) error {
	if err := b.Flush(); err != nil {
		return err
	}
	return b.dc.SavePNG(path)
}

// EncodePNG flushes and writes the canvas to w
func (b *Backend) EncodePNG(w io.Writer) error {
	if err := b.Flush(); err != nil {
		return err
	}
	return b.dc.EncodePNG(w)
}

// Close releases the canvas
func (b *Backend) Close() error {
	return b.dc.Close()
}
