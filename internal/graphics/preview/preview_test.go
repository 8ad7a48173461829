package preview

import (
	"bytes"
	"image/png"
	"testing"

	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderCtx(b *Backend) renderer.RenderContext {
	cam := graphics.NewCamera(60, 1, 0.1, 100)
	return renderer.RenderContext{Camera: cam, Backend: b}
}

func TestDrawProjectsOrigin(t *testing.T) {
	b := New(200, 200)
	defer b.Close()
	ctx := renderCtx(b)

	red := mgl32.Vec3{1, 0, 0}
	b.Draw(ctx.Call(nil, nil, nil, mgl32.Scale3D(2, 2, 2), red))
	// camera sits at z=-20 looking at the origin: z=-30 is behind it
	b.Draw(ctx.Call(nil, nil, nil, mgl32.Translate3D(0, 0, -30), red))
	// far outside the frustum
	b.Draw(ctx.Call(nil, nil, nil, mgl32.Translate3D(100, 0, 0), red))

	require.Len(t, b.Discs(), 1)
	d := b.Discs()[0]
	assert.InDelta(t, 100, d.X, 1e-3)
	assert.InDelta(t, 100, d.Y, 1e-3)
	assert.InDelta(t, 20, d.Depth, 1e-3)
	assert.Greater(t, d.Radius, 1.0)
}

func TestNearerDiscsCoverFarther(t *testing.T) {
	b := New(64, 64)
	defer b.Close()
	ctx := renderCtx(b)

	big := mgl32.Scale3D(6, 6, 6)
	// nearer (blue) first in draw order, farther (green) second
	b.Draw(ctx.Call(nil, nil, nil, mgl32.Translate3D(0, 0, -5).Mul4(big), mgl32.Vec3{0, 0, 1}))
	b.Draw(ctx.Call(nil, nil, nil, mgl32.Translate3D(0, 0, 10).Mul4(big), mgl32.Vec3{0, 1, 0}))

	var buf bytes.Buffer
	require.NoError(t, b.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	r, g, bl, _ := img.At(32, 32).RGBA()
	assert.Less(t, r>>8, uint32(40))
	assert.Less(t, g>>8, uint32(40))
	assert.Greater(t, bl>>8, uint32(200))
}

func TestBeginFrameResets(t *testing.T) {
	b := New(32, 32)
	defer b.Close()
	ctx := renderCtx(b)

	b.Draw(ctx.Call(nil, nil, nil, mgl32.Ident4(), mgl32.Vec3{1, 1, 1}))
	require.Len(t, b.Discs(), 1)
	b.BeginFrame()
	assert.Empty(t, b.Discs())
}
