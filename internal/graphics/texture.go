package graphics

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture is a 2D texture uploaded to the GPU
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// DecodeRGBA decodes any registered image format (PNG, JPEG, BMP, TIFF, WebP) into RGBA
func DecodeRGBA(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}

// ReadTexture decodes an image file without touching the GPU
func ReadTexture(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()
	return DecodeRGBA(file)
}

// LoadTexture loads a 2D texture from a file
func LoadTexture(path string) (*Texture, error) {
	rgba, err := ReadTexture(path)
	if err != nil {
		return nil, err
	}
	return UploadTexture(rgba), nil
}

// UploadTexture creates a GL texture from decoded pixels
func UploadTexture(rgba *image.RGBA) *Texture {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	size := rgba.Rect.Size()
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: texture, Width: size.X, Height: size.Y}
}

// Bind binds the texture to the given texture unit
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Dispose deletes the texture
func (t *Texture) Dispose() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
