package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

var (
	// ErrEmptyTexture is returned when an image decodes to zero pixels.
	ErrEmptyTexture = errors.New("texture has no pixels")

	// ErrUnknownImageFormat is returned for image kinds with no decoder.
	ErrUnknownImageFormat = errors.New("unknown image format")
)

// DecodeImage decodes r as the image kind named by a file extension
// (".png", ".jpg", ".jpeg", ".tga", ".bmp") or a MIME type ("image/png",
// "image/jpeg", "image/bmp", "image/x-tga").
//
// Decoders are picked explicitly rather than through image.Decode: the
// tga package registers an empty magic string that matches any input.
func DecodeImage(r io.Reader, kind string) (image.Image, error) {
	switch strings.ToLower(kind) {
	case ".png", "image/png":
		return png.Decode(r)
	case ".jpg", ".jpeg", "image/jpeg":
		return jpeg.Decode(r)
	case ".tga", "image/x-tga", "image/tga":
		return tga.Decode(r)
	case ".bmp", "image/bmp":
		return bmp.Decode(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownImageFormat, kind)
}

// Texture holds a 2D image for texture mapping. Addressing always
// repeats and sampling is nearest-neighbor.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture loads a texture from a PNG, JPEG, TGA or BMP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode texture %s: %w", path, ErrEmptyTexture)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	for y := range tex.Height {
		for x := range tex.Width {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			tex.Pixels[y*tex.Width+x] = c
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	checkSize = max(checkSize, 1)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a texel. Out-of-range coordinates are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// Texel returns the texel at (x, y), wrapping both coordinates so any
// integer addresses the texture.
func (t *Texture) Texel(x, y int) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	return t.Pixels[wrap(y, t.Height)*t.Width+wrap(x, t.Width)]
}

// Sample returns the nearest texel for normalized coordinates (u, v),
// where (0, 0) is the top-left texel.
func (t *Texture) Sample(u, v float64) Color {
	x := int(math.Floor(u * float64(t.Width)))
	y := int(math.Floor(v * float64(t.Height)))
	return t.Texel(x, y)
}

// wrap is a positive modulo.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
