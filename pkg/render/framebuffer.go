// Package render holds the software rasterizer for scanline: the color
// and depth buffers, triangle and line drawing, textures and the
// presenters that put a finished frame on screen.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Framebuffer is a color buffer with a matching depth buffer. Depth holds
// 1 - 1/w per pixel, so smaller is nearer and 1.0 means empty.
type Framebuffer struct {
	Width  int       // Width in pixels
	Height int       // Height in pixels (2x terminal rows when drawn with half-blocks)
	Pixels []Color   // Row-major pixel data
	Depth  []float64 // Row-major depth, same layout as Pixels
}

// NewFramebuffer creates a framebuffer with the given dimensions and an
// empty depth buffer.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both buffers. Contents are lost.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]Color, width*height)
	fb.Depth = make([]float64, width*height)
	fb.ClearDepth()
}

// Clear fills the color buffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	fill(fb.Pixels, c)
}

// ClearDepth resets every depth sample to 1.0 (far).
func (fb *Framebuffer) ClearDepth() {
	fill(fb.Depth, 1.0)
}

// fill sets every element of s to v by doubling copies.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for n := 1; n < len(s); n *= 2 {
		copy(s[n:], s[:n])
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y) to the given color.
// Writes outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.inBounds(x, y) {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DepthAt returns the stored depth at (x, y), or 1.0 out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.inBounds(x, y) {
		return 1.0
	}
	return fb.Depth[y*fb.Width+x]
}

// SetDepth stores a depth sample. Writes outside the buffer are ignored.
func (fb *Framebuffer) SetDepth(x, y int, depth float64) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.Depth[y*fb.Width+x] = depth
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
