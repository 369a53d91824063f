package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// SaveWebP saves the framebuffer as a lossless WebP file, whatever the
// extension of path.
func (fb *Framebuffer) SaveWebP(path string) error {
	return writeImage(path, fb.ToImage(), encodeWebP)
}

// SaveImage writes img to path, choosing PNG or WebP by extension.
func SaveImage(path string, img image.Image) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".webp":
		return writeImage(path, img, encodeWebP)
	case ".png":
		return writeImage(path, img, png.Encode)
	default:
		return fmt.Errorf("save %s: unsupported image format %q", path, ext)
	}
}

func encodeWebP(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

func writeImage(path string, img image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Downsample shrinks img by an integer factor with a Catmull-Rom filter.
// It turns a frame rendered at factor times the output size into a
// smoothed snapshot. A factor below 2 returns img unchanged.
func Downsample(img *image.RGBA, factor int) *image.RGBA {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, max(b.Dx()/factor, 1), max(b.Dy()/factor, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
