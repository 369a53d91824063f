package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func TestTextureTexelWraps(t *testing.T) {
	tex := quadTexture()

	tests := []struct {
		name string
		x, y int
		want Color
	}{
		{"origin", 0, 0, ColorRed},
		{"in range", 1, 1, ColorWhite},
		{"past width", 2, 0, ColorRed},
		{"negative x", -1, 0, ColorGreen},
		{"negative y", 0, -1, ColorBlue},
		{"far negative", -7, -8, ColorGreen},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Texel(tc.x, tc.y); got != tc.want {
				t.Errorf("Texel(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestTextureSample(t *testing.T) {
	tex := quadTexture()

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		{"top left", 0.1, 0.1, ColorRed},
		{"top right", 0.9, 0.1, ColorGreen},
		{"bottom left", 0.1, 0.9, ColorBlue},
		{"repeat u", 1.9, 0.1, ColorGreen},
		{"negative u floors", -0.1, 0.1, ColorGreen},
		{"negative v floors", 0.1, -0.1, ColorBlue},
		{"exact one wraps", 1, 1, ColorRed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestEmptyTextureSamplesTransparent(t *testing.T) {
	tex := NewTexture(0, 0)
	if got := tex.Sample(0.5, 0.5); got != (Color{}) {
		t.Errorf("got %v, want transparent", got)
	}
}

func TestNewCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(8, 8, 4, ColorWhite, ColorBlack)

	if tex.Texel(0, 0) != ColorWhite || tex.Texel(3, 3) != ColorWhite {
		t.Error("first check should be white")
	}
	if tex.Texel(4, 0) != ColorBlack || tex.Texel(0, 4) != ColorBlack {
		t.Error("neighbouring checks should be black")
	}
	if tex.Texel(7, 7) != ColorWhite {
		t.Error("diagonal check should be white")
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(2, 1, color.RGBA{0, 0, 255, 255})
	return img
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()

	encoders := []struct {
		name   string
		encode func(f *os.File, img image.Image) error
	}{
		{"tex.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
		{"tex.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }},
		{"tex.tga", func(f *os.File, img image.Image) error { return tga.Encode(f, img) }},
		{"TEX.PNG", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
	}

	for _, enc := range encoders {
		t.Run(enc.name, func(t *testing.T) {
			path := filepath.Join(dir, enc.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc.encode(f, testImage()); err != nil {
				t.Fatal(err)
			}
			f.Close()

			tex, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if tex.Width != 3 || tex.Height != 2 {
				t.Errorf("size = %dx%d, want 3x2", tex.Width, tex.Height)
			}
			if got := tex.Texel(0, 0); got != ColorRed {
				t.Errorf("texel (0, 0) = %v, want red", got)
			}
			if got := tex.Texel(2, 1); got != ColorBlue {
				t.Errorf("texel (2, 1) = %v, want blue", got)
			}
		})
	}
}

func TestLoadTextureErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTexture(filepath.Join(dir, "missing.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(junk); err == nil {
		t.Error("expected a decode error for junk data")
	}
}

func TestTextureFromImageOffsetBounds(t *testing.T) {
	src := testImage()
	sub := src.SubImage(image.Rect(1, 1, 3, 2))

	tex := TextureFromImage(sub)
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width, tex.Height)
	}
	if got := tex.Texel(1, 0); got != ColorBlue {
		t.Errorf("texel (1, 0) = %v, want blue", got)
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}

	for _, kind := range []string{".png", ".PNG", "image/png"} {
		t.Run(kind, func(t *testing.T) {
			img, err := DecodeImage(bytes.NewReader(buf.Bytes()), kind)
			if err != nil {
				t.Fatalf("DecodeImage: %v", err)
			}
			if got := img.Bounds().Size(); got != image.Pt(3, 2) {
				t.Errorf("got %v, want (3,2)", got)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := DecodeImage(bytes.NewReader(buf.Bytes()), ".gif")
		if !errors.Is(err, ErrUnknownImageFormat) {
			t.Errorf("got %v, want %v", err, ErrUnknownImageFormat)
		}
	})
}

func TestLoadTextureUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.webm")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); !errors.Is(err, ErrUnknownImageFormat) {
		t.Errorf("got %v, want %v", err, ErrUnknownImageFormat)
	}
}
