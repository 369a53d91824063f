package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/pipeline"
	"github.com/taigrr/scanline/pkg/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scanline.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"width": 320,
		"height": 240,
		"render_mode": "fill-wire",
		"position": [0, 0, 0],
		"spin": [0, 1.5, 0]
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", cfg.Width, cfg.Height)
	}
	if cfg.RenderMode != "fill-wire" {
		t.Errorf("render mode = %q, want fill-wire", cfg.RenderMode)
	}
	if cfg.Position == nil || *cfg.Position != [3]float64{} {
		t.Errorf("position = %v, want explicit origin", cfg.Position)
	}
	if cfg.FPS != 0 {
		t.Errorf("fps = %d before Resolve, want 0", cfg.FPS)
	}

	cfg.Resolve(Flags{})
	if *cfg.Position != [3]float64{} {
		t.Errorf("Resolve replaced explicit position: %v", *cfg.Position)
	}
	if got := cfg.SpinRate(); got != math3d.V3(0, 1.5, 0) {
		t.Errorf("SpinRate = %v, want (0,1.5,0)", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("got %v, want os.ErrNotExist", err)
		}
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeConfig(t, `{"width": `))
		if err == nil || !strings.Contains(err.Error(), "config: parse") {
			t.Errorf("got %v, want parse error", err)
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		t.Fatalf("PipelineOptions: %v", err)
	}
	def := pipeline.DefaultOptions()
	if opts.Width != def.Width || opts.Height != def.Height {
		t.Errorf("size = %dx%d, want %dx%d", opts.Width, opts.Height, def.Width, def.Height)
	}
	if math.Abs(opts.FOVY-def.FOVY) > 1e-12 {
		t.Errorf("FOVY = %v, want %v", opts.FOVY, def.FOVY)
	}
	if opts.MaxTriangles != def.MaxTriangles {
		t.Errorf("MaxTriangles = %d, want %d", opts.MaxTriangles, def.MaxTriangles)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if cfg.Supersample != 1 {
		t.Errorf("Supersample = %d, want 1", cfg.Supersample)
	}

	pos, rot, scale := cfg.Placement()
	if pos != math3d.V3(0, 0, 5) {
		t.Errorf("position = %v, want (0,0,5)", pos)
	}
	if rot != math3d.Zero3() {
		t.Errorf("rotation = %v, want zero", rot)
	}
	if scale != math3d.V3(1, 1, 1) {
		t.Errorf("scale = %v, want (1,1,1)", scale)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{Width: 100, Height: 100, RenderMode: "wire", FPS: 10}
	cfg.Resolve(Flags{
		Width:       640,
		RenderMode:  "fill",
		CullMode:    "none",
		Background:  "10,20,30",
		Mesh:        "teapot.obj",
		Supersample: 4,
	})

	if cfg.Width != 640 {
		t.Errorf("Width = %d, want flag value 640", cfg.Width)
	}
	if cfg.Height != 100 {
		t.Errorf("Height = %d, want file value 100", cfg.Height)
	}
	if cfg.FPS != 10 {
		t.Errorf("FPS = %d, want file value 10", cfg.FPS)
	}
	if cfg.RenderMode != "fill" || cfg.CullMode != "none" {
		t.Errorf("modes = %q/%q, want fill/none", cfg.RenderMode, cfg.CullMode)
	}
	if cfg.Mesh != "teapot.obj" || cfg.Supersample != 4 {
		t.Errorf("mesh %q supersample %d", cfg.Mesh, cfg.Supersample)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"near beyond far", func(c *Config) { c.ZNear, c.ZFar = 5, 1 }, pipeline.ErrInvalidClipRange},
		{"fov too wide", func(c *Config) { c.FOVDegrees = 180 }, pipeline.ErrInvalidFOV},
		{"negative width", func(c *Config) { c.Width = -1 }, pipeline.ErrInvalidViewport},
		{"unknown render mode", func(c *Config) { c.RenderMode = "hologram" }, nil},
		{"unknown cull mode", func(c *Config) { c.CullMode = "front" }, nil},
		{"bad background", func(c *Config) { c.Background = "red" }, nil},
		{"background out of range", func(c *Config) { c.Background = "0,300,0" }, nil},
		{"zero fps", func(c *Config) { c.FPS = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.RenderMode = "wire-vertex"
	cfg.CullMode = "none"
	cfg.Background = "1,2,3"
	cfg.LightDirection = &[3]float64{0, -2, 0}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		t.Fatal(err)
	}
	rc, err := pipeline.NewRenderContext(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Apply(rc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if rc.RenderMode != pipeline.RenderWireVertex {
		t.Errorf("RenderMode = %v, want %v", rc.RenderMode, pipeline.RenderWireVertex)
	}
	if rc.CullMode != pipeline.CullNone {
		t.Errorf("CullMode = %v, want %v", rc.CullMode, pipeline.CullNone)
	}
	if rc.ClearColor != render.RGB(1, 2, 3) {
		t.Errorf("ClearColor = %v, want (1,2,3)", rc.ClearColor)
	}
	if rc.Light.Direction != math3d.V3(0, -1, 0) {
		t.Errorf("light = %v, want normalized (0,-1,0)", rc.Light.Direction)
	}
}
