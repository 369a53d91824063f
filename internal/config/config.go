// Package config loads viewer settings from a JSON file and merges them
// with command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/pipeline"
	"github.com/taigrr/scanline/pkg/render"
)

// Config holds scene, viewport and output settings.
type Config struct {
	// Viewport
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	FOVDegrees   float64 `json:"fov_degrees"`
	ZNear        float64 `json:"z_near"`
	ZFar         float64 `json:"z_far"`
	MaxTriangles int     `json:"max_triangles"`
	FPS          int     `json:"fps"`

	// Shading
	RenderMode     string      `json:"render_mode"`
	CullMode       string      `json:"cull_mode"`
	LightDirection *[3]float64 `json:"light_direction"`
	Background     string      `json:"background"` // "R,G,B"

	// Scene
	Mesh     string      `json:"mesh"`
	Texture  string      `json:"texture"`
	Position *[3]float64 `json:"position"`
	Rotation [3]float64  `json:"rotation"` // radians
	Scale    [3]float64  `json:"scale"`
	Spin     [3]float64  `json:"spin"` // radians per second about X, Y, Z

	// Output
	Supersample int    `json:"supersample"`
	LogFile     string `json:"log_file"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	FOVDegrees  float64
	FPS         int
	RenderMode  string
	CullMode    string
	Background  string
	Mesh        string
	Texture     string
	Supersample int
	LogFile     string
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values until Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Default returns a fully resolved config with no file and no flags.
func Default() Config {
	var cfg Config
	cfg.Resolve(Flags{})
	return cfg
}

// Resolve applies CLI flags that are non-zero, then fills in defaults
// for anything still unset.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FOVDegrees > 0 {
		c.FOVDegrees = flags.FOVDegrees
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.RenderMode != "" {
		c.RenderMode = flags.RenderMode
	}
	if flags.CullMode != "" {
		c.CullMode = flags.CullMode
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Mesh != "" {
		c.Mesh = flags.Mesh
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}

	def := pipeline.DefaultOptions()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.FOVDegrees <= 0 {
		c.FOVDegrees = def.FOVY * 180 / math.Pi
	}
	if c.ZNear <= 0 {
		c.ZNear = def.ZNear
	}
	if c.ZFar <= 0 {
		c.ZFar = def.ZFar
	}
	if c.MaxTriangles <= 0 {
		c.MaxTriangles = def.MaxTriangles
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.RenderMode == "" {
		c.RenderMode = pipeline.RenderTextured.String()
	}
	if c.CullMode == "" {
		c.CullMode = pipeline.CullBackface.String()
	}
	if c.LightDirection == nil {
		c.LightDirection = &[3]float64{0, 0, 1}
	}
	if c.Background == "" {
		c.Background = "0,0,0"
	}
	if c.Position == nil {
		c.Position = &[3]float64{0, 0, 5}
	}
	if c.Scale == [3]float64{} {
		c.Scale = [3]float64{1, 1, 1}
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
}

// Validate checks a resolved config.
func (c *Config) Validate() error {
	if _, err := c.PipelineOptions(); err != nil {
		return err
	}
	if _, err := pipeline.ParseRenderMode(c.RenderMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := pipeline.ParseCullMode(c.CullMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	return nil
}

// PipelineOptions converts the viewport settings into validated
// pipeline options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	opts := pipeline.Options{
		Width:        c.Width,
		Height:       c.Height,
		FOVY:         c.FOVDegrees * math.Pi / 180,
		ZNear:        c.ZNear,
		ZFar:         c.ZFar,
		MaxTriangles: c.MaxTriangles,
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("config: %w", err)
	}
	return opts, nil
}

// Apply configures rc with the shading settings of a validated config.
func (c *Config) Apply(rc *pipeline.RenderContext) error {
	mode, err := pipeline.ParseRenderMode(c.RenderMode)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cull, err := pipeline.ParseCullMode(c.CullMode)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	bg, err := c.BackgroundColor()
	if err != nil {
		return err
	}

	rc.RenderMode = mode
	rc.CullMode = cull
	rc.ClearColor = bg
	if c.LightDirection != nil {
		rc.Light = pipeline.NewLight(vec3(*c.LightDirection))
	}
	return nil
}

// BackgroundColor parses the "R,G,B" background setting.
func (c *Config) BackgroundColor() (render.Color, error) {
	var r, g, b int
	if _, err := fmt.Sscanf(c.Background, "%d,%d,%d", &r, &g, &b); err != nil {
		return render.Color{}, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return render.Color{}, fmt.Errorf("config: background %q: component %d out of range", c.Background, v)
		}
	}
	return render.RGB(uint8(r), uint8(g), uint8(b)), nil
}

// Placement returns the mesh position, rotation and scale.
func (c *Config) Placement() (position, rotation, scale math3d.Vec3) {
	position = math3d.V3(0, 0, 5)
	if c.Position != nil {
		position = vec3(*c.Position)
	}
	return position, vec3(c.Rotation), vec3(c.Scale)
}

// SpinRate returns the rotation speed in radians per second.
func (c *Config) SpinRate() math3d.Vec3 {
	return vec3(c.Spin)
}

func vec3(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
