package main

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/pipeline"
	"github.com/taigrr/scanline/pkg/render"
)

// Scene is the single spinning mesh shown by every front end, together
// with the render context that draws it.
type Scene struct {
	RC   *pipeline.RenderContext
	Mesh *models.Mesh
	Spin *Spin

	rotation math3d.Vec3 // configured orientation, spin is added on top
}

// NewScene builds a scene for a width x height framebuffer.
func NewScene(cfg *config.Config, width, height int) (*Scene, error) {
	opts, err := cfg.PipelineOptions()
	if err != nil {
		return nil, err
	}
	opts.Width, opts.Height = width, height

	rc, err := pipeline.NewRenderContext(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(rc); err != nil {
		return nil, err
	}

	mesh, err := loadMesh(cfg)
	if err != nil {
		return nil, err
	}
	mesh.Position, mesh.Rotation, mesh.Scale = cfg.Placement()

	return &Scene{
		RC:       rc,
		Mesh:     mesh,
		Spin:     NewSpin(cfg.FPS, cfg.SpinRate()),
		rotation: mesh.Rotation,
	}, nil
}

// Step advances the spin by dt seconds.
func (s *Scene) Step(dt float64) {
	s.Spin.Update(dt)
	s.Mesh.Rotation = s.rotation.Add(s.Spin.Angles())
}

// Render draws one frame into the framebuffer.
func (s *Scene) Render() {
	s.RC.Frame(s.Mesh)
}

// Reset puts the camera back at the origin and stops any impulse spin.
func (s *Scene) Reset() {
	cam := s.RC.Camera
	cam.Position = math3d.Zero3()
	cam.Yaw, cam.Pitch = 0, 0
	s.Spin.Reset()
	s.Mesh.Rotation = s.rotation
}

// loadMesh loads the configured model, or the built-in cube when none
// is set. Loaded models are recentred and scaled to fit a 2 unit box.
func loadMesh(cfg *config.Config) (*models.Mesh, error) {
	var mesh *models.Mesh
	if cfg.Mesh == "" {
		mesh = models.NewCube()
	} else {
		m, err := models.Load(cfg.Mesh)
		if err != nil {
			return nil, err
		}
		m.Normalize(2)
		mesh = m
	}

	if cfg.Texture != "" {
		if err := mesh.WithTexture(cfg.Texture); err != nil {
			return nil, fmt.Errorf("texture: %w", err)
		}
	}
	if mesh.Texture == nil {
		mesh.Texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	slog.Info("mesh loaded", "name", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
	return mesh, nil
}
