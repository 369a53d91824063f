package main

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
)

// runSnapshot renders one frame, t seconds into the spin, at
// cfg.Supersample times the configured size and writes it downscaled
// to out as PNG or WebP.
func runSnapshot(cfg *config.Config, out string, t float64) error {
	ss := cfg.Supersample
	scene, err := NewScene(cfg, cfg.Width*ss, cfg.Height*ss)
	if err != nil {
		return err
	}

	scene.Step(t)
	scene.Render()

	img := render.Downsample(scene.RC.Framebuffer.ToImage(), ss)
	if err := render.SaveImage(out, img); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	st := scene.RC.Stats
	slog.Info("snapshot written",
		"path", out,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"triangles", st.Triangles,
		"culled", st.FacesCulled,
	)
	return nil
}
