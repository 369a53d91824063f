package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/taigrr/scanline/pkg/pipeline"
)

var (
	hudStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#1a1a24")).Padding(0, 1)
	fpsStyle   = hudStyle.Foreground(lipgloss.Color("#5fd75f"))
	titleStyle = hudStyle.Bold(true).Foreground(lipgloss.Color("#ffffff"))
	modeStyle  = hudStyle.Foreground(lipgloss.Color("#5fd7ff"))
	statStyle  = hudStyle.Foreground(lipgloss.Color("#d7d787"))
)

// HUD tracks frame rate and formats the status line.
type HUD struct {
	name      string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD for the named mesh.
func NewHUD(name string) *HUD {
	return &HUD{name: name, fpsTime: time.Now()}
}

// Tick counts a frame; call once per frame.
func (h *HUD) Tick(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Line renders the status line for the last frame of rc.
func (h *HUD) Line(rc *pipeline.RenderContext) string {
	st := rc.Stats
	parts := []string{
		fpsStyle.Render(fmt.Sprintf("%.0f FPS", h.fps)),
		titleStyle.Render(h.name),
		modeStyle.Render(rc.RenderMode.String() + " / cull " + rc.CullMode.String()),
		statStyle.Render(fmt.Sprintf("%d/%d tris, %d culled, %d clipped", st.Triangles, st.Faces, st.FacesCulled, st.FacesClipped)),
	}
	if st.Dropped > 0 {
		parts = append(parts, statStyle.Render(fmt.Sprintf("%d dropped", st.Dropped)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Help lists the key bindings.
func Help() string {
	return strings.Join([]string{
		"1-6 render mode",
		"c cull",
		"wasd/qe move",
		"arrows look",
		"space spin",
		"r reset",
		"? hud",
		"esc quit",
	}, "  ")
}
