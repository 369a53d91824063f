package main

import (
	"strings"
	"testing"
	"time"
)

func TestHUDLine(t *testing.T) {
	s := newTestScene(t)
	s.Render()

	h := NewHUD("cube")
	line := h.Line(s.RC)
	for _, want := range []string{"cube", "textured", "backface", "tris"} {
		if !strings.Contains(line, want) {
			t.Errorf("HUD line %q missing %q", line, want)
		}
	}
}

func TestHUDTick(t *testing.T) {
	h := NewHUD("cube")
	start := h.fpsTime
	for i := range 30 {
		h.Tick(start.Add(time.Duration(i) * time.Second / 30))
	}
	h.Tick(start.Add(time.Second))
	if h.fps < 30 || h.fps > 32 {
		t.Errorf("fps = %v, want ~31", h.fps)
	}
}
