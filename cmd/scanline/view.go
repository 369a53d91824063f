package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
)

// keyAction maps a terminal key press to a viewer action.
func keyAction(k uv.Key) Action {
	switch {
	case k.MatchString("escape", "ctrl+c"):
		return ActionQuit
	case k.MatchString("1"):
		return ActionModeWire
	case k.MatchString("2"):
		return ActionModeWireVertex
	case k.MatchString("3"):
		return ActionModeFill
	case k.MatchString("4"):
		return ActionModeFillWire
	case k.MatchString("5"):
		return ActionModeTextured
	case k.MatchString("6"):
		return ActionModeTexturedWire
	case k.MatchString("c", "b"):
		return ActionToggleCull
	case k.MatchString("w"):
		return ActionForward
	case k.MatchString("s"):
		return ActionBack
	case k.MatchString("a"):
		return ActionLeft
	case k.MatchString("d"):
		return ActionRight
	case k.MatchString("e"):
		return ActionUp
	case k.MatchString("q"):
		return ActionDown
	case k.MatchString("left"):
		return ActionYawLeft
	case k.MatchString("right"):
		return ActionYawRight
	case k.MatchString("up"):
		return ActionPitchUp
	case k.MatchString("down"):
		return ActionPitchDown
	case k.MatchString("space"):
		return ActionImpulse
	case k.MatchString("r"):
		return ActionReset
	case k.MatchString("?", "shift+/"):
		return ActionToggleHUD
	}
	return ActionNone
}

// frame composes the framebuffer and the HUD lines into one drawable.
type frame struct {
	fb     *render.Framebuffer
	top    string
	bottom string
}

func (f frame) Draw(scr uv.Screen, area uv.Rectangle) {
	f.fb.Draw(scr, area)
	if f.top != "" {
		uv.NewStyledString(f.top).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
	}
	if f.bottom != "" && area.Dy() > 1 {
		uv.NewStyledString(f.bottom).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))
	}
}

// runView renders the scene into the terminal with half-block cells
// until the context is cancelled or the user quits.
func runView(ctx context.Context, cfg *config.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	scene, err := NewScene(cfg, width, height*2)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controls := &Controls{Scene: scene, ShowHUD: true}
	hud := NewHUD(scene.Mesh.Name)

	// Events are applied on the render goroutine so the scene is never
	// touched concurrently.
	events := make(chan uv.Event, 16)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					if err := scene.RC.Resize(width, height*2); err != nil {
						slog.Warn("resize failed", "width", width, "height", height, "error", err)
					}
				case uv.KeyPressEvent:
					if controls.Apply(keyAction(ev.Key())) {
						return nil
					}
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		scene.Step(dt)
		scene.Render()
		hud.Tick(now)

		f := frame{fb: scene.RC.Framebuffer}
		if controls.ShowHUD {
			f.top = hud.Line(scene.RC)
			f.bottom = Help()
		}
		term.Draw(f)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
