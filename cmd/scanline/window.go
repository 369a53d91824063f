package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/scanline/internal/config"
)

// Keys acted on once per press.
var pressKeys = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyEscape, ActionQuit},
	{ebiten.Key1, ActionModeWire},
	{ebiten.Key2, ActionModeWireVertex},
	{ebiten.Key3, ActionModeFill},
	{ebiten.Key4, ActionModeFillWire},
	{ebiten.Key5, ActionModeTextured},
	{ebiten.Key6, ActionModeTexturedWire},
	{ebiten.KeyC, ActionToggleCull},
	{ebiten.KeyB, ActionToggleCull},
	{ebiten.KeySpace, ActionImpulse},
	{ebiten.KeyR, ActionReset},
}

// Keys acted on every tick while held.
var holdKeys = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyW, ActionForward},
	{ebiten.KeyS, ActionBack},
	{ebiten.KeyA, ActionLeft},
	{ebiten.KeyD, ActionRight},
	{ebiten.KeyE, ActionUp},
	{ebiten.KeyQ, ActionDown},
	{ebiten.KeyArrowLeft, ActionYawLeft},
	{ebiten.KeyArrowRight, ActionYawRight},
	{ebiten.KeyArrowUp, ActionPitchUp},
	{ebiten.KeyArrowDown, ActionPitchDown},
}

// windowGame shows the scene in a desktop window at the configured size.
type windowGame struct {
	scene    *Scene
	controls *Controls
	dt       float64
	pix      []byte
}

func (g *windowGame) Update() error {
	for _, k := range pressKeys {
		if inpututil.IsKeyJustPressed(k.key) && g.controls.Apply(k.action) {
			return ebiten.Termination
		}
	}
	for _, k := range holdKeys {
		if ebiten.IsKeyPressed(k.key) {
			g.controls.Apply(k.action)
		}
	}

	g.scene.Step(g.dt)
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.scene.Render()

	fb := g.scene.RC.Framebuffer
	for i, c := range fb.Pixels {
		g.pix[i*4+0] = c.R
		g.pix[i*4+1] = c.G
		g.pix[i*4+2] = c.B
		g.pix[i*4+3] = 0xff
	}
	screen.WritePixels(g.pix)
}

func (g *windowGame) Layout(_, _ int) (int, int) {
	fb := g.scene.RC.Framebuffer
	return fb.Width, fb.Height
}

// runWindow opens a desktop window and renders until it is closed.
func runWindow(cfg *config.Config) error {
	scene, err := NewScene(cfg, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	g := &windowGame{
		scene:    scene,
		controls: &Controls{Scene: scene},
		dt:       1 / float64(cfg.FPS),
		pix:      make([]byte, cfg.Width*cfg.Height*4),
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("scanline - %s", scene.Mesh.Name))
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
