package main

import (
	"math/rand"

	"github.com/taigrr/scanline/pkg/pipeline"
)

// Action is a front-end independent viewer command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionModeWire
	ActionModeWireVertex
	ActionModeFill
	ActionModeFillWire
	ActionModeTextured
	ActionModeTexturedWire
	ActionToggleCull
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionYawLeft
	ActionYawRight
	ActionPitchUp
	ActionPitchDown
	ActionImpulse
	ActionReset
	ActionToggleHUD
)

const (
	moveStep   = 0.25 // world units per key press
	rotateStep = 0.05 // radians per key press
)

// Controls applies actions to a scene.
type Controls struct {
	Scene   *Scene
	ShowHUD bool
}

// Apply performs a and reports whether the viewer should quit.
func (c *Controls) Apply(a Action) (quit bool) {
	rc := c.Scene.RC
	cam := rc.Camera

	switch a {
	case ActionQuit:
		return true
	case ActionModeWire, ActionModeWireVertex, ActionModeFill,
		ActionModeFillWire, ActionModeTextured, ActionModeTexturedWire:
		rc.RenderMode = pipeline.RenderModes()[a-ActionModeWire]
	case ActionToggleCull:
		if rc.CullMode == pipeline.CullBackface {
			rc.CullMode = pipeline.CullNone
		} else {
			rc.CullMode = pipeline.CullBackface
		}
	case ActionForward:
		cam.MoveForward(moveStep)
	case ActionBack:
		cam.MoveForward(-moveStep)
	case ActionLeft:
		cam.MoveRight(-moveStep)
	case ActionRight:
		cam.MoveRight(moveStep)
	case ActionUp:
		cam.MoveUp(moveStep)
	case ActionDown:
		cam.MoveUp(-moveStep)
	case ActionYawLeft:
		cam.Rotate(0, -rotateStep)
	case ActionYawRight:
		cam.Rotate(0, rotateStep)
	case ActionPitchUp:
		// positive pitch tips the view down
		cam.Rotate(-rotateStep, 0)
	case ActionPitchDown:
		cam.Rotate(rotateStep, 0)
	case ActionImpulse:
		c.Scene.Spin.ApplyImpulse(
			(rand.Float64()-0.5)*6,
			(rand.Float64()-0.5)*6,
			(rand.Float64()-0.5)*6,
		)
	case ActionReset:
		c.Scene.Reset()
	case ActionToggleHUD:
		c.ShowHUD = !c.ShowHUD
	}
	return false
}
