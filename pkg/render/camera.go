package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// maxPitch keeps the look direction off the world up axis, where the
// view basis would degenerate.
const maxPitch = math.Pi/2 - 0.01

// Camera is a free-look camera. At zero yaw and pitch it looks down +Z.
type Camera struct {
	Position math3d.Vec3 // Position in world space
	Yaw      float64     // Rotation around Y axis (look left/right), radians
	Pitch    float64     // Rotation around X axis (look up/down), radians
}

// NewCamera creates a camera at pos looking down +Z.
func NewCamera(pos math3d.Vec3) *Camera {
	return &Camera{Position: pos}
}

// Direction returns the unit look direction: +Z rotated by pitch about X
// and then by yaw about Y.
func (c *Camera) Direction() math3d.Vec3 {
	rot := math3d.RotateY(c.Yaw).Mul(math3d.RotateX(c.Pitch))
	return rot.MulVec3Dir(math3d.Forward())
}

// Right returns the horizontal right vector for the current yaw.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// Target returns the point one unit ahead of the camera.
func (c *Camera) Target() math3d.Vec3 {
	return c.Position.Add(c.Direction())
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target(), math3d.Up())
}

// MoveForward moves the camera along its look direction (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Direction().Scale(distance))
}

// MoveRight strafes the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera along world up (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Rotate turns the camera by the given angles (in radians).
// Pitch is clamped just short of straight up or down.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch = min(max(c.Pitch+deltaPitch, -maxPitch), maxPitch)
	c.Yaw += deltaYaw
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir.LenSq() == 0 {
		return
	}
	c.Pitch = min(max(-math.Asin(dir.Y), -maxPitch), maxPitch)
	c.Yaw = math.Atan2(dir.X, dir.Z)
}
