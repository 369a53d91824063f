package pipeline

import "github.com/taigrr/scanline/pkg/math3d"

// Light is a directional light.
type Light struct {
	Direction math3d.Vec3 // unit vector the light travels along
}

// NewLight returns a light travelling along dir.
func NewLight(dir math3d.Vec3) Light {
	return Light{Direction: dir.Normalize()}
}

// Intensity returns how strongly a face with the given unit normal is
// lit: 1 when it faces the light head on, 0 or less when it faces away.
func (l Light) Intensity(normal math3d.Vec3) float64 {
	return -normal.Dot(l.Direction)
}
