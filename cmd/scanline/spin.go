package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scanline/pkg/math3d"
)

// SpinAxis turns at a constant rate plus an impulse velocity that a
// critically damped spring eases back to zero.
type SpinAxis struct {
	Angle    float64 // radians
	Rate     float64 // constant radians per second
	Velocity float64 // impulse radians per second, decays to 0

	spring   harmonica.Spring
	velAccel float64
}

// NewSpinAxis creates an axis whose impulse decay is stepped fps times
// per second.
func NewSpinAxis(fps int, rate float64) SpinAxis {
	return SpinAxis{
		Rate: rate,
		// Frequency 4, damping 1: settles without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the angle by dt seconds and steps the decay once.
func (a *SpinAxis) Update(dt float64) {
	a.Angle += (a.Rate + a.Velocity) * dt
	a.Velocity, a.velAccel = a.spring.Update(a.Velocity, a.velAccel, 0)
}

// Spin drives the Euler rotation of a mesh.
type Spin struct {
	X, Y, Z SpinAxis
	fps     int
	rate    math3d.Vec3
}

// NewSpin creates a spin with the given constant rates in radians per
// second.
func NewSpin(fps int, rate math3d.Vec3) *Spin {
	s := &Spin{fps: fps, rate: rate}
	s.Reset()
	return s
}

// Update advances all axes by dt seconds.
func (s *Spin) Update(dt float64) {
	s.X.Update(dt)
	s.Y.Update(dt)
	s.Z.Update(dt)
}

// ApplyImpulse adds to the decaying velocity of each axis.
func (s *Spin) ApplyImpulse(x, y, z float64) {
	s.X.Velocity += x
	s.Y.Velocity += y
	s.Z.Velocity += z
}

// Reset zeroes the angles and impulses, keeping the constant rates.
func (s *Spin) Reset() {
	s.X = NewSpinAxis(s.fps, s.rate.X)
	s.Y = NewSpinAxis(s.fps, s.rate.Y)
	s.Z = NewSpinAxis(s.fps, s.rate.Z)
}

// Angles returns the accumulated rotation about X, Y and Z.
func (s *Spin) Angles() math3d.Vec3 {
	return math3d.V3(s.X.Angle, s.Y.Angle, s.Z.Angle)
}
