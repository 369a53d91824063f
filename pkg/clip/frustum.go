// Package clip holds the view frustum and the polygon clipper that trims
// camera-space triangles to it.
package clip

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Plane is a point on the plane plus its unit normal. The normal points
// into the visible half-space.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// Distance returns the signed distance from the plane to p.
// Positive = inside (same side as the normal), negative = outside.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// PlaneIndex identifies a frustum plane. Values are in clip order.
type PlaneIndex int

const (
	Left PlaneIndex = iota
	Right
	Top
	Bottom
	Near
	Far
)

var planeNames = [...]string{"left", "right", "top", "bottom", "near", "far"}

func (i PlaneIndex) String() string {
	if i < 0 || int(i) >= len(planeNames) {
		return "unknown"
	}
	return planeNames[i]
}

// Frustum represents the 6 planes of a camera-space view frustum, indexed
// by PlaneIndex. The four side planes pass through the origin.
type Frustum struct {
	Planes [6]Plane
}

// InitializeFrustumPlanes builds the camera-space frustum for the given
// horizontal and vertical fields of view (radians) and clip distances.
func InitializeFrustumPlanes(fovX, fovY, zNear, zFar float64) Frustum {
	cosX, sinX := math.Cos(fovX/2), math.Sin(fovX/2)
	cosY, sinY := math.Cos(fovY/2), math.Sin(fovY/2)

	var f Frustum
	f.Planes[Left] = Plane{Normal: math3d.V3(cosX, 0, sinX)}
	f.Planes[Right] = Plane{Normal: math3d.V3(-cosX, 0, sinX)}
	f.Planes[Top] = Plane{Normal: math3d.V3(0, -cosY, sinY)}
	f.Planes[Bottom] = Plane{Normal: math3d.V3(0, cosY, sinY)}
	f.Planes[Near] = Plane{Point: math3d.V3(0, 0, zNear), Normal: math3d.V3(0, 0, 1)}
	f.Planes[Far] = Plane{Point: math3d.V3(0, 0, zFar), Normal: math3d.V3(0, 0, -1)}
	return f
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the box bounding all 8 corners of b after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var out AABB
	for i := range 8 {
		corner := math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		p := m.MulVec3(corner)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB reports whether any part of the box may be inside the
// frustum. It tests the corner furthest along each plane normal, so a
// false result is exact and a true result is conservative.
func (f *Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		positive := math3d.V3(
			pick(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.Distance(positive) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether the whole box is inside the frustum.
func (f *Frustum) ContainsAABB(box AABB) bool {
	for _, plane := range f.Planes {
		negative := math3d.V3(
			pick(plane.Normal.X >= 0, box.Min.X, box.Max.X),
			pick(plane.Normal.Y >= 0, box.Min.Y, box.Max.Y),
			pick(plane.Normal.Z >= 0, box.Min.Z, box.Max.Z),
		)
		if plane.Distance(negative) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f *Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.Distance(p) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
