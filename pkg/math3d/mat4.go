package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order. Matrices act on
// column vectors, so a.Mul(b) applies b first.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// World composes the model-to-world transform: scale first, then rotation
// about X, Y and Z in that order, then translation.
func World(scale, rotation, translation Vec3) Mat4 {
	m := Identity()
	m = Scale(scale).Mul(m)
	m = RotateX(rotation.X).Mul(m)
	m = RotateY(rotation.Y).Mul(m)
	m = RotateZ(rotation.Z).Mul(m)
	m = Translate(translation).Mul(m)
	return m
}

// LookAt creates a left-handed view matrix for a camera at eye looking at
// target. The rows of the rotation part are the camera's right, up and
// forward axes, so view-space +Z points from the eye towards the target.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	r := up.Cross(f).Normalize()
	u := f.Cross(r)

	var m Mat4
	for row, v := range [3]Vec3{r, u, f} {
		m.Set(row, 0, v.X)
		m.Set(row, 1, v.Y)
		m.Set(row, 2, v.Z)
	}
	m.Set(0, 3, -r.Dot(eye))
	m.Set(1, 3, -u.Dot(eye))
	m.Set(2, 3, -f.Dot(eye))
	m.Set(3, 3, 1)
	return m
}

// Perspective creates a left-handed perspective projection matrix.
// fovY is the vertical field of view in radians and aspect is
// height/width. View-space z is copied into w, and after the divide
// z = zNear maps to depth 0 and z = zFar to depth 1.
func Perspective(fovY, aspect, zNear, zFar float64) Mat4 {
	f := 1.0 / math.Tan(fovY/2)
	var m Mat4
	m.Set(0, 0, aspect*f)
	m.Set(1, 1, f)
	m.Set(2, 2, zFar/(zFar-zNear))
	m.Set(2, 3, -zFar*zNear/(zFar-zNear))
	m.Set(3, 2, 1)
	return m
}

// ProjectVec4 applies the projection matrix to v and performs the
// perspective divide. The returned W is the pre-divide w.
func ProjectVec4(m Mat4, v Vec4) Vec4 {
	return m.MulVec4(v).PerspectiveDivide()
}

// HorizontalFOV derives the horizontal field of view from the vertical
// one and the viewport size.
func HorizontalFOV(fovY float64, width, height int) float64 {
	return 2 * math.Atan(math.Tan(fovY/2)*float64(width)/float64(height))
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec3 transforms a Vec3 as a point (w=1).
func (m Mat4) MulVec3(v Vec3) Vec3 {
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		(m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]) / w,
		(m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]) / w,
		(m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]) / w,
	}
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}
