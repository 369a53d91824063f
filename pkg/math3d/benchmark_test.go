package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Dot(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}

func BenchmarkPerspective(b *testing.B) {
	for b.Loop() {
		_ = Perspective(math.Pi/2, 0.75, 0.1, 100.0)
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V3(0, 0, -10)
	target := V3(0, 0, 0)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up)
	}
}

func BenchmarkWorld(b *testing.B) {
	scale := V3(1, 1, 1)
	rot := V3(0.3, 0.5, 0.7)
	pos := V3(0, 0, 5)

	for b.Loop() {
		_ = World(scale, rot, pos)
	}
}

// Per-vertex work in the pipeline: model-view transform then projection.
func BenchmarkProjectVertex(b *testing.B) {
	mv := LookAt(V3(0, 0, -10), Zero3(), Up()).Mul(World(V3(1, 1, 1), V3(0.3, 0.5, 0.7), Zero3()))
	proj := Perspective(math.Pi/2, 0.75, 0.1, 100.0)
	v := V3(1, -1, 1)

	for b.Loop() {
		_ = ProjectVec4(proj, mv.MulVec4(v.Vec4()))
	}
}
