package clip

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func square90(zNear float64) Frustum {
	return InitializeFrustumPlanes(math.Pi/2, math.Pi/2, zNear, 100)
}

func TestClipInsideTriangle(t *testing.T) {
	f := square90(0.1)
	p := PolygonFromTriangle(
		math3d.V3(-1, -1, 5), math3d.V3(0, 1, 5), math3d.V3(1, -1, 5),
		math3d.V2(0, 1), math3d.V2(0, 0), math3d.V2(1, 0),
	)
	before := p

	f.ClipPolygon(&p)

	if p != before {
		t.Errorf("inside triangle changed: got %+v, want %+v", p, before)
	}
	if tris := TrianglesFromPolygon(p); len(tris) != 1 {
		t.Errorf("got %d triangles, want 1", len(tris))
	}
}

func TestClipOutsideTriangle(t *testing.T) {
	f := square90(0.1)

	tests := []struct {
		name       string
		v0, v1, v2 math3d.Vec3
	}{
		{"behind camera", math3d.V3(-1, -1, -5), math3d.V3(0, 1, -5), math3d.V3(1, -1, -5)},
		{"beyond far", math3d.V3(-1, -1, 150), math3d.V3(0, 1, 150), math3d.V3(1, -1, 150)},
		{"left of view", math3d.V3(-20, 0, 5), math3d.V3(-30, 1, 5), math3d.V3(-25, -1, 6)},
		{"above view", math3d.V3(0, 20, 5), math3d.V3(1, 30, 5), math3d.V3(-1, 25, 6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var uv math3d.Vec2
			p := PolygonFromTriangle(tc.v0, tc.v1, tc.v2, uv, uv, uv)
			f.ClipPolygon(&p)
			if p.Count != 0 {
				t.Errorf("got %d vertices, want 0", p.Count)
			}
			if tris := TrianglesFromPolygon(p); len(tris) != 0 {
				t.Errorf("got %d triangles, want 0", len(tris))
			}
		})
	}
}

func TestClipStraddlingNearPlane(t *testing.T) {
	f := square90(1)
	p := PolygonFromTriangle(
		math3d.V3(0, 0, 0.5), math3d.V3(0.2, 0, 3), math3d.V3(-0.2, 0.1, 3),
		math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1),
	)

	f.ClipAgainstPlane(&p, Near)

	if p.Count != 4 {
		t.Fatalf("got %d vertices, want 4", p.Count)
	}

	// Edge v2->v0 is cut at t = 0.8, edge v0->v1 at t = 0.2.
	want := []struct {
		pos math3d.Vec3
		uv  math3d.Vec2
	}{
		{math3d.V3(-0.04, 0.02, 1), math3d.V2(0, 0.2)},
		{math3d.V3(0.04, 0, 1), math3d.V2(0.2, 0)},
		{math3d.V3(0.2, 0, 3), math3d.V2(1, 0)},
		{math3d.V3(-0.2, 0.1, 3), math3d.V2(0, 1)},
	}
	for i, w := range want {
		got, uv := p.Vertices[i], p.UVs[i]
		if !near(got.X, w.pos.X) || !near(got.Y, w.pos.Y) || !near(got.Z, w.pos.Z) {
			t.Errorf("vertex %d = %v, want %v", i, got, w.pos)
		}
		if !near(uv.X, w.uv.X) || !near(uv.Y, w.uv.Y) {
			t.Errorf("uv %d = %v, want %v", i, uv, w.uv)
		}
	}

	for i := range 2 {
		if d := f.Planes[Near].Distance(p.Vertices[i]); !near(d, 0) {
			t.Errorf("new vertex %d is %v from the near plane, want 0", i, d)
		}
	}

	if tris := TrianglesFromPolygon(p); len(tris) != 2 {
		t.Errorf("got %d triangles, want 2", len(tris))
	}

	// The side and far planes leave the quad alone.
	full := PolygonFromTriangle(
		math3d.V3(0, 0, 0.5), math3d.V3(0.2, 0, 3), math3d.V3(-0.2, 0.1, 3),
		math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1),
	)
	f.ClipPolygon(&full)
	if full.Count != 4 {
		t.Errorf("full clip gave %d vertices, want 4", full.Count)
	}
}

func TestClipLargeTriangle(t *testing.T) {
	f := square90(1)
	p := PolygonFromTriangle(
		math3d.V3(-50, -50, 5), math3d.V3(0, 60, 5), math3d.V3(50, -50, 5),
		math3d.V2(0, 1), math3d.V2(0.5, 0), math3d.V2(1, 1),
	)

	f.ClipPolygon(&p)

	if p.Count < 3 || p.Count > MaxPolygonVertices {
		t.Fatalf("got %d vertices, want between 3 and %d", p.Count, MaxPolygonVertices)
	}
	for i := range p.Count {
		for idx, plane := range f.Planes {
			if d := plane.Distance(p.Vertices[i]); d < -eps {
				t.Errorf("vertex %d %v is outside the %v plane by %v", i, p.Vertices[i], PlaneIndex(idx), d)
			}
		}
	}
	if tris := TrianglesFromPolygon(p); len(tris) != p.Count-2 {
		t.Errorf("got %d triangles, want %d", len(tris), p.Count-2)
	}
}

func TestClipEmptyPolygon(t *testing.T) {
	f := square90(0.1)
	var p Polygon
	f.ClipPolygon(&p)
	if p.Count != 0 {
		t.Errorf("got %d vertices, want 0", p.Count)
	}
}

func TestPushDropsOverflow(t *testing.T) {
	var p Polygon
	for i := range MaxPolygonVertices + 3 {
		p.push(math3d.V3(float64(i), 0, 0), math3d.Vec2{})
	}
	if p.Count != MaxPolygonVertices {
		t.Errorf("got %d vertices, want %d", p.Count, MaxPolygonVertices)
	}
	if last := p.Vertices[MaxPolygonVertices-1].X; last != MaxPolygonVertices-1 {
		t.Errorf("last vertex x = %v, want %v", last, MaxPolygonVertices-1)
	}
}

func TestTrianglesFromPolygonFan(t *testing.T) {
	p := Polygon{Count: 5}
	for i := range 5 {
		p.Vertices[i] = math3d.V3(float64(i), 0, 1)
		p.UVs[i] = math3d.V2(float64(i), 0)
	}

	tris := TrianglesFromPolygon(p)
	if len(tris) != 3 {
		t.Fatalf("got %d triangles, want 3", len(tris))
	}
	for i, tri := range tris {
		want := [3]float64{0, float64(i + 1), float64(i + 2)}
		for j := range 3 {
			if tri.Points[j].X != want[j] || tri.UVs[j].X != want[j] {
				t.Errorf("triangle %d vertex %d = %v, want index %v", i, j, tri.Points[j], want[j])
			}
			if tri.Points[j].W != 1 {
				t.Errorf("triangle %d vertex %d w = %v, want 1", i, j, tri.Points[j].W)
			}
		}
	}

	for _, n := range []int{0, 1, 2} {
		if got := TrianglesFromPolygon(Polygon{Count: n}); len(got) != 0 {
			t.Errorf("count %d: got %d triangles, want 0", n, len(got))
		}
	}
}

func TestAppendTrianglesReusesBuffer(t *testing.T) {
	f := square90(0.1)
	buf := make([]Triangle, 0, MaxPolygonTriangles)
	p := PolygonFromTriangle(
		math3d.V3(-1, -1, 5), math3d.V3(0, 1, 5), math3d.V3(1, -1, 5),
		math3d.V2(0, 1), math3d.V2(0, 0), math3d.V2(1, 0),
	)
	f.ClipPolygon(&p)

	out := AppendTriangles(buf[:0], p)
	if len(out) != 1 || &out[0] != &buf[:1][0] {
		t.Error("AppendTriangles should fill the caller's buffer")
	}
}

func BenchmarkClipPolygon(b *testing.B) {
	f := square90(1)
	src := PolygonFromTriangle(
		math3d.V3(-50, -50, 5), math3d.V3(0, 60, 5), math3d.V3(50, -50, 0.5),
		math3d.V2(0, 1), math3d.V2(0.5, 0), math3d.V2(1, 1),
	)

	for b.Loop() {
		p := src
		f.ClipPolygon(&p)
	}
}
