package clip

import "github.com/taigrr/scanline/pkg/math3d"

const (
	// MaxPolygonVertices bounds a clipped polygon. A triangle gains at
	// most one vertex per plane, so 3 + 6 fits with room to spare.
	MaxPolygonVertices = 10
	// MaxPolygonTriangles is the largest fan a full polygon produces.
	MaxPolygonTriangles = MaxPolygonVertices - 2
)

// Polygon is a convex camera-space polygon with per-vertex texture
// coordinates. Only the first Count entries are meaningful.
type Polygon struct {
	Vertices [MaxPolygonVertices]math3d.Vec3
	UVs      [MaxPolygonVertices]math3d.Vec2
	Count    int
}

// Triangle is one triangle of a fan-triangulated polygon. Points are
// still in camera space with w = 1.
type Triangle struct {
	Points [3]math3d.Vec4
	UVs    [3]math3d.Vec2
}

// PolygonFromTriangle starts a polygon from a single triangle.
func PolygonFromTriangle(v0, v1, v2 math3d.Vec3, uv0, uv1, uv2 math3d.Vec2) Polygon {
	return Polygon{
		Vertices: [MaxPolygonVertices]math3d.Vec3{v0, v1, v2},
		UVs:      [MaxPolygonVertices]math3d.Vec2{uv0, uv1, uv2},
		Count:    3,
	}
}

// push appends a vertex, silently dropping it when the polygon is full.
func (p *Polygon) push(v math3d.Vec3, uv math3d.Vec2) {
	if p.Count >= MaxPolygonVertices {
		return
	}
	p.Vertices[p.Count] = v
	p.UVs[p.Count] = uv
	p.Count++
}

// ClipAgainstPlane clips p in place against one frustum plane
// (Sutherland-Hodgman). Vertices exactly on the plane are treated as
// outside; the edge crossing that produced them is still emitted.
func (f *Frustum) ClipAgainstPlane(p *Polygon, idx PlaneIndex) {
	if p.Count == 0 {
		return
	}
	plane := f.Planes[idx]

	var out Polygon
	prev, prevUV := p.Vertices[p.Count-1], p.UVs[p.Count-1]
	prevDist := plane.Distance(prev)

	for i := range p.Count {
		cur, curUV := p.Vertices[i], p.UVs[i]
		curDist := plane.Distance(cur)

		if curDist*prevDist < 0 {
			t := prevDist / (prevDist - curDist)
			out.push(prev.Lerp(cur, t), prevUV.Lerp(curUV, t))
		}
		if curDist > 0 {
			out.push(cur, curUV)
		}

		prev, prevUV, prevDist = cur, curUV, curDist
	}

	*p = out
}

// ClipPolygon clips p against all six planes in PlaneIndex order.
func (f *Frustum) ClipPolygon(p *Polygon) {
	for idx := Left; idx <= Far; idx++ {
		f.ClipAgainstPlane(p, idx)
		if p.Count == 0 {
			return
		}
	}
}

// TrianglesFromPolygon fans p around its first vertex.
func TrianglesFromPolygon(p Polygon) []Triangle {
	return AppendTriangles(nil, p)
}

// AppendTriangles appends the fan triangulation of p to dst, yielding
// Count-2 triangles (none for a degenerate polygon).
func AppendTriangles(dst []Triangle, p Polygon) []Triangle {
	for i := 1; i+1 < p.Count; i++ {
		dst = append(dst, Triangle{
			Points: [3]math3d.Vec4{
				p.Vertices[0].Vec4(),
				p.Vertices[i].Vec4(),
				p.Vertices[i+1].Vec4(),
			},
			UVs: [3]math3d.Vec2{p.UVs[0], p.UVs[i], p.UVs[i+1]},
		})
	}
	return dst
}
