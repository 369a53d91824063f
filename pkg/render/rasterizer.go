package render

import "github.com/taigrr/scanline/pkg/math3d"

// Triangle is a screen-ready triangle: X and Y are pixel coordinates,
// Z is the projected depth and W the view-space depth used for
// perspective-correct interpolation.
type Triangle struct {
	Points  [3]math3d.Vec4
	UVs     [3]math3d.Vec2
	Color   Color
	Texture *Texture
}

// BarycentricWeights returns the weights (alpha, beta, gamma) of p with
// respect to triangle abc. Alpha belongs to a, beta to b and gamma to c;
// they sum to 1. A degenerate triangle yields all zero weights.
func BarycentricWeights(a, b, c, p math3d.Vec2) math3d.Vec3 {
	area := b.Sub(a).Cross(c.Sub(a))
	if area == 0 {
		return math3d.Vec3{}
	}

	pb, pc, pa := b.Sub(p), c.Sub(p), a.Sub(p)
	alpha := pb.Cross(pc) / area
	beta := pc.Cross(pa) / area
	return math3d.V3(alpha, beta, 1-alpha-beta)
}

// scanVertex is a triangle corner snapped to the pixel grid.
type scanVertex struct {
	x, y int
	z, w float64
	uv   math3d.Vec2
}

func snap(v math3d.Vec4, uv math3d.Vec2) scanVertex {
	return scanVertex{x: int(v.X), y: int(v.Y), z: v.Z, w: v.W, uv: uv}
}

func (v scanVertex) vec4() math3d.Vec4 {
	return math3d.V4(float64(v.x), float64(v.y), v.z, v.w)
}

// sort3 orders three vertices by ascending y.
func sort3(a, b, c scanVertex) (scanVertex, scanVertex, scanVertex) {
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}
	return a, b, c
}

// scanTriangle walks the sorted triangle as a flat-bottom top half and a
// flat-top bottom half, calling plot for every pixel of each span
// [xStart, xEnd). A half whose legs have no vertical extent is skipped.
func (fb *Framebuffer) scanTriangle(v0, v1, v2 scanVertex, plot func(x, y int)) {
	if v1.y != v0.y && v2.y != v0.y {
		s1 := float64(v1.x-v0.x) / float64(v1.y-v0.y)
		s2 := float64(v2.x-v0.x) / float64(v2.y-v0.y)
		fb.scanHalf(v0.y, v1.y, v1, v2, s1, s2, plot)
	}
	if v2.y != v1.y && v2.y != v0.y {
		s1 := float64(v2.x-v1.x) / float64(v2.y-v1.y)
		s2 := float64(v2.x-v0.x) / float64(v2.y-v0.y)
		fb.scanHalf(v1.y, v2.y, v1, v2, s1, s2, plot)
	}
}

// scanHalf fills rows yFrom..yTo inclusive. Span ends are measured from
// v1 along slope s1 and from v2 along slope s2. Rows and columns outside
// the buffer are skipped; they could never be written anyway.
func (fb *Framebuffer) scanHalf(yFrom, yTo int, v1, v2 scanVertex, s1, s2 float64, plot func(x, y int)) {
	for y := max(yFrom, 0); y <= min(yTo, fb.Height-1); y++ {
		xStart := int(float64(v1.x) + float64(y-v1.y)*s1)
		xEnd := int(float64(v2.x) + float64(y-v2.y)*s2)
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
		}
		for x := max(xStart, 0); x < min(xEnd, fb.Width); x++ {
			plot(x, y)
		}
	}
}

// DrawFilledTriangle rasterizes a solid, depth-tested triangle.
func (fb *Framebuffer) DrawFilledTriangle(v0, v1, v2 math3d.Vec4, c Color) {
	p0, p1, p2 := sort3(snap(v0, math3d.Vec2{}), snap(v1, math3d.Vec2{}), snap(v2, math3d.Vec2{}))
	a, b, cc := p0.vec4(), p1.vec4(), p2.vec4()

	fb.scanTriangle(p0, p1, p2, func(x, y int) {
		fb.DrawTrianglePixel(x, y, a, b, cc, c)
	})
}

// reciprocalW interpolates 1/w at the given weights with a single
// division, returning it along with the per-vertex factors reused for
// attribute interpolation.
func reciprocalW(w math3d.Vec3, a, b, c math3d.Vec4) (recip float64, s0, s1, s2 float64) {
	s0 = w.X * b.W * c.W
	s1 = w.Y * a.W * c.W
	s2 = w.Z * a.W * b.W
	return (s0 + s1 + s2) / (a.W * b.W * c.W), s0, s1, s2
}

// DrawTrianglePixel shades one pixel of triangle abc with a solid color
// if it passes the depth test. The stored depth is 1 - 1/w.
func (fb *Framebuffer) DrawTrianglePixel(x, y int, a, b, c math3d.Vec4, col Color) {
	w := BarycentricWeights(a.Vec2(), b.Vec2(), c.Vec2(), math3d.V2(float64(x), float64(y)))
	recip, _, _, _ := reciprocalW(w, a, b, c)
	depth := 1 - recip

	if depth < fb.DepthAt(x, y) {
		fb.SetPixel(x, y, col)
		fb.SetDepth(x, y, depth)
	}
}

// DrawTexturedTriangle rasterizes a depth-tested triangle sampling tex
// with perspective-correct texture coordinates. V grows downwards in the
// image, so it is flipped to 1 - v before interpolation.
func (fb *Framebuffer) DrawTexturedTriangle(v0, v1, v2 math3d.Vec4, uv0, uv1, uv2 math3d.Vec2, tex *Texture) {
	if tex == nil {
		return
	}
	p0, p1, p2 := sort3(snap(v0, uv0), snap(v1, uv1), snap(v2, uv2))
	a, b, c := p0.vec4(), p1.vec4(), p2.vec4()
	ua := math3d.V2(p0.uv.X, 1-p0.uv.Y)
	ub := math3d.V2(p1.uv.X, 1-p1.uv.Y)
	uc := math3d.V2(p2.uv.X, 1-p2.uv.Y)

	fb.scanTriangle(p0, p1, p2, func(x, y int) {
		fb.DrawTexel(x, y, a, b, c, ua, ub, uc, tex)
	})
}

// DrawTexel shades one pixel of triangle abc from tex if it passes the
// depth test. Texture coordinates outside [0, 1] repeat.
func (fb *Framebuffer) DrawTexel(x, y int, a, b, c math3d.Vec4, ua, ub, uc math3d.Vec2, tex *Texture) {
	if tex == nil {
		return
	}
	w := BarycentricWeights(a.Vec2(), b.Vec2(), c.Vec2(), math3d.V2(float64(x), float64(y)))
	recip, s0, s1, s2 := reciprocalW(w, a, b, c)
	depth := 1 - recip
	if !(depth < fb.DepthAt(x, y)) {
		return
	}

	inv := 1 / (s0 + s1 + s2)
	u := (ua.X*s0 + ub.X*s1 + uc.X*s2) * inv
	v := (ua.Y*s0 + ub.Y*s1 + uc.Y*s2) * inv

	fb.SetPixel(x, y, tex.Sample(u, v))
	fb.SetDepth(x, y, depth)
}

// GetTriangleNormal returns the unit face normal of v0 v1 v2. In the
// left-handed system a clockwise winding seen from the viewer gives a
// normal pointing towards the viewer.
func GetTriangleNormal(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	ab := v1.Sub(v0).Normalize()
	ac := v2.Sub(v0).Normalize()
	return ab.Cross(ac).Normalize()
}
