package pipeline

import (
	"github.com/taigrr/scanline/pkg/clip"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// ProcessPipeline runs the geometry stages for one mesh and appends the
// resulting screen-space triangles to the frame's queue:
//
//	model -> world -> camera -> cull -> clip -> project -> screen
//
// A mesh whose bounding box lies wholly outside the frustum is skipped.
func (rc *RenderContext) ProcessPipeline(mesh *models.Mesh) {
	rc.Stats.Meshes++
	modelView := rc.Camera.ViewMatrix().Mul(mesh.WorldMatrix())

	if box := mesh.Bounds(); box.Min != box.Max && !rc.Frustum.IntersectAABB(box.Transform(modelView)) {
		rc.Stats.MeshesCulled++
		return
	}

	n := len(mesh.Vertices)
	for _, face := range mesh.Faces {
		if !validIndex(face.A, n) || !validIndex(face.B, n) || !validIndex(face.C, n) {
			continue
		}
		rc.Stats.Faces++

		a := modelView.MulVec4(mesh.Vertices[face.A].Vec4()).Vec3()
		b := modelView.MulVec4(mesh.Vertices[face.B].Vec4()).Vec3()
		c := modelView.MulVec4(mesh.Vertices[face.C].Vec4()).Vec3()
		normal := render.GetTriangleNormal(a, b, c)

		if rc.CullMode == CullBackface && facesAway(a, normal) {
			rc.Stats.FacesCulled++
			continue
		}

		poly := clip.PolygonFromTriangle(a, b, c, face.UVs[0], face.UVs[1], face.UVs[2])
		rc.Frustum.ClipPolygon(&poly)
		rc.clipped = clip.AppendTriangles(rc.clipped[:0], poly)
		if len(rc.clipped) == 0 {
			rc.Stats.FacesClipped++
			continue
		}

		color := render.ApplyIntensity(face.Color, rc.Light.Intensity(normal))
		for _, t := range rc.clipped {
			tri := render.Triangle{
				UVs:     t.UVs,
				Color:   color,
				Texture: mesh.Texture,
			}
			for i, p := range t.Points {
				tri.Points[i] = rc.toScreen(p)
			}
			rc.enqueue(tri)
		}
	}
}

func validIndex(i, n int) bool {
	return i >= 0 && i < n
}

// facesAway reports whether a camera-space face with first vertex v0
// points away from the camera, which sits at the origin. Edge-on faces
// count as facing away.
func facesAway(v0, normal math3d.Vec3) bool {
	return math3d.Zero3().Sub(v0).Dot(normal) <= 0
}

// toScreen projects a camera-space point and maps it to pixels, with y
// growing downwards. Z keeps the projected depth and W the camera depth.
func (rc *RenderContext) toScreen(p math3d.Vec4) math3d.Vec4 {
	halfW := float64(rc.opts.Width) / 2
	halfH := float64(rc.opts.Height) / 2

	v := math3d.ProjectVec4(rc.Projection, p)
	v.X = v.X*halfW + halfW
	v.Y = -v.Y*halfH + halfH
	return v
}

// Rasterize draws one queued triangle according to the render mode.
// Textured modes fall back to a solid fill for untextured triangles.
// Edges are drawn in white and vertex markers in red.
func (rc *RenderContext) Rasterize(t render.Triangle) {
	fb := rc.Framebuffer
	a, b, c := t.Points[0], t.Points[1], t.Points[2]

	switch {
	case rc.RenderMode.textured() && t.Texture != nil:
		fb.DrawTexturedTriangle(a, b, c, t.UVs[0], t.UVs[1], t.UVs[2], t.Texture)
	case rc.RenderMode.textured(), rc.RenderMode.fill():
		fb.DrawFilledTriangle(a, b, c, t.Color)
	}

	if rc.RenderMode.wire() {
		fb.DrawTriangleWire(a, b, c, render.ColorWhite)
	}

	if rc.RenderMode == RenderWireVertex {
		for _, p := range t.Points {
			fb.DrawVertexMarker(p, render.ColorRed)
		}
	}
}

// Render rasterizes the queued triangles in order.
func (rc *RenderContext) Render() {
	for _, t := range rc.queue {
		rc.Rasterize(t)
	}

	s := rc.Stats
	Logger().Debug("frame rendered",
		"mode", rc.RenderMode,
		"meshes", s.Meshes,
		"faces", s.Faces,
		"culled", s.FacesCulled,
		"clipped", s.FacesClipped,
		"triangles", s.Triangles,
		"dropped", s.Dropped,
	)
}

// Frame renders one complete frame of the given meshes.
func (rc *RenderContext) Frame(meshes ...*models.Mesh) {
	rc.BeginFrame()
	for _, m := range meshes {
		rc.ProcessPipeline(m)
	}
	rc.Render()
}
