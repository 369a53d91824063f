// Package models provides the meshes fed to the render pipeline: the
// built-in cube, and OBJ and glTF loaders.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/scanline/pkg/clip"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	// ErrEmptyMesh is returned when a loaded model has no faces.
	ErrEmptyMesh = errors.New("mesh has no faces")

	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// DefaultFaceColor is assigned to faces of loaded models.
var DefaultFaceColor = render.ColorFromARGB(0xFFE7E7E7)

// Face is a triangle referencing three mesh vertices (0-based) with
// per-corner texture coordinates and a flat color.
type Face struct {
	A, B, C int
	UVs     [3]math3d.Vec2
	Color   render.Color
}

// Mesh is a triangle mesh with its own world placement.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face
	Texture  *render.Texture

	// World transform, applied as translate * rotate(Z,Y,X) * scale.
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles in radians
	Scale    math3d.Vec3

	// Model-space bounding box. AddVertex keeps it current; call
	// CalculateBounds after editing Vertices directly.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh with unit scale.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:  name,
		Scale: math3d.V3(1, 1, 1),
	}
}

// AddVertex appends a vertex, grows the bounding box to include it and
// returns its index.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	if len(m.Vertices) == 1 {
		m.BoundsMin, m.BoundsMax = v, v
	} else {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
	return len(m.Vertices) - 1
}

// AddFace appends a face. Indices must refer to existing vertices.
func (m *Mesh) AddFace(f Face) error {
	n := len(m.Vertices)
	for _, i := range [3]int{f.A, f.B, f.C} {
		if i < 0 || i >= n {
			return fmt.Errorf("face index %d out of range [0,%d)", i, n)
		}
	}
	m.Faces = append(m.Faces, f)
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Bounds returns the model-space bounding box.
func (m *Mesh) Bounds() clip.AABB {
	return clip.NewAABB(m.BoundsMin, m.BoundsMax)
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// WorldMatrix returns the model-to-world transform.
func (m *Mesh) WorldMatrix() math3d.Mat4 {
	return math3d.World(m.Scale, m.Rotation, m.Position)
}

// Normalize recentres the vertices on the origin and rescales them so
// the largest bounding box dimension equals size.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	extent := m.Size().MaxComponent()
	if extent == 0 {
		return
	}

	mat := math3d.ScaleUniform(size / extent).Mul(math3d.Translate(m.Center().Negate()))
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(v)
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh. The texture is shared.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = make([]math3d.Vec3, len(m.Vertices))
	clone.Faces = make([]Face, len(m.Faces))
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return &clone
}

// WithTexture loads the image at path and binds it to the mesh.
func (m *Mesh) WithTexture(path string) error {
	tex, err := render.LoadTexture(path)
	if err != nil {
		return err
	}
	m.Texture = tex
	return nil
}
