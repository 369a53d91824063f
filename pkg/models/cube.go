package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Corner numbering, 1-based as in OBJ files:
//
//	   7 -------- 5
//	  /|         /|
//	 2 -------- 3 |
//	 | 8 -------|-6
//	 |/         |/
//	 1 -------- 4

var cubeVertices = [8]math3d.Vec3{
	{X: -1, Y: -1, Z: -1}, // 1
	{X: -1, Y: 1, Z: -1},  // 2
	{X: 1, Y: 1, Z: -1},   // 3
	{X: 1, Y: -1, Z: -1},  // 4
	{X: 1, Y: 1, Z: 1},    // 5
	{X: 1, Y: -1, Z: 1},   // 6
	{X: -1, Y: 1, Z: 1},   // 7
	{X: -1, Y: -1, Z: 1},  // 8
}

// Two clockwise triangles per side, 1-based like OBJ.
var cubeSides = [6]struct {
	tris  [2][3]int
	color uint32
}{
	{[2][3]int{{1, 2, 3}, {1, 3, 4}}, 0xFFFF0000}, // front
	{[2][3]int{{4, 3, 5}, {4, 5, 6}}, 0xFF00FF00}, // right
	{[2][3]int{{6, 5, 7}, {6, 7, 8}}, 0xFF0000FF}, // back
	{[2][3]int{{8, 7, 2}, {8, 2, 1}}, 0xFFFFFF00}, // left
	{[2][3]int{{2, 7, 5}, {2, 5, 3}}, 0xFFFF00FF}, // top
	{[2][3]int{{6, 8, 1}, {6, 1, 4}}, 0xFF00FFFF}, // bottom
}

var cubeUVs = [2][3]math3d.Vec2{
	{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}},
}

// NewCube returns the 2x2x2 cube centred on the origin, 8 vertices and
// 12 faces, each side a different color.
func NewCube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = append(m.Vertices, cubeVertices[:]...)

	for _, side := range cubeSides {
		c := render.ColorFromARGB(side.color)
		for i, t := range side.tris {
			m.Faces = append(m.Faces, Face{
				A:     t[0] - 1,
				B:     t[1] - 1,
				C:     t[2] - 1,
				UVs:   cubeUVs[i],
				Color: c,
			})
		}
	}

	m.CalculateBounds()
	return m
}
