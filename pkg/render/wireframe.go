package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// VertexMarkerSize is the edge length of the square drawn on a vertex.
const VertexMarkerSize = 6

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLineDDA draws a line by stepping the longer axis one pixel at a time
// and rounding the other.
func (fb *Framebuffer) DrawLineDDA(x0, y0, x1, y1 int, c Color) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		fb.SetPixel(x0, y0, c)
		return
	}

	xInc := float64(dx) / float64(steps)
	yInc := float64(dy) / float64(steps)
	x, y := float64(x0), float64(y0)
	for range steps + 1 {
		fb.SetPixel(int(math.Round(x)), int(math.Round(y)), c)
		x += xInc
		y += yInc
	}
}

// DrawTriangleWire outlines a screen-space triangle with three Bresenham
// edges. Coordinates are truncated to pixels.
func (fb *Framebuffer) DrawTriangleWire(v0, v1, v2 math3d.Vec4, c Color) {
	x0, y0 := int(v0.X), int(v0.Y)
	x1, y1 := int(v1.X), int(v1.Y)
	x2, y2 := int(v2.X), int(v2.Y)
	fb.DrawLine(x0, y0, x1, y1, c)
	fb.DrawLine(x1, y1, x2, y2, c)
	fb.DrawLine(x2, y2, x0, y0, c)
}

// DrawRect draws a filled rectangle, clipped to the framebuffer.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := max(y, 0); py < min(y+h, fb.Height); py++ {
		row := fb.Pixels[py*fb.Width:]
		for px := max(x, 0); px < min(x+w, fb.Width); px++ {
			row[px] = c
		}
	}
}

// DrawVertexMarker draws a VertexMarkerSize square with its top-left
// corner on the vertex.
func (fb *Framebuffer) DrawVertexMarker(v math3d.Vec4, c Color) {
	fb.DrawRect(int(v.X), int(v.Y), VertexMarkerSize, VertexMarkerSize, c)
}

// DrawGrid sets every pixel whose x or y is a multiple of spacing.
func (fb *Framebuffer) DrawGrid(spacing int, c Color) {
	if spacing <= 0 {
		return
	}
	for y := range fb.Height {
		for x := range fb.Width {
			if x%spacing == 0 || y%spacing == 0 {
				fb.Pixels[y*fb.Width+x] = c
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
