package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw implements uv.Drawable. Each terminal cell shows two framebuffer
// rows with the upper half block: fg = top pixel, bg = bottom pixel.
// The framebuffer height should be 2x the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// rgbaToColor maps fully transparent pixels to the terminal default.
func rgbaToColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
