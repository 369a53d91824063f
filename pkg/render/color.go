package render

import "image/color"

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0, A: 255}
	ColorWhite   = Color{R: 255, G: 255, B: 255, A: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0, A: 255}
	ColorGreen   = Color{R: 0, G: 255, B: 0, A: 255}
	ColorBlue    = Color{R: 0, G: 0, B: 255, A: 255}
	ColorYellow  = Color{R: 255, G: 255, B: 0, A: 255}
	ColorCyan    = Color{R: 0, G: 255, B: 255, A: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255, A: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128, A: 255}
	ColorSky     = Color{R: 135, G: 206, B: 235, A: 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ColorFromARGB unpacks a 0xAARRGGBB value.
func ColorFromARGB(argb uint32) Color {
	return Color{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: uint8(argb >> 24),
	}
}

// ToARGB packs c as 0xAARRGGBB.
func ToARGB(c Color) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ApplyIntensity scales the RGB channels of c by f, clamped to [0, 1].
// Alpha is left untouched.
func ApplyIntensity(c Color, f float64) Color {
	f = min(max(f, 0), 1)
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
