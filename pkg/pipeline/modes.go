package pipeline

import "fmt"

// RenderMode selects what Rasterize draws for each triangle.
type RenderMode int

const (
	RenderWire         RenderMode = iota // edges only
	RenderWireVertex                     // edges plus vertex markers
	RenderFill                           // flat shaded
	RenderFillWire                       // flat shaded with edges
	RenderTextured                       // texture mapped
	RenderTexturedWire                   // texture mapped with edges
)

var renderModeNames = [...]string{
	"wire", "wire-vertex", "fill", "fill-wire", "textured", "textured-wire",
}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(renderModeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return renderModeNames[m]
}

// RenderModes lists every mode in key order (1-6 in the viewer).
func RenderModes() []RenderMode {
	return []RenderMode{RenderWire, RenderWireVertex, RenderFill, RenderFillWire, RenderTextured, RenderTexturedWire}
}

// ParseRenderMode returns the mode named s.
func ParseRenderMode(s string) (RenderMode, error) {
	for i, name := range renderModeNames {
		if name == s {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

func (m RenderMode) wire() bool {
	return m == RenderWire || m == RenderWireVertex || m == RenderFillWire || m == RenderTexturedWire
}

func (m RenderMode) fill() bool {
	return m == RenderFill || m == RenderFillWire
}

func (m RenderMode) textured() bool {
	return m == RenderTextured || m == RenderTexturedWire
}

// CullMode selects whether faces turned away from the camera are skipped.
type CullMode int

const (
	CullBackface CullMode = iota
	CullNone
)

func (c CullMode) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullBackface:
		return "backface"
	default:
		return fmt.Sprintf("CullMode(%d)", int(c))
	}
}

// ParseCullMode returns the cull mode named s.
func ParseCullMode(s string) (CullMode, error) {
	switch s {
	case "none":
		return CullNone, nil
	case "backface":
		return CullBackface, nil
	}
	return 0, fmt.Errorf("unknown cull mode %q", s)
}
