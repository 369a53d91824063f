package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads OBJ geometry from r. Only positions (v), texture
// coordinates (vt) and faces (f) are used; other statements are ignored.
// Faces with more than three corners are fan-triangulated and every face
// gets DefaultFaceColor.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	var uvs []math3d.Vec2

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: vertex: %w", lineNo, err)
			}
			mesh.AddVertex(math3d.V3(p[0], p[1], p[2]))

		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: texture coordinate: %w", lineNo, err)
			}
			uvs = append(uvs, math3d.V2(p[0], p[1]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices, got %d", lineNo, len(fields)-1)
			}
			corners := make([]objCorner, len(fields)-1)
			for i, ref := range fields[1:] {
				c, err := parseCorner(ref, len(mesh.Vertices), uvs)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: face: %w", lineNo, err)
				}
				corners[i] = c
			}
			for i := 1; i+1 < len(corners); i++ {
				a, b, c := corners[0], corners[i], corners[i+1]
				mesh.Faces = append(mesh.Faces, Face{
					A:     a.vertex,
					B:     b.vertex,
					C:     c.vertex,
					UVs:   [3]math3d.Vec2{a.uv, b.uv, c.uv},
					Color: DefaultFaceColor,
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("obj %s: %w", name, ErrEmptyMesh)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

type objCorner struct {
	vertex int
	uv     math3d.Vec2
}

// parseCorner decodes one face corner: v, v/vt, v//vn or v/vt/vn.
func parseCorner(ref string, nVerts int, uvs []math3d.Vec2) (objCorner, error) {
	parts := strings.Split(ref, "/")

	vi, err := resolveIndex(parts[0], nVerts)
	if err != nil {
		return objCorner{}, fmt.Errorf("vertex index %q: %w", ref, err)
	}
	c := objCorner{vertex: vi}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(uvs))
		if err != nil {
			return objCorner{}, fmt.Errorf("texture index %q: %w", ref, err)
		}
		c.uv = uvs[ti]
	}
	return c, nil
}

// resolveIndex converts a 1-based (or negative, end-relative) OBJ index
// into a 0-based index below n.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index out of range (have %d)", n)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
