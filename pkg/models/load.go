package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a model, choosing the loader by file extension.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = LoadOBJ(path)
	case ".glb", ".gltf":
		mesh, err = LoadGLB(path)
	default:
		return nil, fmt.Errorf("load model %s: %w: %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return mesh, nil
}
