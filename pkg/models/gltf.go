package models

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// ConvertHandedness mirrors Z and reverses winding so right-handed
	// glTF geometry faces the camera in the left-handed pipeline.
	ConvertHandedness bool

	// LoadTexture decodes the first usable image into Mesh.Texture.
	LoadTexture bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		ConvertHandedness: true,
		LoadTexture:       true,
	}
}

// LoadGLB loads a GLTF or GLB file with the default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh. All triangle
// primitives of all meshes in the document are merged.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("gltf %s: %w", mesh.Name, ErrEmptyMesh)
	}

	if l.LoadTexture {
		mesh.Texture = firstTexture(doc, filepath.Dir(path))
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip lines, points and strips
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := len(mesh.Vertices)
		for _, p := range positions {
			v := math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
			if l.ConvertHandedness {
				v.Z = -v.Z
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		color := materialColor(doc, prim.Material)
		for i := 0; i+2 < len(indices); i += 3 {
			corner := [3]int{int(indices[i]), int(indices[i+1]), int(indices[i+2])}
			if l.ConvertHandedness {
				corner[1], corner[2] = corner[2], corner[1]
			}

			f := Face{Color: color}
			for j, idx := range corner {
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of range (have %d vertices)", idx, len(positions))
				}
				if idx < len(uvs) {
					// GLTF puts V=0 at the top of the image; faces use bottom-left origin
					f.UVs[j] = math3d.V2(float64(uvs[idx][0]), 1-float64(uvs[idx][1]))
				}
			}
			f.A, f.B, f.C = base+corner[0], base+corner[1], base+corner[2]
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

// materialColor returns the base color factor of the material, or
// DefaultFaceColor when the primitive has none.
func materialColor(doc *gltf.Document, idx *int) render.Color {
	if idx == nil || *idx >= len(doc.Materials) {
		return DefaultFaceColor
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil {
		return DefaultFaceColor
	}

	f := pbr.BaseColorFactorOrDefault()
	return render.RGBA(unitToByte(f[0]), unitToByte(f[1]), unitToByte(f[2]), unitToByte(f[3]))
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}

// firstTexture decodes the first image in the document that can be read,
// embedded or relative to dir. It returns nil when there is none.
func firstTexture(doc *gltf.Document, dir string) *render.Texture {
	for _, img := range doc.Images {
		var data []byte
		kind := img.MimeType
		switch {
		case img.BufferView != nil:
			b, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				continue
			}
			data = b
		case img.IsEmbeddedResource():
			b, err := img.MarshalData()
			if err != nil {
				continue
			}
			data = b
			if kind == "" {
				kind = dataURIMimeType(img.URI)
			}
		case img.URI != "":
			b, err := os.ReadFile(filepath.Join(dir, img.URI))
			if err != nil {
				continue
			}
			data = b
			if kind == "" {
				kind = filepath.Ext(img.URI)
			}
		default:
			continue
		}

		decoded, err := render.DecodeImage(bytes.NewReader(data), kind)
		if err != nil {
			continue
		}
		return render.TextureFromImage(decoded)
	}
	return nil
}

// dataURIMimeType returns the media type of a "data:<type>;base64,..." URI.
func dataURIMimeType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}
	mime, _, _ := strings.Cut(rest, ";")
	return mime
}
