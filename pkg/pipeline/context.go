// Package pipeline turns meshes into pixels: it transforms, culls, clips
// and projects faces into a per-frame triangle queue, then rasterizes the
// queue into a framebuffer. All renderer state lives in a RenderContext.
package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/scanline/pkg/clip"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	ErrInvalidViewport  = errors.New("viewport must have positive width and height")
	ErrInvalidClipRange = errors.New("clip range must satisfy 0 < zNear < zFar")
	ErrInvalidFOV       = errors.New("vertical field of view must be in (0, pi)")
)

// Options configures a RenderContext.
type Options struct {
	Width, Height int
	FOVY          float64 // vertical field of view, radians
	ZNear, ZFar   float64
	MaxTriangles  int // per-frame queue capacity
}

// DefaultOptions returns an 800x600 viewport with a 90 degree vertical
// field of view.
func DefaultOptions() Options {
	return Options{
		Width:        800,
		Height:       600,
		FOVY:         math.Pi / 2,
		ZNear:        0.1,
		ZFar:         100,
		MaxTriangles: 50000,
	}
}

// Validate reports whether the options describe a usable viewport.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, o.Width, o.Height)
	}
	if !(o.ZNear > 0 && o.ZNear < o.ZFar) {
		return fmt.Errorf("%w: near %v, far %v", ErrInvalidClipRange, o.ZNear, o.ZFar)
	}
	if !(o.FOVY > 0 && o.FOVY < math.Pi) {
		return fmt.Errorf("%w: %v", ErrInvalidFOV, o.FOVY)
	}
	return nil
}

// Stats counts what happened to the faces of the current frame.
type Stats struct {
	Meshes       int // meshes processed
	MeshesCulled int // meshes rejected whole by their bounding box
	Faces        int // faces considered
	FacesCulled  int // faces skipped as back-facing
	FacesClipped int // faces clipped away entirely
	Triangles    int // triangles queued
	Dropped      int // triangles lost to a full queue
}

// RenderContext holds the camera, light, projection and buffers of one
// renderer. A context is not safe for concurrent use; independent
// contexts may run on separate goroutines.
type RenderContext struct {
	Camera      *render.Camera
	Light       Light
	Frustum     clip.Frustum
	Projection  math3d.Mat4
	Framebuffer *render.Framebuffer
	RenderMode  RenderMode
	CullMode    CullMode
	ClearColor  render.Color
	Stats       Stats

	opts  Options
	queue []render.Triangle

	// scratch reused across faces
	clipped []clip.Triangle
}

// NewRenderContext validates opts and allocates the buffers. The camera
// starts at the origin looking down +Z and the light shines along +Z.
func NewRenderContext(opts Options) (*RenderContext, error) {
	if opts.MaxTriangles <= 0 {
		opts.MaxTriangles = DefaultOptions().MaxTriangles
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rc := &RenderContext{
		Camera:      render.NewCamera(math3d.Zero3()),
		Light:       NewLight(math3d.Forward()),
		Framebuffer: render.NewFramebuffer(opts.Width, opts.Height),
		RenderMode:  RenderTextured,
		CullMode:    CullBackface,
		ClearColor:  render.ColorBlack,
		opts:        opts,
		queue:       make([]render.Triangle, 0, opts.MaxTriangles),
		clipped:     make([]clip.Triangle, 0, clip.MaxPolygonTriangles),
	}
	rc.updateProjection()
	return rc, nil
}

// Options returns the options currently in effect.
func (rc *RenderContext) Options() Options {
	return rc.opts
}

// Resize changes the viewport, reallocating the buffers and rebuilding
// the projection and frustum.
func (rc *RenderContext) Resize(width, height int) error {
	opts := rc.opts
	opts.Width, opts.Height = width, height
	if err := opts.Validate(); err != nil {
		return err
	}
	rc.opts = opts
	rc.Framebuffer.Resize(width, height)
	rc.updateProjection()
	return nil
}

func (rc *RenderContext) updateProjection() {
	o := rc.opts
	aspect := float64(o.Height) / float64(o.Width)
	rc.Projection = math3d.Perspective(o.FOVY, aspect, o.ZNear, o.ZFar)
	fovX := math3d.HorizontalFOV(o.FOVY, o.Width, o.Height)
	rc.Frustum = clip.InitializeFrustumPlanes(fovX, o.FOVY, o.ZNear, o.ZFar)
}

// BeginFrame empties the triangle queue, clears the color and depth
// buffers and resets the statistics.
func (rc *RenderContext) BeginFrame() {
	rc.queue = rc.queue[:0]
	rc.Framebuffer.Clear(rc.ClearColor)
	rc.Framebuffer.ClearDepth()
	rc.Stats = Stats{}
}

// Triangles returns the queued triangles of the current frame. The slice
// is only valid until the next BeginFrame.
func (rc *RenderContext) Triangles() []render.Triangle {
	return rc.queue
}

// enqueue appends t unless the queue is full.
func (rc *RenderContext) enqueue(t render.Triangle) {
	if len(rc.queue) == cap(rc.queue) {
		if rc.Stats.Dropped == 0 {
			Logger().Warn("triangle queue full, dropping triangles", "capacity", cap(rc.queue))
		}
		rc.Stats.Dropped++
		return
	}
	rc.queue = append(rc.queue, t)
	rc.Stats.Triangles++
}
