// Package glrender draws polar prime point clouds. Points are [ms2.Vec] instances
// where X is the polar radius and Y the polar angle in radians.
package glrender

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
)

// Renderer is implemented by point cloud renderers.
type Renderer interface {
	// UploadInstances stores the point instances to draw. Renderers copy points.
	UploadInstances(points []ms2.Vec) error
	// SetViewTransform sets the matrix that maps cartesian point positions to clip space.
	SetViewTransform(m mgl32.Mat4)
	// DrawFrame clears the target and draws all uploaded instances.
	DrawFrame() error
}

const (
	// DefaultRadius is the view radius at zero scroll.
	DefaultRadius = 100
	// ScrollSensitivity scales scroll wheel offsets into zoom exponent steps.
	ScrollSensitivity = 0.25
)

// Uniform names the point shader program is expected to declare.
const (
	UniformView        = "mat"
	UniformSpriteScale = "uSpriteScale"
	UniformColor       = "uColor"
)

// InstancedConfig configures an [InstancedRenderer].
type InstancedConfig struct {
	// PointSize is the sprite radius in pixels. Defaults to 1.5.
	PointSize float32
	// Color of points. Defaults to opaque white.
	Color mgl32.Vec4
	// Background clear color. Defaults to opaque black.
	Background mgl32.Vec4
}

// View holds zoom state driven by scroll input. The zero value is the default view.
type View struct {
	scroll float64
}

// Scroll accumulates a scroll wheel offset. Positive yoff (scroll forward) zooms in.
func (v *View) Scroll(yoff float64) {
	v.scroll -= yoff * ScrollSensitivity
}

// ScrollValue returns the accumulated zoom exponent.
func (v *View) ScrollValue() float64 { return v.scroll }

// Radius returns the half height of the visible area, 100*2^scroll.
func (v *View) Radius() float64 {
	r := DefaultRadius * math.Exp2(v.scroll)
	if r == 0 {
		// Exp2 underflow.
		r = math.SmallestNonzeroFloat64
	}
	return r
}

// Matrix returns the view transform for a window of the given size.
// The radius is clamped to [minMatrixRadius, maxMatrixRadius] so the float32 matrix stays finite.
func (v *View) Matrix(width, height int) mgl32.Mat4 {
	r := min(max(v.Radius(), minMatrixRadius), maxMatrixRadius)
	return Ortho(width, height, float32(r))
}

// Bounds leave float32 headroom for extreme window aspect ratios.
const (
	minMatrixRadius = 1e-30
	maxMatrixRadius = 1e30
)

// Ortho returns an orthographic projection centered at the origin spanning
// radius vertically and radius*width/height horizontally. Non-positive sizes use an aspect ratio of 1.
func Ortho(width, height int, radius float32) mgl32.Mat4 {
	ratio := float32(1)
	if width > 0 && height > 0 {
		ratio = float32(width) / float32(height)
	}
	ratio *= radius
	return mgl32.Ortho2D(-ratio, ratio, -radius, radius)
}

// HexagonMesh returns the unit hexagon used as point sprite, ordered for a triangle fan.
func HexagonMesh() []ms2.Vec {
	const sides = 6
	mesh := make([]ms2.Vec, sides)
	for i := range mesh {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / sides)
		mesh[i] = ms2.Vec{X: s, Y: c}
	}
	return mesh
}

// Cartesian converts a polar point instance to cartesian coordinates.
func Cartesian(p ms2.Vec) ms2.Vec {
	s, c := math32.Sincos(p.Y)
	return ms2.Vec{X: p.X * c, Y: p.X * s}
}
