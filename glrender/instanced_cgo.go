//go:build !tinygo && cgo

package glrender

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/polarprimes/glshader"
)

// InstancedRenderer draws every point as an instance of a hexagon sprite with a single
// instanced draw call. It requires a current GL context on the calling thread.
type InstancedRenderer struct {
	prog          glshader.Program
	vao           uint32
	vbo           uint32 // sprite mesh, attribute 0.
	ibo           uint32 // point instances, attribute 1.
	vertexCount   int32
	instanceCount int32
	view          mgl32.Mat4
	spriteScale   mgl32.Vec2
	cfg           InstancedConfig
}

var _ Renderer = (*InstancedRenderer)(nil)

// NewInstancedRenderer creates the GL objects for drawing points with prog.
func NewInstancedRenderer(prog glshader.Program, cfg InstancedConfig) (*InstancedRenderer, error) {
	if !prog.Valid() {
		return nil, errors.New("invalid shader program")
	}
	if cfg.PointSize <= 0 {
		cfg.PointSize = 1.5
	}
	if cfg.Color == (mgl32.Vec4{}) {
		cfg.Color = mgl32.Vec4{1, 1, 1, 1}
	}
	if cfg.Background == (mgl32.Vec4{}) {
		cfg.Background = mgl32.Vec4{0, 0, 0, 1}
	}
	r := &InstancedRenderer{
		prog:        prog,
		view:        mgl32.Ident4(),
		spriteScale: mgl32.Vec2{0.01, 0.01},
		cfg:         cfg,
	}
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	defer gl.BindVertexArray(0)
	defer gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	mesh := HexagonMesh()
	r.vertexCount = int32(len(mesh))
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh)*vecSize, unsafe.Pointer(&mesh[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vecSize, gl.PtrOffset(0))

	gl.GenBuffers(1, &r.ibo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.ibo)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vecSize, gl.PtrOffset(0))
	gl.VertexAttribDivisor(1, 1)
	if err := glgl.Err(); err != nil {
		r.Delete()
		return nil, err
	}
	return r, nil
}

// vecSize is the size of a packed ms2.Vec: two float32.
const vecSize = 8

// UploadInstances copies points into the GPU instance buffer. The
// caller may release points after the call returns.
func (r *InstancedRenderer) UploadInstances(points []ms2.Vec) error {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.ibo)
	defer gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if len(points) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(points)*vecSize, unsafe.Pointer(&points[0]), gl.STATIC_DRAW)
	}
	if err := glgl.Err(); err != nil {
		return err
	}
	r.instanceCount = int32(len(points))
	return nil
}

// InstanceCount returns the number of uploaded instances.
func (r *InstancedRenderer) InstanceCount() int { return int(r.instanceCount) }

// SetViewTransform sets the matrix uploaded to the "mat" uniform on the next frame.
func (r *InstancedRenderer) SetViewTransform(m mgl32.Mat4) { r.view = m }

// SetSpriteScale sizes sprites to PointSize pixels for a framebuffer of the given dimensions.
func (r *InstancedRenderer) SetSpriteScale(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.spriteScale = mgl32.Vec2{
		2 * r.cfg.PointSize / float32(width),
		2 * r.cfg.PointSize / float32(height),
	}
}

// DrawFrame clears the framebuffer and issues one instanced draw call for all points.
// No draw call is issued when there are no instances.
func (r *InstancedRenderer) DrawFrame() error {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if r.instanceCount == 0 {
		return nil
	}
	r.prog.Use()
	r.prog.SetMat4(UniformView, r.view)
	r.prog.SetVec2(UniformSpriteScale, r.spriteScale)
	r.prog.SetVec4(UniformColor, r.cfg.Color)
	gl.BindVertexArray(r.vao)
	gl.DrawArraysInstanced(gl.TRIANGLE_FAN, 0, r.vertexCount, r.instanceCount)
	gl.BindVertexArray(0)
	return glgl.Err()
}

// Delete frees the GL buffers and vertex array. The shader program is not deleted.
func (r *InstancedRenderer) Delete() {
	if r.ibo != 0 {
		gl.DeleteBuffers(1, &r.ibo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	r.instanceCount = 0
}
