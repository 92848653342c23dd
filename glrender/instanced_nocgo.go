//go:build tinygo || !cgo

package glrender

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/polarprimes/glshader"
)

var errNoCGO = errors.New("GPU rendering requires CGo and is not supported on TinyGo")

type InstancedRenderer struct{}

func NewInstancedRenderer(prog glshader.Program, cfg InstancedConfig) (*InstancedRenderer, error) {
	return nil, errNoCGO
}

func (r *InstancedRenderer) UploadInstances(points []ms2.Vec) error { return errNoCGO }
func (r *InstancedRenderer) InstanceCount() int { return 0 }
func (r *InstancedRenderer) SetViewTransform(m mgl32.Mat4) {}
func (r *InstancedRenderer) SetSpriteScale(width, height int) {}
func (r *InstancedRenderer) DrawFrame() error { return errNoCGO }
func (r *InstancedRenderer) Delete() {}
