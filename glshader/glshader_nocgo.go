//go:build tinygo || !cgo

package glshader

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var errNoCGO = errors.New("shader compilation requires CGo and is not supported on TinyGo")

func Compile(src Source) (Program, error) {
	return Program{}, errNoCGO
}

func (p Program) Use() {}
func (p Program) Unbind() {}
func (p Program) Delete() {}
func (p Program) SetBool(name string, value bool) {}
func (p Program) SetInt(name string, value int32) {}
func (p Program) SetFloat(name string, value float32) {}
func (p Program) SetVec2(name string, value mgl32.Vec2) {}
func (p Program) SetVec4(name string, value mgl32.Vec4) {}
func (p Program) SetMat4(name string, value mgl32.Mat4) {}
