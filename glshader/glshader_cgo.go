//go:build !tinygo && cgo

package glshader

import (
	"log"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Compile compiles the vertex and fragment stages of src and links them into a Program.
// A GL context must be current on the calling thread.
func Compile(src Source) (Program, error) {
	vert, err := compileStage(src.Vertex, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return Program{}, err
	}
	defer gl.DeleteShader(vert)
	frag, err := compileStage(src.Fragment, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return Program{}, err
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(prog)
		return Program{}, &LinkError{Log: strings.TrimRight(infoLog, "\x00")}
	}
	gl.DetachShader(prog, vert)
	gl.DetachShader(prog, frag)
	return Program{id: prog}, nil
}

func compileStage(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(nullTerminated(source))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(infoLog, "\x00")}
	}
	return shader, nil
}

// Use binds the program for subsequent draw calls and uniform updates.
func (p Program) Use() {
	gl.UseProgram(p.id)
}

// Unbind unbinds any bound program.
func (p Program) Unbind() {
	gl.UseProgram(0)
}

// Delete frees the GL program.
func (p Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
	}
}

// SetBool sets a bool uniform of the bound program.
func (p Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	if loc, ok := p.location(name); ok {
		gl.Uniform1i(loc, v)
	}
}

// SetInt sets an int uniform of the bound program.
func (p Program) SetInt(name string, value int32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1i(loc, value)
	}
}

// SetFloat sets a float uniform of the bound program.
func (p Program) SetFloat(name string, value float32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1f(loc, value)
	}
}

// SetVec2 sets a vec2 uniform of the bound program.
func (p Program) SetVec2(name string, value mgl32.Vec2) {
	if loc, ok := p.location(name); ok {
		gl.Uniform2fv(loc, 1, &value[0])
	}
}

// SetVec4 sets a vec4 uniform of the bound program.
func (p Program) SetVec4(name string, value mgl32.Vec4) {
	if loc, ok := p.location(name); ok {
		gl.Uniform4fv(loc, 1, &value[0])
	}
}

// SetMat4 sets a mat4 uniform of the bound program. mgl32 matrices are column major.
func (p Program) SetMat4(name string, value mgl32.Mat4) {
	if loc, ok := p.location(name); ok {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

// location looks up a uniform. Uniforms the GLSL compiler optimized away are
// reported on every set and skipped.
func (p Program) location(name string) (int32, bool) {
	loc := gl.GetUniformLocation(p.id, gl.Str(nullTerminated(name)))
	if loc == -1 {
		log.Printf("unable to set unused uniform %q", name)
		return -1, false
	}
	return loc, true
}
