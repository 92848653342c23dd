// Package glshader loads, compiles and links vertex+fragment GLSL programs
// and sets their uniforms.
package glshader

import (
	"fmt"
	"os"
)

// Source holds vertex and fragment GLSL source code.
type Source struct {
	Vertex   string
	Fragment string
}

// Stage names reported by [CompileError].
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
)

// FileError is returned when a shader source file could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("reading shader file %q: %s", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// CompileError is returned when a shader stage fails to compile. Log is the GL info log.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return "unable to compile " + e.Stage + " shader:\n" + e.Log
}

// LinkError is returned when a program fails to link. Log is the GL info log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "unable to link shader program:\n" + e.Log
}

// ReadSource reads vertex and fragment shader source from files.
func ReadSource(vertexPath, fragmentPath string) (Source, error) {
	vert, err := os.ReadFile(vertexPath)
	if err != nil {
		return Source{}, &FileError{Path: vertexPath, Err: err}
	}
	frag, err := os.ReadFile(fragmentPath)
	if err != nil {
		return Source{}, &FileError{Path: fragmentPath, Err: err}
	}
	return Source{Vertex: string(vert), Fragment: string(frag)}, nil
}

// NewProgramFromFiles reads, compiles and links a program from the vertex and fragment
// shader files. On any failure the returned Program is not valid.
func NewProgramFromFiles(vertexPath, fragmentPath string) (Program, error) {
	src, err := ReadSource(vertexPath, fragmentPath)
	if err != nil {
		return Program{}, err
	}
	return Compile(src)
}

// Program is a linked GPU shader program. The zero value is not valid.
type Program struct {
	id uint32
}

// Valid reports whether the program compiled and linked successfully.
func (p Program) Valid() bool { return p.id != 0 }

// ID returns the GL program name, 0 if invalid.
func (p Program) ID() uint32 { return p.id }

// nullTerminated returns s with a trailing NUL as expected by gl.Str.
func nullTerminated(s string) string {
	if len(s) > 0 && s[len(s)-1] == 0 {
		return s
	}
	return s + "\x00"
}
