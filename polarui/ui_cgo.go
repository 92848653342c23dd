//go:build !tinygo && cgo

package polarui

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/polarprimes/glrender"
	"github.com/soypat/polarprimes/glshader"
)

func ui(points []ms2.Vec, cfg UIConfig) error {
	window, term, err := startGLFW(cfg)
	if err != nil {
		return err
	}
	defer term()

	prog, err := glshader.NewProgramFromFiles(cfg.VertexPath, cfg.FragmentPath)
	if err != nil {
		return fmt.Errorf("point shader is not valid: %w", err)
	}
	defer prog.Delete()
	renderer, err := glrender.NewInstancedRenderer(prog, glrender.InstancedConfig{PointSize: cfg.PointSize})
	if err != nil {
		return err
	}
	defer renderer.Delete()
	err = renderer.UploadInstances(points)
	if err != nil {
		return fmt.Errorf("uploading %d point instances: %w", len(points), err)
	}
	cfg.log("OpenGL object created.")
	points = nil
	cfg.log("Data array released.")

	var view glrender.View
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		view.Scroll(yoff)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	fbWidth, fbHeight := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	loop := Loop{
		Window:   glfwWindow{window},
		Renderer: renderer,
		View:     &view,
		OnFrame:  renderer.SetSpriteScale,
	}
	return loop.Run()
}

// glfwWindow adapts a GLFW window to [Window].
type glfwWindow struct {
	*glfw.Window
}

func (w glfwWindow) PollEvents() { glfw.PollEvents() }

// Size returns the framebuffer size in pixels, which differs from the window
// size in screen coordinates on HiDPI displays.
func (w glfwWindow) Size() (width, height int) { return w.GetFramebufferSize() }

func startGLFW(cfg UIConfig) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)

	window, err = glfw.CreateWindow(cfg.Width, cfg.Height, Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	term = func() {
		window.Destroy()
		glfw.Terminate()
	}
	return window, term, nil
}
