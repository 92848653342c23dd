// Package polarui runs the interactive polar primes viewer.
package polarui

import (
	"strconv"
	"time"

	"github.com/soypat/polarprimes/glrender"
)

// Window is the part of a native window the render loop uses.
type Window interface {
	ShouldClose() bool
	// PollEvents processes pending events. Event callbacks run inside PollEvents.
	PollEvents()
	// Size returns the drawable framebuffer size in pixels.
	Size() (width, height int)
	SwapBuffers()
	SetTitle(title string)
}

// Title is the window title prefix, followed by the frame rate.
const Title = "Polar Primes"

// Loop redraws frames until the window reports it should close.
type Loop struct {
	Window   Window
	Renderer glrender.Renderer
	View     *glrender.View
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// OnFrame is called with the framebuffer size after polling events and before drawing, may be nil.
	OnFrame func(width, height int)

	last   time.Time
	frames int
}

// Run runs frames until the window should close. It returns the first draw error.
func (l *Loop) Run() error {
	for !l.Window.ShouldClose() {
		if err := l.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Frame polls events, draws a single frame, presents it and updates the title.
func (l *Loop) Frame() error {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	if l.frames == 0 {
		l.last = now()
	}
	l.Window.PollEvents()
	width, height := l.Window.Size()
	if l.OnFrame != nil {
		l.OnFrame(width, height)
	}
	l.Renderer.SetViewTransform(l.View.Matrix(width, height))
	if err := l.Renderer.DrawFrame(); err != nil {
		return err
	}
	l.Window.SwapBuffers()

	t := now()
	l.Window.SetTitle(FPSTitle(t.Sub(l.last)))
	l.last = t
	l.frames++
	return nil
}

// Frames returns the number of frames drawn.
func (l *Loop) Frames() int { return l.frames }

// FPSTitle formats a window title with the instantaneous frame rate for a frame that took dt.
func FPSTitle(dt time.Duration) string {
	b := make([]byte, 0, 32)
	b = append(b, Title+" - "...)
	if dt <= 0 {
		b = append(b, "inf"...)
	} else {
		b = strconv.AppendFloat(b, 1/dt.Seconds(), 'f', 6, 64)
	}
	b = append(b, "fps"...)
	return string(b)
}
