package polarui

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
)

// Default shader asset paths, relative to the working directory.
const (
	DefaultVertexPath   = "assets/point.vert"
	DefaultFragmentPath = "assets/point.frag"
)

// UIConfig configures the interactive viewer window.
type UIConfig struct {
	// Width and Height of the window. Default to 1280x720.
	Width, Height int
	// Shader source file paths. Default to DefaultVertexPath and DefaultFragmentPath.
	VertexPath, FragmentPath string
	// Samples is the multisample anti-aliasing sample count. Defaults to 16.
	Samples int
	// PointSize is the point sprite radius in pixels.
	PointSize float32
	// Silent disables stdout status messages.
	Silent bool
}

func (cfg UIConfig) withDefaults() UIConfig {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.VertexPath == "" {
		cfg.VertexPath = DefaultVertexPath
	}
	if cfg.FragmentPath == "" {
		cfg.FragmentPath = DefaultFragmentPath
	}
	if cfg.Samples <= 0 {
		cfg.Samples = 16
	}
	return cfg
}

func (cfg UIConfig) log(args ...any) {
	if !cfg.Silent {
		fmt.Println(args...)
	}
}

// UI opens a window and draws points until the window is closed. It
// must be called from the main thread. UI keeps no reference to points once
// they are uploaded to the GPU.
func UI(points []ms2.Vec, cfg UIConfig) error {
	return ui(points, cfg.withDefaults())
}
