package glrender

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/ms2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// ImageConfig configures an [ImageRenderer].
type ImageConfig struct {
	Width, Height int
	// PointRadius is the radius of each point disc in pixels. Defaults to 1.
	PointRadius float32
	// Color of points. Defaults to white.
	Color color.RGBA
	// Background color. Defaults to opaque black.
	Background color.RGBA
	// Caption is drawn in the top left corner when not empty.
	Caption string
	// CaptionSize is the caption font size in points. Defaults to 14.
	CaptionSize float64
}

// ImageRenderer is a CPU [Renderer] that draws points into an image.
// It projects points with the same view transform as the GPU point shader.
type ImageRenderer struct {
	cfg    ImageConfig
	img    *image.RGBA
	points []ms2.Vec
	view   mgl32.Mat4
	font   *truetype.Font
}

var _ Renderer = (*ImageRenderer)(nil)

// NewImageRenderer returns an [ImageRenderer] that draws into a new image of cfg's size.
func NewImageRenderer(cfg ImageConfig) (*ImageRenderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("image dimensions must be positive")
	}
	if cfg.PointRadius <= 0 {
		cfg.PointRadius = 1
	}
	if cfg.Color == (color.RGBA{}) {
		cfg.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if cfg.Background == (color.RGBA{}) {
		cfg.Background = color.RGBA{A: 255}
	}
	if cfg.CaptionSize <= 0 {
		cfg.CaptionSize = 14
	}
	ir := &ImageRenderer{
		cfg:  cfg,
		img:  image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		view: Ortho(cfg.Width, cfg.Height, DefaultRadius),
	}
	if cfg.Caption != "" {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return nil, err
		}
		ir.font = f
	}
	return ir, nil
}

// UploadInstances copies points for subsequent frames.
func (ir *ImageRenderer) UploadInstances(points []ms2.Vec) error {
	ir.points = append(ir.points[:0], points...)
	return nil
}

// SetViewTransform sets the projection used on the next frame.
func (ir *ImageRenderer) SetViewTransform(m mgl32.Mat4) { ir.view = m }

// DrawFrame clears the image and draws all points and the caption.
func (ir *ImageRenderer) DrawFrame() error {
	draw.Draw(ir.img, ir.img.Bounds(), image.NewUniform(ir.cfg.Background), image.Point{}, draw.Src)
	for _, p := range ir.points {
		x, y, ok := ir.project(p)
		if ok {
			ir.stamp(x, y)
		}
	}
	if ir.font != nil {
		return ir.drawCaption()
	}
	return nil
}

// Image returns the image drawn into. It is overwritten by every DrawFrame call.
func (ir *ImageRenderer) Image() *image.RGBA { return ir.img }

// WritePNG encodes the last drawn frame as PNG.
func (ir *ImageRenderer) WritePNG(w io.Writer) error {
	return png.Encode(w, ir.img)
}

// project returns the pixel coordinates of point p. ok is false if p lands outside clip space.
func (ir *ImageRenderer) project(p ms2.Vec) (x, y float32, ok bool) {
	c := Cartesian(p)
	clip := ir.view.Mul4x1(mgl32.Vec4{c.X, c.Y, 0, 1})
	if clip[3] == 0 {
		return 0, 0, false
	}
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]
	margin := 2 * ir.cfg.PointRadius / float32(min(ir.cfg.Width, ir.cfg.Height))
	if math32.Abs(nx) > 1+margin || math32.Abs(ny) > 1+margin {
		return 0, 0, false
	}
	x = (nx + 1) / 2 * float32(ir.cfg.Width)
	y = (1 - ny) / 2 * float32(ir.cfg.Height)
	return x, y, true
}

// stamp fills a disc of PointRadius pixels centered at (x,y).
func (ir *ImageRenderer) stamp(x, y float32) {
	r := ir.cfg.PointRadius
	bounds := ir.img.Bounds()
	x0, x1 := int(math32.Floor(x-r)), int(math32.Ceil(x+r))
	y0, y1 := int(math32.Floor(y-r)), int(math32.Ceil(y+r))
	for j := max(y0, bounds.Min.Y); j < min(y1, bounds.Max.Y); j++ {
		for i := max(x0, bounds.Min.X); i < min(x1, bounds.Max.X); i++ {
			// Pixel centers.
			dx, dy := float32(i)+0.5-x, float32(j)+0.5-y
			if dx*dx+dy*dy <= r*r {
				ir.img.SetRGBA(i, j, ir.cfg.Color)
			}
		}
	}
}

func (ir *ImageRenderer) drawCaption() error {
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(ir.font)
	c.SetFontSize(ir.cfg.CaptionSize)
	c.SetClip(ir.img.Bounds())
	c.SetDst(ir.img)
	c.SetSrc(image.NewUniform(ir.cfg.Color))
	c.SetHinting(font.HintingNone)
	const pad = 8
	baseline := pad + c.PointToFixed(ir.cfg.CaptionSize).Ceil()
	_, err := c.DrawString(ir.cfg.Caption, fixed.P(pad, baseline))
	return err
}
