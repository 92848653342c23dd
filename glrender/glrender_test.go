package glrender

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
)

func TestViewRadius(t *testing.T) {
	var v View
	if got := v.Radius(); got != DefaultRadius {
		t.Fatalf("zero view radius: want %v, got %v", DefaultRadius, got)
	}
	// Four forward ticks of 1 decrease the exponent by 1: half the radius.
	for i := 0; i < 4; i++ {
		v.Scroll(1)
	}
	if got := v.Radius(); math.Abs(got-50) > 1e-9 {
		t.Errorf("want radius 50, got %v", got)
	}
	if got := v.ScrollValue(); got != -1 {
		t.Errorf("want scroll -1, got %v", got)
	}
}

func TestViewRadiusMonotonic(t *testing.T) {
	var forward, backward View
	lastF, lastB := forward.Radius(), backward.Radius()
	for i := 0; i < 2000; i++ {
		forward.Scroll(1)
		backward.Scroll(-1)
		rf, rb := forward.Radius(), backward.Radius()
		if rf <= 0 {
			t.Fatalf("radius reached %v after %d forward ticks", rf, i+1)
		}
		if rf > lastF {
			t.Fatalf("forward scroll increased radius at tick %d", i+1)
		}
		if rb < lastB {
			t.Fatalf("backward scroll decreased radius at tick %d", i+1)
		}
		want := DefaultRadius * math.Exp2(backward.ScrollValue())
		if rb != want {
			t.Fatalf("want radius %v, got %v", want, rb)
		}
		lastF, lastB = rf, rb
	}
}

func TestViewMatrixFiniteAtExtremes(t *testing.T) {
	for _, yoff := range []float64{1, -1} {
		var v View
		for i := 0; i < 1000; i++ {
			v.Scroll(yoff)
			m := v.Matrix(1280, 720)
			for j, e := range m {
				if math32.IsInf(e, 0) || math32.IsNaN(e) {
					t.Fatalf("yoff=%v tick %d: matrix element %d is %v", yoff, i+1, j, e)
				}
			}
			if m[0] == 0 || m[5] == 0 {
				t.Fatalf("yoff=%v tick %d: degenerate scale %v %v", yoff, i+1, m[0], m[5])
			}
		}
	}
	// Within bounds the matrix follows the radius exactly.
	var v View
	v.Scroll(8)
	if got, want := v.Matrix(100, 100)[5], float32(1/v.Radius()); math32.Abs(got-want) > 1e-6*want {
		t.Errorf("want y scale %v, got %v", want, got)
	}
}

func TestOrthoExtent(t *testing.T) {
	const tol = 1e-5
	const r = 100
	m := Ortho(1280, 720, r)
	aspect := float32(1280) / 720
	for _, test := range []struct {
		in   mgl32.Vec4
		want mgl32.Vec4
	}{
		{in: mgl32.Vec4{0, 0, 0, 1}, want: mgl32.Vec4{0, 0, 0, 1}},
		{in: mgl32.Vec4{aspect * r, r, 0, 1}, want: mgl32.Vec4{1, 1, 0, 1}},
		{in: mgl32.Vec4{-aspect * r, -r, 0, 1}, want: mgl32.Vec4{-1, -1, 0, 1}},
	} {
		got := m.Mul4x1(test.in)
		if !got.ApproxEqualThreshold(test.want, tol) {
			t.Errorf("Ortho maps %v to %v, want %v", test.in, got, test.want)
		}
	}
}

func TestOrthoDegenerateWindow(t *testing.T) {
	m := Ortho(800, 0, 10)
	got := m.Mul4x1(mgl32.Vec4{10, 10, 0, 1})
	if !got.ApproxEqualThreshold(mgl32.Vec4{1, 1, 0, 1}, 1e-5) {
		t.Errorf("zero height should fall back to square aspect, got %v", got)
	}
	for _, v := range m {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			t.Fatalf("non finite matrix %v", m)
		}
	}
}

func TestViewMatrixTracksZoom(t *testing.T) {
	var v View
	v.Scroll(-4) // Zoom out to radius 200.
	got := v.Matrix(100, 100).Mul4x1(mgl32.Vec4{200, 200, 0, 1})
	if !got.ApproxEqualThreshold(mgl32.Vec4{1, 1, 0, 1}, 1e-5) {
		t.Errorf("want corner mapped to (1,1), got %v", got)
	}
}

func TestHexagonMesh(t *testing.T) {
	mesh := HexagonMesh()
	if len(mesh) != 6 {
		t.Fatalf("want 6 vertices, got %d", len(mesh))
	}
	if mesh[0] != (ms2.Vec{X: 0, Y: 1}) {
		t.Errorf("first vertex should point up, got %v", mesh[0])
	}
	for i, v := range mesh {
		if d := math32.Abs(math32.Hypot(v.X, v.Y) - 1); d > 1e-6 {
			t.Errorf("vertex %d not on unit circle: %v", i, v)
		}
	}
}

func TestCartesian(t *testing.T) {
	got := Cartesian(ms2.Vec{X: 2, Y: math32.Pi / 2})
	if math32.Abs(got.X) > 1e-6 || math32.Abs(got.Y-2) > 1e-6 {
		t.Errorf("want (0,2), got %v", got)
	}
}

func TestImageRendererEmpty(t *testing.T) {
	ir, err := NewImageRenderer(ImageConfig{Width: 64, Height: 64})
	if err != nil {
		t.Fatal(err)
	}
	err = ir.UploadInstances(nil)
	if err != nil {
		t.Fatal(err)
	}
	err = ir.DrawFrame()
	if err != nil {
		t.Fatal(err)
	}
	if n := litPixels(ir); n != 0 {
		t.Errorf("empty instance set drew %d pixels", n)
	}
}

func TestImageRendererPoint(t *testing.T) {
	ir, err := NewImageRenderer(ImageConfig{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	ir.SetViewTransform(Ortho(100, 100, 10))
	// Radius 5 at angle 0 lands halfway to the right edge: pixel x=75, y=50.
	err = ir.UploadInstances([]ms2.Vec{{X: 5, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	err = ir.DrawFrame()
	if err != nil {
		t.Fatal(err)
	}
	if c := ir.Image().RGBAAt(75, 50); c.R != 255 {
		t.Errorf("expected lit pixel at (75,50), got %v", c)
	}
	if c := ir.Image().RGBAAt(25, 50); c.R != 0 {
		t.Errorf("expected dark pixel at (25,50), got %v", c)
	}
	if n := litPixels(ir); n == 0 || n > 16 {
		t.Errorf("unexpected lit pixel count %d", n)
	}
	// Points outside the view are culled.
	ir.SetViewTransform(Ortho(100, 100, 1))
	err = ir.DrawFrame()
	if err != nil {
		t.Fatal(err)
	}
	if n := litPixels(ir); n != 0 {
		t.Errorf("point outside view drew %d pixels", n)
	}
}

func TestImageRendererCaption(t *testing.T) {
	ir, err := NewImageRenderer(ImageConfig{
		Width:   200,
		Height:  60,
		Caption: "Polar Primes",
		Color:   color.RGBA{R: 255, G: 200, B: 100, A: 255},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = ir.DrawFrame()
	if err != nil {
		t.Fatal(err)
	}
	if litPixels(ir) == 0 {
		t.Error("caption drew nothing")
	}
	var buf bytes.Buffer
	err = ir.WritePNG(&buf)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 60 {
		t.Errorf("unexpected PNG bounds %v", img.Bounds())
	}
}

func TestImageRendererBadSize(t *testing.T) {
	_, err := NewImageRenderer(ImageConfig{Width: 0, Height: 10})
	if err == nil {
		t.Error("expected error for zero width")
	}
}

func litPixels(ir *ImageRenderer) (n int) {
	img := ir.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				n++
			}
		}
	}
	return n
}
