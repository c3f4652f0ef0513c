package bgremover

import "testing"

// stepRaster is black for x < split and white from split on.
func stepRaster(w, h, split int) Raster {
	r := uniformRaster(w, h, Color{255, 255, 255})
	for y := range h {
		for x := range split {
			r.Set(x, y, Color{0, 0, 0})
		}
	}
	return r
}

func TestDetectEdgesUniformIsFlat(t *testing.T) {
	e := DetectEdges(uniformRaster(8, 6, Color{90, 12, 200}))
	if e.Len() != 48 || e.Width() != 8 || e.Height() != 6 {
		t.Fatalf("edge map %dx%d len %d", e.Width(), e.Height(), e.Len())
	}
	if m := e.Max(); m != 0 {
		t.Errorf("Max() = %g on a uniform raster", m)
	}
}

func TestDetectEdgesVerticalStep(t *testing.T) {
	e := DetectEdges(stepRaster(5, 5, 2))
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			want := 0.0
			if x == 1 || x == 2 {
				want = 4 * 255
			}
			if got := e.At(x, y); got != want {
				t.Errorf("At(%d,%d) = %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestDetectEdgesBorderRingIsZero(t *testing.T) {
	r := NewRaster(7, 7)
	// checkerboard gives every pixel a strong gradient
	for y := range 7 {
		for x := range 7 {
			if (x+y)%2 == 0 {
				r.Set(x, y, Color{255, 255, 255})
			} else {
				r.Set(x, y, Color{0, 0, 0})
			}
		}
	}
	e := DetectEdges(r)
	for y := range 7 {
		for x := range 7 {
			onBorder := x == 0 || y == 0 || x == 6 || y == 6
			if onBorder && e.At(x, y) != 0 {
				t.Errorf("border (%d,%d) = %g, want 0", x, y, e.At(x, y))
			}
		}
	}
	if e.Mean() <= 0 {
		t.Error("checkerboard interior should have gradient")
	}
}

func TestDetectEdgesTinyRasters(t *testing.T) {
	for _, sz := range [][2]int{{0, 0}, {1, 1}, {2, 5}, {5, 2}} {
		e := DetectEdges(uniformRaster(sz[0], sz[1], Color{1, 2, 3}))
		if e.Len() != sz[0]*sz[1] {
			t.Errorf("%dx%d: Len() = %d", sz[0], sz[1], e.Len())
		}
		if e.Max() != 0 {
			t.Errorf("%dx%d: Max() = %g", sz[0], sz[1], e.Max())
		}
	}
}
