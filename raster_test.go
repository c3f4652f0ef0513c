package bgremover

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func uniformRaster(w, h int, c Color) Raster {
	r := NewRaster(w, h)
	r.Fill(c)
	return r
}

// framedRaster has a border ring of outer and an interior of inner.
func framedRaster(w, h int, outer, inner Color) Raster {
	r := uniformRaster(w, h, outer)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			r.Set(x, y, inner)
		}
	}
	return r
}

func TestRasterValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Raster
		ok   bool
	}{
		{"ok", NewRaster(3, 2), true},
		{"empty", Raster{}, true},
		{"short", Raster{Width: 2, Height: 2, Pix: make([]byte, 15)}, false},
		{"long", Raster{Width: 1, Height: 1, Pix: make([]byte, 8)}, false},
		{"negative", Raster{Width: -1, Height: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestRasterCloneIsDeep(t *testing.T) {
	r := uniformRaster(4, 4, Color{10, 20, 30})
	c := r.Clone()
	r.Set(0, 0, Color{255, 0, 0})
	if got := c.At(0, 0); got != (Color{10, 20, 30}) {
		t.Errorf("clone changed with original: %v", got)
	}
}

func TestRasterFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.RGBA{255, 0, 0, 255})
	src.Set(7, 6, color.RGBA{0, 0, 255, 255})
	r := RasterFromImage(src)
	if r.Width != 3 || r.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", r.Width, r.Height)
	}
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := r.At(0, 0); got != (Color{255, 0, 0}) {
		t.Errorf("At(0,0) = %v", got)
	}
	if got := r.At(2, 1); got != (Color{0, 0, 255}) {
		t.Errorf("At(2,1) = %v", got)
	}
	if a := r.Alpha(1, 0); a != 0 {
		t.Errorf("Alpha(1,0) = %d, want 0", a)
	}
}

func TestRasterNRGBARoundTrip(t *testing.T) {
	r := framedRaster(6, 5, Color{1, 2, 3}, Color{200, 100, 50})
	back := RasterFromImage(r.NRGBA())
	if diff := cmp.Diff(r, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestForEachBorderPixelOrder(t *testing.T) {
	var got []image.Point
	forEachBorderPixel(3, 2, func(x, y int) { got = append(got, image.Pt(x, y)) })
	want := []image.Point{
		{0, 0}, {1, 0}, {2, 0}, // top
		{0, 1}, {1, 1}, {2, 1}, // bottom
		{0, 0}, {0, 1}, // left
		{2, 0}, {2, 1}, // right
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("border order (-want +got):\n%s", diff)
	}
}
