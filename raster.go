package bgremover

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Raster is a width×height grid of non-premultiplied RGBA pixels stored
// row-major in Pix. Channel c of pixel (x, y) is Pix[(y*Width+x)*4+c].
type Raster struct {
	Width, Height int
	Pix           []byte
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height int) Raster {
	return Raster{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// RasterFromImage copies img into a fresh raster, converting to
// non-premultiplied RGBA.
func RasterFromImage(img image.Image) Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == w*4 && b.Min == (image.Point{}) {
		return Raster{Width: w, Height: h, Pix: append([]byte(nil), nrgba.Pix[:w*h*4]...)}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return Raster{Width: w, Height: h, Pix: dst.Pix}
}

func rgbaOffset(w, x, y int) int {
	return (y*w + x) * 4
}

// Validate reports a buffer that does not match the raster dimensions.
func (r Raster) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("negative size %dx%d", r.Width, r.Height)
	}
	if want := r.Width * r.Height * 4; len(r.Pix) != want {
		return fmt.Errorf("buffer length %d does not match %dx%dx4=%d", len(r.Pix), r.Width, r.Height, want)
	}
	return nil
}

// Clone returns a deep copy of r.
func (r Raster) Clone() Raster {
	return Raster{Width: r.Width, Height: r.Height, Pix: append([]byte(nil), r.Pix...)}
}

// At returns the RGB color of pixel (x, y). The caller keeps x, y in bounds.
func (r Raster) At(x, y int) Color {
	off := rgbaOffset(r.Width, x, y)
	return Color{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2]}
}

// Alpha returns the alpha channel of pixel (x, y).
func (r Raster) Alpha(x, y int) uint8 {
	return r.Pix[rgbaOffset(r.Width, x, y)+3]
}

// Set writes an opaque pixel.
func (r Raster) Set(x, y int, c Color) {
	off := rgbaOffset(r.Width, x, y)
	r.Pix[off] = c.R
	r.Pix[off+1] = c.G
	r.Pix[off+2] = c.B
	r.Pix[off+3] = 255
}

// NRGBA wraps a copy of the raster as an image.
func (r Raster) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    append([]byte(nil), r.Pix...),
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Fill paints every pixel with an opaque c.
func (r Raster) Fill(c Color) {
	for i := 0; i+3 < len(r.Pix); i += 4 {
		r.Pix[i] = c.R
		r.Pix[i+1] = c.G
		r.Pix[i+2] = c.B
		r.Pix[i+3] = 255
	}
}

// borderSample packs the border pixels into a near-square image so that
// palette extractors see a normal aspect ratio. Trailing cells wrap around
// to the first pixels.
func (r Raster) borderSample() *image.NRGBA {
	pts := make([]Color, 0, 2*r.Width+2*r.Height)
	forEachBorderPixel(r.Width, r.Height, func(x, y int) {
		pts = append(pts, r.At(x, y))
	})
	cols := int(math.Ceil(math.Sqrt(float64(len(pts)))))
	rows := (len(pts) + cols - 1) / cols
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for i := range cols * rows {
		c := pts[i%len(pts)]
		img.SetNRGBA(i%cols, i/cols, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	return img
}

// forEachBorderPixel visits the top row, bottom row, left column and right
// column, in that order. Corners are visited once per line they lie on.
func forEachBorderPixel(w, h int, fn func(x, y int)) {
	for x := range w {
		fn(x, 0)
	}
	for x := range w {
		fn(x, h-1)
	}
	for y := range h {
		fn(0, y)
	}
	for y := range h {
		fn(w-1, y)
	}
}
