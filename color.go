package bgremover

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

var _ color.Color = Color{}

// quantStep is the histogram bucket width used for border colors.
const quantStep = 10

// Quantize floors each channel to a multiple of 10.
func (c Color) Quantize() Color {
	return Color{
		R: c.R / quantStep * quantStep,
		G: c.G / quantStep * quantStep,
		B: c.B / quantStep * quantStep,
	}
}

func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func (c Color) Hex() string {
	return c.Colorful().Hex()
}

func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// ColorFromColorful rounds a go-colorful color back to 8-bit channels.
func ColorFromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Distance is the redmean-weighted Euclidean distance between a and b.
// It is zero iff a == b.
func Distance(a, b Color) float64 {
	rmean := (float64(a.R) + float64(b.R)) / 2
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt((2+rmean/256)*dr*dr + 4*dg*dg + (2+(255-rmean)/256)*db*db)
}
