package bgremover

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Sobel kernels, row-major over a 3×3 window.
var (
	sobelX = mat.NewVecDense(9, []float64{-1, 0, 1, -2, 0, 2, -1, 0, 1})
	sobelY = mat.NewVecDense(9, []float64{-1, -2, -1, 0, 0, 0, 1, 2, 1})
)

// EdgeMap holds one gradient magnitude per pixel. The outermost ring is
// always zero.
type EdgeMap struct {
	m *mat.Dense // height × width
}

func (e *EdgeMap) Width() int {
	_, c := e.m.Dims()
	return c
}

func (e *EdgeMap) Height() int {
	r, _ := e.m.Dims()
	return r
}

func (e *EdgeMap) Len() int {
	r, c := e.m.Dims()
	return r * c
}

// At returns the magnitude at (x, y).
func (e *EdgeMap) At(x, y int) float64 {
	return e.m.At(y, x)
}

// Max returns the strongest gradient in the map.
func (e *EdgeMap) Max() float64 {
	data := e.m.RawMatrix().Data
	if len(data) == 0 {
		return 0
	}
	return floats.Max(data)
}

// Mean returns the average gradient magnitude.
func (e *EdgeMap) Mean() float64 {
	data := e.m.RawMatrix().Data
	if len(data) == 0 {
		return 0
	}
	return floats.Sum(data) / float64(len(data))
}

// DetectEdges runs a Sobel operator over the mean of the RGB channels.
// Only interior pixels get a value.
func DetectEdges(r Raster) *EdgeMap {
	w, h := r.Width, r.Height
	if w == 0 || h == 0 {
		return &EdgeMap{m: &mat.Dense{}}
	}
	out := mat.NewDense(h, w, nil)
	if w < 3 || h < 3 {
		return &EdgeMap{m: out}
	}

	gray := make([]float64, w*h)
	for i := range gray {
		off := i * 4
		gray[i] = (float64(r.Pix[off]) + float64(r.Pix[off+1]) + float64(r.Pix[off+2])) / 3
	}

	raw := out.RawMatrix()
	window := mat.NewVecDense(9, nil)
	win := window.RawVector().Data
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			k := 0
			for ky := -1; ky <= 1; ky++ {
				row := (y + ky) * w
				for kx := -1; kx <= 1; kx++ {
					win[k] = gray[row+x+kx]
					k++
				}
			}
			gx := mat.Dot(sobelX, window)
			gy := mat.Dot(sobelY, window)
			raw.Data[y*raw.Stride+x] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return &EdgeMap{m: out}
}
