package bgremover

import "math"

type bucket struct {
	count   int
	r, g, b int
}

// DominantBorderColor returns the mean color of the most frequent quantized
// bucket on the four border lines. Ties go to the bucket seen first.
func DominantBorderColor(r Raster) (Color, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return Color{}, ErrInvalidDimensions
	}
	buckets := make(map[Color]*bucket)
	order := make([]Color, 0, 64)
	forEachBorderPixel(r.Width, r.Height, func(x, y int) {
		c := r.At(x, y)
		q := c.Quantize()
		bk, ok := buckets[q]
		if !ok {
			bk = &bucket{}
			buckets[q] = bk
			order = append(order, q)
		}
		bk.count++
		bk.r += int(c.R)
		bk.g += int(c.G)
		bk.b += int(c.B)
	})

	best := buckets[order[0]]
	for _, q := range order[1:] {
		if bk := buckets[q]; bk.count > best.count {
			best = bk
		}
	}
	return best.mean(), nil
}

func (bk *bucket) mean() Color {
	n := float64(bk.count)
	return Color{
		R: uint8(math.Round(float64(bk.r) / n)),
		G: uint8(math.Round(float64(bk.g) / n)),
		B: uint8(math.Round(float64(bk.b) / n)),
	}
}
