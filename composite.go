package bgremover

import (
	"fmt"
	"math"
)

// Refine adds to mask every pixel whose color is within tolerance of ref and
// whose edge magnitude is below edgeThreshold. It returns the number of
// pixels it added. Inputs of mismatched size yield a ProcessingError wrapping
// ErrSizeMismatch.
func Refine(r Raster, mask *Mask, edges *EdgeMap, ref Color, tolerance, edgeThreshold float64) (int, error) {
	if err := checkMask("refine", r, mask); err != nil {
		return 0, err
	}
	if edges == nil || edges.Width() != r.Width || edges.Height() != r.Height {
		return 0, &ProcessingError{Op: "refine", Err: fmt.Errorf("%w: edge map does not cover %dx%d raster", ErrSizeMismatch, r.Width, r.Height)}
	}
	added := 0
	for y := range r.Height {
		for x := range r.Width {
			i := y*r.Width + x
			if mask.bits[i] {
				continue
			}
			if Distance(r.At(x, y), ref) < tolerance && edges.At(x, y) < edgeThreshold {
				mask.bits[i] = true
				added++
			}
		}
	}
	return added, nil
}

// CompositeHard clears alpha on masked pixels and leaves the rest alone.
func CompositeHard(r Raster, mask *Mask) error {
	if err := checkMask("composite", r, mask); err != nil {
		return err
	}
	for i, bg := range mask.bits {
		if bg {
			r.Pix[i*4+3] = 0
		}
	}
	return nil
}

// CompositeSoft clears alpha on masked pixels and feathers foreground pixels
// that border the mask. When more than ratio of a pixel's 4-neighbors are
// background its alpha is scaled by 1 - bgRatio*strength.
func CompositeSoft(r Raster, mask *Mask, ratio, strength float64) error {
	if err := checkMask("composite", r, mask); err != nil {
		return err
	}
	w := r.Width
	for y := range r.Height {
		for x := range w {
			i := y*w + x
			off := i*4 + 3
			if mask.bits[i] {
				r.Pix[off] = 0
				continue
			}
			bg, total := mask.backgroundNeighbors(x, y)
			if total == 0 {
				continue
			}
			bgRatio := float64(bg) / float64(total)
			if bgRatio <= ratio {
				continue
			}
			scale := max(0, 1-bgRatio*strength)
			r.Pix[off] = clampAlpha(float64(r.Pix[off]) * scale)
		}
	}
	return nil
}

// CompositeBanded is the fast path and needs no mask or edges. Pixels closer
// to ref than tolerance*inner become transparent; those closer than
// tolerance fade linearly. It returns the cleared and faded pixel counts.
func CompositeBanded(r Raster, ref Color, tolerance, inner float64) (cleared, faded int) {
	lo := tolerance * inner
	for y := range r.Height {
		for x := range r.Width {
			off := rgbaOffset(r.Width, x, y) + 3
			d := Distance(r.At(x, y), ref)
			switch {
			case d < lo:
				r.Pix[off] = 0
				cleared++
			case d < tolerance:
				t := (d - lo) / (tolerance - lo)
				r.Pix[off] = clampAlpha(float64(r.Pix[off]) * t)
				faded++
			}
		}
	}
	return cleared, faded
}

// checkMask reports a raster buffer or mask that does not match r's size as
// a ProcessingError for op.
func checkMask(op string, r Raster, mask *Mask) error {
	var err error
	switch {
	case r.Validate() != nil:
		err = fmt.Errorf("%w: %v", ErrSizeMismatch, r.Validate())
	case mask == nil || mask.width != r.Width || mask.height != r.Height || len(mask.bits) != r.Width*r.Height:
		err = fmt.Errorf("%w: mask does not cover %dx%d raster", ErrSizeMismatch, r.Width, r.Height)
	default:
		return nil
	}
	return &ProcessingError{Op: op, Err: err}
}

func clampAlpha(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}
