package bgremover

import "image"

var (
	dx4 = [4]int{-1, 0, 1, 0}
	dy4 = [4]int{0, -1, 0, 1}
)

// FillResult is the outcome of one flood fill.
type FillResult struct {
	Mask *Mask
	// Processed counts pixels taken off the queue, accepted or not.
	Processed int
	// Truncated is set when the fill stopped at its pixel limit with work
	// still queued.
	Truncated bool
}

// FloodFill grows a 4-connected region from seed, accepting every pixel
// whose Distance to the seed's own color is within tolerance. At most
// min(width*height, limit) pixels are processed; a fill that hits the limit
// returns what it has so far. A seed outside the raster yields an empty mask.
func FloodFill(r Raster, seed image.Point, tolerance float64, limit int) FillResult {
	w, h := r.Width, r.Height
	mask := NewMask(w, h)
	if seed.X < 0 || seed.X >= w || seed.Y < 0 || seed.Y >= h {
		return FillResult{Mask: mask}
	}
	maxPixels := w * h
	if limit > 0 && limit < maxPixels {
		maxPixels = limit
	}

	seedColor := r.At(seed.X, seed.Y)
	visited := make([]bool, w*h)
	queue := make([]int, 1, 256)
	queue[0] = seed.Y*w + seed.X
	visited[queue[0]] = true

	processed := 0
	for head := 0; head < len(queue); head++ {
		if processed >= maxPixels {
			return FillResult{Mask: mask, Processed: processed, Truncated: true}
		}
		cur := queue[head]
		processed++
		cx, cy := cur%w, cur/w
		if Distance(r.At(cx, cy), seedColor) > tolerance {
			continue
		}
		mask.bits[cur] = true
		for k := range 4 {
			nx, ny := cx+dx4[k], cy+dy4[k]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nIdx := ny*w + nx
			if !visited[nIdx] {
				visited[nIdx] = true
				queue = append(queue, nIdx)
			}
		}
	}
	return FillResult{Mask: mask, Processed: processed}
}

// BorderSeeds samples each of the four border lines at a stride of
// max(1, length/perEdge).
func BorderSeeds(width, height, perEdge int) []image.Point {
	if width <= 0 || height <= 0 {
		return nil
	}
	if perEdge <= 0 {
		perEdge = 1
	}
	stepX := max(1, width/perEdge)
	stepY := max(1, height/perEdge)
	seen := make(map[image.Point]bool)
	var seeds []image.Point
	add := func(x, y int) {
		p := image.Pt(x, y)
		if !seen[p] {
			seen[p] = true
			seeds = append(seeds, p)
		}
	}
	for x := 0; x < width; x += stepX {
		add(x, 0)
		add(x, height-1)
	}
	for y := 0; y < height; y += stepY {
		add(0, y)
		add(width-1, y)
	}
	return seeds
}

// BackgroundMask ORs together independent fills seeded along the border.
func BackgroundMask(r Raster, tolerance float64, seeds []image.Point, limit int) *Mask {
	mask := NewMask(r.Width, r.Height)
	truncated := 0
	for _, s := range seeds {
		res := FloodFill(r, s, tolerance, limit)
		mask.Union(res.Mask)
		if res.Truncated {
			truncated++
		}
	}
	Logger().Debug("flood fill",
		"seeds", len(seeds),
		"truncated", truncated,
		"background", mask.Count())
	return mask
}
