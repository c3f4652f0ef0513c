package bgremover

import "image"

// Mask marks background pixels. It always has width*height entries.
type Mask struct {
	width  int
	height int
	bits   []bool
}

func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}
}

func (m *Mask) Width() int  { return m.width }
func (m *Mask) Height() int { return m.height }
func (m *Mask) Len() int    { return len(m.bits) }

// At reports whether (x, y) is background. Out-of-range is false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Set marks (x, y). Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = v
}

// Union ORs other into m. Masks of different size are left untouched and
// Union returns false.
func (m *Mask) Union(other *Mask) bool {
	if other == nil || other.width != m.width || other.height != m.height {
		return false
	}
	for i, v := range other.bits {
		if v {
			m.bits[i] = true
		}
	}
	return true
}

// Count returns the number of background pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.bits {
		if v {
			n++
		}
	}
	return n
}

// Gray renders the mask with background as black and foreground as white.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for i, v := range m.bits {
		if !v {
			img.Pix[i] = 255
		}
	}
	return img
}

// backgroundNeighbors counts 4-connected in-bounds neighbors of (x, y) and
// how many of them are background.
func (m *Mask) backgroundNeighbors(x, y int) (bg, total int) {
	for k := range 4 {
		nx, ny := x+dx4[k], y+dy4[k]
		if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
			continue
		}
		total++
		if m.bits[ny*m.width+nx] {
			bg++
		}
	}
	return bg, total
}
