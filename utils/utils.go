package utils

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/klauspost/compress/zip"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// WeightedColor is a palette entry with its share of the sampled pixels.
type WeightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortByBrightness orders colors by CIE L*, darkest first. Equal lightness
// keeps the input order.
func SortByBrightness(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		la, _, _ := a.Lab()
		lb, _, _ := b.Lab()
		return cmp.Compare(la, lb)
	})
}

// DominantColors returns up to k colors from dominantcolor, heaviest first.
func DominantColors(img image.Image, k int) []WeightedColor {
	if k <= 0 {
		return nil
	}
	// Over-cluster so a single cluster does not average distinct colors.
	found := dominantcolor.FindWeight(img, max(8, k*4))
	out := make([]WeightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, WeightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	sortByWeight(out)
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// kmeansSampleCap bounds the number of pixels fed to k-means.
const kmeansSampleCap = 12000

// KMeansColors clusters the opaque pixels of img and returns up to k cluster
// centers, most populous first.
func KMeansColors(img image.Image, k int) []WeightedColor {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	n := width * height
	stride := (n + kmeansSampleCap - 1) / kmeansSampleCap
	dataset := make(clusters.Observations, 0, min(n, kmeansSampleCap))
	for i := 0; i < n; i += stride {
		x, y := b.Min.X+i%width, b.Min.Y+i/width
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		if c.A == 0 {
			continue
		}
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255,
			float64(c.G) / 255,
			float64(c.B) / 255,
		})
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	out := make([]WeightedColor, 0, len(cc))
	total := float64(len(dataset))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		out = append(out, WeightedColor{Col: col, Weight: float64(len(c.Observations)) / total})
	}
	sortByWeight(out)
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// RankColors extracts up to k weighted colors with the given method. An empty
// k-means result falls back to dominantcolor.
func RankColors(img image.Image, k int, method PaletteMethod) []WeightedColor {
	switch method {
	case PaletteMethodKMeans:
		p := KMeansColors(img, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned no clusters, falling back to dominantcolor")
		return DominantColors(img, k)
	default:
		return DominantColors(img, k)
	}
}

func sortByWeight(cs []WeightedColor) {
	slices.SortStableFunc(cs, func(a, b WeightedColor) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveSwatch writes one square tile per color, left to right.
func SaveSwatch(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		x0 := i * tileSize
		for y := range tileSize {
			for x := x0; x < x0+tileSize; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return SaveImage(img, filename)
}

// ArchiveEntry is one image stored in a batch archive.
type ArchiveEntry struct {
	Name  string
	Image image.Image
}

// WriteArchive encodes every entry as PNG into a zip written to w. Names get
// a .png extension if they lack one. PNG data is stored without further
// compression.
func WriteArchive(w io.Writer, entries []ArchiveEntry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		name := e.Name
		if !strings.HasSuffix(strings.ToLower(name), ".png") {
			name += ".png"
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		if err != nil {
			zw.Close()
			return fmt.Errorf("archive %s: %w", name, err)
		}
		if err := png.Encode(fw, e.Image); err != nil {
			zw.Close()
			return fmt.Errorf("archive %s: %w", name, err)
		}
	}
	return zw.Close()
}
