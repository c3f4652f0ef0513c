package bgremover

import (
	"fmt"
	"image"
	"time"

	"github.com/setanarut/bgremover/utils"
)

// Mode selects the removal pipeline.
type Mode int

const (
	// ModePrecise runs border flood fill, edge-aware refinement and compositing.
	ModePrecise Mode = iota
	// ModeFast classifies by distance to the border color alone.
	ModeFast
)

func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	default:
		return "precise"
	}
}

// ParseMode accepts "precise" or "fast".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "precise":
		return ModePrecise, nil
	case "fast":
		return ModeFast, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, s)
}

// Cutoff selects how the precise mask is turned into alpha.
type Cutoff int

const (
	CutoffSoft Cutoff = iota
	CutoffHard
)

func (c Cutoff) String() string {
	if c == CutoffHard {
		return "hard"
	}
	return "soft"
}

// ReferenceMethod selects how the background reference color is estimated.
type ReferenceMethod int

const (
	// ReferenceBorder takes the most frequent quantized border color.
	ReferenceBorder ReferenceMethod = iota
	// ReferenceDominantColor runs dominantcolor over the border pixels.
	ReferenceDominantColor
	// ReferenceKMeans clusters the border pixels and takes the largest cluster.
	ReferenceKMeans
)

func (m ReferenceMethod) String() string {
	switch m {
	case ReferenceDominantColor:
		return "dominantcolor"
	case ReferenceKMeans:
		return "kmeans"
	default:
		return "border"
	}
}

const (
	MinTolerance = 10
	MaxTolerance = 100

	DefaultTolerance     = 40
	DefaultEdgeThreshold = 50
	DefaultFillLimit     = 50000
	DefaultSeedsPerEdge  = 10
)

type Options struct {
	// Color distance accepted as background, 10-100.
	// Applies to the flood fill, the refinement test and both fast bands.
	Tolerance int
	Mode      Mode
	// Precise mode only. Soft feathers the mask boundary, hard does not.
	Cutoff    Cutoff
	Reference ReferenceMethod
	// Refinement only marks pixels whose Sobel magnitude is below this.
	// Lower keeps more background-colored detail inside the subject.
	EdgeThreshold float64
	// Pixel cap per flood fill. Bounds the cost of near-uniform images;
	// a capped fill returns a partial mask.
	FillLimit int
	// Seeds sampled per border line. Stride is max(1, length/SeedsPerEdge).
	SeedsPerEdge int
	// Soft cutoff feathers a foreground pixel once more than FeatherRatio of
	// its neighbors are background, scaling alpha by 1 - ratio*FeatherStrength.
	FeatherRatio    float64
	FeatherStrength float64
	// Fast mode clears pixels closer than Tolerance*FastInnerBand and fades
	// those up to Tolerance.
	FastInnerBand float64
	// Pause between images in ProcessBatch.
	BatchPause time.Duration
}

func DefaultOptions() Options {
	return Options{
		Tolerance:       DefaultTolerance,
		Mode:            ModePrecise,
		Cutoff:          CutoffSoft,
		Reference:       ReferenceBorder,
		EdgeThreshold:   DefaultEdgeThreshold,
		FillLimit:       DefaultFillLimit,
		SeedsPerEdge:    DefaultSeedsPerEdge,
		FeatherRatio:    0.25,
		FeatherStrength: 0.6,
		FastInnerBand:   0.8,
	}
}

// OptionsFromSize raises the seed count on large images so the stride along
// each border stays near 100 pixels.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	longest := max(size.X, size.Y)
	opt.SeedsPerEdge = max(DefaultSeedsPerEdge, min(50, longest/100))
	return opt
}

// Validate checks every field against its documented range.
func (o Options) Validate() error {
	switch {
	case o.Tolerance < MinTolerance || o.Tolerance > MaxTolerance:
		return fmt.Errorf("%w: tolerance %d outside [%d,%d]", ErrInvalidOptions, o.Tolerance, MinTolerance, MaxTolerance)
	case o.Mode != ModePrecise && o.Mode != ModeFast:
		return fmt.Errorf("%w: mode %d", ErrInvalidOptions, o.Mode)
	case o.Cutoff != CutoffSoft && o.Cutoff != CutoffHard:
		return fmt.Errorf("%w: cutoff %d", ErrInvalidOptions, o.Cutoff)
	case o.Reference < ReferenceBorder || o.Reference > ReferenceKMeans:
		return fmt.Errorf("%w: reference method %d", ErrInvalidOptions, o.Reference)
	case o.EdgeThreshold <= 0:
		return fmt.Errorf("%w: edge threshold %g", ErrInvalidOptions, o.EdgeThreshold)
	case o.FillLimit <= 0:
		return fmt.Errorf("%w: fill limit %d", ErrInvalidOptions, o.FillLimit)
	case o.SeedsPerEdge <= 0:
		return fmt.Errorf("%w: seeds per edge %d", ErrInvalidOptions, o.SeedsPerEdge)
	case o.FeatherRatio < 0 || o.FeatherRatio >= 1:
		return fmt.Errorf("%w: feather ratio %g", ErrInvalidOptions, o.FeatherRatio)
	case o.FeatherStrength < 0 || o.FeatherStrength > 1:
		return fmt.Errorf("%w: feather strength %g", ErrInvalidOptions, o.FeatherStrength)
	case o.FastInnerBand <= 0 || o.FastInnerBand >= 1:
		return fmt.Errorf("%w: fast inner band %g", ErrInvalidOptions, o.FastInnerBand)
	case o.BatchPause < 0:
		return fmt.Errorf("%w: batch pause %v", ErrInvalidOptions, o.BatchPause)
	}
	return nil
}

// Remover holds one removal run and its intermediate products. Nothing in
// it is shared between runs.
type Remover struct {
	Input     Raster
	Reference Color
	Edges     *EdgeMap
	Mask      *Mask
	Output    Raster
}

func NewRemover(input Raster) *Remover {
	return &Remover{Input: input}
}

// Build runs the pipeline selected by opt. Input is never modified; Output
// is set only when Build returns nil.
func (rm *Remover) Build(opt Options) error {
	if err := opt.Validate(); err != nil {
		return &ProcessingError{Op: "options", Err: err}
	}
	if err := rm.Input.Validate(); err != nil {
		return &ProcessingError{Op: "raster", Err: err}
	}
	if err := rm.referenceColor(opt.Reference); err != nil {
		return &ProcessingError{Op: "reference color", Err: err}
	}

	work := rm.Input.Clone()
	tol := float64(opt.Tolerance)
	start := time.Now()

	if opt.Mode == ModeFast {
		cleared, faded := CompositeBanded(work, rm.Reference, tol, opt.FastInnerBand)
		Logger().Debug("fast composite",
			"reference", rm.Reference.Hex(),
			"cleared", cleared,
			"faded", faded,
			"elapsed", time.Since(start))
		rm.Output = work
		return nil
	}

	rm.edgeMap()
	rm.floodFill(opt)
	added, err := Refine(work, rm.Mask, rm.Edges, rm.Reference, tol, opt.EdgeThreshold)
	if err != nil {
		return err
	}

	switch opt.Cutoff {
	case CutoffHard:
		err = CompositeHard(work, rm.Mask)
	default:
		err = CompositeSoft(work, rm.Mask, opt.FeatherRatio, opt.FeatherStrength)
	}
	if err != nil {
		return err
	}
	Logger().Debug("precise composite",
		"reference", rm.Reference.Hex(),
		"cutoff", opt.Cutoff.String(),
		"refined", added,
		"background", rm.Mask.Count(),
		"elapsed", time.Since(start))
	rm.Output = work
	return nil
}

// ============ REFERENCE COLOR ============

func (rm *Remover) referenceColor(method ReferenceMethod) error {
	hist, err := DominantBorderColor(rm.Input)
	if err != nil {
		return err
	}
	rm.Reference = hist
	if method == ReferenceBorder {
		return nil
	}

	pm := utils.PaletteMethodDominantColor
	if method == ReferenceKMeans {
		pm = utils.PaletteMethodKMeans
	}
	ranked := utils.RankColors(rm.Input.borderSample(), 1, pm)
	if len(ranked) == 0 {
		Logger().Debug("reference palette empty, keeping border histogram",
			"method", method.String())
		return nil
	}
	rm.Reference = ColorFromColorful(ranked[0].Col)
	return nil
}

// ============ EDGES ============

func (rm *Remover) edgeMap() {
	rm.Edges = DetectEdges(rm.Input)
	Logger().Debug("edges", "max", rm.Edges.Max(), "mean", rm.Edges.Mean())
}

// ============ FLOOD FILL ============

func (rm *Remover) floodFill(opt Options) {
	seeds := BorderSeeds(rm.Input.Width, rm.Input.Height, opt.SeedsPerEdge)
	rm.Mask = BackgroundMask(rm.Input, float64(opt.Tolerance), seeds, opt.FillLimit)
}

// Process removes the background of r and returns a new raster. r is left
// untouched.
func Process(r Raster, opt Options) (Raster, error) {
	rm := NewRemover(r)
	if err := rm.Build(opt); err != nil {
		return Raster{}, err
	}
	return rm.Output, nil
}
