package morphology

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Params holds every tunable of the segmentation pipeline. Zero values
// are not usable defaults; start from DefaultParams.
type Params struct {
	// Space is the contour offset used both for turning-angle estimation
	// and for the local midline direction at the cut point.
	Space int

	// MidlinePoints is the number of samples in the resampled midline.
	MidlinePoints int

	// Quantile is the head-side arc-length fraction at which the worm is
	// cut into anterior and posterior parts.
	Quantile float64

	// CutMultiplier scales the bisection segment length.
	CutMultiplier int

	// CutThickness is the rasterized width of the cut in pixels.
	CutThickness int
}

// DefaultParams returns the acquisition defaults the pipeline was tuned
// with.
func DefaultParams() Params {
	return Params{
		Space:         50,
		MidlinePoints: 5000,
		Quantile:      0.13,
		CutMultiplier: 6,
		CutThickness:  2,
	}
}

// GetWormMasks splits the worm mask into its anterior and posterior
// regions. The anterior reference mask (non-zero over the anterior half
// of the specimen, typically derived from a protein-dominant channel)
// decides which endpoint is the head.
//
// The pipeline is linear: border trace, endpoint detection, head/tail
// resolution, midline fit, cut-point location, perpendicular bisection,
// connectivity labeling, and region selection anchored at head and tail.
// Both returned masks carry their connected-component label values; the
// caller owns them and must Close both. A failure in any stage aborts the
// whole segmentation; no partial output is returned. Inputs are never
// mutated, so repeated calls on the same masks are bit-identical.
func GetWormMasks(mask, antMask gocv.Mat, p Params) (gocv.Mat, gocv.Mat, error) {
	border, err := BorderPath(mask)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("border extraction: %w", err)
	}

	primary, secondary, err := Endpoints(border, p.Space)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("endpoint detection: %w", err)
	}
	head, tail := ResolveHeadTail(border, primary, secondary, antMask)

	mid, err := Midline(border, head, tail, p.MidlinePoints)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("midline fit: %w", err)
	}

	cutIdx, err := QuantileIndex(mid, p.Quantile)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("cut point: %w", err)
	}

	cut, err := BisectMask(mask, mid, cutIdx, p)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("bisection: %w", err)
	}
	defer cut.Close()

	labels, n := LabelComponents(cut)
	defer labels.Close()
	if n <= 1 {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("labeling: %w", ErrEmptyInput)
	}

	anterior, err := SelectRegion(labels, border[head])
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("anterior selection: %w", err)
	}
	posterior, err := SelectRegion(labels, border[tail])
	if err != nil {
		anterior.Close()
		return gocv.NewMat(), gocv.NewMat(), fmt.Errorf("posterior selection: %w", err)
	}
	return anterior, posterior, nil
}
