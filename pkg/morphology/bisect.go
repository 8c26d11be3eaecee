package morphology

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
)

// BisectMask severs the mask across the worm's body with a straight cut
// perpendicular to the midline at midIdx. The cut direction is the normal
// of the segment from mid[midIdx] to mid[midIdx+space]; the normal is
// left unnormalized so the cut length scales with the local midline
// spacing, extended multiplier times in both directions and rasterized as
// background with the configured thickness. The input mask is never
// modified; the cut lands on a clone.
func BisectMask(mask gocv.Mat, mid []r2.Vec, midIdx int, p Params) (gocv.Mat, error) {
	if midIdx < 0 || midIdx+p.Space >= len(mid) {
		return gocv.NewMat(), fmt.Errorf("bisect: midline index %d with space %d exceeds %d points: %w",
			midIdx, p.Space, len(mid), ErrGeometry)
	}

	p1 := mid[midIdx]
	p2 := mid[midIdx+p.Space]

	// 2D normal of the local midline direction.
	nx := p2.Y - p1.Y
	ny := p1.X - p2.X
	if nx == 0 && ny == 0 {
		return gocv.NewMat(), fmt.Errorf("bisect: zero-length midline segment at index %d: %w", midIdx, ErrGeometry)
	}

	m := float64(p.CutMultiplier)
	a := image.Pt(int(p1.X+m*nx), int(p1.Y+m*ny))
	b := image.Pt(int(p1.X-m*nx), int(p1.Y-m*ny))

	out := mask.Clone()
	gocv.Line(&out, a, b, color.RGBA{}, p.CutThickness)
	return out, nil
}

// LabelComponents assigns a distinct positive label to every 8-connected
// foreground component of the binary mask; background stays 0. It returns
// the CV_32S label image and the number of labels including background.
func LabelComponents(mask gocv.Mat) (gocv.Mat, int) {
	labels := gocv.NewMat()
	n := gocv.ConnectedComponents(mask, &labels)
	return labels, n
}

// SelectRegion keeps only the labeled region containing the anchor pixel,
// zeroing every other label. The labels Mat must be CV_32S as produced by
// LabelComponents. An anchor that lands on background (the cut line ran
// through it) yields ErrAmbiguousAnchor rather than an empty mask.
func SelectRegion(labels gocv.Mat, anchor image.Point) (gocv.Mat, error) {
	if anchor.X < 0 || anchor.Y < 0 || anchor.X >= labels.Cols() || anchor.Y >= labels.Rows() {
		return gocv.NewMat(), fmt.Errorf("select region: anchor (%d,%d) outside %dx%d mask: %w",
			anchor.X, anchor.Y, labels.Cols(), labels.Rows(), ErrGeometry)
	}

	keep := labels.GetIntAt(anchor.Y, anchor.X)
	if keep == 0 {
		return gocv.NewMat(), fmt.Errorf("select region: anchor (%d,%d): %w", anchor.X, anchor.Y, ErrAmbiguousAnchor)
	}

	out := labels.Clone()
	for y := 0; y < out.Rows(); y++ {
		for x := 0; x < out.Cols(); x++ {
			if v := out.GetIntAt(y, x); v != 0 && v != keep {
				out.SetIntAt(y, x, 0)
			}
		}
	}
	return out, nil
}
