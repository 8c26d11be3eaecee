package morphology

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// capsuleContour traces the outline of a thin W x H rectangle clockwise
// at one-pixel steps, an analytic stand-in for an elongated specimen
// border. It also returns the indices of the mid-end points (W-1, H/2)
// and (0, H/2), which serve as known head/tail anchors.
func capsuleContour(w, h int) (path []image.Point, rightEnd, leftEnd int) {
	for x := 0; x < w; x++ {
		path = append(path, image.Pt(x, 0))
	}
	for y := 1; y < h; y++ {
		path = append(path, image.Pt(w-1, y))
	}
	for x := w - 2; x >= 0; x-- {
		path = append(path, image.Pt(x, h-1))
	}
	for y := h - 2; y >= 1; y-- {
		path = append(path, image.Pt(0, y))
	}

	for i, p := range path {
		if p.X == w-1 && p.Y == h/2 {
			rightEnd = i
		}
		if p.X == 0 && p.Y == h/2 {
			leftEnd = i
		}
	}
	return path, rightEnd, leftEnd
}

// wormMask rasterizes a thick curved polyline on a 200x200 tile, the
// same overall shape as a worm specimen in an acquisition. The head end
// is on the left.
func wormMask(t *testing.T) gocv.Mat {
	t.Helper()

	mask := gocv.Zeros(200, 200, gocv.MatTypeCV8U)
	spine := []image.Point{
		{X: 30, Y: 140},
		{X: 65, Y: 115},
		{X: 105, Y: 95},
		{X: 145, Y: 102},
		{X: 172, Y: 128},
	}
	for i := 0; i+1 < len(spine); i++ {
		gocv.Line(&mask, spine[i], spine[i+1], white, 16)
	}
	return mask
}

// anteriorRef marks the left half of the tile as anterior, covering the
// worm's head end.
func anteriorRef(t *testing.T) gocv.Mat {
	t.Helper()

	ref := gocv.Zeros(200, 200, gocv.MatTypeCV8U)
	gocv.Rectangle(&ref, image.Rect(0, 0, 100, 200), white, -1)
	return ref
}

// testParams are the segmentation defaults scaled down to the synthetic
// 200x200 fixtures (the acquisition defaults assume full-size mosaics).
func testParams() Params {
	p := DefaultParams()
	p.Space = 20
	p.MidlinePoints = 1000
	return p
}
