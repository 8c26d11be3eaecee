// Package morphology segments a worm's binary mask into anterior and
// posterior regions using the organism's body geometry: it traces the
// outer border of the mask, finds the head and tail as the sharpest
// turns on the border, fits a centerline spline between them, and cuts
// the mask perpendicular to the centerline at a chosen arc-length
// fraction.
//
// Masks are single-channel 8-bit gocv Mats (zero is background). All
// operations treat their inputs as immutable; functions that need to
// draw do so on a clone.
package morphology

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// BorderPath returns the outer contour of the largest foreground blob in
// the mask as an ordered, closed point sequence. Smaller blobs (noise,
// debris fragments) are ignored; masks without any foreground yield
// ErrEmptyInput.
func BorderPath(mask gocv.Mat) ([]image.Point, error) {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return nil, fmt.Errorf("border path: %w", ErrEmptyInput)
	}

	largest := 0
	largestArea := gocv.ContourArea(contours.At(0))
	for i := 1; i < contours.Size(); i++ {
		if area := gocv.ContourArea(contours.At(i)); area > largestArea {
			largest = i
			largestArea = area
		}
	}

	pts := contours.At(largest).ToPoints()
	path := make([]image.Point, len(pts))
	copy(path, pts)
	return path, nil
}
