// Package stack prepares stitched SRS acquisitions for segmentation: it
// corrects uneven illumination across a mosaic, regroups interleaved
// acquisition frames into per-channel stacks, and separates the protein
// signal from lipid bleed-through.
package stack

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// FlatFieldMultiplier estimates a per-pixel illumination correction field
// for a single-channel image. A heavy Gaussian blur (sigma around 50 px
// for a full mosaic) approximates the slowly varying illumination
// profile; the field maps every pixel to the profile maximum, so
// multiplying by it flattens the mosaic. The result is CV_64F and owned
// by the caller.
func FlatFieldMultiplier(img gocv.Mat, sigma float64) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.NewMat(), fmt.Errorf("flat field: empty image")
	}
	if sigma <= 0 {
		return gocv.NewMat(), fmt.Errorf("flat field: sigma %g must be positive", sigma)
	}

	f := gocv.NewMat()
	defer f.Close()
	img.ConvertTo(&f, gocv.MatTypeCV64F)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(f, &blur, image.Pt(0, 0), sigma, sigma, gocv.BorderDefault)

	minVal, maxVal, _, _ := gocv.MinMaxLoc(blur)
	if minVal <= 0 {
		return gocv.NewMat(), fmt.Errorf("flat field: illumination estimate reaches %g, cannot divide", minVal)
	}

	peak := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(maxVal), 0, 0, 0),
		blur.Rows(), blur.Cols(), gocv.MatTypeCV64F)
	defer peak.Close()

	field := gocv.NewMat()
	gocv.Divide(peak, blur, &field)
	return field, nil
}

// NormalizeImage applies a flat-field multiplier to an image, preserving
// the source bit depth (values saturate on conversion back, matching the
// acquisition dtype semantics). The input is not modified.
func NormalizeImage(img, field gocv.Mat) (gocv.Mat, error) {
	if img.Cols() != field.Cols() || img.Rows() != field.Rows() {
		return gocv.NewMat(), fmt.Errorf("normalize: image %dx%d and field %dx%d differ in size",
			img.Cols(), img.Rows(), field.Cols(), field.Rows())
	}

	f := gocv.NewMat()
	defer f.Close()
	img.ConvertTo(&f, gocv.MatTypeCV64F)

	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Multiply(f, field, &scaled)

	out := gocv.NewMat()
	scaled.ConvertTo(&out, img.Type())
	return out, nil
}
