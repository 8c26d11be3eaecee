package morphology

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r2"
)

// resampleArc fits an exact parametric cubic spline through the arc and
// evaluates it at n equally spaced parameter values. The parameter is
// normalized cumulative chord length, so unevenly spaced contour points
// resample to a smooth, evenly parameterized curve.
func resampleArc(arc []image.Point, n int) ([]r2.Vec, error) {
	if len(arc) < 4 {
		return nil, fmt.Errorf("resample: arc of %d points is too short for a cubic fit: %w", len(arc), ErrGeometry)
	}

	u := make([]float64, len(arc))
	xs := make([]float64, len(arc))
	ys := make([]float64, len(arc))
	for i, p := range arc {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
		if i > 0 {
			step := math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1])
			if step == 0 {
				return nil, fmt.Errorf("resample: coincident arc points at index %d: %w", i, ErrGeometry)
			}
			u[i] = u[i-1] + step
		}
	}
	total := u[len(u)-1]
	for i := range u {
		u[i] /= total
	}

	var sx, sy interp.NaturalCubic
	if err := sx.Fit(u, xs); err != nil {
		return nil, fmt.Errorf("resample: x spline fit failed (%v): %w", err, ErrGeometry)
	}
	if err := sy.Fit(u, ys); err != nil {
		return nil, fmt.Errorf("resample: y spline fit failed (%v): %w", err, ErrGeometry)
	}

	out := make([]r2.Vec, n)
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = r2.Vec{X: sx.Predict(t), Y: sy.Predict(t)}
	}
	return out, nil
}

// Midline builds the centerline of the worm by splitting the contour into
// its two arcs between head and tail, resampling each arc to n points, and
// averaging them position-wise. The result is oriented so index 0 is the
// point nearest the head anchor. Both arcs need at least 4 points.
func Midline(path []image.Point, headIdx, tailIdx, n int) ([]r2.Vec, error) {
	if n < 2 {
		return nil, fmt.Errorf("midline: %d samples requested: %w", n, ErrGeometry)
	}

	lo, hi := headIdx, tailIdx
	if lo > hi {
		lo, hi = hi, lo
	}

	first := path[lo:hi]

	// The complementary arc, reversed so both halves run in the same
	// direction between the endpoints.
	second := make([]image.Point, 0, len(path)-hi+lo)
	second = append(second, path[hi:]...)
	second = append(second, path[:lo]...)
	for i, j := 0, len(second)-1; i < j; i, j = i+1, j-1 {
		second[i], second[j] = second[j], second[i]
	}

	a, err := resampleArc(first, n)
	if err != nil {
		return nil, err
	}
	b, err := resampleArc(second, n)
	if err != nil {
		return nil, err
	}

	mid := make([]r2.Vec, n)
	for i := range mid {
		mid[i] = r2.Vec{X: (a[i].X + b[i].X) / 2, Y: (a[i].Y + b[i].Y) / 2}
	}

	anchor := r2.Vec{X: float64(path[headIdx].X), Y: float64(path[headIdx].Y)}
	if dist(mid[0], anchor) > dist(mid[n-1], anchor) {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			mid[i], mid[j] = mid[j], mid[i]
		}
	}
	return mid, nil
}

func dist(a, b r2.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
