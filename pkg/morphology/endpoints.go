package morphology

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// turningAngles computes, for every contour point, the angle between the
// vectors from that point to its neighbors space positions behind and
// ahead along the closed loop. Smooth stretches of a tubular outline give
// angles near pi; the worm's ends are the sharpest local turns and give
// angles near zero.
func turningAngles(path []image.Point, space int) ([]float64, error) {
	n := len(path)
	if space <= 0 {
		return nil, fmt.Errorf("turning angles: space %d must be positive: %w", space, ErrGeometry)
	}
	if n <= 2*space {
		return nil, fmt.Errorf("turning angles: contour of %d points is too short for space %d: %w", n, space, ErrGeometry)
	}

	angles := make([]float64, n)
	for i, p := range path {
		back := path[(i-space+n)%n]
		fwd := path[(i+space)%n]

		bx := float64(back.X - p.X)
		by := float64(back.Y - p.Y)
		fx := float64(fwd.X - p.X)
		fy := float64(fwd.Y - p.Y)

		bn := math.Hypot(bx, by)
		fn := math.Hypot(fx, fy)
		if bn == 0 || fn == 0 {
			return nil, fmt.Errorf("turning angles: coincident contour points around index %d: %w", i, ErrGeometry)
		}

		// Clamp before acos so rounding cannot produce NaN.
		cos := (bx*fx + by*fy) / (bn * fn)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		angles[i] = math.Acos(cos)
	}
	return angles, nil
}

// argMin returns the index of the smallest value. Ties break toward the
// lowest index, which keeps endpoint choice deterministic on shapes with
// no natural sharp corner (a circle, say).
func argMin(vals []float64) int {
	best := 0
	for i, v := range vals {
		if v < vals[best] {
			best = i
		}
	}
	return best
}

// EndpointIndex finds the contour index of the sharpest turn, the primary
// head/tail candidate. The contour must be longer than 2*space points.
func EndpointIndex(path []image.Point, space int) (int, error) {
	angles, err := turningAngles(path, space)
	if err != nil {
		return 0, err
	}
	return argMin(angles), nil
}

// Endpoints finds both head/tail candidates: the global sharpest turn and
// the sharpest turn outside a quarter-length guard band around it.
func Endpoints(path []image.Point, space int) (primary, secondary int, err error) {
	angles, err := turningAngles(path, space)
	if err != nil {
		return 0, 0, err
	}
	primary = argMin(angles)
	return primary, secondEndpoint(angles, primary), nil
}

// secondEndpoint scans the angles as if the contour were rotated to start
// at the primary endpoint, skipping len/4 points at both ends of the
// rotated order so the second endpoint cannot sit next to the first. The
// winning offset maps back to original indexing by modular arithmetic, so
// contours that visit the same coordinate twice cannot alias the result.
func secondEndpoint(angles []float64, primary int) int {
	n := len(angles)
	skip := n / 4

	bestOff := skip
	for off := skip; off < n-skip; off++ {
		if angles[(primary+off)%n] < angles[(primary+bestOff)%n] {
			bestOff = off
		}
	}
	return (primary + bestOff) % n
}

// ResolveHeadTail disambiguates the two endpoint candidates using the
// anterior reference mask (8-bit, non-zero marks the anterior half of the
// specimen): the endpoint whose pixel is foreground there is the head.
func ResolveHeadTail(path []image.Point, primary, secondary int, antMask gocv.Mat) (head, tail int) {
	p := path[primary]
	if antMask.GetUCharAt(p.Y, p.X) == 0 {
		return secondary, primary
	}
	return primary, secondary
}
