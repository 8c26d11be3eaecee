package morphology

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// QuantileIndex locates the midline index whose cumulative arc length is
// closest to q times the total length. Larger q values map to indices
// further from the head.
func QuantileIndex(mid []r2.Vec, q float64) (int, error) {
	if len(mid) < 2 {
		return 0, fmt.Errorf("quantile point: midline of %d points: %w", len(mid), ErrGeometry)
	}
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("quantile point: fraction %g outside [0,1]: %w", q, ErrGeometry)
	}

	cum := make([]float64, len(mid)-1)
	total := 0.0
	for i := 1; i < len(mid); i++ {
		total += dist(mid[i], mid[i-1])
		cum[i-1] = total
	}

	target := q * total
	best := 0
	for i, c := range cum {
		if abs(c-target) < abs(cum[best]-target) {
			best = i
		}
	}
	return best, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
