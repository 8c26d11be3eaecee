package morphology

import "errors"

// Error taxonomy of the segmentation pipeline. Every stage wraps one of
// these sentinels with stage context, so callers can both match the
// failure class with errors.Is and log which stage rejected the specimen.
var (
	// ErrEmptyInput indicates a mask with no usable foreground: nothing to
	// trace a border on, or no connected component left after bisection.
	ErrEmptyInput = errors.New("mask has no foreground")

	// ErrGeometry indicates a shape the geometric operations cannot
	// support: a contour too short for the requested neighborhood sizes,
	// coincident points producing zero-length vectors, or an index that
	// falls outside the midline.
	ErrGeometry = errors.New("degenerate geometry")

	// ErrAmbiguousAnchor indicates an anchor pixel that lies on background
	// after bisection, so no region can be attributed to it.
	ErrAmbiguousAnchor = errors.New("anchor lies on background")
)
