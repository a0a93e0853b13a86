package hclust

import "errors"

// Callers match these with errors.Is. Returned errors wrap them with the
// offending value, e.g. fmt.Errorf("%w: k=%d outside [1, %d]", ErrInvalidParameter, k, n).
var (
	// ErrInvalidInput covers empty datasets, dimension mismatches and
	// non-finite features or distances.
	ErrInvalidInput = errors.New("hclust: invalid input")

	// ErrInvalidParameter covers out-of-range cut parameters and options
	// (k, height, Minkowski P, workers, inconsistency depth, algorithm).
	ErrInvalidParameter = errors.New("hclust: invalid parameter")

	// ErrUnsupportedMetric is returned for an unknown distance metric.
	ErrUnsupportedMetric = errors.New("hclust: unsupported metric")

	// ErrUnsupportedLinkage is returned for an unknown linkage rule or a
	// linkage that cannot be combined with the configured metric.
	ErrUnsupportedLinkage = errors.New("hclust: unsupported linkage")
)
