package hclust

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix is a symmetric, zero-diagonal, non-negative n×n matrix of
// pairwise observation distances. It is read-only once built.
type DistanceMatrix struct {
	sym *mat.SymDense
}

// N returns the number of observations the matrix covers.
func (dm *DistanceMatrix) N() int {
	n, _ := dm.sym.Dims()
	return n
}

// At returns the distance between observations i and j.
func (dm *DistanceMatrix) At(i, j int) float64 {
	return dm.sym.At(i, j)
}

// Symmetric exposes the backing matrix for use with gonum routines.
// Callers must not modify it.
func (dm *DistanceMatrix) Symmetric() mat.Symmetric {
	return dm.sym
}

// Condensed returns the upper triangle in row-major order, the layout
// produced by scipy's pdist: entry (i, j) with i < j is at
// n*i - i*(i+1)/2 + j - i - 1.
func (dm *DistanceMatrix) Condensed() []float64 {
	n := dm.N()
	out := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, dm.sym.At(i, j))
		}
	}
	return out
}

// ComputeDistanceMatrix computes the pairwise distance matrix of data under
// cfg.Metric. All observations must share the same non-zero dimensionality
// and contain only finite values. Rows are spread over cfg.Workers
// goroutines.
func ComputeDistanceMatrix(data [][]float64, cfg Config) (*DistanceMatrix, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := validateObservations(data); err != nil {
		return nil, err
	}

	dist, err := cfg.Metric.distanceFunc(cfg.MinkowskiP)
	if err != nil {
		return nil, err
	}

	n := len(data)
	sym := mat.NewSymDense(n, nil)
	computePairwiseParallel(data, dist, cfg.Workers, sym)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := sym.At(i, j); math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, fmt.Errorf("%w: %v distance between observations %d and %d is %v",
					ErrInvalidInput, cfg.Metric, i, j, d)
			}
		}
	}
	return &DistanceMatrix{sym: sym}, nil
}

// NewDistanceMatrix wraps a precomputed distance matrix. flat is row-major
// with length n*n, where flat[i*n+j] is the distance between observations i
// and j. The matrix must be finite, non-negative, symmetric and have a zero
// diagonal.
func NewDistanceMatrix(flat []float64, n int) (*DistanceMatrix, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: distance matrix must cover at least one observation, got n=%d", ErrInvalidInput, n)
	}
	if len(flat) != n*n {
		return nil, fmt.Errorf("%w: distance matrix length %d does not match n*n = %d (n=%d)",
			ErrInvalidInput, len(flat), n*n, n)
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if flat[i*n+i] != 0 {
			return nil, fmt.Errorf("%w: diagonal entry %d is %v, want 0", ErrInvalidInput, i, flat[i*n+i])
		}
		for j := i + 1; j < n; j++ {
			d := flat[i*n+j]
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, fmt.Errorf("%w: distance (%d,%d) is %v", ErrInvalidInput, i, j, d)
			}
			if flat[j*n+i] != d {
				return nil, fmt.Errorf("%w: distance matrix is not symmetric at (%d,%d): %v != %v",
					ErrInvalidInput, i, j, d, flat[j*n+i])
			}
			sym.SetSym(i, j, d)
		}
	}
	return &DistanceMatrix{sym: sym}, nil
}

// validateObservations checks that data is non-empty, rectangular and finite.
func validateObservations(data [][]float64) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: no observations", ErrInvalidInput)
	}
	dims := len(data[0])
	if dims == 0 {
		return fmt.Errorf("%w: observations have no features", ErrInvalidInput)
	}
	for i, row := range data {
		if len(row) != dims {
			return fmt.Errorf("%w: observation %d has %d features, want %d", ErrInvalidInput, i, len(row), dims)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: observation %d feature %d is %v", ErrInvalidInput, i, j, v)
			}
		}
	}
	return nil
}
