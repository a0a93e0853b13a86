package hclust

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Metric selects the pairwise distance function between observations.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSqEuclidean
	MetricManhattan
	MetricChebyshev
	MetricMinkowski
	MetricCosine
	MetricHamming
	MetricJaccard
)

var metricNames = map[Metric]string{
	MetricEuclidean:   "euclidean",
	MetricSqEuclidean: "sqeuclidean",
	MetricManhattan:   "manhattan",
	MetricChebyshev:   "chebyshev",
	MetricMinkowski:   "minkowski",
	MetricCosine:      "cosine",
	MetricHamming:     "hamming",
	MetricJaccard:     "jaccard",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// ParseMetric maps a metric name to its Metric. Matching is
// case-insensitive; "cityblock" is accepted as an alias for manhattan.
func ParseMetric(name string) (Metric, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "cityblock" {
		return MetricManhattan, nil
	}
	for m, n := range metricNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMetric, name)
}

// distanceFunc resolves m into a concrete distance function. p is only
// consulted for MetricMinkowski.
func (m Metric) distanceFunc(p float64) (func(a, b []float64) float64, error) {
	switch m {
	case MetricEuclidean:
		return euclidean, nil
	case MetricSqEuclidean:
		return sqEuclidean, nil
	case MetricManhattan:
		return manhattan, nil
	case MetricChebyshev:
		return chebyshev, nil
	case MetricMinkowski:
		if !(p >= 1) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: Minkowski P must be a finite value >= 1, got %v", ErrInvalidParameter, p)
		}
		return func(a, b []float64) float64 { return floats.Distance(a, b, p) }, nil
	case MetricCosine:
		return cosine, nil
	case MetricHamming:
		return hamming, nil
	case MetricJaccard:
		return jaccard, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMetric, m)
	}
}

func euclidean(a, b []float64) float64 { return floats.Distance(a, b, 2) }

func sqEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func manhattan(a, b []float64) float64 { return floats.Distance(a, b, 1) }

func chebyshev(a, b []float64) float64 { return floats.Distance(a, b, math.Inf(1)) }

// cosine returns 1 - cosine similarity. Zero vectors yield NaN, which
// ComputeDistanceMatrix rejects.
func cosine(a, b []float64) float64 {
	return 1 - floats.Dot(a, b)/(floats.Norm(a, 2)*floats.Norm(b, 2))
}

// hamming returns the fraction of coordinates that differ.
func hamming(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var diff int
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	return float64(diff) / float64(len(a))
}

// jaccard returns the fraction of unequal coordinates among those that are
// non-zero in either vector. Two all-zero vectors are at distance 0.
func jaccard(a, b []float64) float64 {
	var union, diff int
	for i := range a {
		if a[i] != 0 || b[i] != 0 {
			union++
			if a[i] != b[i] {
				diff++
			}
		}
	}
	if union == 0 {
		return 0
	}
	return float64(diff) / float64(union)
}
