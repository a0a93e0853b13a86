package hclust

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Cophenetic returns the cophenetic distance matrix of d: entry (i, j) is
// the distance of the merge that first places observations i and j in the
// same cluster.
func (d *Dendrogram) Cophenetic() *DistanceMatrix {
	sym := mat.NewSymDense(d.N, nil)
	groups := members(d.N, d.Merges)
	for _, m := range d.Merges {
		for _, a := range groups[m.Left] {
			for _, b := range groups[m.Right] {
				sym.SetSym(a, b, m.Distance)
			}
		}
	}
	return &DistanceMatrix{sym: sym}
}

// CopheneticCorrelation returns the Pearson correlation between the
// original pairwise distances dm and the cophenetic distances of d. Values
// near 1 mean the dendrogram preserves the original distances well. The
// result is NaN when either set of distances is constant. At least three
// observations are required.
func CopheneticCorrelation(d *Dendrogram, dm *DistanceMatrix) (float64, error) {
	if d == nil || dm == nil {
		return 0, fmt.Errorf("%w: nil dendrogram or distance matrix", ErrInvalidInput)
	}
	if d.N != dm.N() {
		return 0, fmt.Errorf("%w: dendrogram covers %d observations, distance matrix %d",
			ErrInvalidInput, d.N, dm.N())
	}
	if d.N < 3 {
		return 0, fmt.Errorf("%w: cophenetic correlation needs at least 3 observations, got %d",
			ErrInvalidInput, d.N)
	}
	return stat.Correlation(dm.Condensed(), d.Cophenetic().Condensed(), nil), nil
}
