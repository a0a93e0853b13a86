package hclust

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// Inconsistency describes how a merge compares to the merges just below it.
type Inconsistency struct {
	// Mean and StdDev summarize the heights of the merges considered,
	// including the merge itself. StdDev is the sample standard deviation.
	Mean   float64
	StdDev float64

	// Count is the number of merges considered.
	Count int

	// Coefficient is (height - Mean) / StdDev, or 0 when StdDev is 0.
	Coefficient float64
}

// Inconsistent computes the inconsistency statistics of every merge, using
// the merges up to depth levels below it (depth 1 considers only the merge
// itself). The result is indexed like d.Merges.
func (d *Dendrogram) Inconsistent(depth int) ([]Inconsistency, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: depth must be >= 1, got %d", ErrInvalidParameter, depth)
	}

	out := make([]Inconsistency, len(d.Merges))
	var heights []float64
	for i, m := range d.Merges {
		heights = d.subtreeHeights(i, depth, heights[:0])

		r := Inconsistency{Mean: stats.Mean(heights), Count: len(heights)}
		if len(heights) > 1 {
			r.StdDev = stats.StdDev(heights)
		}
		if r.StdDev > 0 {
			r.Coefficient = (m.Distance - r.Mean) / r.StdDev
		}
		out[i] = r
	}
	return out, nil
}

// subtreeHeights appends to buf the distances of merge i and of the merges
// within depth-1 levels below it, breadth first.
func (d *Dendrogram) subtreeHeights(i, depth int, buf []float64) []float64 {
	level := []int{i}
	for l := 0; l < depth && len(level) > 0; l++ {
		var next []int
		for _, idx := range level {
			m := d.Merges[idx]
			buf = append(buf, m.Distance)
			for _, c := range [2]int{m.Left, m.Right} {
				if c >= d.N {
					next = append(next, c-d.N)
				}
			}
		}
		level = next
	}
	return buf
}
