package hclust

import (
	"fmt"
	"math"
)

// Partition assigns every observation to exactly one flat cluster.
type Partition struct {
	// Labels[i] is the cluster of observation i, in [0, K). Labels are
	// numbered in order of first appearance by observation index.
	Labels []int

	// K is the number of clusters.
	K int
}

// Clusters returns the observations of each cluster, indexed by label, in
// ascending observation order.
func (p *Partition) Clusters() [][]int {
	out := make([][]int, p.K)
	for i, l := range p.Labels {
		out[l] = append(out[l], i)
	}
	return out
}

// CutTree partitions the observations into exactly k clusters by applying
// the first N-k merges, i.e. cutting the tree just before merge N-k+1.
// k must be in [1, N].
func (d *Dendrogram) CutTree(k int) (*Partition, error) {
	if k < 1 || k > d.N {
		return nil, fmt.Errorf("%w: k=%d outside [1, %d]", ErrInvalidParameter, k, d.N)
	}
	apply := make([]bool, len(d.Merges))
	for i := 0; i < d.N-k; i++ {
		apply[i] = true
	}
	return d.partition(apply), nil
}

// CutTreeAtHeight partitions the observations by discarding merges above
// height h. A merge is kept only if neither it nor any merge below it is
// higher than h, which keeps the result a valid partition even when the
// tree has inversions. h must be a non-negative number.
func (d *Dendrogram) CutTreeAtHeight(h float64) (*Partition, error) {
	if math.IsNaN(h) || h < 0 {
		return nil, fmt.Errorf("%w: height %v must be a non-negative number", ErrInvalidParameter, h)
	}

	// maxBelow[i] is the highest merge distance in the subtree of merge i.
	maxBelow := make([]float64, len(d.Merges))
	apply := make([]bool, len(d.Merges))
	for i, m := range d.Merges {
		hi := m.Distance
		for _, c := range [2]int{m.Left, m.Right} {
			if c >= d.N {
				hi = math.Max(hi, maxBelow[c-d.N])
			}
		}
		maxBelow[i] = hi
		apply[i] = hi <= h
	}
	return d.partition(apply), nil
}

// partition applies the selected merges with union-find and labels the
// resulting components. A merge is only selected when both its children
// were, so each selected merge always links two current roots.
func (d *Dendrogram) partition(apply []bool) *Partition {
	uf := newUnionFind(d.N)
	for i, m := range d.Merges {
		if apply[i] {
			uf.link(m.Left, m.Right, d.N+i)
		}
	}

	labels := make([]int, d.N)
	byRoot := make(map[int]int)
	for i := range labels {
		root := uf.find(i)
		l, ok := byRoot[root]
		if !ok {
			l = len(byRoot)
			byRoot[root] = l
		}
		labels[i] = l
	}
	return &Partition{Labels: labels, K: len(byRoot)}
}
