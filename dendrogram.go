package hclust

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Merge is one step of the dendrogram. Left and Right are cluster ids:
// ids below N are observations, and merge i creates cluster N+i. Left is
// always the smaller id for dendrograms built by this package.
type Merge struct {
	Left     int
	Right    int
	Distance float64
	Size     int
}

// Dendrogram is the ordered merge history of an agglomerative clustering.
type Dendrogram struct {
	// N is the number of observations.
	N int

	// Linkage is the rule the dendrogram was built with.
	Linkage Linkage

	// Merges holds the N-1 merges in the order they happened.
	Merges []Merge

	// Leaves is an ordering of the observations under which the dendrogram
	// can be drawn without crossing branches.
	Leaves []int
}

// BuildDendrogram runs agglomerative clustering over a distance matrix.
//
// At every step the two active clusters at minimum linkage distance are
// merged. Pairs at exactly equal distance are resolved by preferring the
// lowest smaller cluster id, then the lowest larger cluster id, so output is
// reproducible for identical input.
func BuildDendrogram(dm *DistanceMatrix, cfg Config) (*Dendrogram, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if dm == nil || dm.sym == nil {
		return nil, fmt.Errorf("%w: nil distance matrix", ErrInvalidInput)
	}
	algo, err := selectAlgorithm(cfg)
	if err != nil {
		return nil, err
	}

	n := dm.N()
	log := cfg.Logger.With(
		zap.Int("n", n),
		zap.Stringer("linkage", cfg.Linkage),
		zap.String("algorithm", string(algo)),
	)
	log.Debug("building dendrogram")

	var merges []Merge
	switch algo {
	case AlgorithmMST:
		merges = labelMST(primMST(dm), n)
	default:
		merges = genericLinkage(dm, cfg.Linkage)
	}

	d := &Dendrogram{
		N:       n,
		Linkage: cfg.Linkage,
		Merges:  merges,
		Leaves:  leafOrder(n, merges),
	}

	if inv := d.inversions(); inv > 0 {
		log.Warn("dendrogram contains merge inversions", zap.Int("inversions", inv))
	}
	log.Debug("dendrogram built", zap.Int("merges", len(merges)))
	return d, nil
}

// genericLinkage is the naive agglomerative loop. The working matrix is
// indexed by slot; merging slots a < b stores the new cluster in slot a and
// retires slot b.
func genericLinkage(dm *DistanceMatrix, linkage Linkage) []Merge {
	n := dm.N()
	if n <= 1 {
		return nil
	}

	d := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := dm.At(i, j)
			d[i*n+j] = v
			d[j*n+i] = v
		}
	}

	id := make([]int, n)
	size := make([]int, n)
	active := make([]bool, n)
	for i := range id {
		id[i] = i
		size[i] = 1
		active[i] = true
	}

	merges := make([]Merge, 0, n-1)

	for step := 0; step < n-1; step++ {
		a, b := -1, -1
		best := math.Inf(1)
		bestLo, bestHi := 0, 0

		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				dij := d[i*n+j]
				lo, hi := min(id[i], id[j]), max(id[i], id[j])
				if a < 0 || dij < best ||
					(dij == best && (lo < bestLo || (lo == bestLo && hi < bestHi))) {
					a, b = i, j
					best = dij
					bestLo, bestHi = lo, hi
				}
			}
		}

		for k := 0; k < n; k++ {
			if !active[k] || k == a || k == b {
				continue
			}
			nd := linkage.update(d[a*n+k], d[b*n+k], best, size[a], size[b], size[k])
			d[a*n+k] = nd
			d[k*n+a] = nd
		}

		size[a] += size[b]
		active[b] = false
		id[a] = n + step

		merges = append(merges, Merge{
			Left:     bestLo,
			Right:    bestHi,
			Distance: best,
			Size:     size[a],
		})
	}

	return merges
}

// Matrix returns the merges in scipy linkage-matrix layout: each row is
// [left, right, distance, size].
func (d *Dendrogram) Matrix() [][4]float64 {
	out := make([][4]float64, len(d.Merges))
	for i, m := range d.Merges {
		out[i] = [4]float64{float64(m.Left), float64(m.Right), m.Distance, float64(m.Size)}
	}
	return out
}

// Monotonic reports whether merge distances never decrease.
func (d *Dendrogram) Monotonic() bool {
	return d.inversions() == 0
}

func (d *Dendrogram) inversions() int {
	var count int
	for i := 1; i < len(d.Merges); i++ {
		if d.Merges[i].Distance < d.Merges[i-1].Distance {
			count++
		}
	}
	return count
}

// Heights returns the merge distances in merge order.
func (d *Dendrogram) Heights() []float64 {
	out := make([]float64, len(d.Merges))
	for i, m := range d.Merges {
		out[i] = m.Distance
	}
	return out
}

// Validate checks that d describes a binary merge tree over exactly N
// observations: N-1 merges, each referring to two distinct, previously
// unmerged clusters, with consistent sizes and finite non-negative
// distances.
func (d *Dendrogram) Validate() error {
	if d.N < 1 {
		return fmt.Errorf("%w: dendrogram must cover at least one observation, got N=%d", ErrInvalidInput, d.N)
	}
	if len(d.Merges) != d.N-1 {
		return fmt.Errorf("%w: dendrogram over %d observations has %d merges, want %d",
			ErrInvalidInput, d.N, len(d.Merges), d.N-1)
	}

	sizes := make([]int, 2*d.N-1)
	used := make([]bool, 2*d.N-1)
	for i := 0; i < d.N; i++ {
		sizes[i] = 1
	}

	for i, m := range d.Merges {
		newID := d.N + i
		for _, c := range [2]int{m.Left, m.Right} {
			if c < 0 || c >= newID {
				return fmt.Errorf("%w: merge %d refers to cluster %d, want id in [0, %d)", ErrInvalidInput, i, c, newID)
			}
			if used[c] {
				return fmt.Errorf("%w: merge %d reuses cluster %d", ErrInvalidInput, i, c)
			}
		}
		if m.Left == m.Right {
			return fmt.Errorf("%w: merge %d joins cluster %d with itself", ErrInvalidInput, i, m.Left)
		}
		if math.IsNaN(m.Distance) || math.IsInf(m.Distance, 0) || m.Distance < 0 {
			return fmt.Errorf("%w: merge %d has distance %v", ErrInvalidInput, i, m.Distance)
		}
		want := sizes[m.Left] + sizes[m.Right]
		if m.Size != want {
			return fmt.Errorf("%w: merge %d has size %d, want %d", ErrInvalidInput, i, m.Size, want)
		}
		used[m.Left], used[m.Right] = true, true
		sizes[newID] = want
	}
	return nil
}
