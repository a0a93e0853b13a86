package hclust

import (
	"fmt"
	"math"
	"strings"
)

// Linkage selects how the distance between two clusters is derived from the
// distances between their members.
type Linkage int

const (
	// LinkageSingle uses the minimum member distance.
	LinkageSingle Linkage = iota
	// LinkageComplete uses the maximum member distance.
	LinkageComplete
	// LinkageAverage (UPGMA) uses the mean member distance.
	LinkageAverage
	// LinkageWeighted (WPGMA) averages the distances of the two merged halves.
	LinkageWeighted
	// LinkageCentroid uses the distance between cluster centroids.
	LinkageCentroid
	// LinkageMedian (WPGMC) uses the distance between weighted centroids.
	LinkageMedian
	// LinkageWard minimizes the increase in within-cluster variance.
	LinkageWard
)

var linkageNames = map[Linkage]string{
	LinkageSingle:   "single",
	LinkageComplete: "complete",
	LinkageAverage:  "average",
	LinkageWeighted: "weighted",
	LinkageCentroid: "centroid",
	LinkageMedian:   "median",
	LinkageWard:     "ward",
}

func (l Linkage) String() string {
	if name, ok := linkageNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Linkage(%d)", int(l))
}

// ParseLinkage maps a linkage name to its Linkage. Matching is
// case-insensitive.
func ParseLinkage(name string) (Linkage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l, n := range linkageNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedLinkage, name)
}

// Monotonic reports whether merge distances under l are guaranteed to be
// non-decreasing. Centroid and median linkage can produce inversions.
func (l Linkage) Monotonic() bool {
	return l != LinkageCentroid && l != LinkageMedian
}

// requiresEuclidean reports whether l is only geometrically meaningful on
// Euclidean distances.
func (l Linkage) requiresEuclidean() bool {
	return l == LinkageCentroid || l == LinkageMedian || l == LinkageWard
}

func (l Linkage) valid() bool {
	_, ok := linkageNames[l]
	return ok
}

// update returns the distance between the cluster formed by merging x and y
// and another active cluster i (Lance-Williams recurrence). dxi, dyi and dxy
// are the current inter-cluster distances; nx, ny and ni are cluster sizes.
func (l Linkage) update(dxi, dyi, dxy float64, nx, ny, ni int) float64 {
	fx, fy, fi := float64(nx), float64(ny), float64(ni)
	switch l {
	case LinkageSingle:
		return math.Min(dxi, dyi)
	case LinkageComplete:
		return math.Max(dxi, dyi)
	case LinkageAverage:
		return (fx*dxi + fy*dyi) / (fx + fy)
	case LinkageWeighted:
		return 0.5 * (dxi + dyi)
	case LinkageCentroid:
		t := fx + fy
		return safeSqrt((fx*dxi*dxi + fy*dyi*dyi - fx*fy*dxy*dxy/t) / t)
	case LinkageMedian:
		return safeSqrt(0.5*(dxi*dxi+dyi*dyi) - 0.25*dxy*dxy)
	case LinkageWard:
		t := 1 / (fx + fy + fi)
		return safeSqrt((fi+fx)*t*dxi*dxi + (fi+fy)*t*dyi*dyi - fi*t*dxy*dxy)
	default:
		panic(fmt.Sprintf("hclust: update called with invalid linkage %d", int(l)))
	}
}

// safeSqrt clamps tiny negative radicands produced by rounding to zero.
func safeSqrt(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}
