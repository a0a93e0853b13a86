package hclust

import "sort"

// labelMST converts minimum spanning tree edges into single-linkage merges.
// Edges are processed by ascending weight (stable, so equal weights keep
// MST order); each edge joins the current clusters of its endpoints into
// cluster n+i.
func labelMST(edges []mstEdge, n int) []Merge {
	if len(edges) == 0 {
		return nil
	}

	sorted := make([]mstEdge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].weight < sorted[j].weight
	})

	uf := newUnionFind(n)
	merges := make([]Merge, 0, len(sorted))

	for i, e := range sorted {
		aa := uf.find(e.from)
		bb := uf.find(e.to)
		newSize := uf.link(aa, bb, n+i)

		merges = append(merges, Merge{
			Left:     min(aa, bb),
			Right:    max(aa, bb),
			Distance: e.weight,
			Size:     newSize,
		})
	}

	return merges
}
