package hclust

// unionFind is a disjoint-set forest over dendrogram cluster ids. It holds
// 2*n - 1 elements: observations 0..n-1 and merged clusters n..2n-2. A
// merge makes both children point at the merged cluster's id, so the root
// of any observation is always the id of its current cluster.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	total := max(2*n-1, 1)
	parent := make([]int, total)
	size := make([]int, total)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
	}
	for i := 0; i < n; i++ {
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size}
}

// find returns the root of the set containing x, with path compression.
func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// link attaches roots a and b under the unused id and returns the size of
// the merged set.
func (uf *unionFind) link(a, b, id int) int {
	uf.size[id] = uf.size[a] + uf.size[b]
	uf.parent[a] = id
	uf.parent[b] = id
	return uf.size[id]
}
