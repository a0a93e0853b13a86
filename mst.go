package hclust

import "math"

// mstEdge is an undirected edge of the minimum spanning tree.
type mstEdge struct {
	from, to int
	weight   float64
}

// primMST computes a minimum spanning tree of the complete graph described
// by dm using Prim's algorithm, starting from observation 0. Returns n-1
// edges in the order their endpoints joined the tree. Among equally near
// candidates the lowest observation index joins first.
func primMST(dm *DistanceMatrix) []mstEdge {
	n := dm.N()
	if n <= 1 {
		return nil
	}

	inTree := make([]bool, n)
	currentDistances := make([]float64, n)
	nearest := make([]int, n)

	// Seed distances from node 0's row.
	inTree[0] = true
	for j := 1; j < n; j++ {
		currentDistances[j] = dm.At(0, j)
	}

	edges := make([]mstEdge, 0, n-1)

	for i := 0; i < n-1; i++ {
		minDist := math.Inf(1)
		minNode := -1
		for j := 0; j < n; j++ {
			if !inTree[j] && (minNode == -1 || currentDistances[j] < minDist) {
				minDist = currentDistances[j]
				minNode = j
			}
		}

		edges = append(edges, mstEdge{from: nearest[minNode], to: minNode, weight: minDist})
		inTree[minNode] = true

		// Relax distances for remaining non-tree nodes.
		for k := 0; k < n; k++ {
			if !inTree[k] {
				if d := dm.At(minNode, k); d < currentDistances[k] {
					currentDistances[k] = d
					nearest[k] = minNode
				}
			}
		}
	}

	return edges
}
