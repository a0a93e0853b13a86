package hclust

// leafOrder returns the observations in the order a depth-first traversal
// from the root visits them, left child first. Drawing leaves in this order
// yields a dendrogram without crossing branches.
func leafOrder(n int, merges []Merge) []int {
	if n <= 0 {
		return nil
	}
	if len(merges) == 0 {
		return []int{0}
	}

	order := make([]int, 0, n)
	stack := []int{n + len(merges) - 1}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node < n {
			order = append(order, node)
			continue
		}
		m := merges[node-n]
		stack = append(stack, m.Right, m.Left)
	}
	return order
}

// members returns the observations under every cluster id, indexed by id.
func members(n int, merges []Merge) [][]int {
	out := make([][]int, n+len(merges))
	for i := 0; i < n; i++ {
		out[i] = []int{i}
	}
	for i, m := range merges {
		left, right := out[m.Left], out[m.Right]
		merged := make([]int, 0, len(left)+len(right))
		merged = append(merged, left...)
		merged = append(merged, right...)
		out[n+i] = merged
	}
	return out
}
