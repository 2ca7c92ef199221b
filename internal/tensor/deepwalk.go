package tensor

// Deepwalk returns the non-leaf nodes reachable from t, each once, in
// topological order: every node comes after all of its parents.
func Deepwalk(t *Tensor) []*Tensor {
	return t.Deepwalk(map[*Tensor]bool{}, nil)
}

// Deepwalk appends to nodes the unvisited non-leaf nodes reachable from t,
// parents first, and returns the extended slice. Leaves are marked visited
// but never appended.
func (t *Tensor) Deepwalk(visited map[*Tensor]bool, nodes []*Tensor) []*Tensor {
	visited[t] = true
	if t.ctx == nil {
		return nodes
	}
	for _, parent := range t.ctx.parents {
		if !visited[parent] {
			nodes = parent.Deepwalk(visited, nodes)
		}
	}
	return append(nodes, t)
}
