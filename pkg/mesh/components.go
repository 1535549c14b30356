package mesh

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// labelComponents assigns each face the index of its connected component.
// Components are numbered by their lowest face index.
func labelComponents(adj Adjacency) ([]int, int) {
	g := simple.NewUndirectedGraph()
	for i := range adj {
		g.AddNode(simple.Node(i))
	}
	for i, ns := range adj {
		for _, j := range ns {
			if j > i {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}

	comps := topo.ConnectedComponents(g)
	lowest := make([]int, len(comps))
	for c, nodes := range comps {
		lowest[c] = len(adj)
		for _, n := range nodes {
			lowest[c] = min(lowest[c], int(n.ID()))
		}
	}

	order := make([]int, len(comps))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return lowest[a] - lowest[b] })

	labels := make([]int, len(adj))
	for label, c := range order {
		for _, n := range comps[c] {
			labels[n.ID()] = label
		}
	}
	return labels, len(comps)
}
