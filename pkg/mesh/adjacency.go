package mesh

import "slices"

// Adjacency lists, for every face, the faces sharing at least one edge with
// it in ascending index order. It is symmetric and has no self loops.
type Adjacency [][]int

// Len returns the number of faces
func (a Adjacency) Len() int {
	return len(a)
}

// Neighbors returns the faces adjacent to face
func (a Adjacency) Neighbors(face int) []int {
	if face < 0 || face >= len(a) {
		return nil
	}
	return a[face]
}

// PairCount returns the number of adjacent face pairs
func (a Adjacency) PairCount() int {
	n := 0
	for _, ns := range a {
		n += len(ns)
	}
	return n / 2
}

type edgeKey [2]int

func makeEdge(a, b int) (edgeKey, bool) {
	if a == b {
		return edgeKey{}, false
	}
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}, true
}

type edgeStats struct {
	edges       int
	boundary    int
	nonManifold int
}

// buildAdjacency maps each undirected vertex pair to the faces using it and
// links every pair of faces found under the same edge
func buildAdjacency(faces []Face) (Adjacency, edgeStats) {
	edges := make(map[edgeKey][]int, len(faces)*3/2)
	for i, f := range faces {
		for k := 0; k < 3; k++ {
			e, ok := makeEdge(f.V[k], f.V[(k+1)%3])
			if !ok {
				continue
			}
			list := edges[e]
			if n := len(list); n > 0 && list[n-1] == i {
				continue
			}
			edges[e] = append(list, i)
		}
	}

	adj := make(Adjacency, len(faces))
	var stats edgeStats
	stats.edges = len(edges)
	for _, list := range edges {
		switch {
		case len(list) == 1:
			stats.boundary++
			continue
		case len(list) > 2:
			stats.nonManifold++
		}
		for x, a := range list {
			for _, b := range list[x+1:] {
				adj[a] = append(adj[a], b)
				adj[b] = append(adj[b], a)
			}
		}
	}

	for i := range adj {
		slices.Sort(adj[i])
		adj[i] = slices.Compact(adj[i])
	}
	return adj, stats
}
