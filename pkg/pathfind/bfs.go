// Package pathfind searches the face-adjacency graph of a mesh and turns the
// resulting face sequence into exportable records.
package pathfind

import (
	"errors"
	"fmt"
)

// ErrInvalidFace is returned for face indices outside the mesh
var ErrInvalidFace = errors.New("invalid face index")

// Graph is the adjacency view path finding needs. Neighbors must return
// faces in a stable order; it decides which of several equally short paths
// is found.
type Graph interface {
	Len() int
	Neighbors(face int) []int
}

// FindPath returns the shortest sequence of faces from start to end, both
// included, counting every adjacency as one step. found is false when end
// cannot be reached from start; that is a normal outcome, not an error.
func FindPath(g Graph, start, end int) (path []int, found bool, err error) {
	n := g.Len()
	if err := checkFace(start, n); err != nil {
		return nil, false, fmt.Errorf("start: %w", err)
	}
	if err := checkFace(end, n); err != nil {
		return nil, false, fmt.Errorf("end: %w", err)
	}
	if start == end {
		return []int{start}, true, nil
	}

	// prev doubles as the visited set: -1 is unvisited
	prev := make([]int, n)
	for i := range prev {
		prev[i] = -1
	}
	prev[start] = start

	queue := []int{start}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		for _, next := range g.Neighbors(current) {
			if next < 0 || next >= n || prev[next] >= 0 {
				continue
			}
			prev[next] = current
			if next == end {
				return walkBack(prev, start, end), true, nil
			}
			queue = append(queue, next)
		}
	}

	return nil, false, nil
}

func walkBack(prev []int, start, end int) []int {
	var path []int
	for f := end; f != start; f = prev[f] {
		path = append(path, f)
	}
	path = append(path, start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func checkFace(face, n int) error {
	if face < 0 || face >= n {
		return fmt.Errorf("%w: %d (mesh has %d faces)", ErrInvalidFace, face, n)
	}
	return nil
}
