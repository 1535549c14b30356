package mesh

import (
	"math"

	"github.com/philipparndt/stlpath/pkg/geometry"
)

// DefaultTolerance is the welding distance in file units
const DefaultTolerance = 1e-6

// cellLimit keeps grid coordinates away from int64 overflow
const cellLimit = 1 << 62

type cellKey [3]int64

// welder merges raw points closer than tol into shared vertices. Points are
// hashed into cubic cells of edge tol, so every candidate within tol lies in
// the 27 cells around a point.
type welder struct {
	tol      float64
	tolSq    float64
	cells    map[cellKey][]int
	vertices []geometry.Vector3
}

func newWelder(tol float64, hint int) *welder {
	return &welder{
		tol:      tol,
		tolSq:    tol * tol,
		cells:    make(map[cellKey][]int, hint),
		vertices: make([]geometry.Vector3, 0, hint),
	}
}

func (w *welder) key(p geometry.Vector3) cellKey {
	return cellKey{cellCoord(p.X / w.tol), cellCoord(p.Y / w.tol), cellCoord(p.Z / w.tol)}
}

func cellCoord(v float64) int64 {
	f := math.Floor(v)
	switch {
	case math.IsNaN(f):
		return math.MinInt64
	case f >= cellLimit:
		return cellLimit
	case f <= -cellLimit:
		return -cellLimit
	}
	return int64(f)
}

// add returns the vertex id for p, allocating a new one when no existing
// vertex is within tolerance. When several are, the lowest id (the first
// inserted) wins, which makes welding depend on triangle order only.
func (w *welder) add(p geometry.Vector3) int {
	k := w.key(p)
	best := -1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, id := range w.cells[cellKey{k[0] + dx, k[1] + dy, k[2] + dz}] {
					if best >= 0 && id > best {
						continue
					}
					if p.DistanceSquared(w.vertices[id]) < w.tolSq {
						best = id
					}
				}
			}
		}
	}
	if best >= 0 {
		return best
	}

	id := len(w.vertices)
	w.vertices = append(w.vertices, p)
	w.cells[k] = append(w.cells[k], id)
	return id
}
