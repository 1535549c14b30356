package mesh

import (
	"github.com/philipparndt/stlpath/pkg/geometry"
)

func tri(a, b, c geometry.Vector3) geometry.Triangle {
	return geometry.NewTriangle(geometry.Vector3{}, a, b, c)
}

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

// indexedGrid returns an n×n grid of unit squares, each split along its
// diagonal, as shared vertices plus faces
func indexedGrid(n int) ([]geometry.Vector3, [][3]int) {
	var verts []geometry.Vector3
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			verts = append(verts, v(float64(x), float64(y), 0))
		}
	}
	id := func(x, y int) int { return y*(n+1) + x }

	var faces [][3]int
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			faces = append(faces,
				[3]int{id(x, y), id(x+1, y), id(x+1, y+1)},
				[3]int{id(x, y), id(x+1, y+1), id(x, y+1)},
			)
		}
	}
	return verts, faces
}

// explode turns an indexed mesh back into an STL style triangle soup
func explode(verts []geometry.Vector3, faces [][3]int) []geometry.Triangle {
	out := make([]geometry.Triangle, len(faces))
	for i, f := range faces {
		out[i] = tri(verts[f[0]], verts[f[1]], verts[f[2]])
	}
	return out
}

// bruteAdjacency links faces that share two vertex ids
func bruteAdjacency(faces [][3]int) Adjacency {
	adj := make(Adjacency, len(faces))
	for i := range faces {
		for j := range faces {
			if i == j {
				continue
			}
			shared := 0
			for _, a := range faces[i] {
				for _, b := range faces[j] {
					if a == b {
						shared++
					}
				}
			}
			if shared >= 2 {
				adj[i] = append(adj[i], j)
			}
		}
	}
	return adj
}

// tetrahedron is a closed surface with outward winding
func tetrahedron(offset float64) []geometry.Triangle {
	a := v(offset, 0, 0)
	b := v(offset+1, 0, 0)
	c := v(offset, 1, 0)
	d := v(offset, 0, 1)
	return []geometry.Triangle{
		tri(a, c, b),
		tri(a, b, d),
		tri(a, d, c),
		tri(b, c, d),
	}
}
