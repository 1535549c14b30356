// Package analysis summarises a welded mesh for reporting.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/stlpath/pkg/geometry"
	"github.com/philipparndt/stlpath/pkg/mesh"
)

// EdgeInfo describes one welded edge
type EdgeInfo struct {
	A, B   int // vertex ids, A < B
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Faces  int // number of faces using the edge
}

// MeasurementResult contains measurements and topology of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	Topology      mesh.Stats
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Edges         []EdgeInfo
}

// AnalyzeMesh measures m. Edges are the distinct welded edges in order of
// first use; collapsed edges are skipped.
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: geometry.NewBoundingBox(),
		Topology:    m.Stats,
	}

	for _, p := range m.Vertices {
		result.BoundingBox.Extend(p)
	}
	result.Dimensions = result.BoundingBox.Size()

	index := make(map[[2]int]int)
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
		result.SurfaceArea += b.Sub(a).Cross(c.Sub(a)).Length() / 2

		for k := 0; k < 3; k++ {
			lo, hi := f.V[k], f.V[(k+1)%3]
			if lo == hi {
				continue
			}
			if lo > hi {
				lo, hi = hi, lo
			}
			key := [2]int{lo, hi}
			if i, ok := index[key]; ok {
				result.Edges[i].Faces++
				continue
			}
			index[key] = len(result.Edges)
			result.Edges = append(result.Edges, EdgeInfo{
				A:      lo,
				B:      hi,
				Start:  m.Vertices[lo],
				End:    m.Vertices[hi],
				Length: m.Vertices[lo].Distance(m.Vertices[hi]),
				Faces:  1,
			})
		}
	}

	if len(result.Edges) == 0 {
		return result
	}

	result.MinEdgeLength = math.MaxFloat64
	total := 0.0
	for _, e := range result.Edges {
		total += e.Length
		result.MinEdgeLength = math.Min(result.MinEdgeLength, e.Length)
		result.MaxEdgeLength = math.Max(result.MaxEdgeLength, e.Length)
	}
	result.AvgEdgeLength = total / float64(len(result.Edges))

	return result
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

// OpenEdges returns edges that are not shared by exactly two faces
func OpenEdges(result *MeasurementResult) []EdgeInfo {
	var edges []EdgeInfo
	for _, e := range result.Edges {
		if e.Faces != 2 {
			edges = append(edges, e)
		}
	}
	return edges
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.Edges))
	copy(edges, result.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
