// Package mesh turns an STL triangle soup into an indexed surface with a
// face-adjacency graph.
package mesh

import (
	"github.com/philipparndt/stlpath/pkg/diag"
	"github.com/philipparndt/stlpath/pkg/geometry"
)

// Face is a triangle expressed through welded vertex ids
type Face struct {
	V        [3]int
	Centroid geometry.Vector3
	Normal   geometry.Vector3
	// Degenerate marks faces whose welded corners span no area. Their
	// Normal is the stored file normal, or zero when none was supplied.
	Degenerate bool
}

// Stats summarises the topology of a mesh
type Stats struct {
	Vertices         int
	Faces            int
	Edges            int
	AdjacentPairs    int
	BoundaryEdges    int
	NonManifoldEdges int
	DegenerateFaces  int
	FlippedNormals   int
	Components       int
}

// Watertight reports whether every edge is shared by exactly two faces
func (s Stats) Watertight() bool {
	return s.Faces > 0 && s.BoundaryEdges == 0 && s.NonManifoldEdges == 0
}

// Mesh is an immutable snapshot built from one triangle list. Share it
// freely between goroutines; a new file produces a new Mesh.
type Mesh struct {
	Vertices    []geometry.Vector3
	Faces       []Face
	Adjacency   Adjacency
	Stats       Stats
	Diagnostics diag.List

	components []int
}

// Builder holds mesh construction options
type Builder struct {
	// Tolerance is the welding distance. Non-positive values use
	// DefaultTolerance.
	Tolerance float64
}

// Build welds triangles with the default tolerance
func Build(triangles []geometry.Triangle) *Mesh {
	return Builder{}.Build(triangles)
}

func (b Builder) tolerance() float64 {
	if b.Tolerance > 0 {
		return b.Tolerance
	}
	return DefaultTolerance
}

// Build welds the triangles in file order, derives faces and links faces
// sharing an edge. It never fails: open, non-manifold or degenerate input
// is reported through Diagnostics.
func (b Builder) Build(triangles []geometry.Triangle) *Mesh {
	m := &Mesh{}
	w := newWelder(b.tolerance(), len(triangles)/2+1)

	m.Faces = make([]Face, len(triangles))
	for i, tri := range triangles {
		corners := tri.Vertices()
		var f Face
		for k, p := range corners {
			f.V[k] = w.add(p)
		}
		m.Faces[i] = f
	}
	m.Vertices = w.vertices

	for i, tri := range triangles {
		b.shade(m, &m.Faces[i], tri)
	}

	var es edgeStats
	m.Adjacency, es = buildAdjacency(m.Faces)
	m.components, m.Stats.Components = labelComponents(m.Adjacency)

	m.Stats.Vertices = len(m.Vertices)
	m.Stats.Faces = len(m.Faces)
	m.Stats.Edges = es.edges
	m.Stats.BoundaryEdges = es.boundary
	m.Stats.NonManifoldEdges = es.nonManifold
	m.Stats.AdjacentPairs = m.Adjacency.PairCount()

	m.report()
	return m
}

// shade fills the cached centroid and normal of a face
func (b Builder) shade(m *Mesh, f *Face, tri geometry.Triangle) {
	p0, p1, p2 := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
	f.Centroid = geometry.Centroid(p0, p1, p2)

	computed := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	if computed.IsZero() {
		f.Degenerate = true
		m.Stats.DegenerateFaces++
		if tri.HasNormal() {
			f.Normal = tri.Normal.Normalize()
		}
		return
	}

	f.Normal = computed
	if tri.HasNormal() && computed.Dot(tri.Normal) < 0 {
		m.Stats.FlippedNormals++
	}
}

func (m *Mesh) report() {
	s := m.Stats
	if s.Faces == 0 {
		m.Diagnostics.Warnf(diag.StageFaces, "mesh has no faces")
		return
	}
	m.Diagnostics.Infof(diag.StageWeld, "welded %d corners into %d vertices", 3*s.Faces, s.Vertices)
	if s.DegenerateFaces > 0 {
		m.Diagnostics.Warnf(diag.StageFaces, "%d degenerate faces", s.DegenerateFaces)
	}
	if s.FlippedNormals > 0 {
		m.Diagnostics.Warnf(diag.StageFaces, "%d stored normals disagree with the vertex winding", s.FlippedNormals)
	}
	if s.BoundaryEdges > 0 {
		m.Diagnostics.Infof(diag.StageAdjacency, "mesh is not watertight: %d boundary edges", s.BoundaryEdges)
	}
	if s.NonManifoldEdges > 0 {
		m.Diagnostics.Warnf(diag.StageAdjacency, "%d non-manifold edges shared by more than two faces", s.NonManifoldEdges)
	}
	if s.Components > 1 {
		m.Diagnostics.Infof(diag.StageAdjacency, "mesh has %d disconnected components", s.Components)
	}
}

// FaceCount returns the number of faces
func (m *Mesh) FaceCount() int {
	if m == nil {
		return 0
	}
	return len(m.Faces)
}

// Face returns the face at index i
func (m *Mesh) Face(i int) (Face, bool) {
	if m == nil || i < 0 || i >= len(m.Faces) {
		return Face{}, false
	}
	return m.Faces[i], true
}

// Len implements the graph view used by path finding
func (m *Mesh) Len() int {
	return m.FaceCount()
}

// Neighbors returns the faces adjacent to face
func (m *Mesh) Neighbors(face int) []int {
	return m.Adjacency.Neighbors(face)
}

// Component returns the connected component label of a face, or -1
func (m *Mesh) Component(face int) int {
	if m == nil || face < 0 || face >= len(m.components) {
		return -1
	}
	return m.components[face]
}

// Connected reports whether two faces lie in the same component
func (m *Mesh) Connected(a, b int) bool {
	ca := m.Component(a)
	return ca >= 0 && ca == m.Component(b)
}
