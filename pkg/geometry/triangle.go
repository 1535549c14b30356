package geometry

// Triangle is one facet of an STL surface. A zero Normal means the
// file did not supply one.
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// Vertices returns the corners in file order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// HasNormal reports whether a normal was stored with the triangle
func (t Triangle) HasNormal() bool {
	return !t.Normal.IsZero()
}

// CalculateNormal computes the unit normal from the vertex winding.
// A degenerate triangle yields the zero vector.
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Centroid(t.V1, t.V2, t.V3)
}

// Centroid returns the arithmetic mean of three points
func Centroid(a, b, c Vector3) Vector3 {
	return Vector3{
		X: (a.X + b.X + c.X) / 3.0,
		Y: (a.Y + b.Y + c.Y) / 3.0,
		Z: (a.Z + b.Z + c.Z) / 3.0,
	}
}
