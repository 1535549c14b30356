package mesh

import (
	"errors"
	"math"

	"github.com/philipparndt/stlpath/pkg/geometry"
)

var (
	ErrEmptyMesh    = errors.New("mesh has no faces")
	ErrInvalidPoint = errors.New("point has non-finite coordinates")
	ErrNoFaceFound  = errors.New("no face with a comparable centroid")
)

// Locate returns the face whose centroid is nearest to p. Equal distances
// resolve to the lowest face index. The scan is linear in the face count.
func (m *Mesh) Locate(p geometry.Vector3) (int, error) {
	if m.FaceCount() == 0 {
		return -1, ErrEmptyMesh
	}
	if !p.IsFinite() {
		return -1, ErrInvalidPoint
	}

	best := -1
	bestDist := math.Inf(1)
	for i, f := range m.Faces {
		d := p.DistanceSquared(f.Centroid)
		if math.IsNaN(d) {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, ErrNoFaceFound
	}
	return best, nil
}
