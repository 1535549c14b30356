package pathfind

import (
	"fmt"

	"github.com/philipparndt/stlpath/pkg/geometry"
	"github.com/philipparndt/stlpath/pkg/mesh"
)

// Record is the exported geometry of one face on a path
type Record struct {
	FaceIndex int
	Centroid  geometry.Vector3
	Normal    geometry.Vector3
}

// Extract reads the cached centroid and normal of every face on the path,
// in path order
func Extract(m *mesh.Mesh, path []int) ([]Record, error) {
	records := make([]Record, 0, len(path))
	for i, idx := range path {
		face, ok := m.Face(idx)
		if !ok {
			return nil, fmt.Errorf("path position %d: %w: %d", i, ErrInvalidFace, idx)
		}
		records = append(records, Record{
			FaceIndex: idx,
			Centroid:  face.Centroid,
			Normal:    face.Normal,
		})
	}
	return records, nil
}
