package mesh

import (
	"math"
	"testing"

	"github.com/philipparndt/stlpath/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateSingleFace(t *testing.T) {
	m := Build([]geometry.Triangle{tri(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0))})

	for _, p := range []geometry.Vector3{v(0, 0, 0), v(100, -50, 3), v(0.3, 0.3, 0)} {
		face, err := m.Locate(p)
		require.NoError(t, err)
		assert.Equal(t, 0, face)
	}
}

func TestLocateNearestCentroid(t *testing.T) {
	verts, faces := indexedGrid(2)
	m := Build(explode(verts, faces))

	face, err := m.Locate(v(1.9, 1.1, 0.5))
	require.NoError(t, err)
	// upper-right square, lower triangle has centroid (5/3, 4/3)
	assert.Equal(t, 6, face)
}

func TestLocateTieBreaksOnLowestIndex(t *testing.T) {
	m := Build([]geometry.Triangle{
		tri(v(1, 0, 0), v(2, 0, 0), v(1, 1, 0)),
		tri(v(-1, 0, 0), v(-2, 0, 0), v(-1, 1, 0)),
	})

	face, err := m.Locate(v(0, 1.0/3, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, face)
}

func TestLocateErrors(t *testing.T) {
	_, err := Build(nil).Locate(v(0, 0, 0))
	assert.ErrorIs(t, err, ErrEmptyMesh)

	var nilMesh *Mesh
	_, err = nilMesh.Locate(v(0, 0, 0))
	assert.ErrorIs(t, err, ErrEmptyMesh)

	m := Build([]geometry.Triangle{tri(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0))})
	_, err = m.Locate(v(math.NaN(), 0, 0))
	assert.ErrorIs(t, err, ErrInvalidPoint)
	_, err = m.Locate(v(0, math.Inf(-1), 0))
	assert.ErrorIs(t, err, ErrInvalidPoint)
}
