package stl

import (
	"testing"

	"github.com/philipparndt/stlpath/pkg/diag"
	"github.com/philipparndt/stlpath/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBinary(t *testing.T) {
	data := binarySTL("square", 2, squareTriangles()...)

	model, err := DecodeBinary(data)
	require.NoError(t, err)

	assert.Equal(t, FormatBinary, model.Format)
	assert.Equal(t, "square", model.Name)
	assert.Equal(t, uint32(2), model.Declared)
	assert.False(t, model.Partial)
	require.Len(t, model.Triangles, 2)

	tri := model.Triangles[1]
	assert.Equal(t, geometry.NewVector3(0, 0, 1), tri.Normal)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), tri.V1)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), tri.V2)
	assert.Equal(t, geometry.NewVector3(0, 1, 0), tri.V3)
	assert.Empty(t, model.Diagnostics)
}

func TestDecodeBinaryTruncatedRecords(t *testing.T) {
	tris := make([]rawTriangle, 40)
	for i := range tris {
		f := float32(i)
		tris[i] = rawTriangle{0, 0, 1, f, 0, 0, f + 1, 0, 0, f, 1, 0}
	}
	data := binarySTL("", 100, tris...)
	// half of the 41st record
	data = append(data, make([]byte, 25)...)

	model, err := DecodeBinary(data)
	require.NoError(t, err)

	assert.Len(t, model.Triangles, 40)
	assert.True(t, model.Partial)
	assert.Equal(t, uint32(100), model.Declared)
	assert.True(t, model.Diagnostics.Has(diag.Warning))
	assert.Equal(t, geometry.NewVector3(39, 0, 0), model.Triangles[39].V1)
}

func TestDecodeBinaryZeroCount(t *testing.T) {
	model, err := DecodeBinary(binarySTL("", 0))
	require.NoError(t, err)

	assert.Empty(t, model.Triangles)
	assert.False(t, model.Partial)
	assert.True(t, model.Diagnostics.Has(diag.Warning))
}

func TestDecodeBinaryTruncatedHeader(t *testing.T) {
	for _, size := range []int{0, 5, 80, 83} {
		_, err := DecodeBinary(make([]byte, size))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTruncatedHeader)
	}
}

func TestDecodeBinaryAdversarialCount(t *testing.T) {
	data := binarySTL("", 0xFFFFFFFF, squareTriangles()[0])

	model, err := DecodeBinary(data)
	require.NoError(t, err)
	assert.Len(t, model.Triangles, 1)
	assert.True(t, model.Partial)
}

func TestDecodeBinaryTrailingBytes(t *testing.T) {
	data := binarySTL("", 1, squareTriangles()...)

	model, err := DecodeBinary(data)
	require.NoError(t, err)
	assert.Len(t, model.Triangles, 1)
	assert.False(t, model.Partial)
	assert.True(t, model.Diagnostics.Has(diag.Info))
	assert.False(t, model.Diagnostics.Has(diag.Warning))
}

func TestDecodeBinaryParallelMatchesSequential(t *testing.T) {
	tris := make([]rawTriangle, 257)
	for i := range tris {
		f := float32(i)
		tris[i] = rawTriangle{0, 0, 1, f, f, 0, f + 1, f, 0, f, f + 1, 0}
	}
	data := binarySTL("", uint32(len(tris)), tris...)

	sequential, err := Decoder{Workers: 1}.DecodeBinary(data)
	require.NoError(t, err)
	parallel, err := Decoder{Workers: 4, ParallelThreshold: 10}.DecodeBinary(data)
	require.NoError(t, err)

	assert.Equal(t, sequential.Triangles, parallel.Triangles)
}

func TestHeaderName(t *testing.T) {
	assert.Equal(t, "part", headerName([]byte("part\x00\x00\x00")))
	assert.Equal(t, "", headerName([]byte{0xff, 0x01, 0x00}))
}
