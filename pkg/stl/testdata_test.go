package stl

import (
	"bytes"
	"encoding/binary"
	"math"
)

type rawTriangle [12]float32

// binarySTL builds a binary buffer declaring `declared` triangles and
// holding the given records
func binarySTL(header string, declared uint32, tris ...rawTriangle) []byte {
	buf := &bytes.Buffer{}
	var h [80]byte
	copy(h[:], header)
	buf.Write(h[:])
	binary.Write(buf, binary.LittleEndian, declared)
	for _, t := range tris {
		for _, f := range t {
			binary.Write(buf, binary.LittleEndian, math.Float32bits(f))
		}
		binary.Write(buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func squareTriangles() []rawTriangle {
	return []rawTriangle{
		{0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0},
		{0, 0, 1, 0, 0, 0, 1, 1, 0, 0, 1, 0},
	}
}

const singleTriangleASCII = `solid t
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid t
`
