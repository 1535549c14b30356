package stl

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/stlpath/pkg/diag"
	"github.com/philipparndt/stlpath/pkg/geometry"
)

// maxLineDiagnostics caps per-line warnings so that binary data read as
// text does not flood the diagnostic list.
const maxLineDiagnostics = 10

// DecodeASCII parses an ASCII STL buffer.
//
// Only "vertex x y z" lines build geometry: every three of them form a
// triangle, regardless of facet/loop structure. A malformed vertex line
// drops the triangle currently being accumulated and parsing continues.
func DecodeASCII(data []byte) (*Model, error) {
	model := NewModel("")
	model.Format = FormatASCII

	if len(data) == 0 {
		model.Diagnostics.Warnf(diag.StageASCII, "empty input")
		return model, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), max(len(data)+1, bufio.MaxScanTokenSize))

	var (
		normal    geometry.Vector3
		pending   []geometry.Vector3
		malformed int
		lineNo    int
		named     bool
	)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if !named && len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}
			named = true

		case "facet":
			normal = geometry.Vector3{}
			if len(fields) == 5 && fields[1] == "normal" {
				if n, err := parseVector(fields[2:]); err == nil {
					normal = n
				}
			}

		case "vertex":
			v, err := parseVertexFields(fields)
			if err != nil {
				malformed++
				if malformed <= maxLineDiagnostics {
					model.Diagnostics.Warnf(diag.StageASCII, "line %d: %v, dropped %d pending vertices", lineNo, err, len(pending))
				}
				pending = pending[:0]
				continue
			}

			pending = append(pending, v)
			if len(pending) == 3 {
				model.AddTriangle(geometry.NewTriangle(normal, pending[0], pending[1], pending[2]))
				pending = pending[:0]
				normal = geometry.Vector3{}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &DecodeError{Kind: KindNoTrianglesFound, Stage: diag.StageASCII, Err: fmt.Errorf("error reading ASCII STL: %w", err)}
	}

	if malformed > maxLineDiagnostics {
		model.Diagnostics.Warnf(diag.StageASCII, "%d malformed vertex lines in total", malformed)
	}
	if len(pending) > 0 {
		model.Diagnostics.Warnf(diag.StageASCII, "ignored %d trailing vertices that do not form a triangle", len(pending))
	}

	if len(model.Triangles) == 0 {
		return nil, &DecodeError{
			Kind:  KindNoTrianglesFound,
			Stage: diag.StageASCII,
			Err:   fmt.Errorf("%d lines read, %d malformed vertex lines", lineNo, malformed),
		}
	}

	return model, nil
}

// parseVertexFields validates a "vertex x y z" line
func parseVertexFields(fields []string) (geometry.Vector3, error) {
	if len(fields) != 4 {
		return geometry.Vector3{}, fmt.Errorf("expected 4 fields in vertex line, got %d", len(fields))
	}
	return parseVector(fields[1:])
}

// parseVector parses three coordinates with single precision, the precision
// STL stores them in
func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q", fields[i])
		}
		c[i] = float32(f)
	}
	return geometry.FromFloat32(c[0], c[1], c[2]), nil
}
