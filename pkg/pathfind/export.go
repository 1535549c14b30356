package pathfind

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/stlpath/pkg/geometry"
)

// ExportHeader is the comment line leading every export
const ExportHeader = "# Path data: x, y, z, nx, ny, nz, face_index"

// WriteRecords writes the header followed by one
// "x,y,z,nx,ny,nz,face_index" line per record
func WriteRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, ExportHeader); err != nil {
		return err
	}
	for _, r := range records {
		line := strings.Join([]string{
			formatFloat(r.Centroid.X),
			formatFloat(r.Centroid.Y),
			formatFloat(r.Centroid.Z),
			formatFloat(r.Normal.X),
			formatFloat(r.Normal.Y),
			formatFloat(r.Normal.Z),
			strconv.Itoa(r.FaceIndex),
		}, ",")
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadRecords parses an export written by WriteRecords. Comment and blank
// lines are skipped.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 7 {
			return nil, fmt.Errorf("line %d: expected 7 fields, got %d", lineNo, len(fields))
		}
		var f [6]float64
		for i := range f {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineNo, i+1, err)
			}
			f[i] = v
		}
		idx, err := strconv.Atoi(strings.TrimSpace(fields[6]))
		if err != nil {
			return nil, fmt.Errorf("line %d: face index: %w", lineNo, err)
		}

		records = append(records, Record{
			FaceIndex: idx,
			Centroid:  geometry.NewVector3(f[0], f[1], f[2]),
			Normal:    geometry.NewVector3(f[3], f[4], f[5]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading path data: %w", err)
	}
	return records, nil
}

// formatFloat renders the shortest decimal that reads back to the same value
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
