package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/philipparndt/stlpath/pkg/diag"
	"github.com/philipparndt/stlpath/pkg/geometry"
	"golang.org/x/sync/errgroup"
)

const (
	headerSize = 80
	countSize  = 4
	recordSize = 50
)

// short name, for convenience
var le = binary.LittleEndian

// DecodeBinary parses a binary STL buffer with the default Decoder
func DecodeBinary(data []byte) (*Model, error) {
	return Decoder{}.DecodeBinary(data)
}

// DecodeBinary parses an 80-byte header, a little-endian triangle count and
// fixed 50-byte records. Data that ends early yields the records read so far
// with Partial set; only a missing count is fatal.
func (d Decoder) DecodeBinary(data []byte) (*Model, error) {
	if len(data) < headerSize+countSize {
		return nil, &DecodeError{
			Kind:  KindTruncatedHeader,
			Stage: diag.StageBinary,
			Err:   fmt.Errorf("need %d bytes for header and count, have %d", headerSize+countSize, len(data)),
		}
	}

	model := NewModel(headerName(data[:headerSize]))
	model.Format = FormatBinary
	model.Declared = le.Uint32(data[headerSize:])

	if model.Declared == 0 {
		model.Diagnostics.Warnf(diag.StageBinary, "the file declares 0 triangles")
		return model, nil
	}

	body := data[headerSize+countSize:]
	available := uint64(len(body) / recordSize)
	n := int(min(uint64(model.Declared), available))

	model.Triangles = make([]geometry.Triangle, n)
	d.decodeRecords(body, model.Triangles)

	if uint64(n) < uint64(model.Declared) {
		model.Partial = true
		model.Diagnostics.Warnf(diag.StageBinary, "unexpected end of data at triangle %d: declared %d, decoded %d", n+1, model.Declared, n)
	} else if extra := len(body) - n*recordSize; extra > 0 {
		model.Diagnostics.Infof(diag.StageBinary, "ignored %d trailing bytes after %d records", extra, n)
	}

	return model, nil
}

// decodeRecords fills out from consecutive records. Records are independent,
// so large inputs are split into contiguous chunks decoded concurrently.
func (d Decoder) decodeRecords(body []byte, out []geometry.Triangle) {
	workers := d.workers()
	if workers < 2 || len(out) < d.parallelThreshold() {
		decodeRange(body, out, 0, len(out))
		return
	}

	chunk := (len(out) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(out); start += chunk {
		start := start
		end := min(start+chunk, len(out))
		g.Go(func() error {
			decodeRange(body, out, start, end)
			return nil
		})
	}
	_ = g.Wait()
}

func decodeRange(body []byte, out []geometry.Triangle, start, end int) {
	for i := start; i < end; i++ {
		out[i] = decodeRecord(body[i*recordSize : (i+1)*recordSize])
	}
}

// decodeRecord reads the normal and three vertices; the trailing attribute
// byte count is ignored
func decodeRecord(rec []byte) geometry.Triangle {
	var f [12]float32
	for i := range f {
		f[i] = math.Float32frombits(le.Uint32(rec[4*i:]))
	}
	return geometry.NewTriangle(
		geometry.FromFloat32(f[0], f[1], f[2]),
		geometry.FromFloat32(f[3], f[4], f[5]),
		geometry.FromFloat32(f[6], f[7], f[8]),
		geometry.FromFloat32(f[9], f[10], f[11]),
	)
}

// headerName extracts printable text from the opaque header
func headerName(header []byte) string {
	name := bytes.TrimRight(header, "\x00 ")
	for _, b := range name {
		if b < 0x20 || b > 0x7e {
			return ""
		}
	}
	return string(name)
}
