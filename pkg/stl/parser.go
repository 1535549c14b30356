package stl

import (
	"runtime"

	"github.com/philipparndt/stlpath/pkg/diag"
)

// DefaultParallelThreshold is the record count from which binary records
// are decoded concurrently
const DefaultParallelThreshold = 100_000

// Decoder holds decoding options. The zero value is ready to use.
type Decoder struct {
	// Workers bounds concurrent binary record decoding. Zero means
	// GOMAXPROCS, one disables concurrency.
	Workers int
	// ParallelThreshold is the minimum record count for concurrent
	// decoding. Zero means DefaultParallelThreshold.
	ParallelThreshold int
}

func (d Decoder) workers() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (d Decoder) parallelThreshold() int {
	if d.ParallelThreshold > 0 {
		return d.ParallelThreshold
	}
	return DefaultParallelThreshold
}

// Decode parses an STL buffer with the default Decoder
func Decode(data []byte) (*Model, error) {
	return Decoder{}.Decode(data)
}

type attempt struct {
	format Format
	decode func([]byte) (*Model, error)
}

// plan lists the decoders to try in order. A "solid" prefix tries ASCII
// first and binary second; anything else is binary only.
func (d Decoder) plan(data []byte) []attempt {
	binary := attempt{FormatBinary, d.DecodeBinary}
	if Sniff(data) == FormatASCII {
		return []attempt{{FormatASCII, DecodeASCII}, binary}
	}
	return []attempt{binary}
}

// Decode detects the encoding and parses the buffer. A buffer starting with
// "solid" that fails ASCII decoding is retried as binary from offset 0;
// if that fails too the result is a KindUnparsable DecodeError.
func (d Decoder) Decode(data []byte) (*Model, error) {
	plan := d.plan(data)

	errs := make([]error, 0, len(plan))
	for _, a := range plan {
		model, err := a.decode(data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(errs) > 0 {
			fallback := diag.Diagnostic{
				Severity: diag.Warning,
				Stage:    diag.StageSniff,
				Message:  "ASCII decoding failed (" + errs[0].Error() + "), decoded as " + a.format.String(),
			}
			model.Diagnostics = append(diag.List{fallback}, model.Diagnostics...)
		}
		return model, nil
	}

	if len(errs) == 1 {
		return nil, errs[0]
	}
	return nil, &DecodeError{
		Kind:     KindUnparsable,
		Stage:    diag.StageBinary,
		Err:      errs[0],
		Fallback: errs[1],
	}
}
