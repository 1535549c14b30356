package stl

import "bytes"

const asciiMagic = "solid"

// Sniff decides which decoder to try first. Only the leading five bytes are
// inspected; binary files may also start with "solid", so an ASCII verdict is
// a hint that the caller must be ready to fall back from.
func Sniff(data []byte) Format {
	if bytes.HasPrefix(data, []byte(asciiMagic)) {
		return FormatASCII
	}
	return FormatBinary
}
