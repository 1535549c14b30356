package stl

import (
	"errors"
	"fmt"

	"github.com/philipparndt/stlpath/pkg/diag"
)

var (
	ErrNoTrianglesFound = errors.New("no triangles found")
	ErrTruncatedHeader  = errors.New("truncated header")
	ErrUnparsable       = errors.New("unparsable STL data")
)

// ErrorKind classifies a decode failure
type ErrorKind int

const (
	KindNoTrianglesFound ErrorKind = iota + 1
	KindTruncatedHeader
	KindUnparsable
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNoTrianglesFound:
		return ErrNoTrianglesFound
	case KindTruncatedHeader:
		return ErrTruncatedHeader
	case KindUnparsable:
		return ErrUnparsable
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DecodeError reports why a buffer could not be turned into triangles.
// For KindUnparsable, Err holds the ASCII failure and Fallback the binary one.
type DecodeError struct {
	Kind     ErrorKind
	Stage    diag.Stage
	Err      error
	Fallback error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%s decode: %s", e.Stage, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Fallback != nil {
		msg += " (fallback: " + e.Fallback.Error() + ")"
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind
func (e *DecodeError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
