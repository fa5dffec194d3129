package zarr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DType is a parsed Zarr data type such as "<u2" or "|b1".
type DType struct {
	Kind  byte // b, i, u or f
	Size  int  // bytes per element
	order binary.ByteOrder
}

// ParseDType parses a Zarr dtype string (e.g., "<f4", "|b1"). Single-byte
// types have no byte order; wider ones must say '<' or '>'.
func ParseDType(dtype string) (DType, error) {
	if len(dtype) != 3 {
		return DType{}, fmt.Errorf("dtype %q: %w", dtype, ErrUnsupported)
	}

	d := DType{Kind: dtype[1], Size: int(dtype[2] - '0')}

	var sizes []int
	switch d.Kind {
	case 'b':
		sizes = []int{1}
	case 'i', 'u':
		sizes = []int{1, 2, 4, 8}
	case 'f':
		sizes = []int{4, 8}
	}
	if !containsInt(sizes, d.Size) {
		return DType{}, fmt.Errorf("dtype %q: %w", dtype, ErrUnsupported)
	}

	switch dtype[0] {
	case '<':
		d.order = binary.LittleEndian
	case '>':
		d.order = binary.BigEndian
	case '|':
		if d.Size != 1 {
			return DType{}, fmt.Errorf("dtype %q needs a byte order: %w", dtype, ErrUnsupported)
		}
		d.order = binary.LittleEndian
	default:
		return DType{}, fmt.Errorf("dtype %q: %w", dtype, ErrUnsupported)
	}

	return d, nil
}

// Decode converts the raw bytes of a chunk into float64 values.
func (d DType) Decode(raw []byte, out []float64) error {
	if len(raw) != len(out)*d.Size {
		return fmt.Errorf("chunk has %d bytes, expected %d elements of %d bytes", len(raw), len(out), d.Size)
	}

	for i := range out {
		b := raw[i*d.Size : (i+1)*d.Size]
		out[i] = d.value(b)
	}

	return nil
}

func (d DType) value(b []byte) float64 {
	switch d.Kind {
	case 'b':
		if b[0] != 0 {
			return 1
		}
		return 0
	case 'i':
		switch d.Size {
		case 1:
			return float64(int8(b[0]))
		case 2:
			return float64(int16(d.order.Uint16(b)))
		case 4:
			return float64(int32(d.order.Uint32(b)))
		default:
			return float64(int64(d.order.Uint64(b)))
		}
	case 'u':
		switch d.Size {
		case 1:
			return float64(b[0])
		case 2:
			return float64(d.order.Uint16(b))
		case 4:
			return float64(d.order.Uint32(b))
		default:
			return float64(d.order.Uint64(b))
		}
	default:
		if d.Size == 4 {
			return float64(math.Float32frombits(d.order.Uint32(b)))
		}
		return math.Float64frombits(d.order.Uint64(b))
	}
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
