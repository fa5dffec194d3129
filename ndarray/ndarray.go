// Package ndarray is a minimal dense N-dimensional array of float64 values in
// C (row-major) order, with the handful of reductions the nuclei reader needs.
package ndarray

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrShape = errors.New("shape mismatch")
	ErrIndex = errors.New("index out of range")
)

// Array is a dense array. Data is laid out in C order; len(Data) is always the
// product of Shape.
type Array struct {
	Shape []int
	Data  []float64
}

// New validates that data fits shape and wraps it without copying.
func New(shape []int, data []float64) (*Array, error) {
	n, err := Size(shape)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("shape %v needs %d elements but got %d: %w", shape, n, len(data), ErrShape)
	}

	return &Array{Shape: append([]int(nil), shape...), Data: data}, nil
}

// Zeros allocates an array of the given shape.
func Zeros(shape []int) (*Array, error) {
	n, err := Size(shape)
	if err != nil {
		return nil, err
	}
	return &Array{Shape: append([]int(nil), shape...), Data: make([]float64, n)}, nil
}

// Size is the number of elements in an array of the given shape.
func Size(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension in shape %v: %w", shape, ErrShape)
		}
		n *= d
	}
	return n, nil
}

func (a *Array) NDim() int { return len(a.Shape) }

// Strides returns the C-order element strides of the array.
func (a *Array) Strides() []int {
	strides := make([]int, len(a.Shape))
	acc := 1
	for i := len(a.Shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= a.Shape[i]
	}
	return strides
}

// At returns the element at the given full index.
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.Shape) {
		return 0, fmt.Errorf("got %d indices for %d-dimensional array: %w", len(idx), len(a.Shape), ErrIndex)
	}
	offset := 0
	for i, s := range a.Strides() {
		if idx[i] < 0 || idx[i] >= a.Shape[i] {
			return 0, fmt.Errorf("index %d out of range for axis %d of length %d: %w", idx[i], i, a.Shape[i], ErrIndex)
		}
		offset += idx[i] * s
	}
	return a.Data[offset], nil
}

// Index selects position i along the leading axis, dropping that axis. The
// result shares no memory with the receiver.
func (a *Array) Index(i int) (*Array, error) {
	if len(a.Shape) == 0 {
		return nil, fmt.Errorf("cannot index a 0-dimensional array: %w", ErrIndex)
	}
	if i < 0 || i >= a.Shape[0] {
		return nil, fmt.Errorf("index %d out of range for leading axis of length %d: %w", i, a.Shape[0], ErrIndex)
	}

	inner := a.Shape[1:]
	n, _ := Size(inner)
	data := make([]float64, n)
	copy(data, a.Data[i*n:(i+1)*n])

	return &Array{Shape: append([]int(nil), inner...), Data: data}, nil
}

// MaxProject takes the elementwise maximum along the leading axis.
func (a *Array) MaxProject() (*Array, error) {
	if len(a.Shape) == 0 || a.Shape[0] == 0 {
		return nil, fmt.Errorf("cannot max-project along empty leading axis of shape %v: %w", a.Shape, ErrShape)
	}

	inner := a.Shape[1:]
	n, _ := Size(inner)
	out := make([]float64, n)
	copy(out, a.Data[:n])
	for plane := 1; plane < a.Shape[0]; plane++ {
		base := plane * n
		for j := 0; j < n; j++ {
			if v := a.Data[base+j]; v > out[j] {
				out[j] = v
			}
		}
	}

	return &Array{Shape: append([]int(nil), inner...), Data: out}, nil
}

// Stack joins equally shaped arrays along a new leading axis.
func Stack(arrays []*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("nothing to stack: %w", ErrShape)
	}

	inner := arrays[0].Shape
	n, _ := Size(inner)
	data := make([]float64, 0, n*len(arrays))
	for i, arr := range arrays {
		if !sameShape(inner, arr.Shape) {
			return nil, fmt.Errorf("array %d has shape %v, expected %v: %w", i, arr.Shape, inner, ErrShape)
		}
		data = append(data, arr.Data...)
	}

	shape := append([]int{len(arrays)}, inner...)
	return &Array{Shape: shape, Data: data}, nil
}

// MarshalJSON emits {"shape": [...], "data": [...]} with data flattened in C
// order.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Shape []int     `json:"shape"`
		Data  []float64 `json:"data"`
	}{a.Shape, a.Data})
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
