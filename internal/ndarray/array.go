// Package ndarray implements the dense N-dimensional host array that backs
// every tensor: shape and dtype bookkeeping, elementwise and linear-algebra
// kernels, reductions, reshaping and random sampling.
//
// Arrays are contiguous and row-major. Kernels never modify their inputs and
// always return a freshly allocated result. Kernel failures (incompatible
// shapes, bad axes) are raised with github.com/gomlx/exceptions.
package ndarray

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Array is a contiguous row-major N-dimensional array.
type Array struct {
	data  []float64
	shape Shape
	dtype DataType
}

// Number is the set of Go element types an Array can be built from.
type Number interface {
	constraints.Float | constraints.Integer
}

// New allocates a zero-filled array.
func New(shape Shape, dtype DataType) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	if !dtype.Valid() {
		return nil, errors.Errorf("unsupported dtype %d", dtype)
	}
	return &Array{
		data:  make([]float64, shape.NumElements()),
		shape: shape.Clone(),
		dtype: dtype,
	}, nil
}

// FromSlice creates an array from a Go slice. The slice is copied.
func FromSlice[T Number](data []T, shape Shape, dtype DataType) (*Array, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i, v := range data {
		a.data[i] = float64(v)
	}
	a.normalize()
	return a, nil
}

// alloc is New for kernels: shapes there are computed, so failures are bugs.
func alloc(shape Shape, dtype DataType) *Array {
	a, err := New(shape, dtype)
	if err != nil {
		exceptions.Panicf("failed to allocate array: %+v", err)
	}
	return a
}

// normalize rounds the contents to the array's precision.
func (a *Array) normalize() {
	if a.dtype == Float64 {
		return
	}
	for i, v := range a.data {
		a.data[i] = a.dtype.round(v)
	}
}

// Shape returns the array's shape. Callers must not modify it.
func (a *Array) Shape() Shape {
	return a.shape
}

// DType returns the array's data type.
func (a *Array) DType() DataType {
	return a.dtype
}

// Rank returns the number of axes.
func (a *Array) Rank() int {
	return len(a.shape)
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return len(a.data)
}

// ByteSize returns the storage size of the array in its dtype.
func (a *Array) ByteSize() int {
	return len(a.data) * a.dtype.Size()
}

// Data returns the underlying values (zero-copy).
//
// WARNING: writes through the returned slice modify the array.
func (a *Array) Data() []float64 {
	return a.data
}

// Float64s returns a copy of the values.
func (a *Array) Float64s() []float64 {
	return append([]float64(nil), a.data...)
}

// Float32s returns a copy of the values converted to float32.
func (a *Array) Float32s() []float32 {
	out := make([]float32, len(a.data))
	for i, v := range a.data {
		out[i] = float32(v)
	}
	return out
}

// Item returns the single value of a one-element array.
func (a *Array) Item() float64 {
	if len(a.data) != 1 {
		exceptions.Panicf("Item() requires a single-element array, got shape %v", a.shape)
	}
	return a.data[0]
}

// At returns the element at the given indices.
func (a *Array) At(indices ...int) float64 {
	if len(indices) != len(a.shape) {
		exceptions.Panicf("expected %d indices, got %d", len(a.shape), len(indices))
	}
	offset := 0
	strides := a.shape.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			exceptions.Panicf("index %d out of bounds for axis %d (size %d)", idx, i, a.shape[i])
		}
		offset += idx * strides[i]
	}
	return a.data[offset]
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{
		data:  append([]float64(nil), a.data...),
		shape: a.shape.Clone(),
		dtype: a.dtype,
	}
}

// AsType returns a copy converted to dtype.
func (a *Array) AsType(dtype DataType) *Array {
	out := alloc(a.shape, dtype)
	copy(out.data, a.data)
	out.normalize()
	return out
}

// Describe returns a one-line summary: dtype, shape and storage size.
func (a *Array) Describe() string {
	return fmt.Sprintf("%s%v (%s)", a.dtype, []int(a.shape), humanize.Bytes(uint64(a.ByteSize())))
}

// String formats the values as nested brackets.
func (a *Array) String() string {
	var sb strings.Builder
	if len(a.shape) == 0 {
		fmt.Fprintf(&sb, "%g", a.data[0])
		return sb.String()
	}
	a.format(&sb, 0, 0)
	return sb.String()
}

func (a *Array) format(sb *strings.Builder, axis, offset int) {
	sb.WriteByte('[')
	stride := Shape(a.shape[axis+1:]).NumElements()
	for i := 0; i < a.shape[axis]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if axis == len(a.shape)-1 {
			fmt.Fprintf(sb, "%g", a.data[offset+i])
			continue
		}
		a.format(sb, axis+1, offset+i*stride)
	}
	sb.WriteByte(']')
}
