// Package tensor implements the differentiable Tensor: a value that records
// the op graph producing it, and the reverse-mode backward pass over that
// graph.
//
// Ops are looked up in a registry keyed by (device, name) and called through
// Dispatch; the methods on Tensor are thin wrappers over Dispatch.
package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"

	"github.com/hazel-ml/hazel/internal/ndarray"
)

// Tensor is a value and a graph node. A Tensor without a Context is a leaf.
type Tensor struct {
	data         *ndarray.Array
	device       Device
	requiresGrad bool
	grad         *Tensor
	ctx          *Context
}

// Option configures New.
type Option func(*options)

type options struct {
	device       Device
	requiresGrad bool
	dtype        ndarray.DataType
	dtypeSet     bool
}

// WithDevice places the tensor on device instead of DefaultDevice().
func WithDevice(device Device) Option {
	return func(o *options) { o.device = device }
}

// WithRequiresGrad sets whether the tensor accumulates a gradient as a leaf.
// Defaults to true.
func WithRequiresGrad(requiresGrad bool) Option {
	return func(o *options) { o.requiresGrad = requiresGrad }
}

// WithDType converts the data to dtype.
func WithDType(dtype ndarray.DataType) Option {
	return func(o *options) {
		o.dtype = dtype
		o.dtypeSet = true
	}
}

// New creates a leaf Tensor from data.
//
// Accepted data: *ndarray.Array (copied), or a slice or nested slice of
// float32, float64, int, int32 or int64 (the shape is inferred; ragged
// slices are rejected). []float64 data is stored as Float64, everything
// else as Float32, unless WithDType is given. Any other kind of value,
// plain scalars included, fails with ErrInvalidData.
func New(data any, opts ...Option) (*Tensor, error) {
	o := options{device: DefaultDevice(), requiresGrad: true}
	for _, opt := range opts {
		opt(&o)
	}
	arr, err := toArray(data, o.dtype, o.dtypeSet)
	if err != nil {
		return nil, err
	}
	return newTensor(arr, o.device, o.requiresGrad), nil
}

func newTensor(data *ndarray.Array, device Device, requiresGrad bool) *Tensor {
	return &Tensor{data: data, device: device, requiresGrad: requiresGrad}
}

// Shape returns the shape of the data.
func (t *Tensor) Shape() ndarray.Shape {
	return t.data.Shape()
}

// DType returns the data type of the data.
func (t *Tensor) DType() ndarray.DataType {
	return t.data.DType()
}

// Device returns the device owning the data.
func (t *Tensor) Device() Device {
	return t.device
}

// Data returns the underlying array. It must not be modified.
func (t *Tensor) Data() *ndarray.Array {
	return t.data
}

// Float64s returns a copy of the values in row-major order.
func (t *Tensor) Float64s() []float64 {
	return t.data.Float64s()
}

// Item returns the value of a single-element tensor.
// It panics if the tensor holds more than one element.
func (t *Tensor) Item() float64 {
	return t.data.Item()
}

// Grad returns the accumulated gradient, or nil before any backward pass
// reached the tensor.
func (t *Tensor) Grad() *Tensor {
	return t.grad
}

// ZeroGrad drops the accumulated gradient.
func (t *Tensor) ZeroGrad() {
	t.grad = nil
}

// RequiresGrad reports whether the tensor accumulates a gradient as a leaf.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// Context returns the record of the op that produced t, or nil for leaves.
func (t *Tensor) Context() *Context {
	return t.ctx
}

// IsLeaf reports whether t was created by the user rather than by an op.
func (t *Tensor) IsLeaf() bool {
	return t.ctx == nil
}

// Assign replaces the data of t with a copy of other's data, in place.
// The graph lineage of t is not changed.
func (t *Tensor) Assign(other *Tensor) {
	if other == nil {
		exceptions.Panicf("Tensor.Assign: nil tensor")
	}
	t.data = other.data.Clone()
}

// To returns a copy of t on device, as a new leaf. The gradient, if any,
// is transferred too.
func (t *Tensor) To(device Device) *Tensor {
	out := newTensor(t.data.Clone(), device, t.requiresGrad)
	if t.grad != nil {
		out.grad = t.grad.To(device)
	}
	return out
}

// MoveTo moves t and its gradient to device, in place.
func (t *Tensor) MoveTo(device Device) {
	t.device = device
	if t.grad != nil {
		t.grad.MoveTo(device)
	}
}

// CPU is shorthand for To(CPU).
func (t *Tensor) CPU() *Tensor {
	return t.To(CPU)
}

// GPU is shorthand for To(GPU).
func (t *Tensor) GPU() *Tensor {
	return t.To(GPU)
}

// Detach returns a new leaf sharing t's data, cut from t's graph.
func (t *Tensor) Detach() *Tensor {
	return newTensor(t.data, t.device, t.requiresGrad)
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return fmt.Sprintf("<hazel.Tensor %s dtype=%s device=%s>", t.data, t.DType(), t.device)
}
