// Package ops defines the contract between the autodiff engine and the
// pluggable operation kernels.
//
// Each operation implements Function, which provides:
//   - Forward: computes the output array and saves what the backward rule needs
//   - Backward: computes one gradient per input given the output gradient
//
// An op instance is registered once per device and shared by every call, so
// implementations keep no per-call state on themselves: everything a call
// needs later goes into its Saved.
package ops

import (
	"github.com/hazel-ml/hazel/internal/ndarray"
)

// Function is a differentiable operation with a forward and a backward rule.
type Function interface {
	// Forward computes the output from inputs. Arrays needed by Backward
	// must be stored with saved.Save.
	Forward(saved *Saved, inputs []*ndarray.Array, attrs Attrs) *ndarray.Array

	// Backward returns the gradient for each input, in input order, given the
	// gradient of the output. A nil entry means no gradient flows to that input.
	//
	// Example for Add:
	//   inputs: [a, b]
	//   grad:   dL/d(a+b)
	//   returns [dL/d(a+b), dL/d(a+b)] (reduced to the input shapes)
	Backward(saved *Saved, grad *ndarray.Array) []*ndarray.Array
}

// Attrs carries the non-tensor arguments of an op call.
// Each op reads only the fields it documents.
type Attrs struct {
	// Axes for reductions (sum, max) and the permutation for transpose.
	// Empty means all axes (reductions) or reversed axes (transpose).
	Axes []int

	// Shape is the target shape for reshape.
	Shape ndarray.Shape

	// Bounds are the per-axis [start, stop) windows for slice.
	Bounds [][2]int

	// Stride for conv2d; zero means 1.
	Stride int
}

// Queue is an opaque handle to a device command queue. The engine only
// passes it through from the executor to the op.
type Queue any

// Executor identifies the device an op call is bound to.
type Executor struct {
	Device string
	Queue  Queue
}

// Saved is the per-call state of an op: the bound executor, the call
// attributes, and the arrays saved during forward for use in backward.
// Saved arrays are addressed by the index returned from Save.
type Saved struct {
	executor Executor
	attrs    Attrs
	inputs   []ndarray.Shape
	arrays   []*ndarray.Array
}

// NewSaved creates the state for one op call.
func NewSaved(executor Executor, attrs Attrs, inputs []*ndarray.Array) *Saved {
	shapes := make([]ndarray.Shape, len(inputs))
	for i, in := range inputs {
		shapes[i] = in.Shape().Clone()
	}
	return &Saved{executor: executor, attrs: attrs, inputs: shapes}
}

// Executor returns the executor the call was bound to.
func (s *Saved) Executor() Executor {
	return s.executor
}

// Attrs returns the attributes of the call.
func (s *Saved) Attrs() Attrs {
	return s.attrs
}

// InputShape returns the shape of input i as seen by forward.
func (s *Saved) InputShape(i int) ndarray.Shape {
	return s.inputs[i]
}

// NumInputs returns the number of inputs of the call.
func (s *Saved) NumInputs() int {
	return len(s.inputs)
}

// Save stores arrays for backward and returns the index of the first one.
func (s *Saved) Save(arrays ...*ndarray.Array) int {
	idx := len(s.arrays)
	s.arrays = append(s.arrays, arrays...)
	return idx
}

// Get returns the saved array at index i.
func (s *Saved) Get(i int) *ndarray.Array {
	return s.arrays[i]
}

// Len returns the number of saved arrays.
func (s *Saved) Len() int {
	return len(s.arrays)
}
