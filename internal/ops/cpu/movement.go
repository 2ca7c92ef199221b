package cpu

import (
	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// Reshape changes the shape to attrs.Shape (one -1 is inferred).
//
// Backward pass:
//   - reshape the gradient back to the input shape
type Reshape struct{}

func (Reshape) Forward(_ *ops.Saved, inputs []*ndarray.Array, attrs ops.Attrs) *ndarray.Array {
	checkArity("reshape", inputs, 1)
	return ndarray.Reshape(inputs[0], attrs.Shape)
}

func (Reshape) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Reshape(grad, saved.InputShape(0))}
}

// Transpose permutes axes by attrs.Axes (reversed when empty).
//
// Backward pass:
//   - transpose the gradient with the inverse permutation
type Transpose struct{}

func (Transpose) Forward(_ *ops.Saved, inputs []*ndarray.Array, attrs ops.Attrs) *ndarray.Array {
	checkArity("transpose", inputs, 1)
	return ndarray.Transpose(inputs[0], attrs.Axes...)
}

func (Transpose) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	perm := saved.Attrs().Axes
	if len(perm) == 0 {
		return []*ndarray.Array{ndarray.Transpose(grad)}
	}
	return []*ndarray.Array{ndarray.Transpose(grad, ndarray.InversePermutation(perm)...)}
}

// Slice extracts the window attrs.Bounds, zero-filling outside the input.
//
// Backward pass:
//   - slicing the gradient with bounds (-start, extent-start) places it back
//     at its input position and drops the padded border
type Slice struct{}

func (Slice) Forward(_ *ops.Saved, inputs []*ndarray.Array, attrs ops.Attrs) *ndarray.Array {
	checkArity("slice", inputs, 1)
	return ndarray.Slice(inputs[0], attrs.Bounds)
}

func (Slice) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	in := saved.InputShape(0)
	bounds := saved.Attrs().Bounds
	back := make([][2]int, len(bounds))
	for i, b := range bounds {
		back[i] = [2]int{-b[0], in[i] - b[0]}
	}
	return []*ndarray.Array{ndarray.Slice(grad, back)}
}
