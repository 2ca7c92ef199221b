package cpu

import (
	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// Sum reduces along attrs.Axes (all axes when empty). Reduced axes are
// removed; reducing every axis yields shape (1,).
//
// Backward pass:
//   - every input element contributes once, so the gradient is broadcast
//     back over the reduced axes
type Sum struct{}

func (Sum) Forward(_ *ops.Saved, inputs []*ndarray.Array, attrs ops.Attrs) *ndarray.Array {
	checkArity("sum", inputs, 1)
	return ndarray.Sum(inputs[0], attrs.Axes, false)
}

func (Sum) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	in := saved.InputShape(0)
	kept := ndarray.Reshape(grad, ndarray.ReducedShape(in, saved.Attrs().Axes, true))
	return []*ndarray.Array{expandTo(kept, in)}
}

// Max reduces along attrs.Axes (all axes when empty) taking the maximum.
//
// Backward pass:
//   - the gradient flows to the positions holding the maximum; ties share
//     it equally
type Max struct{}

func (Max) Forward(saved *ops.Saved, inputs []*ndarray.Array, attrs ops.Attrs) *ndarray.Array {
	checkArity("max", inputs, 1)
	x := inputs[0]
	kept := ndarray.Max(x, attrs.Axes, true)
	saved.Save(x, kept)
	return ndarray.Reshape(kept, ndarray.ReducedShape(x.Shape(), attrs.Axes, false))
}

func (Max) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	x, kept := saved.Get(0), saved.Get(1)
	axes := saved.Attrs().Axes

	mask := ndarray.Equal(x, kept)
	count := ndarray.Sum(mask, axes, true)
	g := ndarray.Reshape(grad, kept.Shape())
	return []*ndarray.Array{ndarray.Mul(mask, ndarray.Div(g, count))}
}

// expandTo broadcasts a to shape.
func expandTo(a *ndarray.Array, shape ndarray.Shape) *ndarray.Array {
	return ndarray.Add(ndarray.Zeros(shape, a.DType()), a)
}
