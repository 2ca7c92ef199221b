package ndarray

import (
	"math"

	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/floats"
)

// ReducedShape returns the shape produced by reducing axes of shape.
// With keepDims the reduced axes stay as size 1; otherwise they are removed,
// and a reduction that removes every axis yields Shape{1}.
// Empty axes means all axes.
func ReducedShape(shape Shape, axes []int, keepDims bool) Shape {
	reduced := normalizeAxes(shape, axes)
	out := make(Shape, 0, len(shape))
	for i, dim := range shape {
		switch {
		case !reduced[i]:
			out = append(out, dim)
		case keepDims:
			out = append(out, 1)
		}
	}
	if len(out) == 0 {
		out = Shape{1}
	}
	return out
}

// normalizeAxes returns a per-axis flag of which axes are reduced.
func normalizeAxes(shape Shape, axes []int) []bool {
	reduced := make([]bool, len(shape))
	if len(axes) == 0 {
		for i := range reduced {
			reduced[i] = true
		}
		return reduced
	}
	for _, axis := range axes {
		axis = shape.NormalizeAxis(axis)
		if reduced[axis] {
			exceptions.Panicf("axis %d repeated in reduction axes %v", axis, axes)
		}
		reduced[axis] = true
	}
	return reduced
}

// reduce folds the values along axes with f, starting from init.
// The result keeps the reduced axes as size 1.
func reduce(a *Array, axes []int, init float64, f func(acc, v float64) float64) *Array {
	reduced := normalizeAxes(a.shape, axes)
	keptShape := a.shape.Clone()
	for i, r := range reduced {
		if r {
			keptShape[i] = 1
		}
	}
	out := alloc(keptShape, a.dtype)
	for i := range out.data {
		out.data[i] = init
	}
	if len(a.data) == 0 {
		return out
	}

	inStrides := a.shape.Strides()
	outStrides := broadcastStrides(keptShape, a.shape)
	for i, v := range a.data {
		rem, oi := i, 0
		for d, s := range inStrides {
			coord := rem / s
			rem %= s
			oi += coord * outStrides[d]
		}
		out.data[oi] = f(out.data[oi], v)
	}
	out.normalize()
	return out
}

// Sum sums along axes (all axes when empty).
func Sum(a *Array, axes []int, keepDims bool) *Array {
	var out *Array
	if len(axes) == 0 {
		out = alloc(Shape{1}, a.dtype)
		out.data[0] = a.dtype.round(floats.Sum(a.data))
	} else {
		out = reduce(a, axes, 0, func(acc, v float64) float64 { return acc + v })
	}
	return finishReduce(out, a.shape, axes, keepDims)
}

// Max takes the maximum along axes (all axes when empty).
func Max(a *Array, axes []int, keepDims bool) *Array {
	if len(a.data) == 0 {
		exceptions.Panicf("max: empty array of shape %v", a.shape)
	}
	var out *Array
	if len(axes) == 0 {
		out = alloc(Shape{1}, a.dtype)
		out.data[0] = floats.Max(a.data)
	} else {
		out = reduce(a, axes, math.Inf(-1), math.Max)
	}
	return finishReduce(out, a.shape, axes, keepDims)
}

func finishReduce(out *Array, inShape Shape, axes []int, keepDims bool) *Array {
	target := ReducedShape(inShape, axes, keepDims)
	if !out.shape.Equal(target) {
		out.shape = target
	}
	return out
}

// ReduceTo sums a broadcast gradient back down to shape.
//
//	grad [3,4] -> shape [3,1]: sum along axis 1
//	grad [2,3] -> shape [3]:   sum along axis 0
func ReduceTo(grad *Array, shape Shape) *Array {
	if grad.shape.Equal(shape) {
		return grad
	}
	if shape.NumElements() == 1 {
		out := Sum(grad, nil, false)
		out.shape = shape.Clone()
		return out
	}

	lead := len(grad.shape) - len(shape)
	if lead < 0 {
		exceptions.Panicf("cannot reduce gradient of shape %v to larger rank shape %v", grad.shape, shape)
	}
	var axes []int
	for i := range grad.shape {
		if i < lead {
			axes = append(axes, i)
			continue
		}
		if shape[i-lead] == 1 && grad.shape[i] != 1 {
			axes = append(axes, i)
		} else if shape[i-lead] != grad.shape[i] {
			exceptions.Panicf("cannot reduce gradient of shape %v to shape %v", grad.shape, shape)
		}
	}
	if len(axes) == 0 {
		return Reshape(grad, shape)
	}
	return Reshape(Sum(grad, axes, true), shape)
}
