package ndarray

import (
	"github.com/gomlx/exceptions"
)

// Reshape returns a copy of a with a new shape of the same size.
// At most one dimension may be -1, in which case it is inferred.
func Reshape(a *Array, shape Shape) *Array {
	target := shape.Clone()
	inferred := -1
	known := 1
	for i, dim := range target {
		switch {
		case dim == -1 && inferred == -1:
			inferred = i
		case dim < 0:
			exceptions.Panicf("reshape: invalid shape %v", shape)
		default:
			known *= dim
		}
	}
	if inferred >= 0 {
		if known == 0 || len(a.data)%known != 0 {
			exceptions.Panicf("reshape: cannot infer dimension of %v for %d elements", shape, len(a.data))
		}
		target[inferred] = len(a.data) / known
	}
	if target.NumElements() != len(a.data) {
		exceptions.Panicf("reshape: cannot reshape %v (%d elements) into %v", a.shape, len(a.data), shape)
	}
	out := a.Clone()
	out.shape = target
	return out
}

// Transpose permutes the axes of a. With no perm the axes are reversed.
func Transpose(a *Array, perm ...int) *Array {
	rank := len(a.shape)
	if len(perm) == 0 {
		perm = make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
	} else {
		perm = append([]int(nil), perm...)
	}
	if len(perm) != rank {
		exceptions.Panicf("transpose: permutation %v does not match rank %d", perm, rank)
	}
	seen := make([]bool, rank)
	outShape := make(Shape, rank)
	for i, p := range perm {
		p = a.shape.NormalizeAxis(p)
		if seen[p] {
			exceptions.Panicf("transpose: invalid permutation %v", perm)
		}
		seen[p] = true
		perm[i] = p
		outShape[i] = a.shape[p]
	}

	out := alloc(outShape, a.dtype)
	inStrides := a.shape.Strides()
	outStrides := outShape.Strides()
	for i := range out.data {
		rem, src := i, 0
		for d, s := range outStrides {
			coord := rem / s
			rem %= s
			src += coord * inStrides[perm[d]]
		}
		out.data[i] = a.data[src]
	}
	return out
}

// InversePermutation returns the permutation undoing perm.
func InversePermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// Slice extracts the window [lo, hi) along every axis.
//
// Bounds may reach outside the array: positions outside are filled with zeros.
// This makes Slice double as padding, and makes the gradient of a slice
// another slice with bounds (-lo, extent-lo).
func Slice(a *Array, bounds [][2]int) *Array {
	if len(bounds) != len(a.shape) {
		exceptions.Panicf("slice: got %d bounds for rank-%d array %v", len(bounds), len(a.shape), a.shape)
	}
	outShape := make(Shape, len(bounds))
	for i, b := range bounds {
		if b[1] < b[0] {
			exceptions.Panicf("slice: axis %d has stop %d before start %d", i, b[1], b[0])
		}
		outShape[i] = b[1] - b[0]
	}

	out := alloc(outShape, a.dtype)
	inStrides := a.shape.Strides()
	outStrides := outShape.Strides()
	for i := range out.data {
		rem, src := i, 0
		inside := true
		for d, s := range outStrides {
			coord := rem/s + bounds[d][0]
			rem %= s
			if coord < 0 || coord >= a.shape[d] {
				inside = false
				break
			}
			src += coord * inStrides[d]
		}
		if inside {
			out.data[i] = a.data[src]
		}
	}
	return out
}
