// Copyright 2025 Hazel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray exposes the dense arrays that tensors hold and that op
// kernels operate on.
//
// Arrays are treated as immutable: every function returns a new array.
package ndarray

import (
	"github.com/hazel-ml/hazel/internal/ndarray"
)

// Array is a dense N-dimensional array.
type Array = ndarray.Array

// Shape represents the dimensions of an array.
type Shape = ndarray.Shape

// DataType is the element type of an array.
type DataType = ndarray.DataType

// Data type constants.
const (
	Float16 DataType = ndarray.Float16
	Float32 DataType = ndarray.Float32
	Float64 DataType = ndarray.Float64
)

// Number is the constraint of FromSlice element types.
type Number = ndarray.Number

// FromSlice creates an array from row-major data.
//
// Example:
//
//	a, err := ndarray.FromSlice([]float32{1, 2, 3, 4}, ndarray.Shape{2, 2}, ndarray.Float32)
func FromSlice[T Number](data []T, shape Shape, dtype DataType) (*Array, error) {
	return ndarray.FromSlice(data, shape, dtype)
}

// Zeros creates an array of zeros.
func Zeros(shape Shape, dtype DataType) *Array { return ndarray.Zeros(shape, dtype) }

// Ones creates an array of ones.
func Ones(shape Shape, dtype DataType) *Array { return ndarray.Ones(shape, dtype) }

// Full creates an array filled with value.
func Full(shape Shape, value float64, dtype DataType) *Array {
	return ndarray.Full(shape, value, dtype)
}

// Elementwise operations, with NumPy broadcasting.

// Add returns a + b.
func Add(a, b *Array) *Array { return ndarray.Add(a, b) }

// Sub returns a - b.
func Sub(a, b *Array) *Array { return ndarray.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b *Array) *Array { return ndarray.Mul(a, b) }

// Div returns a / b.
func Div(a, b *Array) *Array { return ndarray.Div(a, b) }

// Pow returns a ** b.
func Pow(a, b *Array) *Array { return ndarray.Pow(a, b) }

// Scale returns a * s.
func Scale(a *Array, s float64) *Array { return ndarray.Scale(a, s) }

// Map applies f to every element.
func Map(a *Array, f func(float64) float64) *Array { return ndarray.Map(a, f) }

// Exp returns e^a.
func Exp(a *Array) *Array { return ndarray.Exp(a) }

// Log returns the natural logarithm of a.
func Log(a *Array) *Array { return ndarray.Log(a) }

// MatMul returns the (batched) matrix product a @ b.
func MatMul(a, b *Array) *Array { return ndarray.MatMul(a, b) }

// Reductions and shape manipulation.

// Sum sums along axes (all axes when empty).
func Sum(a *Array, axes []int, keepDims bool) *Array { return ndarray.Sum(a, axes, keepDims) }

// Max takes the maximum along axes (all axes when empty).
func Max(a *Array, axes []int, keepDims bool) *Array { return ndarray.Max(a, axes, keepDims) }

// ReduceTo sums a broadcast gradient back down to shape.
func ReduceTo(grad *Array, shape Shape) *Array { return ndarray.ReduceTo(grad, shape) }

// Reshape returns a with a new shape; one dimension may be -1.
func Reshape(a *Array, shape Shape) *Array { return ndarray.Reshape(a, shape) }

// Transpose permutes the axes of a; no perm reverses them.
func Transpose(a *Array, perm ...int) *Array { return ndarray.Transpose(a, perm...) }
