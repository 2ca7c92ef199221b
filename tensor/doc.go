// Copyright 2025 Hazel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the differentiable Tensor of Hazel.
//
// # Overview
//
// A Tensor holds an N-dimensional array and, when it was produced by an op,
// a Context recording the op and its parents. Calling Backward on a
// single-element tensor walks that graph in reverse and accumulates the
// gradient of every tensor into its Grad.
//
// # Basic Usage
//
//	x, _ := tensor.New([][]float32{{1, 2}, {3, 4}})
//	w := tensor.Uniform(tensor.Shape{2, 2})
//	loss := x.Matmul(w).ReLU().Mean()
//	if err := loss.Backward(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(w.Grad())
//
// # Operators
//
// Go has no operator overloading; add, sub, mul, pow and matmul have an
// explicit method each, an in-place form and a reflected form:
//
//	y := x.Add(1)     // x + 1
//	x.IAdd(1)         // x += 1
//	y = x.RSub(1)     // 1 - x
//
// Go numbers, slices and arrays are accepted wherever a tensor operand is,
// and are wrapped into constant leaves of the tensor's dtype and device.
//
// # Errors
//
// Methods panic on failure; Dispatch, Index and Backward return errors.
// Every returned error wraps one of ErrInvalidData, ErrShapeMismatch,
// ErrUnsupportedOp, ErrNoGradient or ErrInvalidSlice.
//
// # Devices
//
// Ops are registered per device. The GPU device only has ops when a GPU
// backend could be opened at startup; see Registered.
package tensor
