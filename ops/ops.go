// Copyright 2025 Hazel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops exposes the contract of pluggable operations.
//
// An op is any value implementing Function, over the arrays of package
// ndarray. Register it on a device with
// tensor.Register (or a whole namespace with tensor.BulkRegister) and call
// it with tensor.Dispatch:
//
//	type Square struct{}
//
//	func (Square) Forward(saved *ops.Saved, in []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
//	    saved.Save(in[0])
//	    return ndarray.Mul(in[0], in[0])
//	}
//
//	func (Square) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
//	    x := saved.Get(0)
//	    return []*ndarray.Array{ndarray.Scale(ndarray.Mul(grad, x), 2)}
//	}
//
//	tensor.BulkRegister(tensor.CPU, Square{})
//	y, err := tensor.Dispatch("square", ops.Attrs{}, x)
package ops

import (
	"github.com/hazel-ml/hazel/internal/ops"
	"github.com/hazel-ml/hazel/internal/ops/cpu"
)

// Function is a differentiable operation with a forward and a backward rule.
type Function = ops.Function

// Saved is the per-call state of an op.
type Saved = ops.Saved

// Attrs carries the non-tensor arguments of an op call.
type Attrs = ops.Attrs

// Executor identifies the device and queue an op call is bound to.
type Executor = ops.Executor

// CPU returns the built-in CPU ops, one value per op type.
func CPU() []Function {
	return cpu.Namespace()
}
