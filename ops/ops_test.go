// Copyright 2025 Hazel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazel-ml/hazel/ndarray"
	"github.com/hazel-ml/hazel/ops"
	"github.com/hazel-ml/hazel/tensor"
)

type Square struct{}

func (Square) Forward(saved *ops.Saved, in []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	saved.Save(in[0])
	return ndarray.Mul(in[0], in[0])
}

func (Square) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Scale(ndarray.Mul(grad, saved.Get(0)), 2)}
}

// TestCustomOp registers a user op and differentiates through it.
func TestCustomOp(t *testing.T) {
	tensor.BulkRegister(tensor.CPU, Square{})

	x, err := tensor.New([]float64{1, 2, 3})
	require.NoError(t, err)
	y, err := tensor.Dispatch("square", ops.Attrs{}, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 9}, y.Float64s())

	require.NoError(t, y.Sum().Backward())
	assert.Equal(t, []float64{2, 4, 6}, x.Grad().Float64s())
}

func TestCPUNamespace(t *testing.T) {
	assert.Len(t, ops.CPU(), 14)
}
