package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hazel-ml/hazel/internal/ndarray"
)

func TestCreation(t *testing.T) {
	z := Zeros(ndarray.Shape{2, 3})
	assert.Equal(t, ndarray.Float32, z.DType())
	assert.Equal(t, ndarray.Shape{2, 3}, z.Shape())
	assert.True(t, z.IsLeaf())
	assert.True(t, z.RequiresGrad())
	assert.Equal(t, make([]float64, 6), z.Float64s())

	assert.Equal(t, []float64{1, 1}, Ones(ndarray.Shape{2}).Float64s())
	assert.Equal(t, []float64{7, 7}, Full(ndarray.Shape{2}, 7).Float64s())
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, Eye(3).Float64s())

	r := Randn(ndarray.Shape{4}, WithDType(ndarray.Float64), WithRequiresGrad(false))
	assert.Equal(t, ndarray.Float64, r.DType())
	assert.False(t, r.RequiresGrad())
}

func TestUniform_ScaledByElementCount(t *testing.T) {
	u := Uniform(ndarray.Shape{10, 10})
	bound := 1 / math.Sqrt(100)
	for _, v := range u.Float64s() {
		assert.LessOrEqual(t, math.Abs(v), bound+1e-7)
	}
}
