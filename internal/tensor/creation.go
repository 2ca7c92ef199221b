package tensor

import (
	"math"

	"github.com/hazel-ml/hazel/internal/ndarray"
)

// Creation functions build Float32 leaves (WithDType overrides) on the
// default device.

func create(opts []Option, build func(dtype ndarray.DataType) *ndarray.Array) *Tensor {
	o := options{device: DefaultDevice(), requiresGrad: true, dtype: ndarray.Float32}
	for _, opt := range opts {
		opt(&o)
	}
	return newTensor(build(o.dtype), o.device, o.requiresGrad)
}

// Zeros returns a tensor of zeros.
func Zeros(shape ndarray.Shape, opts ...Option) *Tensor {
	return create(opts, func(dtype ndarray.DataType) *ndarray.Array { return ndarray.Zeros(shape, dtype) })
}

// Ones returns a tensor of ones.
func Ones(shape ndarray.Shape, opts ...Option) *Tensor {
	return create(opts, func(dtype ndarray.DataType) *ndarray.Array { return ndarray.Ones(shape, dtype) })
}

// Full returns a tensor filled with value.
func Full(shape ndarray.Shape, value float64, opts ...Option) *Tensor {
	return create(opts, func(dtype ndarray.DataType) *ndarray.Array { return ndarray.Full(shape, value, dtype) })
}

// Randn samples the standard normal distribution.
func Randn(shape ndarray.Shape, opts ...Option) *Tensor {
	return create(opts, func(dtype ndarray.DataType) *ndarray.Array { return ndarray.Randn(shape, dtype) })
}

// Uniform samples U(-1, 1) scaled by 1/sqrt(number of elements).
func Uniform(shape ndarray.Shape, opts ...Option) *Tensor {
	return create(opts, func(dtype ndarray.DataType) *ndarray.Array {
		scale := 1 / math.Sqrt(float64(shape.NumElements()))
		return ndarray.Scale(ndarray.Uniform(shape, -1, 1, ndarray.Float64), scale).AsType(dtype)
	})
}

// Eye returns the n x n identity matrix.
func Eye(n int, opts ...Option) *Tensor {
	return create(opts, func(dtype ndarray.DataType) *ndarray.Array { return ndarray.Eye(n, dtype) })
}
