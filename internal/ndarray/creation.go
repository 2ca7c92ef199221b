package ndarray

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed seeds the package random source until Seed is called.
const DefaultSeed uint64 = 0x5eed

// src is the process-wide random source used by the sampling constructors.
// It is not safe for concurrent use.
var src rand.Source = rand.NewPCG(DefaultSeed, DefaultSeed)

// Seed resets the process-wide random source.
func Seed(seed uint64) {
	src = rand.NewPCG(seed, seed)
}

// Zeros creates an array filled with zeros.
func Zeros(shape Shape, dtype DataType) *Array {
	return alloc(shape, dtype)
}

// Ones creates an array filled with ones.
func Ones(shape Shape, dtype DataType) *Array {
	return Full(shape, 1, dtype)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64, dtype DataType) *Array {
	a := alloc(shape, dtype)
	v := dtype.round(value)
	for i := range a.data {
		a.data[i] = v
	}
	return a
}

// Eye creates an n x n identity matrix.
func Eye(n int, dtype DataType) *Array {
	a := alloc(Shape{n, n}, dtype)
	for i := 0; i < n; i++ {
		a.data[i*n+i] = 1
	}
	return a
}

// Randn samples from the standard normal distribution.
func Randn(shape Shape, dtype DataType) *Array {
	return sample(shape, dtype, distuv.Normal{Mu: 0, Sigma: 1, Src: src})
}

// Uniform samples uniformly from [low, high).
func Uniform(shape Shape, low, high float64, dtype DataType) *Array {
	return sample(shape, dtype, distuv.Uniform{Min: low, Max: high, Src: src})
}

// Binomial samples from Binomial(n, p) per element.
// Binomial(1, p) gives a keep-mask with keep probability p.
func Binomial(shape Shape, n int, p float64, dtype DataType) *Array {
	return sample(shape, dtype, distuv.Binomial{N: float64(n), P: p, Src: src})
}

type sampler interface {
	Rand() float64
}

func sample(shape Shape, dtype DataType, dist sampler) *Array {
	a := alloc(shape, dtype)
	for i := range a.data {
		a.data[i] = dist.Rand()
	}
	a.normalize()
	return a
}
