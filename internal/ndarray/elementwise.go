package ndarray

import (
	"math"

	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/floats"
)

// broadcastStrides computes strides for reading an array of shape inShape
// while iterating over outShape: broadcast (size 1 or missing) axes get stride 0.
func broadcastStrides(inShape, outShape Shape) []int {
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(inShape)
	inStrides := inShape.Strides()
	for i := range outShape {
		inIdx := i - offset
		if inIdx < 0 || inShape[inIdx] == 1 {
			continue
		}
		strides[i] = inStrides[inIdx]
	}
	return strides
}

// binary applies f elementwise with NumPy broadcasting.
// The result takes the dtype of a.
func binary(name string, a, b *Array, f func(x, y float64) float64) *Array {
	outShape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		exceptions.Panicf("%s: %v", name, err)
	}
	out := alloc(outShape, a.dtype)
	if a.shape.Equal(b.shape) {
		for i := range out.data {
			out.data[i] = f(a.data[i], b.data[i])
		}
		out.normalize()
		return out
	}

	outStrides := outShape.Strides()
	aStrides := broadcastStrides(a.shape, outShape)
	bStrides := broadcastStrides(b.shape, outShape)
	for i := range out.data {
		rem, ai, bi := i, 0, 0
		for d, s := range outStrides {
			coord := rem / s
			rem %= s
			ai += coord * aStrides[d]
			bi += coord * bStrides[d]
		}
		out.data[i] = f(a.data[ai], b.data[bi])
	}
	out.normalize()
	return out
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) *Array {
	if a.shape.Equal(b.shape) {
		out := alloc(a.shape, a.dtype)
		floats.AddTo(out.data, a.data, b.data)
		out.normalize()
		return out
	}
	return binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Array) *Array {
	if a.shape.Equal(b.shape) {
		out := alloc(a.shape, a.dtype)
		floats.SubTo(out.data, a.data, b.data)
		out.normalize()
		return out
	}
	return binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns a * b with broadcasting.
func Mul(a, b *Array) *Array {
	if a.shape.Equal(b.shape) {
		out := alloc(a.shape, a.dtype)
		floats.MulTo(out.data, a.data, b.data)
		out.normalize()
		return out
	}
	return binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// MulNoNaN returns a * b with broadcasting, taking 0 wherever a is 0 even if
// b is infinite.
func MulNoNaN(a, b *Array) *Array {
	return binary("mul", a, b, func(x, y float64) float64 {
		if x == 0 {
			return 0
		}
		return x * y
	})
}

// Div returns a / b with broadcasting.
func Div(a, b *Array) *Array {
	return binary("div", a, b, func(x, y float64) float64 { return x / y })
}

// Pow returns a ** b with broadcasting.
func Pow(a, b *Array) *Array {
	return binary("pow", a, b, math.Pow)
}

// Equal returns 1 where a == b and 0 elsewhere, with broadcasting.
func Equal(a, b *Array) *Array {
	return binary("equal", a, b, func(x, y float64) float64 {
		if x == y {
			return 1
		}
		return 0
	})
}

// Map applies f to every element.
func Map(a *Array, f func(float64) float64) *Array {
	out := alloc(a.shape, a.dtype)
	for i, v := range a.data {
		out.data[i] = f(v)
	}
	out.normalize()
	return out
}

// Scale returns a * s.
func Scale(a *Array, s float64) *Array {
	out := a.Clone()
	floats.Scale(s, out.data)
	out.normalize()
	return out
}

// Neg returns -a.
func Neg(a *Array) *Array {
	return Scale(a, -1)
}

// Exp returns e**a elementwise.
func Exp(a *Array) *Array {
	return Map(a, math.Exp)
}

// Log returns the natural logarithm elementwise.
func Log(a *Array) *Array {
	return Map(a, math.Log)
}

// ReLU returns max(0, a) elementwise.
func ReLU(a *Array) *Array {
	return Map(a, func(v float64) float64 { return math.Max(v, 0) })
}

// Positive returns a mask with 1 where a > 0 and 0 elsewhere.
func Positive(a *Array) *Array {
	return Map(a, func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// AllClose reports whether a and b have the same shape and all elements
// are within tol of each other.
func AllClose(a, b *Array, tol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	return floats.EqualApprox(a.data, b.data, tol)
}
