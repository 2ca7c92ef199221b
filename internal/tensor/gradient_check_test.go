package tensor

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazel-ml/hazel/internal/ndarray"
)

// numericalGradient computes dL/dx with central differences, one element at
// a time.
func numericalGradient(t *testing.T, loss func(x *Tensor) *Tensor, values []float64, shape ndarray.Shape, epsilon float64) []float64 {
	t.Helper()
	eval := func(v []float64) float64 {
		arr, err := ndarray.FromSlice(v, shape, ndarray.Float64)
		require.NoError(t, err)
		x, err := New(arr, WithRequiresGrad(false))
		require.NoError(t, err)
		return loss(x).Item()
	}
	grad := make([]float64, len(values))
	probe := append([]float64(nil), values...)
	for i := range probe {
		probe[i] = values[i] + epsilon
		plus := eval(probe)
		probe[i] = values[i] - epsilon
		minus := eval(probe)
		probe[i] = values[i]
		grad[i] = (plus - minus) / (2 * epsilon)
	}
	return grad
}

// checkGradient compares the backward pass of sum(f(x)^2) with finite
// differences. Squaring keeps the check meaningful for functions whose plain
// sum is constant, such as softmax.
func checkGradient(t *testing.T, f func(x *Tensor) *Tensor, values []float64, shape ...int) {
	t.Helper()
	loss := func(x *Tensor) *Tensor {
		y := f(x)
		return y.Mul(y).Sum()
	}

	arr, err := ndarray.FromSlice(values, ndarray.Shape(shape), ndarray.Float64)
	require.NoError(t, err)
	x, err := New(arr)
	require.NoError(t, err)
	require.NoError(t, loss(x).Backward())
	require.NotNil(t, x.Grad(), "no gradient reached the input")
	require.Equal(t, x.Shape(), x.Grad().Shape())

	want := numericalGradient(t, loss, values, ndarray.Shape(shape), 1e-6)
	got := x.Grad().Float64s()
	for i := range want {
		tol := 1e-5 * math.Max(1, math.Abs(want[i]))
		assert.InDelta(t, want[i], got[i], tol, "element %d", i)
	}
}

// distinct returns n well separated values in [-2, 2] with no ties, so max
// and relu stay away from their kinks.
func distinct(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = -2 + 4*float64((i*7)%n)/float64(n) + 0.013
	}
	return out
}

func positive(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 + 0.25*float64(i)
	}
	return out
}

func TestGradientCheck(t *testing.T) {
	weights := func(t *testing.T, values []float64, shape ...int) *Tensor {
		arr, err := ndarray.FromSlice(values, ndarray.Shape(shape), ndarray.Float64)
		require.NoError(t, err)
		w, err := New(arr, WithRequiresGrad(false))
		require.NoError(t, err)
		return w
	}
	w23 := weights(t, []float64{0.5, -1, 2, 1.5, 0.25, -0.75}, 3, 2)
	w23b := weights(t, distinct(6), 2, 3)
	kernel := weights(t, []float64{1, -0.5, 0.25, 2, -1, 0.5, 1.5, -2}, 2, 1, 2, 2)
	image := weights(t, distinct(16), 1, 1, 4, 4)

	tests := []struct {
		name   string
		f      func(x *Tensor) *Tensor
		values []float64
		shape  []int
	}{
		{"add broadcast", func(x *Tensor) *Tensor { return x.Add(w23b) }, distinct(3), []int{3}},
		{"sub", func(x *Tensor) *Tensor { return w23b.Sub(x) }, distinct(6), []int{2, 3}},
		{"mul", func(x *Tensor) *Tensor { return x.Mul(x).Mul(w23b) }, distinct(6), []int{2, 3}},
		{"div", func(x *Tensor) *Tensor { return w23b.Div(x) }, positive(6), []int{2, 3}},
		{"rdiv", func(x *Tensor) *Tensor { return x.RDiv(1.0) }, positive(4), []int{4}},
		{"pow", func(x *Tensor) *Tensor { return x.Pow(3.0) }, positive(5), []int{5}},
		{"rpow", func(x *Tensor) *Tensor { return x.RPow(2.0) }, distinct(5), []int{5}},
		{"matmul", func(x *Tensor) *Tensor { return x.Matmul(w23) }, distinct(6), []int{2, 3}},
		{"matmul right", func(x *Tensor) *Tensor { return w23b.Matmul(x) }, distinct(6), []int{3, 2}},
		{"relu", func(x *Tensor) *Tensor { return x.ReLU() }, distinct(8), []int{8}},
		{"exp", func(x *Tensor) *Tensor { return x.Exp() }, distinct(6), []int{6}},
		{"log", func(x *Tensor) *Tensor { return x.Log() }, positive(6), []int{6}},
		{"sqrt", func(x *Tensor) *Tensor { return x.Sqrt() }, positive(6), []int{6}},
		{"sum axis", func(x *Tensor) *Tensor { return x.Mul(x).Sum(1) }, distinct(6), []int{2, 3}},
		{"mean", func(x *Tensor) *Tensor { return x.Mean(0) }, distinct(6), []int{2, 3}},
		{"max axis", func(x *Tensor) *Tensor { return x.Max(1) }, distinct(6), []int{2, 3}},
		{"reshape", func(x *Tensor) *Tensor { return x.Reshape(3, 2).Matmul(w23b) }, distinct(6), []int{2, 3}},
		{"transpose", func(x *Tensor) *Tensor { return x.Transpose().Mul(w23) }, distinct(6), []int{2, 3}},
		{"slice", func(x *Tensor) *Tensor { return x.Slice([][2]int{{1, 3}, {-1, 2}}) }, distinct(9), []int{3, 3}},
		{"sigmoid", func(x *Tensor) *Tensor { return x.Sigmoid() }, distinct(6), []int{6}},
		{"tanh", func(x *Tensor) *Tensor { return x.Tanh() }, distinct(6), []int{6}},
		{"swish", func(x *Tensor) *Tensor { return x.Swish() }, distinct(6), []int{6}},
		{"mish", func(x *Tensor) *Tensor { return x.Mish() }, distinct(6), []int{6}},
		{"softplus", func(x *Tensor) *Tensor { return x.Softplus(2) }, distinct(6), []int{6}},
		{"leaky relu", func(x *Tensor) *Tensor { return x.LeakyReLU(0.1) }, distinct(6), []int{6}},
		{"softmax", func(x *Tensor) *Tensor { return x.Softmax().Mul(w23b) }, distinct(6), []int{2, 3}},
		{"log softmax", func(x *Tensor) *Tensor { return x.LogSoftmax() }, distinct(6), []int{2, 3}},
		{"conv2d input", func(x *Tensor) *Tensor { return x.Conv2D(kernel, 1) }, distinct(16), []int{1, 1, 4, 4}},
		{"conv2d stride", func(x *Tensor) *Tensor { return x.Conv2D(kernel, 2) }, distinct(25), []int{1, 1, 5, 5}},
		{"conv2d kernel", func(k *Tensor) *Tensor { return image.Conv2D(k, 1) }, distinct(8), []int{2, 1, 2, 2}},
		{"pad2d", func(x *Tensor) *Tensor { return x.Pad2D([4]int{1, 0, 0, 2}).Conv2D(kernel, 1) }, distinct(9), []int{1, 1, 3, 3}},
		{"avgpool", func(x *Tensor) *Tensor { return x.AvgPool2D(2, 2) }, distinct(16), []int{1, 1, 4, 4}},
		{"maxpool", func(x *Tensor) *Tensor { return x.MaxPool2D(2, 2) }, distinct(16), []int{1, 1, 4, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradient(t, tt.f, tt.values, tt.shape...)
		})
	}
}

func TestGradientCheck_Distinct(t *testing.T) {
	// The generator must not produce ties for the sizes used above.
	for _, n := range []int{3, 4, 5, 6, 8, 9, 16, 25} {
		seen := map[float64]bool{}
		for _, v := range distinct(n) {
			assert.False(t, seen[v], fmt.Sprintf("tie in distinct(%d)", n))
			seen[v] = true
		}
	}
}
