package cpu

import (
	"math"

	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// Add computes a + b with broadcasting.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = grad
//   - d(a+b)/db = 1, so grad_b = grad
//
// Both gradients are summed down to the input shapes when broadcasting
// was used.
type Add struct{}

func (Add) Forward(_ *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("add", inputs, 2)
	return ndarray.Add(inputs[0], inputs[1])
}

func (Add) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{
		ndarray.ReduceTo(grad, saved.InputShape(0)),
		ndarray.ReduceTo(grad, saved.InputShape(1)),
	}
}

// Sub computes a - b with broadcasting.
//
// Backward pass:
//   - grad_a = grad
//   - grad_b = -grad
type Sub struct{}

func (Sub) Forward(_ *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("sub", inputs, 2)
	return ndarray.Sub(inputs[0], inputs[1])
}

func (Sub) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{
		ndarray.ReduceTo(grad, saved.InputShape(0)),
		ndarray.ReduceTo(ndarray.Neg(grad), saved.InputShape(1)),
	}
}

// Mul computes a * b elementwise with broadcasting.
//
// Backward pass:
//   - grad_a = grad * b
//   - grad_b = grad * a
type Mul struct{}

func (Mul) Forward(saved *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("mul", inputs, 2)
	saved.Save(inputs[0], inputs[1])
	return ndarray.Mul(inputs[0], inputs[1])
}

func (Mul) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	a, b := saved.Get(0), saved.Get(1)
	return []*ndarray.Array{
		ndarray.ReduceTo(ndarray.Mul(grad, b), a.Shape()),
		ndarray.ReduceTo(ndarray.Mul(grad, a), b.Shape()),
	}
}

// Pow computes x ** y elementwise with broadcasting.
//
// Backward pass:
//   - grad_x = grad * y * x^(y-1)
//   - grad_y = grad * x^y * ln(x), taken as 0 where x <= 0
type Pow struct{}

func (Pow) Forward(saved *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("pow", inputs, 2)
	out := ndarray.Pow(inputs[0], inputs[1])
	saved.Save(inputs[0], inputs[1], out)
	return out
}

func (Pow) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	x, y, out := saved.Get(0), saved.Get(1), saved.Get(2)

	// x^(y-1) is computed directly so the gradient stays finite at x = 0 for y >= 1.
	yMinusOne := ndarray.Map(y, func(v float64) float64 { return v - 1 })
	dx := ndarray.Mul(grad, ndarray.Mul(y, ndarray.Pow(x, yMinusOne)))

	logX := ndarray.Map(x, func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return math.Log(v)
	})
	dy := ndarray.Mul(grad, ndarray.Mul(out, logX))

	return []*ndarray.Array{
		ndarray.ReduceTo(dx, x.Shape()),
		ndarray.ReduceTo(dy, y.Shape()),
	}
}

// Matmul computes a @ b, with optional batch dimensions on either side.
//
// Backward pass:
//   - grad_a = grad @ b^T
//   - grad_b = a^T @ grad
type Matmul struct{}

func (Matmul) Forward(saved *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("matmul", inputs, 2)
	saved.Save(inputs[0], inputs[1])
	return ndarray.MatMul(inputs[0], inputs[1])
}

func (Matmul) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	a, b := saved.Get(0), saved.Get(1)
	gradA := ndarray.MatMul(grad, ndarray.SwapLastAxes(b))
	gradB := ndarray.MatMul(ndarray.SwapLastAxes(a), grad)
	return []*ndarray.Array{
		ndarray.ReduceTo(gradA, a.Shape()),
		ndarray.ReduceTo(gradB, b.Shape()),
	}
}
