package cpu

import (
	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// ReLU computes max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLU struct{}

func (ReLU) Forward(saved *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("relu", inputs, 1)
	saved.Save(inputs[0])
	return ndarray.ReLU(inputs[0])
}

func (ReLU) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	mask := ndarray.Positive(saved.Get(0))
	return []*ndarray.Array{ndarray.Mul(grad, mask)}
}

// Exp computes e^x.
//
// Backward pass:
//   - d(exp(x))/dx = exp(x), reusing the forward output
//   - a zero incoming gradient stays zero where exp(x) overflowed to +Inf
type Exp struct{}

func (Exp) Forward(saved *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("exp", inputs, 1)
	out := ndarray.Exp(inputs[0])
	saved.Save(out)
	return out
}

func (Exp) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.MulNoNaN(grad, saved.Get(0))}
}

// Log computes the natural logarithm.
//
// Backward pass:
//   - d(log(x))/dx = 1/x
type Log struct{}

func (Log) Forward(saved *ops.Saved, inputs []*ndarray.Array, _ ops.Attrs) *ndarray.Array {
	checkArity("log", inputs, 1)
	saved.Save(inputs[0])
	return ndarray.Log(inputs[0])
}

func (Log) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Div(grad, saved.Get(0))}
}
