package tensor

import (
	"github.com/janpfeifer/must"

	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// The methods below call Dispatch and panic on error. Use Dispatch directly
// to get the error instead.
//
// Operands of type any may be a *Tensor or anything Dispatch wraps (Go
// numbers, slices, *ndarray.Array).

func (t *Tensor) call(name string, attrs ops.Attrs, operands ...any) *Tensor {
	return must.M1(Dispatch(name, attrs, operands...))
}

// Add returns t + x, broadcasting.
func (t *Tensor) Add(x any) *Tensor { return t.call("add", ops.Attrs{}, t, x) }

// IAdd sets t to t + x in place and returns t.
func (t *Tensor) IAdd(x any) *Tensor { t.Assign(t.Add(x)); return t }

// RAdd returns x + t.
func (t *Tensor) RAdd(x any) *Tensor { return t.call("add", ops.Attrs{}, x, t) }

// Sub returns t - x, broadcasting.
func (t *Tensor) Sub(x any) *Tensor { return t.call("sub", ops.Attrs{}, t, x) }

// ISub sets t to t - x in place and returns t.
func (t *Tensor) ISub(x any) *Tensor { t.Assign(t.Sub(x)); return t }

// RSub returns x - t.
func (t *Tensor) RSub(x any) *Tensor { return t.call("sub", ops.Attrs{}, x, t) }

// Mul returns t * x elementwise, broadcasting.
func (t *Tensor) Mul(x any) *Tensor { return t.call("mul", ops.Attrs{}, t, x) }

// IMul sets t to t * x in place and returns t.
func (t *Tensor) IMul(x any) *Tensor { t.Assign(t.Mul(x)); return t }

// RMul returns x * t.
func (t *Tensor) RMul(x any) *Tensor { return t.call("mul", ops.Attrs{}, x, t) }

// Pow returns t ** x elementwise, broadcasting.
func (t *Tensor) Pow(x any) *Tensor { return t.call("pow", ops.Attrs{}, t, x) }

// IPow sets t to t ** x in place and returns t.
func (t *Tensor) IPow(x any) *Tensor { t.Assign(t.Pow(x)); return t }

// RPow returns x ** t.
func (t *Tensor) RPow(x any) *Tensor { return t.call("pow", ops.Attrs{}, x, t) }

// Matmul returns the matrix product t @ x.
func (t *Tensor) Matmul(x any) *Tensor { return t.call("matmul", ops.Attrs{}, t, x) }

// IMatmul sets t to t @ x in place and returns t.
func (t *Tensor) IMatmul(x any) *Tensor { t.Assign(t.Matmul(x)); return t }

// RMatmul returns x @ t.
func (t *Tensor) RMatmul(x any) *Tensor { return t.call("matmul", ops.Attrs{}, x, t) }

// ReLU returns max(0, t).
func (t *Tensor) ReLU() *Tensor { return t.call("relu", ops.Attrs{}, t) }

// Exp returns e^t.
func (t *Tensor) Exp() *Tensor { return t.call("exp", ops.Attrs{}, t) }

// Log returns the natural logarithm of t.
func (t *Tensor) Log() *Tensor { return t.call("log", ops.Attrs{}, t) }

// Sum sums over axes, removing them; no axes sums everything into shape (1,).
func (t *Tensor) Sum(axes ...int) *Tensor {
	return t.call("sum", ops.Attrs{Axes: axes}, t)
}

// Max takes the maximum over axes, removing them; no axes reduces
// everything into shape (1,).
func (t *Tensor) Max(axes ...int) *Tensor {
	return t.call("max", ops.Attrs{Axes: axes}, t)
}

// Reshape returns t with a new shape; one dimension may be -1.
func (t *Tensor) Reshape(shape ...int) *Tensor {
	return t.call("reshape", ops.Attrs{Shape: ndarray.Shape(shape)}, t)
}

// Transpose permutes the axes of t; no perm reverses them.
func (t *Tensor) Transpose(perm ...int) *Tensor {
	return t.call("transpose", ops.Attrs{Axes: perm}, t)
}

// Slice returns the window [start, stop) of every axis. Positions outside t
// read as zero.
func (t *Tensor) Slice(bounds [][2]int) *Tensor {
	return t.call("slice", ops.Attrs{Bounds: bounds}, t)
}

// Conv2D cross-correlates t [N, C, H, W] with kernel [O, C, KH, KW].
func (t *Tensor) Conv2D(kernel any, stride int) *Tensor {
	return t.call("conv2d", ops.Attrs{Stride: stride}, t, kernel)
}
