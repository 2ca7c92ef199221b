package tensor

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"

	"github.com/hazel-ml/hazel/internal/ndarray"
)

// Ops in this file are compositions of the primitive ops: they add no node
// type of their own, and their gradients come from the primitives.

// Dot is the matrix product t @ w.
func (t *Tensor) Dot(w any) *Tensor {
	return t.Matmul(w)
}

// Neg returns -t.
func (t *Tensor) Neg() *Tensor {
	return t.Mul(-1.0)
}

// Mean averages over axes (all axes when none are given).
func (t *Tensor) Mean(axes ...int) *Tensor {
	out := t.Sum(axes...)
	return out.Mul(float64(out.data.NumElements()) / float64(t.data.NumElements()))
}

// Sqrt returns t ** 0.5.
func (t *Tensor) Sqrt() *Tensor {
	return t.Pow(0.5)
}

// Div returns t / y, computed as t * y**-1.
func (t *Tensor) Div(y any) *Tensor {
	return t.Mul(t.operand(y).Pow(-1.0))
}

// RDiv returns x / t.
func (t *Tensor) RDiv(x any) *Tensor {
	return t.Pow(-1.0).RMul(x)
}

// operand wraps x like Dispatch does for a call on t.
func (t *Tensor) operand(x any) *Tensor {
	return must.M1(wrapOperand(x, t))
}

// Sigmoid returns 1 / (1 + e^-t), which saturates to 0 or 1 without
// overflowing to NaN for large magnitudes.
func (t *Tensor) Sigmoid() *Tensor {
	return t.Neg().Exp().RAdd(1.0).Pow(-1.0)
}

// Swish returns t * sigmoid(t).
func (t *Tensor) Swish() *Tensor {
	return t.Mul(t.Sigmoid())
}

// ReLU6 returns min(max(0, t), 6).
func (t *Tensor) ReLU6() *Tensor {
	return t.ReLU().Sub(t.Sub(6.0).ReLU())
}

// Hardswish returns t * relu6(t + 3) / 6.
func (t *Tensor) Hardswish() *Tensor {
	return t.Mul(t.Add(3.0).ReLU6()).Mul(1.0 / 6)
}

// Tanh returns 2 * sigmoid(2t) - 1.
func (t *Tensor) Tanh() *Tensor {
	return t.Mul(2.0).Sigmoid().Mul(2.0).Sub(1.0)
}

// LeakyReLU returns t for t > 0 and negSlope * t otherwise.
func (t *Tensor) LeakyReLU(negSlope float64) *Tensor {
	return t.ReLU().Sub(t.Mul(-negSlope).ReLU())
}

// lastAxisKept returns the shape of t with the last axis set to 1.
func (t *Tensor) lastAxisKept() []int {
	shape := t.Shape().Clone()
	shape[len(shape)-1] = 1
	return shape
}

// Softmax normalizes exp(t) along the last axis. The row maximum is
// subtracted first, so large inputs do not overflow.
func (t *Tensor) Softmax() *Tensor {
	last := t.data.Rank() - 1
	m := t.Max(last).Reshape(t.lastAxisKept()...)
	e := t.Sub(m).Exp()
	s := e.Sum(last).Reshape(t.lastAxisKept()...)
	return e.Div(s)
}

// LogSoftmax returns t - (max + log(sum(exp(t - max)))) along the last axis.
func (t *Tensor) LogSoftmax() *Tensor {
	last := t.data.Rank() - 1
	m := t.Max(last).Reshape(t.lastAxisKept()...)
	s := m.Add(t.Sub(m).Exp().Sum(last).Reshape(t.lastAxisKept()...).Log())
	return t.Sub(s)
}

// Dropout zeroes each element with probability p and scales the kept ones
// by 1/(1-p). It is the identity when training mode is off.
func (t *Tensor) Dropout(p float64) *Tensor {
	if p < 0 || p >= 1 {
		exceptions.Panicf("dropout probability must be in [0, 1), got %g", p)
	}
	if !Training() {
		return t
	}
	mask := newTensor(ndarray.Binomial(t.Shape(), 1, 1-p, t.DType()), t.device, false)
	return t.Mul(mask).Mul(1 / (1 - p))
}

// Softplus returns log(1 + e^(beta*t)) / beta.
func (t *Tensor) Softplus(beta float64) *Tensor {
	return t.Mul(beta).Exp().RAdd(1.0).Log().Mul(1 / beta)
}

// Mish returns t * tanh(softplus(t)).
func (t *Tensor) Mish() *Tensor {
	return t.Mul(t.Softplus(1).Tanh())
}

// Abs returns |t| as relu(t) + relu(-t).
func (t *Tensor) Abs() *Tensor {
	return t.ReLU().Add(t.Neg().ReLU())
}

// Sign returns t / (|t| + 1e-10): about -1, 0 or 1.
func (t *Tensor) Sign() *Tensor {
	return t.Div(t.Abs().Add(1e-10))
}

// Pad2D zero-pads the two innermost axes of an [N, C, H, W] tensor by
// padding = [left, right, top, bottom].
func (t *Tensor) Pad2D(padding [4]int) *Tensor {
	shape := t.Shape()
	if len(shape) != 4 {
		exceptions.Panicf("pad2d: expected [N, C, H, W], got %v", shape)
	}
	return must.M1(t.Index(All(), All(),
		Range(-padding[2], shape[2]+padding[3]),
		Range(-padding[0], shape[3]+padding[1])))
}

// pool2D crops [N, C, H, W] to a multiple of the kernel and reshapes it to
// [N, C, H/ky, ky, W/kx, kx].
func (t *Tensor) pool2D(ky, kx int) *Tensor {
	shape := t.Shape()
	if len(shape) != 4 {
		exceptions.Panicf("pool2d: expected [N, C, H, W], got %v", shape)
	}
	if ky < 1 || kx < 1 {
		exceptions.Panicf("pool2d: invalid kernel %dx%d", ky, kx)
	}
	h, w := shape[2]-shape[2]%ky, shape[3]-shape[3]%kx
	cropped := must.M1(t.Index(All(), All(), To(h), To(w)))
	return cropped.Reshape(shape[0], shape[1], h/ky, ky, w/kx, kx)
}

// AvgPool2D averages non-overlapping ky x kx windows of [N, C, H, W].
func (t *Tensor) AvgPool2D(ky, kx int) *Tensor {
	return t.pool2D(ky, kx).Mean(3, 5)
}

// MaxPool2D takes the maximum of non-overlapping ky x kx windows of
// [N, C, H, W].
func (t *Tensor) MaxPool2D(ky, kx int) *Tensor {
	return t.pool2D(ky, kx).Max(3, 5)
}
