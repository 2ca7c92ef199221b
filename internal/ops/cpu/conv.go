package cpu

import (
	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// Conv2D is a valid 2D cross-correlation of input [N, C, H, W] with
// kernel [O, C, KH, KW], using attrs.Stride (1 when zero).
//
// Backward pass:
//   - grad_input is the kernel-weighted scatter of the output gradient
//   - grad_kernel correlates the input patches with the output gradient
type Conv2D struct{}

func (Conv2D) Forward(saved *ops.Saved, inputs []*ndarray.Array, attrs ops.Attrs) *ndarray.Array {
	checkArity("conv2d", inputs, 2)
	saved.Save(inputs[0], inputs[1])
	return ndarray.Conv2D(inputs[0], inputs[1], stride(attrs))
}

func (Conv2D) Backward(saved *ops.Saved, grad *ndarray.Array) []*ndarray.Array {
	inputGrad, kernelGrad := ndarray.Conv2DBackward(saved.Get(0), saved.Get(1), grad, stride(saved.Attrs()))
	return []*ndarray.Array{inputGrad, kernelGrad}
}

func stride(attrs ops.Attrs) int {
	if attrs.Stride == 0 {
		return 1
	}
	return attrs.Stride
}
