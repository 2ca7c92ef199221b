package ndarray

import (
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/mat"

	"github.com/hazel-ml/hazel/internal/parallel"
)

// convGeometry holds the dimensions of a 2D convolution.
type convGeometry struct {
	n, c, h, w     int // input [N, C, H, W]
	o, kh, kw      int // kernel [O, C, KH, KW]
	hOut, wOut     int
	stride         int
	patch, windows int // C*KH*KW and HOut*WOut
}

func newConvGeometry(input, kernel Shape, stride int) convGeometry {
	if len(input) != 4 {
		exceptions.Panicf("conv2d: input must be 4D [N,C,H,W], got %v", input)
	}
	if len(kernel) != 4 {
		exceptions.Panicf("conv2d: kernel must be 4D [O,C,KH,KW], got %v", kernel)
	}
	if input[1] != kernel[1] {
		exceptions.Panicf("conv2d: input channels %d != kernel channels %d", input[1], kernel[1])
	}
	if stride < 1 {
		exceptions.Panicf("conv2d: stride must be >= 1, got %d", stride)
	}
	g := convGeometry{
		n: input[0], c: input[1], h: input[2], w: input[3],
		o: kernel[0], kh: kernel[2], kw: kernel[3],
		stride: stride,
	}
	if g.kh > g.h || g.kw > g.w {
		exceptions.Panicf("conv2d: kernel %v larger than input %v", kernel, input)
	}
	g.hOut = (g.h-g.kh)/stride + 1
	g.wOut = (g.w-g.kw)/stride + 1
	g.patch = g.c * g.kh * g.kw
	g.windows = g.hOut * g.wOut
	return g
}

// im2col unrolls the input patches of batch item n into rows of cols
// ([windows, patch]).
func (g convGeometry) im2col(cols, input []float64, n int) {
	base := n * g.c * g.h * g.w
	row := 0
	for oh := 0; oh < g.hOut; oh++ {
		for ow := 0; ow < g.wOut; ow++ {
			idx := row * g.patch
			for c := 0; c < g.c; c++ {
				for kh := 0; kh < g.kh; kh++ {
					src := base + c*g.h*g.w + (oh*g.stride+kh)*g.w + ow*g.stride
					copy(cols[idx:idx+g.kw], input[src:src+g.kw])
					idx += g.kw
				}
			}
			row++
		}
	}
}

// col2im scatters-adds rows of cols back into the input gradient of item n.
func (g convGeometry) col2im(dst, cols []float64, n int) {
	base := n * g.c * g.h * g.w
	row := 0
	for oh := 0; oh < g.hOut; oh++ {
		for ow := 0; ow < g.wOut; ow++ {
			idx := row * g.patch
			for c := 0; c < g.c; c++ {
				for kh := 0; kh < g.kh; kh++ {
					d := base + c*g.h*g.w + (oh*g.stride+kh)*g.w + ow*g.stride
					for kw := 0; kw < g.kw; kw++ {
						dst[d+kw] += cols[idx+kw]
					}
					idx += g.kw
				}
			}
			row++
		}
	}
}

// Conv2D computes a valid (unpadded) 2D cross-correlation.
//
//	input [N, C, H, W] * kernel [O, C, KH, KW] -> [N, O, HOut, WOut]
//
// Each batch item is unrolled with im2col and multiplied with the kernel
// matrix using gonum. Padding is applied beforehand by slicing.
func Conv2D(input, kernel *Array, stride int) *Array {
	g := newConvGeometry(input.shape, kernel.shape, stride)
	out := alloc(Shape{g.n, g.o, g.hOut, g.wOut}, input.dtype)
	if g.n == 0 || g.o == 0 || g.patch == 0 {
		return out
	}
	weights := mat.NewDense(g.o, g.patch, kernel.data)
	parallel.For(g.n, func(n int) {
		cols := make([]float64, g.windows*g.patch)
		g.im2col(cols, input.data, n)
		dst := mat.NewDense(g.o, g.windows, out.data[n*g.o*g.windows:(n+1)*g.o*g.windows])
		dst.Mul(weights, mat.NewDense(g.windows, g.patch, cols).T())
	}, parallel.DefaultConfig())
	out.normalize()
	return out
}

// Conv2DBackward returns the gradients of Conv2D with respect to its input
// and kernel, given the output gradient.
func Conv2DBackward(input, kernel, grad *Array, stride int) (inputGrad, kernelGrad *Array) {
	g := newConvGeometry(input.shape, kernel.shape, stride)
	if !grad.shape.Equal(Shape{g.n, g.o, g.hOut, g.wOut}) {
		exceptions.Panicf("conv2d backward: gradient shape %v does not match output [%d %d %d %d]",
			grad.shape, g.n, g.o, g.hOut, g.wOut)
	}
	inputGrad = alloc(input.shape, input.dtype)
	kernelGrad = alloc(kernel.shape, kernel.dtype)
	if g.n == 0 || g.o == 0 || g.patch == 0 {
		return inputGrad, kernelGrad
	}

	weights := mat.NewDense(g.o, g.patch, kernel.data)
	partials := make([]*mat.Dense, g.n)
	parallel.For(g.n, func(n int) {
		gradN := mat.NewDense(g.o, g.windows, grad.data[n*g.o*g.windows:(n+1)*g.o*g.windows])
		cols := make([]float64, g.windows*g.patch)
		g.im2col(cols, input.data, n)

		// dK_n = grad_n [O, P] @ cols_n [P, CKK]
		partial := mat.NewDense(g.o, g.patch, nil)
		partial.Mul(gradN, mat.NewDense(g.windows, g.patch, cols))
		partials[n] = partial

		// dCols_n = grad_n^T [P, O] @ K [O, CKK]
		dCols := mat.NewDense(g.windows, g.patch, nil)
		dCols.Mul(gradN.T(), weights)
		g.col2im(inputGrad.data, dCols.RawMatrix().Data, n)
	}, parallel.DefaultConfig())

	sum := mat.NewDense(g.o, g.patch, kernelGrad.data)
	for _, p := range partials {
		sum.Add(sum, p)
	}
	inputGrad.normalize()
	kernelGrad.normalize()
	return inputGrad, kernelGrad
}
