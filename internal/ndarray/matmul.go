package ndarray

import (
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/mat"

	"github.com/hazel-ml/hazel/internal/parallel"
)

// MatMul performs (batched) matrix multiplication.
//
//	[M, K] @ [K, N] -> [M, N]
//	[B..., M, K] @ [B..., K, N] -> [B..., M, N]
//	[B..., M, K] @ [K, N] -> [B..., M, N] (and the mirrored case)
//
// Each matrix product is computed by gonum's Dense.Mul directly into the
// result buffer, with batch items spread over workers.
func MatMul(a, b *Array) *Array {
	if a.Rank() < 2 || b.Rank() < 2 {
		exceptions.Panicf("matmul: operands must have rank >= 2, got %v @ %v", a.shape, b.shape)
	}
	m, k := a.shape[a.Rank()-2], a.shape[a.Rank()-1]
	k2, n := b.shape[b.Rank()-2], b.shape[b.Rank()-1]
	if k != k2 {
		exceptions.Panicf("matmul: inner dimensions differ: %v @ %v", a.shape, b.shape)
	}

	aBatch, bBatch := a.shape[:a.Rank()-2], b.shape[:b.Rank()-2]
	var batch Shape
	switch {
	case len(bBatch) == 0:
		batch = aBatch
	case len(aBatch) == 0:
		batch = bBatch
	case aBatch.Equal(bBatch):
		batch = aBatch
	default:
		exceptions.Panicf("matmul: batch dimensions differ: %v @ %v", a.shape, b.shape)
	}

	outShape := append(batch.Clone(), m, n)
	out := alloc(outShape, a.dtype)
	if m == 0 || k == 0 || n == 0 {
		return out
	}

	parallel.For(batch.NumElements(), func(i int) {
		aOff, bOff := i*m*k, i*k*n
		if len(aBatch) == 0 {
			aOff = 0
		}
		if len(bBatch) == 0 {
			bOff = 0
		}
		lhs := mat.NewDense(m, k, a.data[aOff:aOff+m*k])
		rhs := mat.NewDense(k, n, b.data[bOff:bOff+k*n])
		dst := mat.NewDense(m, n, out.data[i*m*n:(i+1)*m*n])
		dst.Mul(lhs, rhs)
	}, parallel.DefaultConfig())
	out.normalize()
	return out
}

// SwapLastAxes transposes the two innermost axes.
func SwapLastAxes(a *Array) *Array {
	rank := a.Rank()
	if rank < 2 {
		exceptions.Panicf("swap last axes: rank %d < 2", rank)
	}
	perm := make([]int, rank)
	for i := range perm {
		perm[i] = i
	}
	perm[rank-2], perm[rank-1] = rank-1, rank-2
	return Transpose(a, perm...)
}
