package tensor

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/hazel-ml/hazel/internal/ndarray"
)

// Backward computes the gradient of t with respect to every tensor of its
// graph, accumulating into their Grad.
//
// Algorithm:
//  1. Seed t's gradient with ones (t must hold exactly one element)
//  2. Walk the nodes of Deepwalk(t) in reverse, outputs before inputs
//  3. Call each node's own backward rule with the node's gradient
//  4. Accumulate the returned gradients into the parents
//
// Leaves that do not require a gradient are skipped; interior nodes always
// receive theirs, as they are needed to continue the pass. Leaf gradients
// accumulate across calls, while interior gradients are reset at the start of
// each pass and only hold the gradient of the latest one.
func (t *Tensor) Backward() error {
	if t.data.NumElements() != 1 {
		return errors.Wrapf(ErrShapeMismatch, "backward needs a single-element tensor, got shape %v", t.Shape())
	}
	return exceptions.TryCatch[error](func() {
		nodes := Deepwalk(t)
		for _, node := range nodes {
			node.grad = nil
		}
		t.grad = newTensor(ndarray.Ones(t.Shape(), t.DType()), t.device, false)
		for i := len(nodes) - 1; i >= 0; i-- {
			backwardNode(nodes[i])
		}
	})
}

// backwardNode runs the backward rule of node and distributes the result to
// its parents.
func backwardNode(node *Tensor) {
	ctx := node.ctx
	if node.grad == nil {
		panic(errors.Wrapf(ErrNoGradient, "node %s", ctx))
	}
	grads := ctx.fn.Backward(ctx.saved, node.grad.data)
	if len(grads) != len(ctx.parents) {
		exceptions.Panicf("backward of %s returned %d gradients for %d parents", ctx, len(grads), len(ctx.parents))
	}
	klog.V(3).Infof("backward %s: grad %v -> %d parents", ctx, node.Shape(), len(ctx.parents))
	accumulateGrads(ctx, grads)
}

// accumulateGrads adds each gradient into the matching parent.
func accumulateGrads(ctx *Context, grads []*ndarray.Array) {
	for i, parent := range ctx.parents {
		g := grads[i]
		if g == nil {
			continue
		}
		if !g.Shape().Equal(parent.Shape()) {
			panic(errors.Wrapf(ErrShapeMismatch, "grad shape must match tensor shape in %s, %v != %v",
				ctx, g.Shape(), parent.Shape()))
		}
		if parent.IsLeaf() && !parent.requiresGrad {
			continue
		}
		gt := newTensor(g, ctx.device, false)
		if parent.grad == nil {
			parent.grad = gt
			continue
		}
		parent.grad = newTensor(ndarray.Add(parent.grad.data, gt.data), parent.grad.device, false)
	}
}
