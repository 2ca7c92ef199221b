package tensor

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// Dispatch calls the op registered as name on the device of the first
// Tensor operand, and returns its output with a new Context attached.
//
// Operands that are not *Tensor (Go numbers, slices, *ndarray.Array) are
// wrapped into leaves with the reference tensor's dtype and device that do
// not require a gradient; numbers become shape (1,). The Context parents
// are the wrapped operands in call order.
func Dispatch(name string, attrs ops.Attrs, operands ...any) (*Tensor, error) {
	ref := reference(operands)
	if ref == nil {
		return nil, errors.Wrapf(ErrInvalidData, "%s: no tensor operand", name)
	}
	fn, err := lookup(ref.device, name)
	if err != nil {
		return nil, err
	}

	parents := make([]*Tensor, len(operands))
	inputs := make([]*ndarray.Array, len(operands))
	requiresGrad := false
	for i, operand := range operands {
		parent, err := wrapOperand(operand, ref)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s operand #%d", name, i)
		}
		parents[i] = parent
		inputs[i] = parent.data
		requiresGrad = requiresGrad || parent.requiresGrad
	}

	executor, err := ref.device.executor()
	if err != nil {
		return nil, err
	}
	saved := ops.NewSaved(executor, attrs, inputs)

	var out *ndarray.Array
	err = exceptions.TryCatch[error](func() {
		out = fn.Forward(saved, inputs, attrs)
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "%s on %s", name, ref.device)
	}

	result := newTensor(out, ref.device, requiresGrad)
	result.ctx = newContext(name, fn, ref.device, parents, saved)
	if klog.V(4).Enabled() {
		klog.Infof("dispatch %s: %v -> %v", result.ctx, shapesOf(parents), out.Shape())
	}
	return result, nil
}

// reference returns the first Tensor operand.
func reference(operands []any) *Tensor {
	for _, operand := range operands {
		if t, ok := operand.(*Tensor); ok && t != nil {
			return t
		}
	}
	return nil
}

// wrapOperand returns operand as a Tensor, wrapping non-Tensor values into
// a non-tracking leaf matching ref.
func wrapOperand(operand any, ref *Tensor) (*Tensor, error) {
	opts := []Option{WithDevice(ref.device), WithRequiresGrad(false), WithDType(ref.DType())}
	switch v := operand.(type) {
	case *Tensor:
		if v == nil {
			return nil, errors.Wrap(ErrInvalidData, "nil tensor")
		}
		return v, nil
	case float64:
		return scalar(v, ref), nil
	case float32:
		return scalar(float64(v), ref), nil
	case int:
		return scalar(float64(v), ref), nil
	case int32:
		return scalar(float64(v), ref), nil
	case int64:
		return scalar(float64(v), ref), nil
	default:
		return New(operand, opts...)
	}
}

func scalar(v float64, ref *Tensor) *Tensor {
	arr := ndarray.Full(ndarray.Shape{1}, v, ref.DType())
	return newTensor(arr, ref.device, false)
}

func shapesOf(tensors []*Tensor) []ndarray.Shape {
	shapes := make([]ndarray.Shape, len(tensors))
	for i, t := range tensors {
		shapes[i] = t.Shape()
	}
	return shapes
}
