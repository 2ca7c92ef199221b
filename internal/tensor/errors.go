package tensor

import "github.com/pkg/errors"

// Sentinel errors. Returned errors wrap one of these, so callers can test
// with errors.Is and print the wrapping context with %+v.
var (
	// ErrInvalidData is returned when a Tensor is built from an unsupported
	// value, or when an op call has no Tensor operand.
	ErrInvalidData = errors.New("invalid tensor data")

	// ErrShapeMismatch is returned when a shape contract is violated: backward
	// on a tensor with more than one element, or a gradient whose shape
	// differs from its parent's.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnsupportedOp is returned when no op is registered under the
	// requested name for the tensor's device.
	ErrUnsupportedOp = errors.New("unsupported operation for device")

	// ErrNoGradient is returned when the backward pass reaches a node that
	// has not received a gradient.
	ErrNoGradient = errors.New("backward pass reached a node with no incoming gradient")

	// ErrInvalidSlice is returned for selectors with a step other than 1 or
	// with more selectors than axes.
	ErrInvalidSlice = errors.New("invalid slice")
)
