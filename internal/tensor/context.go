package tensor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hazel-ml/hazel/internal/ops"
)

// Context records how a tensor was produced: the op, the device it ran on,
// its parents in call order, and the per-call state saved by the forward
// pass for the backward rule.
//
// The graph edge (parents, op) is fixed at creation; the op-owned state
// lives in Saved and is only touched by the op itself.
type Context struct {
	id      uuid.UUID
	name    string
	fn      ops.Function
	device  Device
	parents []*Tensor
	saved   *ops.Saved
}

func newContext(name string, fn ops.Function, device Device, parents []*Tensor, saved *ops.Saved) *Context {
	return &Context{
		id:      uuid.New(),
		name:    name,
		fn:      fn,
		device:  device,
		parents: parents,
		saved:   saved,
	}
}

// ID identifies the op call in diagnostics.
func (c *Context) ID() string {
	return c.id.String()
}

// Name returns the registered name of the op.
func (c *Context) Name() string {
	return c.name
}

// Device returns the device the op was bound to.
func (c *Context) Device() Device {
	return c.device
}

// Parents returns the op inputs in call order.
func (c *Context) Parents() []*Tensor {
	return c.parents
}

// Saved returns the state the op saved during forward.
func (c *Context) Saved() *ops.Saved {
	return c.saved
}

// String implements fmt.Stringer.
func (c *Context) String() string {
	return fmt.Sprintf("%s[%s]@%s", c.name, c.id.String()[:8], c.device)
}
