// Package cpu holds the host kernels of every primitive op.
//
// Ops are stateless values: per-call state lives in the ops.Saved passed to
// Forward and Backward, so a single instance serves every call.
package cpu

import (
	"github.com/gomlx/exceptions"

	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

// Namespace returns one value of every op in this package, for bulk
// registration under the lower-cased type name.
func Namespace() []ops.Function {
	return []ops.Function{
		Add{}, Sub{}, Mul{}, Pow{}, Matmul{},
		ReLU{}, Exp{}, Log{},
		Sum{}, Max{},
		Reshape{}, Transpose{}, Slice{},
		Conv2D{},
	}
}

func checkArity(name string, inputs []*ndarray.Array, want int) {
	if len(inputs) != want {
		exceptions.Panicf("%s: expected %d inputs, got %d", name, want, len(inputs))
	}
}
