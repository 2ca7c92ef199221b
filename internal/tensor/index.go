package tensor

import (
	"github.com/pkg/errors"

	"github.com/hazel-ml/hazel/internal/ops"
)

// Sel selects a window of one axis for Index.
type Sel struct {
	start, stop       int
	hasStart, hasStop bool
	step              int
	at                bool
}

// All selects the full axis.
func All() Sel { return Sel{} }

// Range selects [start, stop).
func Range(start, stop int) Sel {
	return Sel{start: start, stop: stop, hasStart: true, hasStop: true}
}

// From selects [start, end of axis).
func From(start int) Sel { return Sel{start: start, hasStart: true} }

// To selects [0, stop).
func To(stop int) Sel { return Sel{stop: stop, hasStop: true} }

// At selects the single position i and drops the axis. Negative i counts
// from the end.
func At(i int) Sel { return Sel{start: i, hasStart: true, at: true} }

// Step sets the step of the selector. Only 1 is supported.
func (s Sel) Step(n int) Sel {
	s.step = n
	return s
}

// Index slices t with one selector per leading axis; missing trailing axes
// are selected in full.
//
// A negative stop resolves against the axis extent (To(-1) drops the last
// position). A negative start is kept as is, and the positions before the
// start of the axis read as zeros. This is how Pad2D pads.
func (t *Tensor) Index(sels ...Sel) (*Tensor, error) {
	shape := t.Shape()
	if len(sels) > len(shape) {
		return nil, errors.Wrapf(ErrInvalidSlice, "%d selectors for shape %v", len(sels), shape)
	}

	bounds := make([][2]int, len(shape))
	var kept []int
	for axis, extent := range shape {
		sel := All()
		if axis < len(sels) {
			sel = sels[axis]
		}
		b, err := sel.bounds(extent)
		if err != nil {
			return nil, errors.WithMessagef(err, "axis %d", axis)
		}
		bounds[axis] = b
		if !sel.at {
			kept = append(kept, b[1]-b[0])
		}
	}

	out, err := Dispatch("slice", ops.Attrs{Bounds: bounds}, t)
	if err != nil || len(kept) == len(shape) {
		return out, err
	}
	if len(kept) == 0 {
		kept = []int{1}
	}
	return Dispatch("reshape", ops.Attrs{Shape: kept}, out)
}

// bounds resolves the selector against an axis of the given extent.
func (s Sel) bounds(extent int) ([2]int, error) {
	if s.step != 0 && s.step != 1 {
		return [2]int{}, errors.Wrapf(ErrInvalidSlice, "step %d, only 1 is supported", s.step)
	}
	if s.at {
		i := s.start
		if i < 0 {
			i += extent
		}
		if i < 0 || i >= extent {
			return [2]int{}, errors.Wrapf(ErrInvalidSlice, "index %d out of range for extent %d", s.start, extent)
		}
		return [2]int{i, i + 1}, nil
	}

	start, stop := 0, extent
	if s.hasStart {
		start = s.start
	}
	if s.hasStop {
		stop = s.stop
		if stop < 0 {
			stop += extent
		}
	}
	if stop < start {
		return [2]int{}, errors.Wrapf(ErrInvalidSlice, "stop %d before start %d", stop, start)
	}
	return [2]int{start, stop}, nil
}
