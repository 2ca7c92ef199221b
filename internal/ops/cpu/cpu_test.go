package cpu

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
)

func array(t *testing.T, data []float64, shape ...int) *ndarray.Array {
	t.Helper()
	a, err := ndarray.FromSlice(data, ndarray.Shape(shape), ndarray.Float64)
	require.NoError(t, err)
	return a
}

// run calls forward and then backward with a ones gradient.
func run(fn ops.Function, attrs ops.Attrs, inputs ...*ndarray.Array) (*ndarray.Array, []*ndarray.Array) {
	saved := ops.NewSaved(ops.Executor{Device: "cpu"}, attrs, inputs)
	out := fn.Forward(saved, inputs, attrs)
	grads := fn.Backward(saved, ndarray.Ones(out.Shape(), out.DType()))
	return out, grads
}

func TestNamespace(t *testing.T) {
	var names []string
	for _, fn := range Namespace() {
		names = append(names, reflect.TypeOf(fn).Name())
	}
	assert.Equal(t, []string{
		"Add", "Sub", "Mul", "Pow", "Matmul", "ReLU", "Exp", "Log",
		"Sum", "Max", "Reshape", "Transpose", "Slice", "Conv2D",
	}, names)
}

func TestAdd_BroadcastBackward(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := array(t, []float64{10, 20, 30}, 3)

	out, grads := run(Add{}, ops.Attrs{}, a, b)
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, out.Data())
	require.Len(t, grads, 2)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, grads[0].Data())
	assert.Equal(t, ndarray.Shape{3}, grads[1].Shape())
	assert.Equal(t, []float64{2, 2, 2}, grads[1].Data())
}

func TestSub_Backward(t *testing.T) {
	a := array(t, []float64{1, 2}, 2)
	b := array(t, []float64{5}, 1)
	out, grads := run(Sub{}, ops.Attrs{}, a, b)
	assert.Equal(t, []float64{-4, -3}, out.Data())
	assert.Equal(t, []float64{1, 1}, grads[0].Data())
	assert.Equal(t, []float64{-2}, grads[1].Data())
}

func TestMul_Backward(t *testing.T) {
	a := array(t, []float64{1, 2, 3}, 3)
	b := array(t, []float64{4, 5, 6}, 3)
	_, grads := run(Mul{}, ops.Attrs{}, a, b)
	assert.Equal(t, []float64{4, 5, 6}, grads[0].Data())
	assert.Equal(t, []float64{1, 2, 3}, grads[1].Data())
}

func TestPow_Backward(t *testing.T) {
	x := array(t, []float64{0, 1, 2}, 3)
	y := array(t, []float64{2}, 1)
	out, grads := run(Pow{}, ops.Attrs{}, x, y)
	assert.Equal(t, []float64{0, 1, 4}, out.Data())
	assert.Equal(t, []float64{0, 2, 4}, grads[0].Data())
	// d/dy = x^y ln x, with x = 0 contributing nothing.
	assert.InDelta(t, 4*0.6931471805599453, grads[1].Item(), 1e-12)
}

func TestMatmul_Backward(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := array(t, []float64{1, 0, 0, 1, 1, 1}, 3, 2)
	out, grads := run(Matmul{}, ops.Attrs{}, a, b)
	assert.Equal(t, ndarray.Shape{2, 2}, out.Shape())

	// grad_a = ones[2,2] @ b^T: row sums of b.
	assert.Equal(t, []float64{1, 1, 2, 1, 1, 2}, grads[0].Data())
	// grad_b = a^T @ ones[2,2]: column sums of a.
	assert.Equal(t, []float64{5, 5, 7, 7, 9, 9}, grads[1].Data())
}

func TestMatmul_BatchedBackwardReducesShared(t *testing.T) {
	a := array(t, make([]float64, 2*2*3), 2, 2, 3)
	b := array(t, []float64{1, 2, 3, 4, 5, 6}, 3, 2)
	_, grads := run(Matmul{}, ops.Attrs{}, a, b)
	assert.Equal(t, ndarray.Shape{2, 2, 3}, grads[0].Shape())
	assert.Equal(t, ndarray.Shape{3, 2}, grads[1].Shape())
}

func TestUnary_Backward(t *testing.T) {
	x := array(t, []float64{-1, 0.5, 2}, 3)

	_, grads := run(ReLU{}, ops.Attrs{}, x)
	assert.Equal(t, []float64{0, 1, 1}, grads[0].Data())

	out, grads := run(Exp{}, ops.Attrs{}, x)
	assert.Equal(t, out.Data(), grads[0].Data())

	_, grads = run(Log{}, ops.Attrs{}, array(t, []float64{1, 2, 4}, 3))
	assert.Equal(t, []float64{1, 0.5, 0.25}, grads[0].Data())
}

func TestSum_Backward(t *testing.T) {
	x := array(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	out, grads := run(Sum{}, ops.Attrs{Axes: []int{1}}, x)
	assert.Equal(t, []float64{6, 15}, out.Data())
	assert.Equal(t, ndarray.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, grads[0].Data())

	out, grads = run(Sum{}, ops.Attrs{}, x)
	assert.Equal(t, ndarray.Shape{1}, out.Shape())
	assert.Equal(t, ndarray.Shape{2, 3}, grads[0].Shape())
}

func TestMax_BackwardSplitsTies(t *testing.T) {
	x := array(t, []float64{1, 3, 3, 7, 2, 0}, 2, 3)
	out, grads := run(Max{}, ops.Attrs{Axes: []int{-1}}, x)
	assert.Equal(t, ndarray.Shape{2}, out.Shape())
	assert.Equal(t, []float64{3, 7}, out.Data())
	assert.Equal(t, []float64{0, 0.5, 0.5, 1, 0, 0}, grads[0].Data())
}

func TestMovement_Backward(t *testing.T) {
	x := array(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	out, grads := run(Reshape{}, ops.Attrs{Shape: ndarray.Shape{3, 2}}, x)
	assert.Equal(t, ndarray.Shape{3, 2}, out.Shape())
	assert.Equal(t, ndarray.Shape{2, 3}, grads[0].Shape())

	out, grads = run(Transpose{}, ops.Attrs{}, x)
	assert.Equal(t, ndarray.Shape{3, 2}, out.Shape())
	assert.Equal(t, ndarray.Shape{2, 3}, grads[0].Shape())

	x3 := array(t, make([]float64, 24), 2, 3, 4)
	_, grads = run(Transpose{}, ops.Attrs{Axes: []int{1, 2, 0}}, x3)
	assert.Equal(t, ndarray.Shape{2, 3, 4}, grads[0].Shape())
}

func TestSlice_Backward(t *testing.T) {
	x := array(t, []float64{1, 2, 3, 4}, 2, 2)

	out, grads := run(Slice{}, ops.Attrs{Bounds: [][2]int{{1, 2}, {0, 2}}}, x)
	assert.Equal(t, []float64{3, 4}, out.Data())
	assert.Equal(t, []float64{0, 0, 1, 1}, grads[0].Data())

	// Padding: the gradient of the border is dropped.
	out, grads = run(Slice{}, ops.Attrs{Bounds: [][2]int{{-1, 3}, {0, 2}}}, x)
	assert.Equal(t, ndarray.Shape{4, 2}, out.Shape())
	assert.Equal(t, ndarray.Shape{2, 2}, grads[0].Shape())
	assert.Equal(t, []float64{1, 1, 1, 1}, grads[0].Data())
}

func TestConv2D_Backward(t *testing.T) {
	input := array(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, 1, 3, 3)
	kernel := array(t, []float64{1, 0, 0, 1}, 1, 1, 2, 2)

	out, grads := run(Conv2D{}, ops.Attrs{}, input, kernel)
	assert.Equal(t, []float64{6, 8, 12, 14}, out.Data())
	assert.Equal(t, input.Shape(), grads[0].Shape())
	assert.Equal(t, []float64{12, 16, 24, 28}, grads[1].Data())

	out, _ = run(Conv2D{}, ops.Attrs{Stride: 2}, input, kernel)
	assert.Equal(t, []float64{6}, out.Data())
}

func TestArityMismatchPanics(t *testing.T) {
	x := array(t, []float64{1}, 1)
	assert.Panics(t, func() { run(Add{}, ops.Attrs{}, x) })
}
