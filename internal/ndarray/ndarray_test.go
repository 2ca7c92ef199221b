package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustArray(t *testing.T, data []float64, shape ...int) *Array {
	t.Helper()
	a, err := FromSlice(data, Shape(shape), Float64)
	require.NoError(t, err)
	return a
}

func TestFromSlice(t *testing.T) {
	a, err := FromSlice([]int{1, 2, 3, 4, 5, 6}, Shape{2, 3}, Float32)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, Float32, a.DType())
	assert.Equal(t, 24, a.ByteSize())
	assert.Equal(t, 6.0, a.At(1, 2))

	_, err = FromSlice([]float64{1, 2, 3}, Shape{2, 2}, Float64)
	assert.Error(t, err)

	_, err = New(Shape{2, -1}, Float32)
	assert.Error(t, err)
}

func TestDTypeRounding(t *testing.T) {
	a, err := FromSlice([]float64{0.1}, Shape{1}, Float32)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.1)), a.Item())

	h, err := FromSlice([]float64{1.0001}, Shape{1}, Float16)
	require.NoError(t, err)
	assert.Equal(t, 1.0, h.Item(), "float16 cannot represent 1.0001")
	assert.Equal(t, 2, h.ByteSize())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		wantErr    bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{1}, Shape{2, 2}, Shape{2, 2}, false},
		{Shape{3, 4}, Shape{3, 5}, nil, true},
	}
	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestBinaryBroadcast(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	row := mustArray(t, []float64{10, 20, 30}, 3)
	col := mustArray(t, []float64{100, 200}, 2, 1)

	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, Add(a, row).Data())
	assert.Equal(t, []float64{101, 102, 103, 204, 205, 206}, Add(a, col).Data())
	assert.Equal(t, []float64{-9, -18, -27, -6, -15, -24}, Sub(a, row).Data())
	assert.Equal(t, []float64{2, 4, 6, 8, 10, 12}, Mul(a, mustArray(t, []float64{2}, 1)).Data())
	assert.Equal(t, []float64{1, 4, 9, 16, 25, 36}, Pow(a, mustArray(t, []float64{2}, 1)).Data())

	assert.Panics(t, func() { Add(a, mustArray(t, []float64{1, 2}, 2)) })
}

func TestUnary(t *testing.T) {
	a := mustArray(t, []float64{-1, 0, 2}, 3)
	assert.Equal(t, []float64{0, 0, 2}, ReLU(a).Data())
	assert.Equal(t, []float64{0, 0, 1}, Positive(a).Data())
	assert.Equal(t, []float64{1, 0, -2}, Neg(a).Data())
	assert.InDeltaSlice(t, []float64{math.Exp(-1), 1, math.Exp(2)}, Exp(a).Data(), 1e-12)
}

func TestMulNoNaN(t *testing.T) {
	g := mustArray(t, []float64{0, -0.0, 2}, 3)
	inf := mustArray(t, []float64{math.Inf(1)}, 1)
	assert.Equal(t, []float64{0, 0, math.Inf(1)}, MulNoNaN(g, inf).Data())
	assert.True(t, math.IsNaN(Mul(g, inf).Data()[0]))
}

func TestReductions(t *testing.T) {
	a := mustArray(t, []float64{1, 5, 3, 4, 2, 6}, 2, 3)

	total := Sum(a, nil, false)
	assert.Equal(t, Shape{1}, total.Shape())
	assert.Equal(t, 21.0, total.Item())

	rows := Sum(a, []int{1}, false)
	assert.Equal(t, Shape{2}, rows.Shape())
	assert.Equal(t, []float64{9, 12}, rows.Data())

	cols := Sum(a, []int{0}, true)
	assert.Equal(t, Shape{1, 3}, cols.Shape())
	assert.Equal(t, []float64{5, 7, 9}, cols.Data())

	mx := Max(a, []int{-1}, false)
	assert.Equal(t, []float64{5, 6}, mx.Data())
	assert.Equal(t, 6.0, Max(a, nil, false).Item())

	assert.Equal(t, Shape{1, 1}, Sum(a, nil, true).Shape())
	assert.Panics(t, func() { Sum(a, []int{2}, false) })
}

func TestReduceTo(t *testing.T) {
	g := Ones(Shape{3, 4}, Float64)
	assert.Equal(t, []float64{4, 4, 4}, ReduceTo(g, Shape{3, 1}).Data())
	assert.Equal(t, []float64{3, 3, 3, 3}, ReduceTo(g, Shape{4}).Data())
	r := ReduceTo(g, Shape{1})
	assert.Equal(t, Shape{1}, r.Shape())
	assert.Equal(t, 12.0, r.Item())
}

func TestReshapeTranspose(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	r := Reshape(a, Shape{3, -1})
	assert.Equal(t, Shape{3, 2}, r.Shape())
	assert.Panics(t, func() { Reshape(a, Shape{4, 2}) })

	tr := Transpose(a)
	assert.Equal(t, Shape{3, 2}, tr.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.Data())

	perm := []int{1, 0}
	assert.Equal(t, []int{1, 0}, InversePermutation(perm))
}

func TestSlicePadding(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4}, 2, 2)

	inner := Slice(a, [][2]int{{1, 2}, {0, 2}})
	assert.Equal(t, Shape{1, 2}, inner.Shape())
	assert.Equal(t, []float64{3, 4}, inner.Data())

	padded := Slice(a, [][2]int{{-1, 3}, {0, 2}})
	assert.Equal(t, Shape{4, 2}, padded.Shape())
	assert.Equal(t, []float64{0, 0, 1, 2, 3, 4, 0, 0}, padded.Data())

	// Slicing the padded window back recovers the original.
	back := Slice(padded, [][2]int{{1, 3}, {0, 2}})
	assert.Equal(t, a.Data(), back.Data())
}

func TestMatMul(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := mustArray(t, []float64{7, 8, 9, 10, 11, 12}, 3, 2)
	c := MatMul(a, b)
	assert.Equal(t, Shape{2, 2}, c.Shape())
	assert.Equal(t, []float64{58, 64, 139, 154}, c.Data())

	batched := mustArray(t, []float64{1, 2, 3, 4, 5, 6, 1, 2, 3, 4, 5, 6}, 2, 2, 3)
	bc := MatMul(batched, b)
	assert.Equal(t, Shape{2, 2, 2}, bc.Shape())
	assert.Equal(t, []float64{58, 64, 139, 154, 58, 64, 139, 154}, bc.Data())

	// Enough batch items to be split across workers.
	many := make([]float64, 0, 64*6)
	for i := 0; i < 64; i++ {
		many = append(many, 1, 2, 3, 4, 5, 6)
	}
	mc := MatMul(mustArray(t, many, 64, 2, 3), b)
	assert.Equal(t, Shape{64, 2, 2}, mc.Shape())
	for i := 0; i < 64; i++ {
		assert.Equal(t, []float64{58, 64, 139, 154}, mc.Data()[i*4:(i+1)*4])
	}

	assert.Panics(t, func() { MatMul(a, a) })
	assert.Equal(t, Shape{3, 2}, SwapLastAxes(a).Shape())
}

func TestConv2D(t *testing.T) {
	input := mustArray(t, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, 1, 1, 3, 3)
	kernel := mustArray(t, []float64{1, 0, 0, 1}, 1, 1, 2, 2)

	out := Conv2D(input, kernel, 1)
	assert.Equal(t, Shape{1, 1, 2, 2}, out.Shape())
	assert.Equal(t, []float64{6, 8, 12, 14}, out.Data())

	dIn, dK := Conv2DBackward(input, kernel, Ones(out.Shape(), Float64), 1)
	assert.Equal(t, []float64{
		1, 1, 0,
		1, 2, 1,
		0, 1, 1,
	}, dIn.Data())
	assert.Equal(t, []float64{12, 16, 24, 28}, dK.Data())
}

func TestRandom(t *testing.T) {
	Seed(42)
	a := Randn(Shape{1000}, Float64)
	Seed(42)
	b := Randn(Shape{1000}, Float64)
	assert.Equal(t, a.Data(), b.Data(), "same seed gives same samples")

	u := Uniform(Shape{500}, -1, 1, Float32)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}

	mask := Binomial(Shape{200}, 1, 0.5, Float32)
	for _, v := range mask.Data() {
		assert.True(t, v == 0 || v == 1)
	}
}

func TestCreation(t *testing.T) {
	assert.Equal(t, []float64{1, 0, 0, 1}, Eye(2, Float32).Data())
	assert.Equal(t, []float64{3, 3}, Full(Shape{2}, 3, Float64).Data())
	assert.Equal(t, "[[1 0] [0 1]]", Eye(2, Float32).String())
	assert.Contains(t, Eye(2, Float32).Describe(), "float32[2 2]")
}
