package tensor

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/hazel-ml/hazel/internal/ndarray"
)

const acceptedKinds = "*ndarray.Array or a (nested) slice of float32, float64, int, int32 or int64"

// toArray converts the data accepted by New into an array.
func toArray(data any, dtype ndarray.DataType, dtypeSet bool) (*ndarray.Array, error) {
	if arr, ok := data.(*ndarray.Array); ok {
		if arr == nil {
			return nil, errors.Wrapf(ErrInvalidData, "nil array: data must be %s", acceptedKinds)
		}
		if dtypeSet {
			return arr.AsType(dtype), nil
		}
		return arr.Clone(), nil
	}

	v := reflect.ValueOf(data)
	if !v.IsValid() || v.Kind() != reflect.Slice {
		return nil, errors.Wrapf(ErrInvalidData, "got %T: data must be %s", data, acceptedKinds)
	}
	shape, elem, err := inferShape(v)
	if err != nil {
		return nil, err
	}
	if !dtypeSet {
		dtype = ndarray.Float32
		if elem == reflect.Float64 {
			dtype = ndarray.Float64
		}
	}

	flat, err := flatten(v, shape, make([]float64, 0, shape.NumElements()))
	if err != nil {
		return nil, err
	}
	arr, err := ndarray.FromSlice(flat, shape, dtype)
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidData, err.Error())
	}
	return arr, nil
}

// inferShape walks the first element of every nesting level.
func inferShape(v reflect.Value) (ndarray.Shape, reflect.Kind, error) {
	var shape ndarray.Shape
	for {
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			shape = append(shape, v.Len())
			if v.Len() == 0 {
				elem := v.Type().Elem()
				for elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
					elem = elem.Elem()
				}
				if !numericKind(elem.Kind()) {
					return nil, 0, errors.Wrapf(ErrInvalidData, "element type %s: data must be %s", elem, acceptedKinds)
				}
				return shape, elem.Kind(), nil
			}
			v = v.Index(0)
		case reflect.Interface:
			v = v.Elem()
		default:
			if !numericKind(v.Kind()) {
				return nil, 0, errors.Wrapf(ErrInvalidData, "element type %s: data must be %s", v.Type(), acceptedKinds)
			}
			return shape, v.Kind(), nil
		}
	}
}

// flatten appends the leaves of v in row-major order, checking that every
// nesting level matches shape.
func flatten(v reflect.Value, shape ndarray.Shape, out []float64) ([]float64, error) {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if len(shape) == 0 {
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			return append(out, v.Float()), nil
		case reflect.Int, reflect.Int32, reflect.Int64:
			return append(out, float64(v.Int())), nil
		}
		return nil, errors.Wrapf(ErrInvalidData, "ragged slice: expected a number, got %s", v.Kind())
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, errors.Wrapf(ErrInvalidData, "ragged slice: expected %d values, got a %s", shape[0], v.Kind())
	}
	if v.Len() != shape[0] {
		return nil, errors.Wrapf(ErrInvalidData, "ragged slice: expected %d values, got %d", shape[0], v.Len())
	}
	var err error
	for i := 0; i < v.Len(); i++ {
		if out, err = flatten(v.Index(i), shape[1:], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
