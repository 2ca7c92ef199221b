package ndarray

import (
	"math"

	"github.com/x448/float16"
)

// DataType represents runtime type information for arrays.
//
// Values are always held as float64 on the host; the data type decides the
// precision they are rounded to after every kernel.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Float16
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	case Float16:
		return 2
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Float16:
		return "float16"
	default:
		return "unknown"
	}
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt == Float32 || dt == Float64 || dt == Float16
}

// round rounds v to the precision of the data type.
func (dt DataType) round(v float64) float64 {
	switch dt {
	case Float32:
		return float64(float32(v))
	case Float16:
		if math.IsNaN(v) {
			return v
		}
		return float64(float16.Fromfloat32(float32(v)).Float32())
	default:
		return v
	}
}
