// Copyright 2025 Hazel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/hazel-ml/hazel/internal/ndarray"
	"github.com/hazel-ml/hazel/internal/ops"
	"github.com/hazel-ml/hazel/internal/tensor"
)

// Type aliases for public API

// Tensor is a value and a node of the op graph.
type Tensor = tensor.Tensor

// Context records the op, device and parents that produced a tensor.
type Context = tensor.Context

// Option configures New.
type Option = tensor.Option

// Sel selects a window of one axis for Tensor.Index.
type Sel = tensor.Sel

// Config holds the process-wide engine settings.
type Config = tensor.Config

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = ndarray.Shape

// DataType is the element type of a tensor.
type DataType = ndarray.DataType

// Data type constants.
const (
	Float16 DataType = ndarray.Float16
	Float32 DataType = ndarray.Float32
	Float64 DataType = ndarray.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
	GPU Device = tensor.GPU
)

// Devices lists every device hazel knows about.
func Devices() []Device { return tensor.Devices }

// ParseDevice parses "cpu" or "gpu", case-insensitively.
func ParseDevice(name string) (Device, error) { return tensor.ParseDevice(name) }

// DefaultDevice returns the device new tensors are placed on.
func DefaultDevice() Device { return tensor.DefaultDevice() }

// Errors returned by Dispatch, Index and Backward.
var (
	ErrInvalidData   = tensor.ErrInvalidData
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrUnsupportedOp = tensor.ErrUnsupportedOp
	ErrNoGradient    = tensor.ErrNoGradient
	ErrInvalidSlice  = tensor.ErrInvalidSlice
)

// New creates a leaf tensor from a (nested) slice of numbers.
//
// Example:
//
//	x, err := tensor.New([][]float32{{1, 2}, {3, 4}}, tensor.WithDevice(tensor.CPU))
func New(data any, opts ...Option) (*Tensor, error) {
	return tensor.New(data, opts...)
}

// WithDevice places the tensor on device.
func WithDevice(device Device) Option { return tensor.WithDevice(device) }

// WithRequiresGrad sets whether the tensor accumulates a gradient.
func WithRequiresGrad(requiresGrad bool) Option { return tensor.WithRequiresGrad(requiresGrad) }

// WithDType converts the data to dtype.
func WithDType(dtype DataType) Option { return tensor.WithDType(dtype) }

// Creation functions

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, opts ...Option) *Tensor { return tensor.Zeros(shape, opts...) }

// Ones creates a tensor filled with ones.
func Ones(shape Shape, opts ...Option) *Tensor { return tensor.Ones(shape, opts...) }

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, opts ...Option) *Tensor {
	return tensor.Full(shape, value, opts...)
}

// Randn samples the standard normal distribution N(0, 1).
func Randn(shape Shape, opts ...Option) *Tensor { return tensor.Randn(shape, opts...) }

// Uniform samples U(-1, 1) scaled by 1/sqrt(number of elements).
func Uniform(shape Shape, opts ...Option) *Tensor { return tensor.Uniform(shape, opts...) }

// Eye creates an n x n identity matrix.
func Eye(n int, opts ...Option) *Tensor { return tensor.Eye(n, opts...) }

// Selectors for Tensor.Index

// All selects a full axis.
func All() Sel { return tensor.All() }

// Range selects [start, stop) of an axis.
func Range(start, stop int) Sel { return tensor.Range(start, stop) }

// From selects an axis from start to its end.
func From(start int) Sel { return tensor.From(start) }

// To selects [0, stop) of an axis; a negative stop counts from the end.
func To(stop int) Sel { return tensor.To(stop) }

// At selects position i of an axis and drops the axis.
func At(i int) Sel { return tensor.At(i) }

// Graph

// Dispatch calls a registered op by name. See Register.
//
// Example:
//
//	y, err := tensor.Dispatch("sum", ops.Attrs{Axes: []int{0}}, x)
func Dispatch(name string, attrs ops.Attrs, operands ...any) (*Tensor, error) {
	return tensor.Dispatch(name, attrs, operands...)
}

// Deepwalk returns the non-leaf nodes of t's graph in topological order.
func Deepwalk(t *Tensor) []*Tensor { return tensor.Deepwalk(t) }

// Registry

// Register installs an op under (device, name).
func Register(name string, fn ops.Function, device Device) { tensor.Register(name, fn, device) }

// BulkRegister registers every exported op type of namespace under its
// lower-cased type name.
func BulkRegister(device Device, namespace ...ops.Function) {
	tensor.BulkRegister(device, namespace...)
}

// Registered lists the op names registered for device.
func Registered(device Device) []string { return tensor.Registered(device) }

// Configuration

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config { return tensor.DefaultConfig() }

// ConfigFromEnv reads GPU, HAZEL_DEVICE, HAZEL_TRAINING and HAZEL_SEED.
func ConfigFromEnv() (Config, error) { return tensor.ConfigFromEnv() }

// Configure applies cfg process-wide.
func Configure(cfg Config) { tensor.Configure(cfg) }

// SetTraining turns training mode (dropout) on or off.
func SetTraining(on bool) { tensor.SetTraining(on) }

// Training reports whether training mode is on.
func Training() bool { return tensor.Training() }
