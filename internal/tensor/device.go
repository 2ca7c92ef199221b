package tensor

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/hazel-ml/hazel/internal/backend/gpu"
	"github.com/hazel-ml/hazel/internal/ops"
)

// Device identifies the executor owning a tensor's data.
type Device int

// Supported devices.
const (
	CPU Device = iota
	GPU
)

// Devices lists every device, in declaration order.
var Devices = []Device{CPU, GPU}

// String returns the lower-case device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "cpu"
	case GPU:
		return gpu.DeviceName
	default:
		return "unknown"
	}
}

// ParseDevice parses a device name, case-insensitively.
func ParseDevice(name string) (Device, error) {
	for _, d := range Devices {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return CPU, errors.Errorf("unknown device %q, expected cpu or gpu", name)
}

// executor returns the record bound onto each op call made on d.
func (d Device) executor() (ops.Executor, error) {
	switch d {
	case CPU:
		return ops.Executor{Device: d.String()}, nil
	case GPU:
		exec, err := gpu.Default()
		if err != nil {
			return ops.Executor{}, errors.WithMessagef(ErrUnsupportedOp, "%v", err)
		}
		return exec.Bind(), nil
	default:
		return ops.Executor{}, errors.Wrapf(ErrUnsupportedOp, "device %d", int(d))
	}
}
