// Copyright 2025 Hazel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gpu reports on the optional GPU backend.
//
// The backend is probed once, at startup, through WebGPU bindings
// (github.com/go-webgpu/webgpu, zero-CGO, Windows builds). When it is
// available, every built-in op is also registered for tensor.GPU; when it
// is not, ops on GPU tensors fail with tensor.ErrUnsupportedOp.
//
// Example:
//
//	if gpu.Available() {
//	    x = x.GPU()
//	}
package gpu

import (
	"github.com/hazel-ml/hazel/internal/backend/gpu"
)

// ErrUnavailable is returned by Probe when no adapter could be opened.
var ErrUnavailable = gpu.ErrUnavailable

// Available reports whether the GPU backend could be opened.
func Available() bool {
	return gpu.Available()
}

// Adapter describes the adapter in use, or returns the reason the backend
// is unavailable.
func Adapter() (string, error) {
	exec, err := gpu.Default()
	if err != nil {
		return "", err
	}
	return exec.Adapter(), nil
}
