// Package gpu is the capability-gated GPU executor.
//
// The device is probed once, on first use. When no adapter is available the
// package reports Available() == false and the engine simply registers no
// GPU ops; nothing here is a hard link-time requirement.
package gpu

import (
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/hazel-ml/hazel/internal/ops"
)

// DeviceName is the executor name recorded on op calls bound to the GPU.
const DeviceName = "gpu"

// ErrUnavailable is returned when no GPU adapter could be opened.
var ErrUnavailable = errors.New("gpu: no adapter available")

// Executor owns an opened GPU device and its command queue.
type Executor struct {
	adapter string
	queue   ops.Queue
	release func()
}

// Adapter returns a human-readable description of the adapter.
func (e *Executor) Adapter() string {
	return e.adapter
}

// Queue returns the opaque command queue handle handed to op calls.
func (e *Executor) Queue() ops.Queue {
	return e.queue
}

// Bind returns the executor record attached to an op call.
func (e *Executor) Bind() ops.Executor {
	return ops.Executor{Device: DeviceName, Queue: e.queue}
}

// Close releases the device. The executor must not be used afterwards.
func (e *Executor) Close() {
	if e.release != nil {
		e.release()
		e.release = nil
	}
}

var (
	probeOnce sync.Once
	probed    *Executor
	probeErr  error
)

// Default returns the process-wide executor, probing the device on the
// first call.
func Default() (*Executor, error) {
	probeOnce.Do(func() {
		probed, probeErr = Probe()
		if probeErr != nil {
			klog.V(1).Infof("GPU backend disabled: %v", probeErr)
			return
		}
		klog.V(1).Infof("GPU backend enabled: %s", probed.Adapter())
	})
	return probed, probeErr
}

// Available reports whether the GPU executor could be opened.
func Available() bool {
	_, err := Default()
	return err == nil
}

// Probe opens a fresh executor on the default adapter.
func Probe() (exec *Executor, err error) {
	defer func() {
		// The native library panics when it cannot be loaded.
		if r := recover(); r != nil {
			exec = nil
			err = errors.Wrapf(ErrUnavailable, "native library: %v", r)
		}
	}()
	return open()
}
