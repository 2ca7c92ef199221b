//go:build windows

package gpu

import (
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
)

func open() (*Executor, error) {
	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		instance.Release()
		return nil, errors.Wrapf(ErrUnavailable, "request adapter: %v", err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrapf(ErrUnavailable, "request device: %v", err)
	}
	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(ErrUnavailable, "device has no queue")
	}

	return &Executor{
		adapter: "webgpu default adapter",
		queue:   queue,
		release: func() {
			queue.Release()
			device.Release()
			adapter.Release()
			instance.Release()
		},
	}, nil
}
