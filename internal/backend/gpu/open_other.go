//go:build !windows

package gpu

import "github.com/pkg/errors"

func open() (*Executor, error) {
	return nil, errors.Wrap(ErrUnavailable, "webgpu bindings are only built on windows")
}
