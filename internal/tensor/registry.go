package tensor

import (
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/hazel-ml/hazel/internal/backend/gpu"
	"github.com/hazel-ml/hazel/internal/ops"
	"github.com/hazel-ml/hazel/internal/ops/cpu"
)

// registry maps (device, lower-case op name) to the op implementation.
// It is written during package initialization and read-only afterwards,
// so it carries no lock.
var registry = map[Device]map[string]ops.Function{}

// Register installs fn under (device, name). Names are case-insensitive.
// Registering an existing key replaces the previous op.
//
// Register is meant for package initialization; calling it while tensor
// operations run is not safe.
func Register(name string, fn ops.Function, device Device) {
	name = strings.ToLower(name)
	table, found := registry[device]
	if !found {
		table = map[string]ops.Function{}
		registry[device] = table
	}
	if _, found := table[name]; found {
		klog.V(1).Infof("op %q on %s re-registered with %T", name, device, fn)
	}
	table[name] = fn
	klog.V(2).Infof("registered op %q on %s (%T)", name, device, fn)
}

// BulkRegister registers every op of a namespace under its lower-cased
// type name. Ops whose type name is unexported (or starts with an
// underscore) are skipped.
func BulkRegister(device Device, namespace ...ops.Function) {
	for _, fn := range namespace {
		if fn == nil {
			continue
		}
		name := opTypeName(fn)
		if !eligible(name) {
			klog.V(2).Infof("skipping op type %q: not exported", name)
			continue
		}
		Register(name, fn, device)
	}
}

func opTypeName(fn ops.Function) string {
	t := reflect.TypeOf(fn)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func eligible(name string) bool {
	if name == "" {
		return false
	}
	first := []rune(name)[0]
	return first != '_' && unicode.IsUpper(first)
}

// lookup returns the op registered under (device, name).
func lookup(device Device, name string) (ops.Function, error) {
	fn, found := registry[device][strings.ToLower(name)]
	if !found {
		return nil, errors.Wrapf(ErrUnsupportedOp, "%q on %s", name, device)
	}
	return fn, nil
}

// Registered returns the sorted op names registered for device.
func Registered(device Device) []string {
	names := make([]string, 0, len(registry[device]))
	for name := range registry[device] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	BulkRegister(CPU, cpu.Namespace()...)
	// GPU calls run the host kernels with the device queue bound to them.
	if gpu.Available() {
		BulkRegister(GPU, cpu.Namespace()...)
	}
	klog.V(1).Infof("op registry: %d cpu ops, %d gpu ops", len(registry[CPU]), len(registry[GPU]))
}
