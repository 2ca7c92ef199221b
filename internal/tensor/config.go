package tensor

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/hazel-ml/hazel/internal/backend/gpu"
	"github.com/hazel-ml/hazel/internal/ndarray"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvGPU      = "GPU"
	EnvDevice   = "HAZEL_DEVICE"
	EnvTraining = "HAZEL_TRAINING"
	EnvSeed     = "HAZEL_SEED"
)

// Config holds the process-wide engine settings.
type Config struct {
	// DefaultDevice is used by New and the creation functions when no
	// WithDevice option is given.
	DefaultDevice Device

	// Training enables dropout.
	Training bool

	// Seed seeds the random source of Randn, Uniform and Dropout.
	Seed uint64
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DefaultDevice: CPU,
		Training:      true,
		Seed:          ndarray.DefaultSeed,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the environment:
//
//	GPU=1             selects the GPU as default device
//	HAZEL_DEVICE=gpu  same, by name (takes precedence over GPU)
//	HAZEL_TRAINING=0  disables training mode
//	HAZEL_SEED=42     seeds the random source
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v, ok := os.LookupEnv(EnvGPU); ok && v == "1" {
		cfg.DefaultDevice = GPU
	}
	if v, ok := os.LookupEnv(EnvDevice); ok && v != "" {
		d, err := ParseDevice(v)
		if err != nil {
			return cfg, errors.WithMessage(err, EnvDevice)
		}
		cfg.DefaultDevice = d
	}
	if v, ok := os.LookupEnv(EnvTraining); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "%s=%q", EnvTraining, v)
		}
		cfg.Training = b
	}
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return cfg, errors.Wrapf(err, "%s=%q", EnvSeed, v)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

var (
	defaultDevice = CPU
	training      = true
)

// Configure applies cfg process-wide. A GPU default device falls back to
// the CPU when no GPU executor is available.
//
// It is not safe to call concurrently with tensor operations.
func Configure(cfg Config) {
	if cfg.DefaultDevice == GPU && !gpu.Available() {
		klog.Warningf("default device gpu requested but no GPU backend is available, using cpu")
		cfg.DefaultDevice = CPU
	}
	defaultDevice = cfg.DefaultDevice
	training = cfg.Training
	ndarray.Seed(cfg.Seed)
	klog.V(1).Infof("hazel configured: device=%s training=%t seed=%#x", defaultDevice, training, cfg.Seed)
}

// DefaultDevice returns the device new tensors are placed on.
func DefaultDevice() Device {
	return defaultDevice
}

// SetTraining sets the process-wide training flag. Toggling it while
// forward passes run on other goroutines is undefined.
func SetTraining(on bool) {
	training = on
}

// Training reports whether training mode is on.
func Training() bool {
	return training
}

func init() {
	cfg, err := ConfigFromEnv()
	if err != nil {
		klog.Warningf("ignoring invalid hazel environment: %v", err)
		cfg = DefaultConfig()
	}
	Configure(cfg)
}
