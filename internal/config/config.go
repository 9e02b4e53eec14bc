// Package config loads the settings shared by the spice command and the
// backends: which backend to use, where kernels live and how to log.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Backend names.
const (
	BackendWasm   = "wasm"
	BackendNative = "native"
)

// EnvPrefix prefixes environment overrides, e.g. SPICE_LOG_LEVEL or
// SPICE_WASM_MODULE_PATH.
const EnvPrefix = "SPICE"

type Config struct {
	Backend     string       `mapstructure:"backend"`
	LogLevel    string       `mapstructure:"log_level"`
	Kernels     []string     `mapstructure:"kernels"`
	KernelPaths []string     `mapstructure:"kernel_paths"`
	TimeFormat  string       `mapstructure:"time_format"`
	Wasm        WasmConfig   `mapstructure:"wasm"`
	Native      NativeConfig `mapstructure:"native"`
}

// WasmConfig holds Wasm runtime configuration.
type WasmConfig struct {
	// CSPICE compiled to wasm32-wasi.
	ModulePath string `mapstructure:"module_path"`
	// Directories mounted into the guest for kernel files.
	KernelDirs []string `mapstructure:"kernel_dirs"`
	// Memory limit per module (in pages, 64KB each).
	MemoryPages uint32 `mapstructure:"memory_pages"`
	// Keep DWARF data for guest stack traces.
	Debug bool `mapstructure:"debug"`
	// Compilation cache directory.
	CacheDir string `mapstructure:"cache_dir"`
	// Maximum concurrent instances.
	MaxInstances int `mapstructure:"max_instances"`
}

// NativeConfig holds shared-library configuration.
type NativeConfig struct {
	// Path to libcspice.so or libcspice.dylib.
	LibraryPath string `mapstructure:"library_path"`
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"backend":     "backend",
	"log-level":   "log_level",
	"kernel":      "kernels",
	"kernel-path": "kernel_paths",
	"time-format": "time_format",
	"wasm-module": "wasm.module_path",
	"library":     "native.library_path",
}

// Load reads configuration from defaults, the optional file at configPath,
// SPICE_* environment variables and flags, later sources winning. flags may
// be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("backend", BackendWasm)
	v.SetDefault("log_level", "info")
	v.SetDefault("kernels", []string{})
	v.SetDefault("kernel_paths", []string{"./kernels"})
	v.SetDefault("time_format", "YYYY-MON-DD HR:MN:SC ::RND")

	// Wasm defaults
	v.SetDefault("wasm.module_path", "cspice.wasm")
	v.SetDefault("wasm.kernel_dirs", []string{"."})
	v.SetDefault("wasm.memory_pages", 1024) // 64MB
	v.SetDefault("wasm.debug", false)
	v.SetDefault("wasm.cache_dir", "")
	v.SetDefault("wasm.max_instances", 4)

	v.SetDefault("native.library_path", "libcspice.so")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendWasm, BackendNative:
	default:
		return fmt.Errorf("config: unknown backend %q (must be %s or %s)", c.Backend, BackendWasm, BackendNative)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Wasm.MemoryPages == 0 || c.Wasm.MemoryPages > 65536 {
		return fmt.Errorf("config: wasm.memory_pages %d out of range (1-65536)", c.Wasm.MemoryPages)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}
