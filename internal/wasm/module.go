package wasm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/woxQAQ/gospice/api/cspice"
	"go.uber.org/zap"
)

// wasmHeader is the magic number and version 1 every binary starts with.
var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

var errNotWasm = errors.New("not a WebAssembly 1.0 binary")

// Source supplies the bytes of a CSPICE build.
type Source interface {
	// Key identifies the build in the compiled-module cache.
	Key() string
	Open() ([]byte, error)
}

// FileSource is a build on disk, usually cspice.wasm. Relative and absolute
// spellings of the same path share a cache entry.
type FileSource string

func (p FileSource) Key() string {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return string(p)
	}
	return abs
}

func (p FileSource) Open() ([]byte, error) {
	return os.ReadFile(string(p))
}

// BytesSource is a build embedded in the binary or assembled in tests.
type BytesSource struct {
	Name string
	Data []byte
}

func (b BytesSource) Key() string           { return b.Name }
func (b BytesSource) Open() ([]byte, error) { return b.Data, nil }

// ModuleLoader compiles CSPICE builds into a runtime's module cache.
type ModuleLoader struct {
	runtime *Runtime
	logger  *zap.Logger
}

// NewModuleLoader creates a loader for runtime.
func NewModuleLoader(runtime *Runtime, logger *zap.Logger) *ModuleLoader {
	return &ModuleLoader{
		runtime: runtime,
		logger:  logger.With(zap.String("component", "wasm-loader")),
	}
}

// Load returns the compiled build for src, compiling it on first use.
func (l *ModuleLoader) Load(ctx context.Context, src Source) (*CompiledModule, error) {
	key := src.Key()
	if cached, ok := l.runtime.GetCompiledModule(key); ok {
		l.logger.Debug("Module cache hit", zap.String("module", key))
		return cached, nil
	}

	data, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSPICE build %s: %w", key, err)
	}
	if !bytes.HasPrefix(data, wasmHeader) {
		return nil, &CompilationError{ModuleName: key, Err: errNotWasm}
	}

	l.logger.Info("Compiling CSPICE module",
		zap.String("module", key),
		zap.Int("size_bytes", len(data)),
	)
	start := time.Now()

	// The full toolkit takes seconds to compile; with a CacheDir later
	// processes reuse the machine code.
	compiled, err := l.runtime.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, &CompilationError{ModuleName: key, Err: err}
	}

	mod := &CompiledModule{
		Module:     compiled,
		Name:       key,
		Source:     fmt.Sprintf("%T", src),
		SizeBytes:  int64(len(data)),
		CompiledAt: time.Now().Unix(),
	}
	l.runtime.StoreCompiledModule(mod)

	l.logger.Info("Module compiled",
		zap.String("module", key),
		zap.Duration("duration", time.Since(start)),
		zap.Int("exported_functions", len(compiled.ExportedFunctions())),
	)
	return mod, nil
}

// LoadFile compiles the build at path.
func (l *ModuleLoader) LoadFile(ctx context.Context, path string) (*CompiledModule, error) {
	return l.Load(ctx, FileSource(path))
}

// LoadBytes compiles data under name.
func (l *ModuleLoader) LoadBytes(ctx context.Context, name string, data []byte) (*CompiledModule, error) {
	return l.Load(ctx, BytesSource{Name: name, Data: data})
}

// MissingExports lists the names in required that mod does not export.
// The linear memory is checked under cspice.MemoryExport.
func MissingExports(mod *CompiledModule, required []string) []string {
	funcs := mod.Module.ExportedFunctions()
	var missing []string
	if _, ok := mod.Module.ExportedMemories()[cspice.MemoryExport]; !ok {
		missing = append(missing, cspice.MemoryExport)
	}
	for _, name := range required {
		if _, ok := funcs[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
