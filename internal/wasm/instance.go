package wasm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/woxQAQ/gospice/api/cspice"
	"github.com/woxQAQ/gospice/internal/ffi"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// backendName identifies this backend in ffi errors.
const backendName = "wasm"

// InstanceManager creates and manages module instances.
type InstanceManager struct {
	runtime *Runtime
	logger  *zap.Logger
}

// NewInstanceManager creates a new instance manager.
func NewInstanceManager(runtime *Runtime, logger *zap.Logger) *InstanceManager {
	return &InstanceManager{
		runtime: runtime,
		logger:  logger.With(zap.String("component", "wasm-instance")),
	}
}

// InstanceConfig holds configuration for creating instances.
type InstanceConfig struct {
	// Module name to instantiate.
	ModuleName string

	// Instance ID (if empty, one is generated).
	InstanceID string

	// KernelDirs are mounted read-only at their absolute host path, so
	// kernel file names need no translation inside the guest.
	KernelDirs []string

	// RequiredExports overrides cspice.RequiredExports.
	RequiredExports []string
}

// Instance is one instantiated CSPICE module. It implements ffi.Backend.
type Instance struct {
	// wazero module instance.
	module api.Module
	mem    *Memory
	malloc api.Function
	free   api.Function
	output *guestOutput

	manager *InstanceManager
	logger  *zap.Logger
	// ownsRuntime is set by OpenFile; closing the instance closes the runtime.
	ownsRuntime bool

	// Instance metadata.
	ID        string
	Name      string
	CreatedAt int64

	// Exported functions resolved so far.
	exports map[string]api.Function
}

var _ ffi.Backend = (*Instance)(nil)

// Instantiate creates a new instance from a compiled module.
func (m *InstanceManager) Instantiate(ctx context.Context, config *InstanceConfig) (*Instance, error) {
	if m.runtime.IsClosed() {
		return nil, errors.New("wasm runtime is closed")
	}
	compiled, ok := m.runtime.GetCompiledModule(config.ModuleName)
	if !ok {
		return nil, &ModuleNotFoundError{ModuleName: config.ModuleName}
	}

	if limit := m.runtime.config.MaxInstances; limit > 0 && m.runtime.InstanceCount() >= limit {
		return nil, &InstanceLimitError{Limit: limit}
	}

	required := config.RequiredExports
	if required == nil {
		required = cspice.RequiredExports()
	}
	if missing := MissingExports(compiled, required); len(missing) > 0 {
		return nil, &MissingExportsError{ModuleName: config.ModuleName, Missing: missing}
	}

	instanceID := config.InstanceID
	if instanceID == "" {
		instanceID = generateInstanceID()
	}

	m.logger.Info("Instantiating CSPICE module",
		zap.String("module", config.ModuleName),
		zap.String("instance_id", instanceID),
		zap.Strings("kernel_dirs", config.KernelDirs),
	)

	fsConfig := wazero.NewFSConfig()
	for _, dir := range config.KernelDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve kernel directory %s: %w", dir, err)
		}
		fsConfig = fsConfig.WithReadOnlyDirMount(abs, filepath.ToSlash(abs))
	}

	logger := m.logger.With(zap.String("instance_id", instanceID))
	output := newGuestOutput(logger)

	// WASI reactors export _initialize instead of _start; a missing start
	// function is skipped.
	moduleConfig := wazero.NewModuleConfig().
		WithName(instanceID).
		WithFSConfig(fsConfig).
		WithStdout(output.stdout).
		WithStderr(output.stderr).
		WithStartFunctions(cspice.InitializeExport)

	module, err := m.runtime.runtime.InstantiateModule(ctx, compiled.Module, moduleConfig)
	if err != nil {
		return nil, &InstantiationError{
			ModuleName: config.ModuleName,
			InstanceID: instanceID,
			Err:        multierr.Append(err, output.Close()),
		}
	}

	instance := &Instance{
		module:    module,
		mem:       NewMemory(module),
		malloc:    module.ExportedFunction(cspice.MallocExport),
		free:      module.ExportedFunction(cspice.FreeExport),
		output:    output,
		manager:   m,
		logger:    logger,
		ID:        instanceID,
		Name:      config.ModuleName,
		CreatedAt: time.Now().Unix(),
		exports:   make(map[string]api.Function),
	}

	m.runtime.StoreInstance(instance)

	m.logger.Info("Module instantiated successfully",
		zap.String("instance_id", instanceID),
		zap.Uint32("memory_bytes", instance.mem.Size()),
	)

	return instance, nil
}

// Call invokes an exported entry point after checking that its wasm type
// matches sig.
func (i *Instance) Call(ctx context.Context, name string, sig ffi.Signature, args []ffi.Value) (ffi.Value, error) {
	zero := ffi.Value{Kind: sig.Result}
	fn, err := i.lookup(name, sig)
	if err != nil {
		return zero, err
	}

	params := make([]uint64, len(args))
	for k, a := range args {
		switch a.Kind {
		case ffi.KindI32:
			params[k] = api.EncodeI32(a.Int32())
		case ffi.KindF64:
			params[k] = api.EncodeF64(a.Float64())
		case ffi.KindPtr:
			ptr, ok := narrow(a.Addr())
			if !ok {
				return zero, &ffi.MemoryAccessError{Operation: "pass", Address: a.Addr()}
			}
			params[k] = api.EncodeU32(ptr)
		default:
			return zero, &ffi.MarshalError{What: name, Reason: fmt.Sprintf("argument %d has kind %s", k, a.Kind)}
		}
	}

	results, err := fn.Call(ctx, params...)
	if err != nil {
		// Exits, cancellation and traps all leave the guest mid-routine.
		return zero, &ffi.TrapError{Function: name, Err: err}
	}

	switch sig.Result {
	case ffi.KindI32:
		return ffi.Int(api.DecodeI32(results[0])), nil
	case ffi.KindF64:
		return ffi.Float(api.DecodeF64(results[0])), nil
	case ffi.KindPtr:
		return ffi.Pointer(uint64(api.DecodeU32(results[0]))), nil
	default:
		return zero, nil
	}
}

func (i *Instance) lookup(name string, sig ffi.Signature) (api.Function, error) {
	fn, ok := i.exports[name]
	if !ok {
		fn = i.module.ExportedFunction(name)
		if fn == nil {
			return nil, &ffi.FunctionNotFoundError{Backend: backendName, Function: name}
		}
	}
	def := fn.Definition()
	got, ok := signatureOf(def.ParamTypes(), def.ResultTypes())
	if !ok || !compatible(sig, got) {
		return nil, &ffi.SignatureMismatchError{Function: name, Want: sig, Got: got}
	}
	i.exports[name] = fn
	return fn, nil
}

// signatureOf maps wasm value types onto ffi kinds. Pointers are i32 in a
// wasm32 guest, so the result only distinguishes i32 from f64.
func signatureOf(params, results []api.ValueType) (ffi.Signature, bool) {
	sig := ffi.Signature{Params: make([]ffi.Kind, len(params))}
	ok := true
	for k, p := range params {
		sig.Params[k], ok = kindOf(p, ok)
	}
	switch len(results) {
	case 0:
		sig.Result = ffi.KindVoid
	case 1:
		sig.Result, ok = kindOf(results[0], ok)
	default:
		ok = false
	}
	return sig, ok
}

func kindOf(t api.ValueType, ok bool) (ffi.Kind, bool) {
	switch t {
	case api.ValueTypeI32:
		return ffi.KindI32, ok
	case api.ValueTypeF64:
		return ffi.KindF64, ok
	default:
		return ffi.KindVoid, false
	}
}

func compatible(want, got ffi.Signature) bool {
	if len(want.Params) != len(got.Params) || lower(want.Result) != got.Result {
		return false
	}
	for k := range want.Params {
		if lower(want.Params[k]) != got.Params[k] {
			return false
		}
	}
	return true
}

func lower(k ffi.Kind) ffi.Kind {
	if k == ffi.KindPtr {
		return ffi.KindI32
	}
	return k
}

// Alloc reserves size bytes with the guest's malloc.
func (i *Instance) Alloc(ctx context.Context, size uint32) (uint64, error) {
	results, err := i.malloc.Call(ctx, api.EncodeU32(size))
	if err != nil {
		return 0, &ffi.TrapError{Function: cspice.MallocExport, Err: err}
	}
	addr := api.DecodeU32(results[0])
	if addr == 0 {
		return 0, fmt.Errorf("guest malloc returned null for %d bytes", size)
	}
	return uint64(addr), nil
}

// Free releases memory obtained from Alloc.
func (i *Instance) Free(ctx context.Context, addr uint64) error {
	ptr, ok := narrow(addr)
	if !ok {
		return &ffi.MemoryAccessError{Operation: "free", Address: addr}
	}
	if _, err := i.free.Call(ctx, api.EncodeU32(ptr)); err != nil {
		return &ffi.TrapError{Function: cspice.FreeExport, Err: err}
	}
	return nil
}

// Read returns n bytes of guest memory at addr.
func (i *Instance) Read(addr uint64, n uint32) ([]byte, bool) {
	return i.mem.ReadBytes(addr, n)
}

// Write copies data into guest memory at addr.
func (i *Instance) Write(addr uint64, data []byte) bool {
	return i.mem.WriteBytes(addr, data)
}

// Memory exposes the guest's linear memory.
func (i *Instance) Memory() *Memory {
	return i.mem
}

// Close closes the instance and stops tracking it.
func (i *Instance) Close(ctx context.Context) error {
	i.manager.runtime.DeleteInstance(i.ID)
	err := i.closeModule(ctx)
	if i.ownsRuntime {
		err = multierr.Append(err, i.manager.runtime.Close(ctx))
	}
	i.logger.Debug("Instance closed", zap.Error(err))
	return err
}

// OpenFile compiles the CSPICE build at path in a private runtime and
// instantiates it once. Closing the instance releases the runtime.
func OpenFile(ctx context.Context, logger *zap.Logger, config *RuntimeConfig, path string, kernelDirs []string) (*Instance, error) {
	runtime, err := NewRuntime(ctx, logger, config)
	if err != nil {
		return nil, err
	}
	mod, err := NewModuleLoader(runtime, logger).LoadFile(ctx, path)
	if err != nil {
		return nil, multierr.Append(err, runtime.Close(ctx))
	}
	inst, err := NewInstanceManager(runtime, logger).Instantiate(ctx, &InstanceConfig{
		ModuleName: mod.Name,
		KernelDirs: kernelDirs,
	})
	if err != nil {
		return nil, multierr.Append(err, runtime.Close(ctx))
	}
	inst.ownsRuntime = true
	return inst, nil
}

func (i *Instance) closeModule(ctx context.Context) error {
	return multierr.Append(i.module.Close(ctx), i.output.Close())
}

var instanceSeq atomic.Uint64

// generateInstanceID returns an ID unique within the process.
func generateInstanceID() string {
	return fmt.Sprintf("cspice-%d", instanceSeq.Add(1))
}
