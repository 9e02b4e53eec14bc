//go:build darwin || linux

// Package native loads a CSPICE shared object with purego and exposes it as
// an ffi.Backend without cgo.
//
// CSPICE keeps its state (kernel pool, error flag) in process globals, so a
// path is opened once per process and every Library for it shares the same
// handle and the same toolkit state.
package native

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/woxQAQ/gospice/api/cspice"
	"github.com/woxQAQ/gospice/internal/ffi"
	"go.uber.org/zap"
)

const backendName = "native"

type handle struct {
	ptr  uintptr
	refs int
}

var (
	handlesMu sync.Mutex
	handles   = make(map[string]*handle)
)

// Library is an opened shared object. It implements ffi.Backend.
type Library struct {
	path   string
	handle uintptr
	logger *zap.Logger

	malloc func(size uintptr) uintptr
	free   func(ptr uintptr)

	funcs  map[string]reflect.Value
	closed bool
}

var _ ffi.Backend = (*Library)(nil)

// Open loads the shared object at path, or reuses the handle already open
// for it.
func Open(path string, logger *zap.Logger) (*Library, error) {
	handlesMu.Lock()
	defer handlesMu.Unlock()

	h, ok := handles[path]
	if !ok {
		ptr, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		h = &handle{ptr: ptr}
		handles[path] = h
	}

	lib := &Library{
		path:   path,
		handle: h.ptr,
		logger: logger.With(zap.String("component", "native"), zap.String("library", path)),
		funcs:  make(map[string]reflect.Value),
	}
	for _, sym := range []struct {
		name string
		fn   any
	}{
		{cspice.MallocExport, &lib.malloc},
		{cspice.FreeExport, &lib.free},
	} {
		addr, err := purego.Dlsym(h.ptr, sym.name)
		if err != nil {
			lib.release(h)
			return nil, &ffi.FunctionNotFoundError{Backend: backendName, Function: sym.name}
		}
		purego.RegisterFunc(sym.fn, addr)
	}
	h.refs++

	lib.logger.Info("Shared library opened", zap.Int("refs", h.refs))
	return lib, nil
}

// release drops an unreferenced handle. Callers hold handlesMu.
func (l *Library) release(h *handle) {
	if h.refs > 0 {
		return
	}
	delete(handles, l.path)
	if err := purego.Dlclose(h.ptr); err != nil {
		l.logger.Warn("Failed to close shared library", zap.Error(err))
	}
}

// Call resolves name and invokes it with args converted to sig.
//
// A shared object carries no type information, so the signature cannot be
// verified; a wrong one is undefined behaviour, as in C.
func (l *Library) Call(ctx context.Context, name string, sig ffi.Signature, args []ffi.Value) (ffi.Value, error) {
	zero := ffi.Value{Kind: sig.Result}
	if l.closed {
		return zero, fmt.Errorf("%s: library closed", l.path)
	}
	if len(args) != len(sig.Params) {
		return zero, &ffi.MarshalError{What: name, Reason: fmt.Sprintf("%d arguments for %s", len(args), sig)}
	}
	fn, err := l.resolve(name, sig)
	if err != nil {
		return zero, err
	}

	in := make([]reflect.Value, len(args))
	for k, a := range args {
		if a.Kind != sig.Params[k] {
			return zero, &ffi.MarshalError{What: name, Reason: fmt.Sprintf("argument %d has kind %s, want %s", k, a.Kind, sig.Params[k])}
		}
		switch a.Kind {
		case ffi.KindI32:
			in[k] = reflect.ValueOf(a.Int32())
		case ffi.KindF64:
			in[k] = reflect.ValueOf(a.Float64())
		case ffi.KindPtr:
			in[k] = reflect.ValueOf(uintptr(a.Addr()))
		default:
			return zero, &ffi.MarshalError{What: name, Reason: fmt.Sprintf("argument %d has kind %s", k, a.Kind)}
		}
	}

	out := fn.Call(in)
	switch sig.Result {
	case ffi.KindI32:
		return ffi.Int(int32(out[0].Int())), nil
	case ffi.KindF64:
		return ffi.Float(out[0].Float()), nil
	case ffi.KindPtr:
		return ffi.Pointer(uint64(out[0].Uint())), nil
	default:
		return zero, nil
	}
}

func (l *Library) resolve(name string, sig ffi.Signature) (reflect.Value, error) {
	key := name + sig.String()
	if fn, ok := l.funcs[key]; ok {
		return fn, nil
	}
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return reflect.Value{}, &ffi.FunctionNotFoundError{Backend: backendName, Function: name}
	}
	typ, err := funcType(sig)
	if err != nil {
		return reflect.Value{}, &ffi.MarshalError{What: name, Reason: err.Error()}
	}
	ptr := reflect.New(typ)
	purego.RegisterFunc(ptr.Interface(), addr)
	fn := ptr.Elem()
	l.funcs[key] = fn
	return fn, nil
}

var (
	int32Type   = reflect.TypeOf(int32(0))
	float64Type = reflect.TypeOf(float64(0))
	uintptrType = reflect.TypeOf(uintptr(0))
)

func goType(k ffi.Kind) (reflect.Type, error) {
	switch k {
	case ffi.KindI32:
		return int32Type, nil
	case ffi.KindF64:
		return float64Type, nil
	case ffi.KindPtr:
		return uintptrType, nil
	default:
		return nil, fmt.Errorf("no Go type for kind %s", k)
	}
}

// funcType builds the Go func type purego binds for sig.
func funcType(sig ffi.Signature) (reflect.Type, error) {
	in := make([]reflect.Type, len(sig.Params))
	for k, p := range sig.Params {
		t, err := goType(p)
		if err != nil {
			return nil, err
		}
		in[k] = t
	}
	var out []reflect.Type
	if sig.Result != ffi.KindVoid {
		t, err := goType(sig.Result)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return reflect.FuncOf(in, out, false), nil
}

// Alloc reserves size bytes on the C heap.
func (l *Library) Alloc(ctx context.Context, size uint32) (uint64, error) {
	addr := l.malloc(uintptr(size))
	if addr == 0 {
		return 0, fmt.Errorf("malloc returned null for %d bytes", size)
	}
	return uint64(addr), nil
}

// Free releases memory obtained from Alloc.
func (l *Library) Free(ctx context.Context, addr uint64) error {
	l.free(uintptr(addr))
	return nil
}

// Read returns n bytes at addr. The slice aliases C memory.
func (l *Library) Read(addr uint64, n uint32) ([]byte, bool) {
	if addr == 0 {
		return nil, false
	}
	if n == 0 {
		return []byte{}, true
	}
	return unsafe.Slice((*byte)(cptr(addr)), n), true
}

// Write copies data to addr.
func (l *Library) Write(addr uint64, data []byte) bool {
	if addr == 0 {
		return false
	}
	if len(data) > 0 {
		copy(unsafe.Slice((*byte)(cptr(addr)), len(data)), data)
	}
	return true
}

// GateKey identifies the loaded object. Every Library that dlopen resolved
// to the same object returns the same key, whatever path it was opened by.
func (l *Library) GateKey() string {
	return fmt.Sprintf("%s:%#x", backendName, l.handle)
}

// Close drops this reference to the shared object. The object is unloaded
// when the last Library for its path is closed.
func (l *Library) Close(ctx context.Context) error {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if h, ok := handles[l.path]; ok {
		h.refs--
		l.release(h)
	}
	return nil
}

// cptr converts a C address into a pointer. The memory is owned by the C
// heap, never by the Go collector.
func cptr(addr uint64) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}
