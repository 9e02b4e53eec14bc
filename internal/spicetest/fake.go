// Package spicetest provides an in-memory stand-in for the CSPICE library.
//
// Fake implements the backend calling convention and the parts of the CSPICE
// call contract the bindings depend on: the error subsystem (erract, failed,
// getmsg, reset), kernel loading over a virtual file system, and a small
// deterministic universe (a leap-second table, body names and radii, a
// constant-velocity ephemeris for the HERA/DIDYMOS system, two inertial
// frames and one DSK shape model). Numeric results are closed-form; they are
// meant to exercise marshaling, not to replace the real toolkit.
package spicetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/woxQAQ/gospice/internal/ffi"
)

const (
	// heapBase keeps address zero unused so null pointers stay detectable.
	heapBase = 16
	// HeapLimit is the largest heap the fake will grow to.
	HeapLimit = 64 << 20

	defaultAction = "ABORT"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("spicetest: fake library closed")

type impl struct {
	sig ffi.Signature
	fn  func(c *call) ffi.Value
	// always runs even while an error is pending in RETURN mode.
	always bool
}

// Fake is a deterministic CSPICE emulation. It is safe for concurrent use,
// although the bindings serialize access anyway.
type Fake struct {
	mu sync.Mutex

	mem     []byte
	next    uint64
	live    map[uint64]uint32
	statics map[uint64]bool
	closed  bool

	funcs map[string]impl

	// error subsystem
	action string
	failed bool
	short  string
	long   string

	files   map[string]string
	loaded  []*loadedKernel
	handles int32
	pool    map[string]poolValue
	open    map[int32]string

	calls []string
}

// New returns a fake library with an empty kernel pool.
func New() *Fake {
	f := &Fake{
		mem:     make([]byte, heapBase, 1<<16),
		next:    heapBase,
		live:    make(map[uint64]uint32),
		statics: make(map[uint64]bool),
		action:  defaultAction,
		files:   make(map[string]string),
		pool:    make(map[string]poolValue),
		open:    make(map[int32]string),
	}
	f.funcs = f.register()
	return f
}

var _ ffi.Backend = (*Fake)(nil)

// Call dispatches an entry point by name.
func (f *Fake) Call(ctx context.Context, name string, sig ffi.Signature, args []ffi.Value) (ffi.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ffi.Value{}, ErrClosed
	}
	fn, ok := f.funcs[name]
	if !ok {
		return ffi.Value{}, &ffi.FunctionNotFoundError{Backend: "spicetest", Function: name}
	}
	if !fn.sig.Equal(sig) {
		return ffi.Value{}, &ffi.SignatureMismatchError{Function: name, Want: sig, Got: fn.sig}
	}
	f.calls = append(f.calls, name)

	zero := ffi.Value{Kind: fn.sig.Result}
	// In RETURN mode CSPICE routines return on entry while an error is pending.
	if f.failed && f.action == "RETURN" && !fn.always {
		return zero, nil
	}

	c := &call{f: f, name: name, args: args}
	v := fn.fn(c)
	if c.fault != nil {
		return zero, c.fault
	}
	if c.signalled && (f.action == "ABORT" || f.action == "DEFAULT") {
		// The real library prints the message and exits the process.
		return zero, &ffi.TrapError{Function: name, Err: fmt.Errorf("%s: %s", f.short, f.long)}
	}
	if c.signalled {
		return zero, nil
	}
	return v, nil
}

// Alloc reserves size bytes on the fake heap.
func (f *Fake) Alloc(ctx context.Context, size uint32) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, ErrClosed
	}
	return f.alloc(size)
}

func (f *Fake) alloc(size uint32) (uint64, error) {
	addr := (f.next + 7) &^ 7
	end := addr + uint64(size)
	if end > HeapLimit {
		return 0, fmt.Errorf("heap exhausted (%d bytes requested)", size)
	}
	if uint64(len(f.mem)) < end {
		f.mem = append(f.mem, make([]byte, int(end)-len(f.mem))...)
	}
	// Fresh memory is not zeroed, like malloc.
	for i := addr; i < end; i++ {
		f.mem[i] = 0xAA
	}
	f.next = end
	f.live[addr] = size
	return addr, nil
}

// Free releases an allocation. Freeing an unknown address is an error.
func (f *Fake) Free(ctx context.Context, addr uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if _, ok := f.live[addr]; !ok || f.statics[addr] {
		return fmt.Errorf("free of unallocated address %d", addr)
	}
	delete(f.live, addr)
	return nil
}

// Read returns a copy of n bytes at addr.
func (f *Fake) Read(addr uint64, n uint32) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(addr, n)
}

func (f *Fake) read(addr uint64, n uint32) ([]byte, bool) {
	end := addr + uint64(n)
	if addr < heapBase || end > uint64(len(f.mem)) {
		return nil, false
	}
	out := make([]byte, n)
	copy(out, f.mem[addr:end])
	return out, true
}

// Write copies data to addr.
func (f *Fake) Write(addr uint64, data []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(addr, data)
}

func (f *Fake) write(addr uint64, data []byte) bool {
	end := addr + uint64(len(data))
	if addr < heapBase || end > uint64(len(f.mem)) {
		return false
	}
	copy(f.mem[addr:end], data)
	return true
}

// Close marks the fake unusable.
func (f *Fake) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// LiveAllocations reports how many caller allocations are still held.
func (f *Fake) LiveAllocations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live) - len(f.statics)
}

// Calls returns the entry points invoked so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// ResetCalls forgets the recorded call log.
func (f *Fake) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Failed reports the native error flag without going through a call.
func (f *Fake) Failed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}

// Action returns the current error action.
func (f *Fake) Action() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.action
}

// Signal raises a native error as if a routine had signalled it.
func (f *Fake) Signal(short, long string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signal(short, long)
}

func (f *Fake) signal(short, long string) {
	// The first error is kept until reset.
	if f.failed {
		return
	}
	f.failed = true
	f.short = short
	f.long = long
}

// Functions lists the entry points the fake implements.
func (f *Fake) Functions() []string {
	names := make([]string, 0, len(f.funcs))
	for name := range f.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Signature returns the native type of an implemented entry point.
func (f *Fake) Signature(name string) (ffi.Signature, bool) {
	fn, ok := f.funcs[name]
	return fn.sig, ok
}

func (f *Fake) static(s string) uint64 {
	addr, err := f.alloc(uint32(len(s) + 1))
	if err != nil {
		panic(err)
	}
	f.write(addr, append([]byte(s), 0))
	f.statics[addr] = true
	return addr
}
