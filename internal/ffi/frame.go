package ffi

import (
	"bytes"
	"context"
	"math"
	"strconv"

	"go.uber.org/multierr"
)

// MaxCString bounds reads of text returned by pointer from the native side.
const MaxCString = 4096

// Frame owns the buffers of a single native call.
//
// Every buffer allocated through a frame stays at a fixed address until
// Release, so the native side may write to it for the whole call. The first
// failure is kept; after it every operation is a no-op and every decoder
// returns a zero value, which lets generated code marshal, call and decode
// without checking after each step.
type Frame struct {
	ctx     context.Context
	backend Backend
	allocs  []uint64
	err     error

	// OnTrap is invoked once when a call reports a TrapError.
	OnTrap func(err error)
}

// NewFrame starts a call frame on b.
func NewFrame(ctx context.Context, b Backend) *Frame {
	return &Frame{ctx: ctx, backend: b}
}

// Fail records err unless an earlier failure is already recorded.
func (f *Frame) Fail(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// Err returns the first failure recorded by the frame.
func (f *Frame) Err() error {
	return f.err
}

func (f *Frame) alloc(size int, what string) uint64 {
	if f.err != nil {
		return 0
	}
	if size < 0 || size > math.MaxInt32 {
		f.Fail(&MarshalError{What: what, Reason: "buffer size " + strconv.Itoa(size) + " out of range"})
		return 0
	}
	// Zero-length buffers still need a distinct address.
	n := uint32(size)
	if n == 0 {
		n = 1
	}
	addr, err := f.backend.Alloc(f.ctx, n)
	if err != nil {
		f.Fail(&AllocationError{Size: n, Err: err})
		f.trapped(err)
		return 0
	}
	f.allocs = append(f.allocs, addr)
	return addr
}

// trapped hands a trap raised by the guest allocator or an entry point to
// OnTrap.
func (f *Frame) trapped(err error) {
	if err != nil && IsTrap(err) && f.OnTrap != nil {
		f.OnTrap(err)
	}
}

func (f *Frame) write(addr uint64, data []byte) {
	if f.err != nil || len(data) == 0 {
		return
	}
	if !f.backend.Write(addr, data) {
		f.Fail(&MemoryAccessError{Operation: "write", Address: addr, Length: uint32(len(data))})
	}
}

// CString copies s into a null-terminated buffer.
// Text that already contains a null byte is rejected.
func (f *Frame) CString(s string) Value {
	if f.err != nil {
		return Pointer(0)
	}
	if i := bytes.IndexByte([]byte(s), 0); i >= 0 {
		f.Fail(&MarshalError{What: "text", Reason: "embedded null byte at offset " + strconv.Itoa(i)})
		return Pointer(0)
	}
	addr := f.alloc(len(s)+1, "text")
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	f.write(addr, buf)
	return Pointer(addr)
}

// Size narrows a host length to a SpiceInt.
func (f *Frame) Size(n int) Value {
	if f.err != nil {
		return Int(0)
	}
	if n < 0 || n > math.MaxInt32 {
		f.Fail(&MarshalError{What: "size", Reason: strconv.Itoa(n) + " does not fit a native integer"})
		return Int(0)
	}
	return Int(int32(n))
}

// In copies raw bytes (a descriptor) into native memory.
func (f *Frame) In(data []byte) Value {
	addr := f.alloc(len(data), "input buffer")
	f.write(addr, data)
	return Pointer(addr)
}

// InF64s copies an array of doubles into native memory.
func (f *Frame) InF64s(v []float64) Value {
	return f.In(EncodeF64s(v))
}

// InI32s copies an array of integers into native memory.
func (f *Frame) InI32s(v []int32) Value {
	return f.In(EncodeI32s(v))
}

// Out allocates a zero-filled output buffer of size bytes.
func (f *Frame) Out(size int) Value {
	addr := f.alloc(size, "output buffer")
	if size > 0 {
		f.write(addr, make([]byte, size))
	}
	return Pointer(addr)
}

// Scratch allocates an output buffer the native side fully initialises.
func (f *Frame) Scratch(size int) Value {
	return Pointer(f.alloc(size, "output buffer"))
}

// Call invokes name with args. The signature is derived from the arguments.
func (f *Frame) Call(name string, result Kind, args ...Value) Value {
	if f.err != nil {
		return Value{Kind: result}
	}
	if err := f.ctx.Err(); err != nil {
		f.Fail(err)
		return Value{Kind: result}
	}
	v, err := f.backend.Call(f.ctx, name, SignatureOf(result, args), args)
	if err != nil {
		f.Fail(err)
		f.trapped(err)
		return Value{Kind: result}
	}
	return v
}

// Bytes reads n bytes at p into a fresh slice.
func (f *Frame) Bytes(p Value, n int) []byte {
	if f.err != nil || n < 0 {
		return nil
	}
	buf, ok := f.backend.Read(p.Addr(), uint32(n))
	if !ok {
		f.Fail(&MemoryAccessError{Operation: "read", Address: p.Addr(), Length: uint32(n)})
		return nil
	}
	out := make([]byte, n)
	copy(out, buf)
	return out
}

// F64 decodes a double output slot.
func (f *Frame) F64(p Value) float64 {
	var v [1]float64
	f.F64sInto(v[:], p)
	return v[0]
}

// I32 decodes an integer output slot.
func (f *Frame) I32(p Value) int32 {
	var v [1]int32
	f.I32sInto(v[:], p)
	return v[0]
}

// Bool decodes a boolean output slot. Any nonzero value is true.
func (f *Frame) Bool(p Value) bool {
	return f.I32(p) != 0
}

// F64sInto fills dst from consecutive doubles at p.
func (f *Frame) F64sInto(dst []float64, p Value) {
	buf := f.Bytes(p, len(dst)*SizeDouble)
	if buf == nil {
		return
	}
	DecodeF64s(dst, buf)
}

// I32sInto fills dst from consecutive integers at p.
func (f *Frame) I32sInto(dst []int32, p Value) {
	buf := f.Bytes(p, len(dst)*SizeInt)
	if buf == nil {
		return
	}
	DecodeI32s(dst, buf)
}

// F64s decodes n doubles at p.
func (f *Frame) F64s(p Value, n int) []float64 {
	out := make([]float64, n)
	f.F64sInto(out, p)
	return out
}

// I32s decodes n integers at p.
func (f *Frame) I32s(p Value, n int) []int32 {
	out := make([]int32, n)
	f.I32sInto(out, p)
	return out
}

// String decodes text written into a buffer of the given capacity, up to the
// first null byte. Text filling the whole buffer is returned as is.
func (f *Frame) String(p Value, capacity int) string {
	buf := f.Bytes(p, capacity)
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

// CStringAt decodes a null-terminated string returned by pointer.
func (f *Frame) CStringAt(p Value) string {
	if f.err != nil {
		return ""
	}
	if p.Addr() == 0 {
		return ""
	}
	var out []byte
	addr := p.Addr()
	for len(out) < MaxCString {
		chunk := uint32(64)
		buf, ok := f.backend.Read(addr, chunk)
		if !ok {
			// Short read near the end of memory: fall back to single bytes.
			buf, ok = f.backend.Read(addr, 1)
			if !ok {
				f.Fail(&MemoryAccessError{Operation: "read", Address: addr, Length: 1})
				return ""
			}
		}
		if i := bytes.IndexByte(buf, 0); i >= 0 {
			return string(append(out, buf[:i]...))
		}
		out = append(out, buf...)
		addr += uint64(len(buf))
	}
	return string(out[:MaxCString])
}

// Release frees every buffer allocated by the frame. The frame must not be
// used afterwards.
func (f *Frame) Release() error {
	// Buffers are freed even when the call was cancelled.
	ctx := context.WithoutCancel(f.ctx)
	var err error
	for i := len(f.allocs) - 1; i >= 0; i-- {
		ferr := f.backend.Free(ctx, f.allocs[i])
		f.trapped(ferr)
		err = multierr.Append(err, ferr)
	}
	f.allocs = nil
	return err
}

// Clamp bounds a count reported by the native side to the capacity of the
// buffer it was written into.
func Clamp(n, capacity int) int {
	if n < 0 {
		return 0
	}
	if n > capacity {
		return capacity
	}
	return n
}

// Rows flattens a matrix given row by row into row-major order.
func Rows[E float64 | int32](rows ...[]E) []E {
	var n int
	for _, r := range rows {
		n += len(r)
	}
	out := make([]E, 0, n)
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
