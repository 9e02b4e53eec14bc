// Package ffi defines the calling convention shared by every CSPICE backend
// and the per-call marshaling frame used by the generated bindings.
//
// A backend hosts one copy of the native library (a WebAssembly build run by
// wazero, or a shared object loaded with purego) and exposes its entry points
// by name. All values crossing the boundary are one of four kinds; pointers
// are plain addresses in the backend's memory.
package ffi

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Kind is the native class of an argument or result.
type Kind uint8

const (
	// KindVoid marks an entry point without a return value.
	KindVoid Kind = iota
	// KindI32 carries SpiceInt, SpiceBoolean and enumerations.
	KindI32
	// KindF64 carries SpiceDouble.
	KindF64
	// KindPtr carries any address in backend memory.
	KindPtr
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindI32:
		return "i32"
	case KindF64:
		return "f64"
	case KindPtr:
		return "ptr"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single argument or result as raw bits.
type Value struct {
	Kind Kind
	Bits uint64
}

// Int returns a SpiceInt value.
func Int(v int32) Value {
	return Value{Kind: KindI32, Bits: uint64(uint32(v))}
}

// Float returns a SpiceDouble value.
func Float(v float64) Value {
	return Value{Kind: KindF64, Bits: math.Float64bits(v)}
}

// Bool returns a SpiceBoolean value (1 or 0).
func Bool(v bool) Value {
	if v {
		return Int(1)
	}
	return Int(0)
}

// Pointer returns an address value.
func Pointer(addr uint64) Value {
	return Value{Kind: KindPtr, Bits: addr}
}

// Int32 interprets the value as a SpiceInt.
func (v Value) Int32() int32 {
	return int32(uint32(v.Bits))
}

// Float64 interprets the value as a SpiceDouble.
func (v Value) Float64() float64 {
	return math.Float64frombits(v.Bits)
}

// Bool interprets the value as a SpiceBoolean. Any nonzero value is true.
func (v Value) Bool() bool {
	return v.Int32() != 0
}

// Addr interprets the value as an address.
func (v Value) Addr() uint64 {
	return v.Bits
}

// Offset returns the address bytes past v.
func (v Value) Offset(bytes int) Value {
	return Pointer(v.Bits + uint64(bytes))
}

// IsNull reports whether the value is a null pointer.
func (v Value) IsNull() bool {
	return v.Kind == KindPtr && v.Bits == 0
}

// Signature is the native type of an entry point.
type Signature struct {
	Params []Kind
	Result Kind
}

// SignatureOf derives a signature from the kinds of the given arguments.
func SignatureOf(result Kind, args []Value) Signature {
	params := make([]Kind, len(args))
	for i, a := range args {
		params[i] = a.Kind
	}
	return Signature{Params: params, Result: result}
}

// Equal reports whether two signatures are identical.
func (s Signature) Equal(o Signature) bool {
	if s.Result != o.Result || len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != o.Params[i] {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ",") + ")->" + s.Result.String()
}

// Backend is a loaded copy of the native library.
//
// Implementations are not safe for concurrent use; callers serialize access
// through the library gate.
type Backend interface {
	// Call invokes the named entry point. The backend may verify that sig
	// matches the entry point it resolves.
	Call(ctx context.Context, name string, sig Signature, args []Value) (Value, error)

	// Alloc reserves size bytes in backend memory. A zero address is never
	// returned without an error.
	Alloc(ctx context.Context, size uint32) (uint64, error)

	// Free releases memory obtained from Alloc.
	Free(ctx context.Context, addr uint64) error

	// Read returns n bytes at addr. The slice may alias backend memory and
	// is only valid until the next call into the backend.
	Read(addr uint64, n uint32) ([]byte, bool)

	// Write copies data to addr.
	Write(addr uint64, data []byte) bool

	// Close unloads the library.
	Close(ctx context.Context) error
}
