package ffi

import (
	"errors"
	"fmt"
)

// MarshalError occurs when a host value cannot be converted to its native
// representation.
type MarshalError struct {
	What   string
	Reason string
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("cannot marshal %s: %s", e.What, e.Reason)
}

// AllocationError occurs when the backend cannot provide a buffer.
type AllocationError struct {
	Size uint32
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("failed to allocate %d bytes: %v", e.Size, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// MemoryAccessError occurs when a read or write falls outside backend memory.
type MemoryAccessError struct {
	Operation string
	Address   uint64
	Length    uint32
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access failed (op=%s, addr=%d, len=%d)",
		e.Operation, e.Address, e.Length)
}

// FunctionNotFoundError occurs when the backend does not export an entry point.
type FunctionNotFoundError struct {
	Backend  string
	Function string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function '%s' not found in %s", e.Function, e.Backend)
}

// SignatureMismatchError occurs when an entry point's native type differs
// from the type the caller marshaled for.
type SignatureMismatchError struct {
	Function string
	Want     Signature
	Got      Signature
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("function '%s' has signature %s, called as %s",
		e.Function, e.Got, e.Want)
}

// TrapError occurs when the native side aborts in the middle of a call.
// After a trap the state of the native library is unknown.
type TrapError struct {
	Function string
	Err      error
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("native call '%s' trapped: %v", e.Function, e.Err)
}

func (e *TrapError) Unwrap() error {
	return e.Err
}

// IsTrap reports whether err is or wraps a TrapError.
func IsTrap(err error) bool {
	var trap *TrapError
	return errors.As(err, &trap)
}
