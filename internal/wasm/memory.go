package wasm

import (
	"bytes"
	"math"

	"github.com/tetratelabs/wazero/api"
)

// Memory provides bounds-checked access to a guest's linear memory.
//
// Addresses handed out by the ffi layer are uint64; a wasm32 guest can only
// address the low 4GiB, so anything above is rejected before reaching
// wazero.
type Memory struct {
	mem api.Memory
}

// NewMemory creates a memory helper.
func NewMemory(module api.Module) *Memory {
	return &Memory{mem: module.Memory()}
}

func narrow(addr uint64) (uint32, bool) {
	if addr > math.MaxUint32 {
		return 0, false
	}
	return uint32(addr), true
}

// ReadBytes returns length bytes at addr. The slice aliases guest memory.
func (m *Memory) ReadBytes(addr uint64, length uint32) ([]byte, bool) {
	ptr, ok := narrow(addr)
	if !ok {
		return nil, false
	}
	return m.mem.Read(ptr, length)
}

// ReadString reads a null-terminated string of at most maxLen bytes.
// A read that runs into the end of memory is truncated there.
func (m *Memory) ReadString(addr uint64, maxLen uint32) (string, bool) {
	ptr, ok := narrow(addr)
	if !ok {
		return "", false
	}
	if size := m.mem.Size(); ptr >= size {
		return "", false
	} else if uint64(ptr)+uint64(maxLen) > uint64(size) {
		maxLen = size - ptr
	}
	buf, ok := m.mem.Read(ptr, maxLen)
	if !ok {
		return "", false
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), true
}

// WriteBytes copies data to addr.
func (m *Memory) WriteBytes(addr uint64, data []byte) bool {
	ptr, ok := narrow(addr)
	if !ok {
		return false
	}
	return m.mem.Write(ptr, data)
}

// Size returns the current size of guest memory in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}
