// Package cspice defines the binary contract a CSPICE build must satisfy to
// be hosted by the backends.
//
// A WebAssembly build is a WASI reactor exporting its linear memory, the C
// allocator and every toolkit entry point under its C name (furnsh_c,
// spkpos_c, ...). A shared object build exports the same symbols. In both,
// SpiceInt and SpiceBoolean are 32 bits, SpiceDouble is an IEEE double and
// pointers are addresses in the library's own memory.
package cspice

// Module exports outside the toolkit itself.
const (
	// MemoryExport is the guest linear memory.
	MemoryExport = "memory"
	// MallocExport allocates guest memory: malloc(size i32) -> ptr i32.
	MallocExport = "malloc"
	// FreeExport releases guest memory: free(ptr i32).
	FreeExport = "free"
	// InitializeExport runs the C constructors of a reactor module.
	InitializeExport = "_initialize"
)

// Native widths in bytes.
const (
	SpiceIntSize     = 4
	SpiceBooleanSize = 4
	SpiceDoubleSize  = 8
)

// ErrorProtocol lists the entry points the checked layer depends on.
var ErrorProtocol = []string{
	"erract_c",
	"failed_c",
	"getmsg_c",
	"reset_c",
}

// RequiredExports returns the function exports a module must provide before
// any call is attempted. Toolkit entry points beyond the error protocol are
// resolved lazily and reported when missing.
func RequiredExports() []string {
	out := []string{MallocExport, FreeExport}
	return append(out, ErrorProtocol...)
}
