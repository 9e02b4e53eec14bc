package wasm

// stubModule is a hand-assembled stand-in for a CSPICE build. It exports the
// allocator and error-protocol entry points plus a few probes:
//
//	malloc(size i32) i32        bump allocator, 8-byte aligned, heap at 1024
//	free(addr i32)              no-op
//	pi_c() f64
//	trap_c()                    unreachable
//	vdot_c(a, b i32) f64        dot product of two double[3]
//	_initialize()               sets the flag read by initialized_c
//	initialized_c() i32
//	failed_c() i32              always 0
//	erract_c, getmsg_c (i32, i32, i32), reset_c ()   no-ops
var stubModule = []byte{
	// header
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type
	0x01, 0x21, 0x07, 0x60, 0x00, 0x01, 0x7c, 0x60, 0x00, 0x00, 0x60, 0x01,
	0x7f, 0x01, 0x7f, 0x60, 0x01, 0x7f, 0x00, 0x60, 0x02, 0x7f, 0x7f, 0x01,
	0x7c, 0x60, 0x00, 0x01, 0x7f, 0x60, 0x03, 0x7f, 0x7f, 0x7f, 0x00,
	// function
	0x03, 0x0b, 0x0a, 0x02, 0x03, 0x00, 0x01, 0x04, 0x01, 0x05, 0x06, 0x01,
	0x05,
	// memory
	0x05, 0x03, 0x01, 0x00, 0x01,
	// global
	0x06, 0x0c, 0x02, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b, 0x7f, 0x01, 0x41,
	0x00, 0x0b,
	// export
	0x07, 0x7c, 0x0c, 0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00,
	0x06, 0x6d, 0x61, 0x6c, 0x6c, 0x6f, 0x63, 0x00, 0x00, 0x04, 0x66, 0x72,
	0x65, 0x65, 0x00, 0x01, 0x04, 0x70, 0x69, 0x5f, 0x63, 0x00, 0x02, 0x06,
	0x74, 0x72, 0x61, 0x70, 0x5f, 0x63, 0x00, 0x03, 0x06, 0x76, 0x64, 0x6f,
	0x74, 0x5f, 0x63, 0x00, 0x04, 0x0b, 0x5f, 0x69, 0x6e, 0x69, 0x74, 0x69,
	0x61, 0x6c, 0x69, 0x7a, 0x65, 0x00, 0x05, 0x08, 0x66, 0x61, 0x69, 0x6c,
	0x65, 0x64, 0x5f, 0x63, 0x00, 0x06, 0x08, 0x65, 0x72, 0x72, 0x61, 0x63,
	0x74, 0x5f, 0x63, 0x00, 0x07, 0x08, 0x67, 0x65, 0x74, 0x6d, 0x73, 0x67,
	0x5f, 0x63, 0x00, 0x07, 0x07, 0x72, 0x65, 0x73, 0x65, 0x74, 0x5f, 0x63,
	0x00, 0x08, 0x0d, 0x69, 0x6e, 0x69, 0x74, 0x69, 0x61, 0x6c, 0x69, 0x7a,
	0x65, 0x64, 0x5f, 0x63, 0x00, 0x09,
	// code
	0x0a, 0x67, 0x0a, 0x15, 0x01, 0x01, 0x7f, 0x23, 0x00, 0x41, 0x07, 0x6a,
	0x41, 0x78, 0x71, 0x22, 0x01, 0x20, 0x00, 0x6a, 0x24, 0x00, 0x20, 0x01,
	0x0b, 0x02, 0x00, 0x0b, 0x0b, 0x00, 0x44, 0x18, 0x2d, 0x44, 0x54, 0xfb,
	0x21, 0x09, 0x40, 0x0b, 0x03, 0x00, 0x00, 0x0b, 0x25, 0x00, 0x20, 0x00,
	0x2b, 0x03, 0x00, 0x20, 0x01, 0x2b, 0x03, 0x00, 0xa2, 0x20, 0x00, 0x2b,
	0x03, 0x08, 0x20, 0x01, 0x2b, 0x03, 0x08, 0xa2, 0xa0, 0x20, 0x00, 0x2b,
	0x03, 0x10, 0x20, 0x01, 0x2b, 0x03, 0x10, 0xa2, 0xa0, 0x0b, 0x06, 0x00,
	0x41, 0x01, 0x24, 0x01, 0x0b, 0x04, 0x00, 0x41, 0x00, 0x0b, 0x02, 0x00,
	0x0b, 0x02, 0x00, 0x0b, 0x04, 0x00, 0x23, 0x01, 0x0b,
}
