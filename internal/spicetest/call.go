package spicetest

import (
	"bytes"
	"strings"

	"github.com/woxQAQ/gospice/internal/ffi"
)

// call gives an entry point typed access to its arguments.
type call struct {
	f         *Fake
	name      string
	args      []ffi.Value
	fault     error
	signalled bool
}

func (c *call) signal(short, long string) {
	c.f.signal(short, long)
	c.signalled = true
}

func (c *call) ok() bool {
	return c.fault == nil && !c.signalled
}

func (c *call) memFault(op string, addr uint64, n int) {
	if c.fault == nil {
		c.fault = &ffi.MemoryAccessError{Operation: op, Address: addr, Length: uint32(n)}
	}
}

func (c *call) i32(i int) int32 { return c.args[i].Int32() }
func (c *call) f64(i int) float64 { return c.args[i].Float64() }
func (c *call) ptr(i int) uint64 { return c.args[i].Addr() }

// str reads a null-terminated input string.
func (c *call) str(i int) string {
	addr := c.ptr(i)
	if addr == 0 {
		c.memFault("read", addr, 1)
		return ""
	}
	mem := c.f.mem
	if addr >= uint64(len(mem)) {
		c.memFault("read", addr, 1)
		return ""
	}
	end := bytes.IndexByte(mem[addr:], 0)
	if end < 0 {
		c.memFault("read", addr, len(mem)-int(addr))
		return ""
	}
	return string(mem[addr : addr+uint64(end)])
}

// text reads a string argument and signals EMPTYSTRING when it has length
// zero, as the C wrappers do for every string input.
func (c *call) text(i int, arg string) (string, bool) {
	s := c.str(i)
	if c.fault != nil {
		return "", false
	}
	if s == "" {
		c.signal("SPICE(EMPTYSTRING)",
			"String input argument \""+arg+"\" to "+c.name+" has length zero.")
		return "", false
	}
	return s, true
}

func (c *call) vec(i, n int) []float64 {
	buf, ok := c.f.read(c.ptr(i), uint32(n*ffi.SizeDouble))
	if !ok {
		c.memFault("read", c.ptr(i), n*ffi.SizeDouble)
		return make([]float64, n)
	}
	out := make([]float64, n)
	ffi.DecodeF64s(out, buf)
	return out
}

func (c *call) vec3(i int) [3]float64 {
	var v [3]float64
	copy(v[:], c.vec(i, 3))
	return v
}

func (c *call) ints(i, n int) []int32 {
	buf, ok := c.f.read(c.ptr(i), uint32(n*ffi.SizeInt))
	if !ok {
		c.memFault("read", c.ptr(i), n*ffi.SizeInt)
		return make([]int32, n)
	}
	out := make([]int32, n)
	ffi.DecodeI32s(out, buf)
	return out
}

func (c *call) put(i int, data []byte) {
	if c.fault != nil {
		return
	}
	if !c.f.write(c.ptr(i), data) {
		c.memFault("write", c.ptr(i), len(data))
	}
}

func (c *call) setF64(i int, v float64) { c.put(i, ffi.EncodeF64s([]float64{v})) }
func (c *call) setF64s(i int, v []float64) { c.put(i, ffi.EncodeF64s(v)) }
func (c *call) setI32(i int, v int32) { c.put(i, ffi.EncodeI32s([]int32{v})) }
func (c *call) setI32s(i int, v []int32) { c.put(i, ffi.EncodeI32s(v)) }

func (c *call) setBool(i int, v bool) {
	if v {
		c.setI32(i, 1)
		return
	}
	c.setI32(i, 0)
}

// setStr writes s into an output buffer of lenout bytes, truncating to
// lenout-1 characters plus the terminator.
func (c *call) setStr(i int, s string, lenout int32) {
	if lenout < 1 {
		return
	}
	if len(s) > int(lenout)-1 {
		s = s[:lenout-1]
	}
	c.put(i, append([]byte(s), 0))
}

// outLen validates an output string length the way CHKOSTR does.
func (c *call) outLen(i int, arg string) (int32, bool) {
	n := c.i32(i)
	if n < 2 {
		c.signal("SPICE(STRINGTOOSHORT)",
			"String \""+arg+"\" output argument to "+c.name+" has length less than two characters.")
		return 0, false
	}
	return n, true
}

func normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
