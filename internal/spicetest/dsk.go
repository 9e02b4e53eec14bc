package spicetest

import (
	"fmt"
	"math"

	"github.com/woxQAQ/gospice/internal/ffi"
)

// The single DSK segment served for any opened .bds file: an octahedral
// type 2 shape model of DIMORPHOS.
var (
	shapeDLA = []int32{-1, -1, 256, 82, 512, 19, 0, 0}

	shapePlates = [][3]int32{
		{1, 3, 5}, {3, 2, 5}, {2, 4, 5}, {4, 1, 5},
		{3, 1, 6}, {2, 3, 6}, {4, 2, 6}, {1, 4, 6},
	}
	shapeVertices = 6
)

// shapeDSK returns the segment's SpiceDSKDescr: surface, center, data
// class, type, frame and coordinate system as SpiceInts, then ten
// coordinate parameters, the coordinate bounds and the time bounds.
func shapeDSK() []byte {
	ids := []int32{1, -658031, 1, 2, -658000, 1}
	d := make([]float64, 18)
	d[10] = -math.Pi // co1min
	d[11] = math.Pi
	d[12] = -math.Pi / 2
	d[13] = math.Pi / 2
	d[14] = 0.0605
	d[15] = 0.0895
	d[16] = ReferenceEpoch - coverage
	d[17] = ReferenceEpoch + coverage
	return append(ffi.EncodeI32s(ids), ffi.EncodeF64s(d)...)
}

func (f *Fake) dasopr(c *call) ffi.Value {
	fname, ok := c.text(0, "fname")
	if !ok {
		return ffi.Value{}
	}
	if !f.exists(fname) {
		c.signal("SPICE(FILENOTFOUND)", "The file '"+fname+"' was not found.")
		return ffi.Value{}
	}
	if kind, _ := kernelKind(fname); kind != "DSK" {
		c.signal("SPICE(INVALIDARCHTYPE)", "The file '"+fname+"' is not a DAS file.")
		return ffi.Value{}
	}
	f.handles++
	f.open[f.handles] = fname
	c.setI32(1, f.handles)
	return ffi.Value{}
}

func (f *Fake) dascls(c *call) ffi.Value {
	delete(f.open, c.i32(0))
	return ffi.Value{}
}

func (c *call) openHandle(i int) bool {
	h := c.i32(i)
	if _, ok := c.f.open[h]; ok {
		return true
	}
	// Kernels loaded through furnsh are readable too.
	for _, k := range c.f.loaded {
		if k.kind == "DSK" && k.handle == h {
			return true
		}
	}
	c.signal("SPICE(NOSUCHHANDLE)", fmt.Sprintf("The handle %d is not associated with an open DAS file.", h))
	return false
}

func (c *call) segment(i int) bool {
	d := c.ints(i, len(shapeDLA))
	if !c.ok() {
		return false
	}
	for j := range shapeDLA {
		if d[j] != shapeDLA[j] {
			c.signal("SPICE(INVALIDDESCRIPTOR)", "The DLA descriptor does not identify a segment of this file.")
			return false
		}
	}
	return true
}

func (f *Fake) dlabfs(c *call) ffi.Value {
	if !c.openHandle(0) {
		return ffi.Value{}
	}
	c.setI32s(1, shapeDLA)
	c.setBool(2, true)
	return ffi.Value{}
}

func (f *Fake) dskgd(c *call) ffi.Value {
	if !c.openHandle(0) || !c.segment(1) {
		return ffi.Value{}
	}
	c.put(2, shapeDSK())
	return ffi.Value{}
}

func (f *Fake) dskz02(c *call) ffi.Value {
	if !c.openHandle(0) || !c.segment(1) {
		return ffi.Value{}
	}
	c.setI32(2, int32(shapeVertices))
	c.setI32(3, int32(len(shapePlates)))
	return ffi.Value{}
}

func (f *Fake) dskp02(c *call) ffi.Value {
	if !c.openHandle(0) || !c.segment(1) {
		return ffi.Value{}
	}
	start, room := c.i32(2), c.i32(3)
	np := int32(len(shapePlates))
	if room < 1 {
		c.signal("SPICE(VALUEOUTOFRANGE)", fmt.Sprintf("ROOM was %d. ROOM must be positive.", room))
		return ffi.Value{}
	}
	if start < 1 || start > np {
		c.signal("SPICE(INDEXOUTOFRANGE)", fmt.Sprintf("Plate START index was %d; the valid range is 1:%d.", start, np))
		return ffi.Value{}
	}
	n := min(room, np-start+1)
	flat := make([]int32, 0, n*3)
	for _, p := range shapePlates[start-1 : start-1+n] {
		flat = append(flat, p[0], p[1], p[2])
	}
	c.setI32(4, n)
	c.setI32s(5, flat)
	return ffi.Value{}
}
