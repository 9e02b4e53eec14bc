package spice

import (
	"github.com/woxQAQ/gospice/internal/ffi"
)

// DLADSC is a DLA segment descriptor (eight SpiceInts).
type DLADSC struct {
	BwdPtr int32
	FwdPtr int32
	IBase  int32
	ISize  int32
	DBase  int32
	DSize  int32
	CBase  int32
	CSize  int32
}

// DLADSCSize is the native size of DLADSC in bytes.
const DLADSCSize = 8 * ffi.SizeInt

func (d DLADSC) encode() []byte {
	return ffi.EncodeI32s([]int32{d.BwdPtr, d.FwdPtr, d.IBase, d.ISize, d.DBase, d.DSize, d.CBase, d.CSize})
}

func decodeDLADSC(b []byte) DLADSC {
	if len(b) < DLADSCSize {
		return DLADSC{}
	}
	var v [8]int32
	ffi.DecodeI32s(v[:], b)
	return DLADSC{
		BwdPtr: v[0],
		FwdPtr: v[1],
		IBase:  v[2],
		ISize:  v[3],
		DBase:  v[4],
		DSize:  v[5],
		CBase:  v[6],
		CSize:  v[7],
	}
}

// DSKDSC is a DSK segment descriptor, laid out as SpiceDSKDescr: six
// SpiceInts followed by eighteen SpiceDoubles.
type DSKDSC struct {
	Surface     int32
	Center      int32
	DataClass   int32
	Type        int32
	Frame       int32
	CoordSys    int32
	CoordParams [10]float64
	Co1Min      float64
	Co1Max      float64
	Co2Min      float64
	Co2Max      float64
	Co3Min      float64
	Co3Max      float64
	Start       float64
	Stop        float64
}

// DSKDSCSize is the native size of DSKDSC in bytes.
const DSKDSCSize = 6*ffi.SizeInt + 18*ffi.SizeDouble

func (d DSKDSC) encode() []byte {
	b := ffi.EncodeI32s([]int32{d.Surface, d.Center, d.DataClass, d.Type, d.Frame, d.CoordSys})
	v := make([]float64, 0, 18)
	v = append(v, d.CoordParams[:]...)
	v = append(v, d.Co1Min, d.Co1Max, d.Co2Min, d.Co2Max, d.Co3Min, d.Co3Max, d.Start, d.Stop)
	return append(b, ffi.EncodeF64s(v)...)
}

func decodeDSKDSC(b []byte) DSKDSC {
	if len(b) < DSKDSCSize {
		return DSKDSC{}
	}
	var ids [6]int32
	var v [18]float64
	ffi.DecodeI32s(ids[:], b)
	ffi.DecodeF64s(v[:], b[6*ffi.SizeInt:])
	d := DSKDSC{
		Surface:   ids[0],
		Center:    ids[1],
		DataClass: ids[2],
		Type:      ids[3],
		Frame:     ids[4],
		CoordSys:  ids[5],
		Co1Min:    v[10],
		Co1Max:    v[11],
		Co2Min:    v[12],
		Co2Max:    v[13],
		Co3Min:    v[14],
		Co3Max:    v[15],
		Start:     v[16],
		Stop:      v[17],
	}
	copy(d.CoordParams[:], v[:10])
	return d
}
