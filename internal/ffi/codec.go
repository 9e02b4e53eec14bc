package ffi

import (
	"encoding/binary"
	"math"
)

// Native widths of the CSPICE scalar types.
const (
	SizeInt    = 4
	SizeDouble = 8
)

// EncodeF64s lays out doubles as the native library expects them.
func EncodeF64s(v []float64) []byte {
	buf := make([]byte, len(v)*SizeDouble)
	for i, x := range v {
		binary.LittleEndian.PutUint64(buf[i*SizeDouble:], math.Float64bits(x))
	}
	return buf
}

// EncodeI32s lays out integers as the native library expects them.
func EncodeI32s(v []int32) []byte {
	buf := make([]byte, len(v)*SizeInt)
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*SizeInt:], uint32(x))
	}
	return buf
}

// DecodeF64s fills dst from buf. buf must hold len(dst) doubles.
func DecodeF64s(dst []float64, buf []byte) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*SizeDouble:]))
	}
}

// DecodeI32s fills dst from buf. buf must hold len(dst) integers.
func DecodeI32s(dst []int32, buf []byte) {
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(buf[i*SizeInt:]))
	}
}
