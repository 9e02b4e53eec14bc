package gen

import (
	"fmt"
	"regexp"
	"strconv"
)

// Class is the marshaling strategy of a declared type.
type Class int

const (
	// Scalar is f64, i32 or bool, passed by value or through a slot.
	Scalar Class = iota
	// Size is a host length narrowed to a native integer. Input only.
	Size
	// Text is a string: a null-terminated copy in, a bounded buffer out.
	Text
	// Array is a fixed [N] vector.
	Array
	// Matrix is a fixed [N][M] matrix in row-major order.
	Matrix
	// Slice is a variable-length []T buffer.
	Slice
	// RowSlice is a variable-length [][N]T buffer.
	RowSlice
	// Descriptor is a fixed-layout record such as DLADSC.
	Descriptor
)

// Elem is a scalar element type.
type Elem string

const (
	F64  Elem = "f64"
	I32  Elem = "i32"
	Bool Elem = "bool"
)

// Shape is a parsed declared type.
type Shape struct {
	Class Class
	Elem  Elem
	// N and M are the fixed dimensions of arrays, matrices and rows.
	N, M int
	// Name is the Go type of a descriptor.
	Name string
}

type descriptor struct {
	size   string
	decode string
}

var descriptors = map[string]descriptor{
	"DLADSC": {size: "DLADSCSize", decode: "decodeDLADSC"},
	"DSKDSC": {size: "DSKDSCSize", decode: "decodeDSKDSC"},
}

var (
	arrayRe    = regexp.MustCompile(`^\[([1-9][0-9]*)\](f64|i32)$`)
	matrixRe   = regexp.MustCompile(`^\[([1-9][0-9]*)\]\[([1-9][0-9]*)\](f64|i32)$`)
	sliceRe    = regexp.MustCompile(`^\[\](f64|i32)$`)
	rowSliceRe = regexp.MustCompile(`^\[\]\[([1-9][0-9]*)\](f64|i32)$`)
)

// ParseShape maps a declared type onto a marshaling shape.
func ParseShape(typ string) (Shape, error) {
	switch typ {
	case "f64", "i32", "bool":
		return Shape{Class: Scalar, Elem: Elem(typ)}, nil
	case "size":
		return Shape{Class: Size}, nil
	case "string":
		return Shape{Class: Text}, nil
	}
	if _, ok := descriptors[typ]; ok {
		return Shape{Class: Descriptor, Name: typ}, nil
	}
	if m := arrayRe.FindStringSubmatch(typ); m != nil {
		return Shape{Class: Array, Elem: Elem(m[2]), N: atoi(m[1])}, nil
	}
	if m := matrixRe.FindStringSubmatch(typ); m != nil {
		return Shape{Class: Matrix, Elem: Elem(m[3]), N: atoi(m[1]), M: atoi(m[2])}, nil
	}
	if m := sliceRe.FindStringSubmatch(typ); m != nil {
		return Shape{Class: Slice, Elem: Elem(m[1])}, nil
	}
	if m := rowSliceRe.FindStringSubmatch(typ); m != nil {
		return Shape{Class: RowSlice, Elem: Elem(m[2]), N: atoi(m[1])}, nil
	}
	return Shape{}, fmt.Errorf("unsupported type %q", typ)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ElemSize is the native width of one element in bytes.
func (s Shape) ElemSize() int {
	if s.Elem == F64 {
		return 8
	}
	return 4
}

// FixedSize is the byte size of a fixed-size output, or 0 when the size is
// only known at run time.
func (s Shape) FixedSize() int {
	switch s.Class {
	case Scalar:
		return s.ElemSize()
	case Array:
		return s.ElemSize() * s.N
	case Matrix:
		return s.ElemSize() * s.N * s.M
	}
	return 0
}

// GoType renders the Go spelling of the shape.
func (s Shape) GoType() string {
	switch s.Class {
	case Scalar:
		return s.elemGo()
	case Size:
		return "int"
	case Text:
		return "string"
	case Array:
		return fmt.Sprintf("[%d]%s", s.N, s.elemGo())
	case Matrix:
		return fmt.Sprintf("[%d][%d]%s", s.N, s.M, s.elemGo())
	case Slice:
		return "[]" + s.elemGo()
	case RowSlice:
		return fmt.Sprintf("[][%d]%s", s.N, s.elemGo())
	case Descriptor:
		return s.Name
	}
	return ""
}

func (s Shape) elemGo() string {
	switch s.Elem {
	case F64:
		return "float64"
	case I32:
		return "int32"
	default:
		return "bool"
	}
}
