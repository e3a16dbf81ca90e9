package gl

import (
	"image/color"
	"unsafe"
)

// Numeric is the set of element types that can be uploaded to a GL buffer.
//
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

// TypeOf returns the GL type enumerant matching E.
//
func TypeOf[E Numeric]() Enum {
	var z E
	switch any(z).(type) {
	case int8:
		return BYTE
	case uint8:
		return UNSIGNED_BYTE
	case int16:
		return SHORT
	case uint16:
		return UNSIGNED_SHORT
	case int32:
		return INT
	case uint32:
		return UNSIGNED_INT
	case float32:
		return FLOAT
	case float64:
		return DOUBLE
	}
	// named types: fall back on size and a float probe.
	switch unsafe.Sizeof(z) {
	case 1:
		if z-1 > z {
			return UNSIGNED_BYTE
		}
		return BYTE
	case 2:
		if z-1 > z {
			return UNSIGNED_SHORT
		}
		return SHORT
	case 4:
		if isFloat(z) {
			return FLOAT
		}
		if z-1 > z {
			return UNSIGNED_INT
		}
		return INT
	default:
		return DOUBLE
	}
}

func isFloat[E Numeric](z E) bool {
	half := E(1) / 2
	return half != 0 && z == 0
}

// SizeOf returns the size in bytes of one element of type E.
//
func SizeOf[E Numeric]() int {
	var z E
	return int(unsafe.Sizeof(z))
}

// TypeSize returns the size in bytes of one element of GL type typ.
//
func TypeSize(typ Enum) int {
	switch typ {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case INT, UNSIGNED_INT, FLOAT:
		return 4
	case DOUBLE:
		return 8
	}
	panic("gl: invalid type " + typ.String())
}

// Bytes returns the in-memory representation of data. The returned slice
// aliases data.
//
func Bytes[E Numeric](data []E) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*SizeOf[E]())
}

// Color implements color.Color. It stores alpha premultiplied color components in
// the range [0, 1],
//
type Color struct {
	R, G, B, A float32
}

// RGBA implements color.Color.
//
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(c.R*0xffff) & 0xffff, uint32(c.G*0xffff) & 0xffff, uint32(c.B*0xffff) & 0xffff, uint32(c.A*0xffff) & 0xffff
}

// ColorModel converts any color.Color to a Color; i.e. the result can safely be
// casted to a Color.
//
var ColorModel = color.ModelFunc(colorModel)

func colorModel(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	return Color{R: float32(r) / 0xffff, G: float32(g) / 0xffff, B: float32(b) / 0xffff, A: float32(a) / 0xffff}
}
