package gl

import (
	"fmt"

	"github.com/pkg/errors"
)

var enumNames = map[Enum]string{
	INVALID_ENUM:         "INVALID_ENUM",
	INVALID_VALUE:        "INVALID_VALUE",
	INVALID_OPERATION:    "INVALID_OPERATION",
	OUT_OF_MEMORY:        "OUT_OF_MEMORY",
	BYTE:                 "BYTE",
	UNSIGNED_BYTE:        "UNSIGNED_BYTE",
	SHORT:                "SHORT",
	UNSIGNED_SHORT:       "UNSIGNED_SHORT",
	INT:                  "INT",
	UNSIGNED_INT:         "UNSIGNED_INT",
	FLOAT:                "FLOAT",
	DOUBLE:               "DOUBLE",
	ARRAY_BUFFER:         "ARRAY_BUFFER",
	ELEMENT_ARRAY_BUFFER: "ELEMENT_ARRAY_BUFFER",
	VERTEX_SHADER:        "VERTEX_SHADER",
	FRAGMENT_SHADER:      "FRAGMENT_SHADER",
	TEXTURE_2D:           "TEXTURE_2D",
	RED:                  "RED",
	RG:                   "RG",
	RGB:                  "RGB",
	RGBA:                 "RGBA",
}

// String returns the GL name of the enumerant, or its hexadecimal value if
// unknown.
//
func (e Enum) String() string {
	if e == NO_ERROR {
		return "NO_ERROR"
	}
	if s, ok := enumNames[e]; ok {
		return s
	}
	return fmt.Sprintf("0x%04X", uint32(e))
}

// Error is a GL error code as returned by glGetError.
//
type Error Enum

func (e Error) Error() string {
	return "gl: " + Enum(e).String()
}

// Check returns the pending GL error, if any, and clears the error flags.
//
func Check(ctx Context) error {
	var first Enum
	for e := ctx.GetError(); e != NO_ERROR; e = ctx.GetError() {
		if first == NO_ERROR {
			first = e
		}
	}
	if first != NO_ERROR {
		return Error(first)
	}
	return nil
}

// AllocationError is returned when the driver could not allocate an object
// name. There is no point in continuing a session after one.
//
type AllocationError struct {
	Object string
}

func (e *AllocationError) Error() string {
	return "gl: failed to allocate " + e.Object
}

// IsAllocationError reports whether the cause of err is an AllocationError.
//
func IsAllocationError(err error) bool {
	var ae *AllocationError
	return errors.As(err, &ae)
}
