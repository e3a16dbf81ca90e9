package texture

import (
	"fmt"

	"github.com/db47h/shaderpipe/gl"
)

// DecodeError is returned when image data cannot be decoded. Format is the
// detected image format, empty if it was not recognized.
//
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return "decode image: " + e.Err.Error()
	}
	return "decode " + e.Format + " image: " + e.Err.Error()
}

// Unwrap returns the decoder error.
//
func (e *DecodeError) Unwrap() error { return e.Err }

// Cause implements github.com/pkg/errors causer.
//
func (e *DecodeError) Cause() error { return e.Err }

// UploadError is returned when the driver rejects pixel data. Err is the
// gl.Error raised by the upload.
//
type UploadError struct {
	Width, Height int
	Format        gl.Enum
	Err           error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %dx%d %s texture: %v", e.Width, e.Height, e.Format, e.Err)
}

// Unwrap returns the GL error.
//
func (e *UploadError) Unwrap() error { return e.Err }

// Cause implements github.com/pkg/errors causer.
//
func (e *UploadError) Cause() error { return e.Err }
