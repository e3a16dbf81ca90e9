package texture

import (
	"image"
	"image/draw"
	"io"

	// image formats supported by Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/db47h/shaderpipe/gl"
	"github.com/pkg/errors"
)

// Pixels is decoded image data, rows top to bottom with no padding.
//
type Pixels struct {
	Width    int
	Height   int
	Channels int // 1 to 4
	Pix      []byte
}

// Format returns the GL pixel format matching the channel count: RED, RG,
// RGB or RGBA.
//
func (p *Pixels) Format() gl.Enum {
	switch p.Channels {
	case 1:
		return gl.RED
	case 2:
		return gl.RG
	case 3:
		return gl.RGB
	}
	return gl.RGBA
}

// Stride returns the length in bytes of one row.
//
func (p *Pixels) Stride() int { return p.Width * p.Channels }

func (p *Pixels) validate() error {
	switch {
	case p.Channels < 1 || p.Channels > 4:
		return errors.Errorf("unsupported channel count %d", p.Channels)
	case p.Width <= 0 || p.Height <= 0:
		return errors.Errorf("invalid image size %dx%d", p.Width, p.Height)
	case p.Pix != nil && len(p.Pix) != p.Stride()*p.Height:
		return errors.Errorf("%dx%d image with %d channels needs %d bytes, got %d",
			p.Width, p.Height, p.Channels, p.Stride()*p.Height, len(p.Pix))
	}
	return nil
}

// PixelsOf returns the pixels of img as 4-channel RGBA. The pixel slice of
// an *image.RGBA with no padding is shared, not copied.
//
func PixelsOf(img image.Image) *Pixels {
	sr := img.Bounds()
	dr := image.Rectangle{Max: sr.Size()}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*dr.Dx() || len(rgba.Pix) != 4*dr.Dx()*dr.Dy() {
		rgba = image.NewRGBA(dr)
		draw.Draw(rgba, dr, img, sr.Min, draw.Src)
	}
	return &Pixels{Width: dr.Dx(), Height: dr.Dy(), Channels: 4, Pix: rgba.Pix}
}

// Decode decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image into 4-channel
// RGBA pixels, whatever the color model of the source.
//
func Decode(r io.Reader) (*Pixels, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return PixelsOf(img), nil
}
