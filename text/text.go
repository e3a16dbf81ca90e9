// Package text renders short strings into images suitable for texture
// uploads.
//
package text

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	// see subPixels() in github.com/golang/freetype/truetype/face.go
	SubPixelsX = 8
	SubPixelsY = 8
)

// Face returns a Go Regular face of the given size in points, at 72 DPI.
//
func Face(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse Go Regular")
	}
	return NewFace(f, size), nil
}

// NewFace returns a face for f with full hinting at 72 DPI.
//
func NewFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: SubPixelsX,
		SubPixelsY: SubPixelsY,
	})
}

// Bounds returns the pixel bounds of s drawn with face at a dot equal to the
// origin.
//
func Bounds(face font.Face, s string) image.Rectangle {
	b, _ := font.BoundString(face, s)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}

// Label draws s in fg over bg into a new image just large enough to hold it,
// plus a one pixel margin.
//
func Label(face font.Face, s string, fg, bg color.Color) *image.RGBA {
	r := Bounds(face, s)
	sz := r.Size()
	dst := image.NewRGBA(image.Rect(0, 0, sz.X+2, sz.Y+2))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(1-r.Min.X, 1-r.Min.Y),
	}
	d.DrawString(s)
	return dst
}
