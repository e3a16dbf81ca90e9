package geom

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// FbToGL converts framebuffer pixel coordinates, origin at the top left, to
// GL normalized device coordinates in range [-1, 1].
//
func FbToGL(fb image.Point, x, y float32) mgl32.Vec2 {
	return mgl32.Vec2{
		2*x/float32(fb.X) - 1,
		-2*y/float32(fb.Y) + 1,
	}
}

// GLToFb converts GL normalized device coordinates to framebuffer pixel
// coordinates.
//
func GLToFb(fb image.Point, p mgl32.Vec2) (x, y float32) {
	return (p[0] + 1) * float32(fb.X) / 2, (1 - p[1]) * float32(fb.Y) / 2
}

// RectTransform returns the transform mapping the Quad mesh onto the pixel
// rectangle r of a framebuffer of size fb. The V axis is flipped, so that
// images stored top row first appear upright.
//
func RectTransform(fb image.Point, r image.Rectangle) mgl32.Mat4 {
	if fb.X <= 0 || fb.Y <= 0 {
		return mgl32.Ident4()
	}
	lo := FbToGL(fb, float32(r.Min.X), float32(r.Min.Y))
	hi := FbToGL(fb, float32(r.Max.X), float32(r.Max.Y))
	c := lo.Add(hi).Mul(0.5)
	// hi is below lo on screen, so hi[1]-lo[1] is negative
	return mgl32.Translate3D(c[0], c[1], 0).Mul4(mgl32.Scale3D(hi[0]-lo[0], hi[1]-lo[1], 1))
}
