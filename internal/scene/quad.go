package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/db47h/shaderpipe/assets"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/geom"
	"github.com/db47h/shaderpipe/loop"
	"github.com/db47h/shaderpipe/shader"
	"github.com/db47h/shaderpipe/text"
	"github.com/db47h/shaderpipe/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
)

// Label geometry, in pixels.
//
const (
	LabelWidth  = 128
	LabelHeight = 24
	labelMargin = 8
)

// LabelRefresh is the interval between updates of the frame rate label.
//
const LabelRefresh = 500 * time.Millisecond

var labelBackground = color.RGBA{0, 0, 0, 255}

type quad struct {
	name  string
	log   logrus.FieldLogger
	prog  *shader.Program
	mesh  *mesh
	tex   *texture.Texture
	label *texture.Texture
	face  font.Face

	canvas *image.RGBA
	timer  loop.FrameTimer
	since  time.Duration
}

// Quad returns a scene drawing a textured quad and a frame rate label. The
// quad texture is the named texture asset, or a checkerboard if name is
// empty.
//
func Quad(name string, log logrus.FieldLogger) Scene {
	return &quad{name: name, log: log}
}

// Checker returns a w×h checkerboard of cells of the given size.
//
func Checker(w, h, cell int, c0, c1 color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := c0
			if (x/cell+y/cell)%2 == 1 {
				c = c1
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func (s *quad) Setup(ctx gl.Context, l *assets.Loader) (err error) {
	defer func() {
		if err != nil {
			s.Release()
		}
	}()
	if s.prog, err = l.Program(ctx, "texture.vert", "texture.frag"); err != nil {
		return err
	}
	if s.mesh, err = newMesh(ctx, geom.Quad()); err != nil {
		return err
	}
	if s.name != "" {
		s.tex, err = l.Texture(ctx, s.name, 0, texture.Filter(texture.LinearMipmapLinear, texture.Linear))
	} else {
		s.tex, err = texture.FromImage(ctx,
			Checker(256, 256, 32, color.RGBA{0xe0, 0x80, 0x20, 0xff}, color.RGBA{0x20, 0x20, 0x40, 0xff}),
			texture.Texture2D, 0, texture.Filter(texture.Nearest, texture.Nearest))
	}
	if err != nil {
		return err
	}
	s.label, err = texture.FromPixels(ctx,
		&texture.Pixels{Width: LabelWidth, Height: LabelHeight, Channels: 4},
		texture.Texture2D, 1,
		texture.Wrap(texture.ClampToEdge, texture.ClampToEdge),
		texture.Filter(texture.Nearest, texture.Nearest))
	if err != nil {
		return err
	}
	if s.face, err = text.Face(16); err != nil {
		return err
	}
	s.canvas = image.NewRGBA(image.Rect(0, 0, LabelWidth, LabelHeight))
	s.prog.SetVec4("uTint", mgl32.Vec4{1, 1, 1, 1})
	return s.refresh()
}

// refresh redraws the frame rate label.
func (s *quad) refresh() error {
	draw.Draw(s.canvas, s.canvas.Bounds(), image.NewUniform(labelBackground), image.Point{}, draw.Src)
	img := text.Label(s.face, fmt.Sprintf("%.0f FPS", s.timer.PerSecond()), color.White, labelBackground)
	b := img.Bounds()
	dr := image.Rectangle{Max: b.Size()}.Add(image.Pt(2, (LabelHeight-b.Dy())/2))
	draw.Draw(s.canvas, dr, img, b.Min, draw.Src)
	return s.label.SetSubImage(s.canvas.Bounds(), s.canvas, image.Point{})
}

func (s *quad) Update(time.Duration) {}

func (s *quad) Draw(ctx gl.Context, size image.Point, frameTime time.Duration) {
	s.timer.Add(frameTime)
	if s.since += frameTime; s.since >= LabelRefresh {
		s.since = 0
		if err := s.refresh(); err != nil {
			s.log.WithError(err).Warn("refresh label")
		}
	}

	clearScreen(ctx)
	// images are stored top row first, flip V
	s.tex.BindToUnit(s.prog, "uTexture", 0)
	s.prog.SetMat4("uTransform", aspect(size).Mul4(mgl32.Scale3D(1.5, -1.5, 1)))
	s.mesh.draw(ctx)

	s.label.BindToUnit(s.prog, "uTexture", 1)
	r := image.Rect(labelMargin, labelMargin, labelMargin+LabelWidth, labelMargin+LabelHeight)
	s.prog.SetMat4("uTransform", geom.RectTransform(size, r))
	s.mesh.draw(ctx)
}

func (s *quad) Release() {
	s.mesh.release()
	s.mesh = nil
	s.tex.Release()
	s.label.Release()
	s.prog.Release()
	if s.face != nil {
		s.face.Close()
		s.face = nil
	}
}
