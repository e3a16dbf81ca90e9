package scene

import (
	"image"
	"math"
	"time"

	"github.com/db47h/shaderpipe/app/event"
	"github.com/db47h/shaderpipe/assets"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/geom"
	"github.com/db47h/shaderpipe/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

type sierpinski struct {
	prog  *shader.Program
	mesh  *mesh
	depth int
	t     time.Duration
	log   logrus.FieldLogger
}

// Sierpinski returns a scene drawing a Sierpinski triangle subdivided depth
// times, clamped to [0, geom.MaxDepth]. The plus and minus keys change the
// depth.
//
func Sierpinski(depth int, log logrus.FieldLogger) Scene {
	if depth < 0 {
		depth = 0
	}
	if depth > geom.MaxDepth {
		depth = geom.MaxDepth
	}
	return &sierpinski{depth: depth, log: log}
}

func (s *sierpinski) Setup(ctx gl.Context, l *assets.Loader) error {
	p, err := l.Program(ctx, "color.vert", "color.frag")
	if err != nil {
		return err
	}
	s.prog = p
	if err = s.rebuild(ctx); err != nil {
		p.Release()
		return err
	}
	return nil
}

// Depth returns the current subdivision depth.
//
func (s *sierpinski) Depth() int {
	return s.depth
}

func (s *sierpinski) rebuild(ctx gl.Context) error {
	g := geom.Sierpinski(s.depth)
	m, err := newMesh(ctx, g)
	if err != nil {
		return err
	}
	s.mesh.release()
	s.mesh = m
	s.log.WithFields(logrus.Fields{
		"depth":     s.depth,
		"vertices":  len(g.Vertices),
		"triangles": len(g.Indices) / 3,
	}).Debug("sierpinski mesh")
	return nil
}

func (s *sierpinski) Key(ctx gl.Context, k event.Key) {
	d := s.depth
	switch k {
	case event.KeyPlus, event.KeyUp:
		d++
	case event.KeyMinus, event.KeyDown:
		d--
	default:
		return
	}
	if d < 0 || d > geom.MaxDepth {
		return
	}
	prev := s.depth
	s.depth = d
	if err := s.rebuild(ctx); err != nil {
		s.log.WithError(err).Error("rebuild mesh")
		s.depth = prev
	}
}

func (s *sierpinski) Update(dt time.Duration) {
	s.t += dt
}

func (s *sierpinski) Draw(ctx gl.Context, size image.Point, _ time.Duration) {
	clearScreen(ctx)
	// slow pulse between 60% and 100% brightness
	k := float32(0.8 + 0.2*math.Sin(s.t.Seconds()*2))
	s.prog.SetVec4("uTint", mgl32.Vec4{k, k, k, 1})
	s.prog.SetMat4("uTransform", aspect(size).Mul4(mgl32.Scale3D(1.6, 1.6, 1)))
	s.mesh.draw(ctx)
}

func (s *sierpinski) Release() {
	s.mesh.release()
	s.mesh = nil
	s.prog.Release()
}
