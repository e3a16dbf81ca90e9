package scene

import (
	"image"
	"math"
	"time"

	"github.com/db47h/shaderpipe/assets"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/geom"
	"github.com/db47h/shaderpipe/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// RotationSpeed is the rotation speed of the triangle scene, in radians per
// second.
//
const RotationSpeed = math.Pi / 4

type triangle struct {
	prog  *shader.Program
	mesh  *mesh
	angle float32
}

// Triangle returns a scene drawing a rotating triangle with interpolated
// vertex colors.
//
func Triangle() Scene {
	return new(triangle)
}

func (s *triangle) Setup(ctx gl.Context, l *assets.Loader) error {
	p, err := l.Program(ctx, "color.vert", "color.frag")
	if err != nil {
		return err
	}
	m, err := newMesh(ctx, geom.Triangle())
	if err != nil {
		p.Release()
		return err
	}
	s.prog, s.mesh = p, m
	s.prog.SetVec4("uTint", mgl32.Vec4{1, 1, 1, 1})
	return nil
}

func (s *triangle) Update(dt time.Duration) {
	s.angle += float32(dt.Seconds() * RotationSpeed)
	if s.angle > 2*math.Pi {
		s.angle -= 2 * math.Pi
	}
}

func (s *triangle) Draw(ctx gl.Context, size image.Point, _ time.Duration) {
	clearScreen(ctx)
	s.prog.SetMat4("uTransform", aspect(size).Mul4(mgl32.HomogRotate3DZ(s.angle)))
	s.mesh.draw(ctx)
}

func (s *triangle) Release() {
	s.mesh.release()
	s.prog.Release()
}
