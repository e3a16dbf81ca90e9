// Package geom builds the meshes drawn by the demos.
//
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is an interleaved vertex: position, color and texture coordinates.
//
type Vertex struct {
	Pos   mgl32.Vec3
	Color mgl32.Vec3
	UV    mgl32.Vec2
}

// Components is the number of components of each Vertex field, in order.
//
var Components = []int32{3, 3, 2}

// Mesh is an indexed triangle list.
//
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Floats returns the vertices as interleaved float32 values.
//
func (m *Mesh) Floats() []float32 {
	fs := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		fs = append(fs, v.Pos[0], v.Pos[1], v.Pos[2], v.Color[0], v.Color[1], v.Color[2], v.UV[0], v.UV[1])
	}
	return fs
}

// Triangle returns a single triangle with red, green and blue corners.
//
func Triangle() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{mgl32.Vec3{-0.5, -0.5, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{0.5, -0.5, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0.5, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

// Quad returns a white square of side 1 centered on the origin, with
// texture coordinates covering the full texture.
//
func Quad() *Mesh {
	white := mgl32.Vec3{1, 1, 1}
	return &Mesh{
		Vertices: []Vertex{
			{mgl32.Vec3{-0.5, -0.5, 0}, white, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{0.5, -0.5, 0}, white, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{0.5, 0.5, 0}, white, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{-0.5, 0.5, 0}, white, mgl32.Vec2{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// MaxDepth is the deepest subdivision accepted by Sierpinski.
//
const MaxDepth = 8

// Sierpinski returns a Sierpinski triangle inscribed in an equilateral
// triangle of side 1. At depth 0 this is the triangle itself; each level
// replaces every triangle by its three corner triangles. Vertices shared by
// adjacent triangles are emitted once.
//
// Depth is clamped to [0, MaxDepth].
//
func Sierpinski(depth int) *Mesh {
	if depth < 0 {
		depth = 0
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}
	h := float32(math.Sqrt(3))
	s := sierpinski{
		Mesh:  new(Mesh),
		index: make(map[mgl32.Vec3]uint32),
	}
	a := s.vertex(mgl32.Vec3{-0.5, -0.5 * h / 3, 0})
	b := s.vertex(mgl32.Vec3{0.5, -0.5 * h / 3, 0})
	c := s.vertex(mgl32.Vec3{0, 0.5 * h * 2 / 3, 0})
	s.subdivide(a, b, c, depth)
	return s.Mesh
}

type sierpinski struct {
	*Mesh
	index map[mgl32.Vec3]uint32
}

func (s *sierpinski) vertex(p mgl32.Vec3) uint32 {
	if i, ok := s.index[p]; ok {
		return i
	}
	i := uint32(len(s.Vertices))
	s.index[p] = i
	s.Vertices = append(s.Vertices, Vertex{
		Pos:   p,
		Color: mgl32.Vec3{p[0] + 0.5, p[1] + 0.5, 1 - (p[0] + 0.5)},
		UV:    mgl32.Vec2{p[0] + 0.5, p[1] + 0.5},
	})
	return i
}

func (s *sierpinski) mid(i, j uint32) uint32 {
	p, q := s.Vertices[i].Pos, s.Vertices[j].Pos
	return s.vertex(p.Add(q).Mul(0.5))
}

// subdivide splits the triangle with lower left a, lower right b and top c.
func (s *sierpinski) subdivide(a, b, c uint32, depth int) {
	if depth == 0 {
		s.Indices = append(s.Indices, a, b, c)
		return
	}
	ac := s.mid(a, c)
	bc := s.mid(b, c)
	ab := s.mid(a, b)
	depth--
	s.subdivide(a, ac, ab, depth)
	s.subdivide(ac, c, bc, depth)
	s.subdivide(ab, bc, b, depth)
}
