// Package scene implements the demo scenes drawn by shaderdemo. Scenes only
// talk to a gl.Context, so they run unchanged on a window or in tests.
//
package scene

import (
	"embed"
	"image"
	"io/fs"
	"time"

	"github.com/db47h/ofs"
	"github.com/db47h/shaderpipe/app/event"
	"github.com/db47h/shaderpipe/assets"
	"github.com/db47h/shaderpipe/buffer"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/geom"
	"github.com/db47h/shaderpipe/vertex"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets
var embedded embed.FS

// Defaults returns the built-in assets: shader sources under shaders/.
//
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewLoader returns an asset loader reading from fsys, falling back to the
// built-in assets. fsys may be nil.
//
func NewLoader(fsys ofs.FileSystem) *assets.Loader {
	return assets.NewLoader(fsys,
		assets.ShaderPath("shaders"),
		assets.TexturePath("textures"),
		assets.Fallback(Defaults()))
}

// A Scene owns the GL objects it draws.
//
type Scene interface {
	// Setup creates the GL objects. On error, whatever was created has been
	// released.
	Setup(ctx gl.Context, l *assets.Loader) error
	Update(dt time.Duration)
	// Draw draws the scene on a framebuffer of the given size.
	Draw(ctx gl.Context, size image.Point, frameTime time.Duration)
	Release()
}

// KeyHandler is implemented by scenes that react to the keyboard.
//
type KeyHandler interface {
	Key(ctx gl.Context, k event.Key)
}

// ClearColor is the background color of all scenes.
//
var ClearColor = mgl32.Vec4{0.07, 0.13, 0.17, 1}

type mesh struct {
	vao      *vertex.Array
	vbo, ebo *buffer.Buffer
	count    int32
}

func newMesh(ctx gl.Context, m *geom.Mesh) (*mesh, error) {
	vbo, err := buffer.New(ctx, buffer.Vertex, m.Floats())
	if err != nil {
		return nil, err
	}
	vao, err := vertex.NewArray(ctx)
	if err != nil {
		vbo.Release()
		return nil, err
	}
	// the index buffer binds to the current vertex array
	vao.Bind()
	ebo, err := buffer.New(ctx, buffer.Index, m.Indices)
	if err != nil {
		vao.Release()
		vbo.Release()
		return nil, err
	}
	vao.BindAttributes(vbo, vertex.Packed(gl.FLOAT, geom.Components...)...)
	vao.SetIndexBuffer(ebo)
	vao.Unbind()
	return &mesh{vao: vao, vbo: vbo, ebo: ebo, count: int32(len(m.Indices))}, nil
}

func (m *mesh) draw(ctx gl.Context) {
	m.vao.Bind()
	ctx.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	m.vao.Unbind()
}

func (m *mesh) release() {
	if m == nil {
		return
	}
	m.vao.Release()
	m.vbo.Release()
	m.ebo.Release()
}

// aspect returns a transform that keeps unit squares square on a
// framebuffer of the given size.
//
func aspect(size image.Point) mgl32.Mat4 {
	if size.X <= 0 || size.Y <= 0 {
		return mgl32.Ident4()
	}
	return mgl32.Scale3D(float32(size.Y)/float32(size.X), 1, 1)
}

func clearScreen(ctx gl.Context) {
	ctx.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	ctx.Clear(gl.COLOR_BUFFER_BIT)
}
