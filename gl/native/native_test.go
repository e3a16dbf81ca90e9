//go:build integration

package native_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"runtime"
	"testing"

	"github.com/db47h/shaderpipe/buffer"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/gl/native"
	"github.com/db47h/shaderpipe/shader"
	"github.com/db47h/shaderpipe/texture"
	"github.com/db47h/shaderpipe/vertex"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vertexSrc = `#version 330 core
layout (location = 0) in vec3 aPos;
void main()
{
    gl_Position = vec4(aPos, 1.0);
}
`
	fragmentSrc = `#version 330 core
out vec4 FragColor;
uniform sampler2D uTexture;
void main()
{
    FragColor = texture(uTexture, vec2(0.5));
}
`
)

var (
	ctx     *native.Context
	initErr error
)

func TestMain(m *testing.M) {
	runtime.LockOSThread()
	var w *glfw.Window
	if err := glfw.Init(); err != nil {
		initErr = err
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		if w, initErr = glfw.CreateWindow(64, 64, "native test", nil, nil); initErr == nil {
			w.MakeContextCurrent()
			ctx, initErr = native.Init(glfw.GetProcAddress)
		}
	}
	code := m.Run()
	if w != nil {
		w.Destroy()
	}
	glfw.Terminate()
	os.Exit(code)
}

func current(t *testing.T) *native.Context {
	if initErr != nil {
		t.Skipf("no GL 3.3 context: %v", initErr)
	}
	return ctx
}

func TestVersion(t *testing.T) {
	c := current(t)
	assert.NotEmpty(t, c.Version())
	t.Log(c.Version())
}

func TestLink(t *testing.T) {
	c := current(t)
	p, err := shader.New(c, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer p.Release()
	assert.NotZero(t, p.ID())
	assert.Equal(t, int32(gl.TRUE), c.GetProgrami(p.ID(), gl.LINK_STATUS))
	assert.Equal(t, int32(0), p.AttribLocation("aPos"))
	require.NoError(t, gl.Check(c))
}

func TestCompileError(t *testing.T) {
	c := current(t)
	broken := bytes.Replace([]byte(vertexSrc), []byte("1.0);"), []byte("1.0)"), 1)
	_, err := shader.New(c, string(broken), fragmentSrc)
	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, shader.Vertex, ce.Stage)
	assert.NotEmpty(t, ce.Log)
	t.Log(ce.Log)
}

func TestTextureBind(t *testing.T) {
	c := current(t)
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 1, color.NRGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	tex, err := texture.New(c, &buf, texture.Texture2D, 0)
	require.NoError(t, err)
	defer tex.Release()
	tex.Bind()
	assert.Equal(t, tex.ID(), gl.Bound(c, gl.TEXTURE_2D))
	tex.Unbind()
	assert.Zero(t, gl.Bound(c, gl.TEXTURE_2D))
	require.NoError(t, gl.Check(c))
}

func TestIndexedDraw(t *testing.T) {
	c := current(t)
	p, err := shader.New(c, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer p.Release()

	vbo, err := buffer.New(c, buffer.Vertex, []float32{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0})
	require.NoError(t, err)
	defer vbo.Release()
	va, err := vertex.NewArray(c)
	require.NoError(t, err)
	defer va.Release()
	va.Bind()
	ebo, err := buffer.New(c, buffer.Index, []uint32{0, 1, 2, 2, 3, 0})
	require.NoError(t, err)
	defer ebo.Release()
	assert.NotZero(t, ebo.ID())
	assert.Equal(t, buffer.Index, ebo.Kind())

	va.BindAttributes(vbo, vertex.Packed(gl.FLOAT, 3)...)
	va.SetIndexBuffer(ebo)
	p.Activate()
	c.DrawElements(gl.TRIANGLES, int32(ebo.Len()), ebo.Type(), 0)
	require.NoError(t, gl.Check(c))

	// read back while the vertex array holding the index buffer is current
	got := make([]uint32, 6)
	require.NoError(t, buffer.Read(ebo, 0, got))
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, got)
	va.Unbind()
}
