package assets_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/db47h/ofs"
	"github.com/db47h/shaderpipe/assets"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/gl/gltest"
	"github.com/db47h/shaderpipe/shader"
	"github.com/db47h/shaderpipe/texture"
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
uniform vec4 uColor;
void main()
{
    FragColor = uColor;
}
`
)

func pngData(t *testing.T) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{10, 20, 30, 255})
	img.Set(1, 0, color.NRGBA{40, 50, 60, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func embedded(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"shaders/basic.vert":  {Data: []byte(vertexSrc)},
		"shaders/basic.frag":  {Data: []byte(fragmentSrc)},
		"shaders/broken.frag": {Data: []byte("void main() {\n")},
		"textures/dots.png":   {Data: pngData(t)},
		"textures/bad.png":    {Data: []byte("garbage")},
	}
}

func newLoader(t *testing.T, fsys ofs.FileSystem) *assets.Loader {
	return assets.NewLoader(fsys,
		assets.ShaderPath("shaders"),
		assets.TexturePath("textures"),
		assets.Fallback(embedded(t)))
}

func TestFallback(t *testing.T) {
	l := newLoader(t, nil)
	src, err := l.Source("basic.vert")
	require.NoError(t, err)
	assert.Equal(t, vertexSrc, src)

	px, err := l.Image("dots.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 255}, px.Pix)

	_, err = l.Source("missing.vert")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "shader asset missing.vert")
}

func TestOverlayTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	custom := "// user override\n" + vertexSrc
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "basic.vert"), []byte(custom), 0o644))

	var ovl ofs.Overlay
	require.NoError(t, ovl.Add(false, dir))
	l := newLoader(t, &ovl)

	src, err := l.Source("basic.vert")
	require.NoError(t, err)
	assert.Equal(t, custom, src)

	// not in the overlay
	src, err = l.Source("basic.frag")
	require.NoError(t, err)
	assert.Equal(t, fragmentSrc, src)
}

func TestProgram(t *testing.T) {
	ctx := gltest.New()
	l := newLoader(t, nil)

	p, err := l.Program(ctx, "basic.vert", "basic.frag")
	require.NoError(t, err)
	assert.NotZero(t, p.ID())
	p.Release()

	_, err = l.Program(ctx, "basic.vert", "broken.frag")
	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, shader.Fragment, ce.Stage)
	assert.Contains(t, err.Error(), "build shader asset broken.frag: compile fragment shader: ")
	assert.Zero(t, ctx.Live(gltest.Shader))
	assert.Zero(t, ctx.Live(gltest.Program))
}

func TestTexture(t *testing.T) {
	ctx := gltest.New()
	l := newLoader(t, nil)

	tex, err := l.Texture(ctx, "dots.png", 1, texture.Filter(texture.Nearest, texture.Nearest))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 1), tex.Size())
	assert.Equal(t, 1, tex.Unit())
	assert.Equal(t, int32(gl.NEAREST), ctx.TextureObject(tex.ID()).Params[gl.TEXTURE_MIN_FILTER])

	_, err = l.Texture(ctx, "bad.png", 0)
	var de *texture.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, err.Error(), "texture asset bad.png")
	assert.Equal(t, 1, ctx.Live(gltest.Texture))
}
