package texture_test

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"testing"

	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/gl/gltest"
	"github.com/db47h/shaderpipe/shader"
	"github.com/db47h/shaderpipe/texture"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// checker returns a 2×2 opaque image: red, green / blue, white.
//
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

func paletted(src *image.NRGBA) *image.Paletted {
	pal := color.Palette{}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			pal = append(pal, src.At(x, y))
		}
	}
	dst := image.NewPaletted(src.Bounds(), pal)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			dst.SetColorIndex(x, y, uint8(y*2+x))
		}
	}
	return dst
}

var checkerPix = []byte{
	255, 0, 0, 255, 0, 255, 0, 255,
	0, 0, 255, 255, 255, 255, 255, 255,
}

func encodePNG(t *testing.T, img image.Image) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewFromPNG(t *testing.T) {
	ctx := gltest.New()
	tex, err := texture.New(ctx, bytes.NewReader(encodePNG(t, checker())), texture.Texture2D, 0)
	require.NoError(t, err)
	defer tex.Release()

	assert.NotZero(t, tex.ID())
	assert.Equal(t, image.Pt(2, 2), tex.Size())
	assert.Equal(t, gl.RGBA, tex.Format())
	assert.Equal(t, texture.Texture2D, tex.Target())

	obj := ctx.TextureObject(tex.ID())
	require.NotNil(t, obj)
	assert.Equal(t, gl.RGBA, obj.Internal)
	assert.Equal(t, gl.RGBA, obj.Format)
	assert.Equal(t, checkerPix, obj.Pix)
	assert.Equal(t, int32(gl.REPEAT), obj.Params[gl.TEXTURE_WRAP_S])
	assert.Equal(t, int32(gl.REPEAT), obj.Params[gl.TEXTURE_WRAP_T])
	assert.Equal(t, int32(gl.LINEAR), obj.Params[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, int32(gl.LINEAR), obj.Params[gl.TEXTURE_MAG_FILTER])
	assert.False(t, obj.Mipmapped)
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())

	// unbound after creation, alignment restored
	assert.Zero(t, ctx.TextureUnit(0, gl.TEXTURE_2D))
	assert.Equal(t, int32(4), ctx.UnpackAlignment())

	tex.Bind()
	assert.Equal(t, tex.ID(), ctx.TextureUnit(0, gl.TEXTURE_2D))
	tex.Unbind()
	assert.Zero(t, ctx.TextureUnit(0, gl.TEXTURE_2D))
}

func TestDecodeFormats(t *testing.T) {
	img := checker()
	encode := func(f func(*bytes.Buffer) error) []byte {
		var buf bytes.Buffer
		require.NoError(t, f(&buf))
		return buf.Bytes()
	}
	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"png", encodePNG(t, img)},
		{"bmp", encode(func(b *bytes.Buffer) error { return bmp.Encode(b, img) })},
		{"tiff", encode(func(b *bytes.Buffer) error { return tiff.Encode(b, img, nil) })},
		{"gif", encode(func(b *bytes.Buffer) error { return gif.Encode(b, paletted(img), nil) })},
	} {
		t.Run(tc.name, func(t *testing.T) {
			px, err := texture.Decode(bytes.NewReader(tc.data))
			require.NoError(t, err)
			assert.Equal(t, 2, px.Width)
			assert.Equal(t, 2, px.Height)
			assert.Equal(t, 4, px.Channels)
			assert.Equal(t, 8, px.Stride())
			assert.Equal(t, gl.RGBA, px.Format())
			assert.Equal(t, checkerPix, px.Pix)
		})
	}
}

func TestDecodeErrorAllocatesNothing(t *testing.T) {
	ctx := gltest.New()

	tex, err := texture.New(ctx, bytes.NewReader([]byte("not an image")), texture.Texture2D, 0)
	assert.Nil(t, tex)
	var de *texture.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Empty(t, de.Format)
	assert.Equal(t, image.ErrFormat, errors.Cause(err))

	data := encodePNG(t, checker())
	_, err = texture.New(ctx, bytes.NewReader(data[:len(data)/2]), texture.Texture2D, 0)
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "png", de.Format)
	assert.Contains(t, err.Error(), "decode png image: ")

	assert.Zero(t, ctx.Live(gltest.Texture))
	assert.Zero(t, ctx.Deleted(gltest.Texture))
}

func TestChannelCountMatchesFormat(t *testing.T) {
	for _, tc := range []struct {
		channels int
		format   gl.Enum
	}{
		{1, gl.RED},
		{2, gl.RG},
		{3, gl.RGB},
		{4, gl.RGBA},
	} {
		t.Run(tc.format.String(), func(t *testing.T) {
			ctx := gltest.New()
			// 3 pixels wide, so that most rows are not 4-byte aligned
			px := &texture.Pixels{Width: 3, Height: 2, Channels: tc.channels, Pix: make([]byte, 3*2*tc.channels)}
			for i := range px.Pix {
				px.Pix[i] = byte(i)
			}
			tex, err := texture.FromPixels(ctx, px, texture.Texture2D, 0)
			require.NoError(t, err)
			obj := ctx.TextureObject(tex.ID())
			assert.Equal(t, tc.format, obj.Format)
			assert.Equal(t, tc.format, obj.Internal)
			assert.Equal(t, px.Pix, obj.Pix)
			assert.Equal(t, tc.format, tex.Format())
			assert.Equal(t, int32(4), ctx.UnpackAlignment())
		})
	}
}

func TestInvalidPixels(t *testing.T) {
	ctx := gltest.New()
	for _, px := range []*texture.Pixels{
		{Width: 1, Height: 1, Channels: 5, Pix: make([]byte, 5)},
		{Width: 0, Height: 1, Channels: 4},
		{Width: 2, Height: 2, Channels: 4, Pix: make([]byte, 15)},
	} {
		_, err := texture.FromPixels(ctx, px, texture.Texture2D, 0)
		assert.Error(t, err)
	}
	_, err := texture.FromImage(ctx, checker(), texture.Texture2D, gltest.DefaultTextureUnits)
	assert.EqualError(t, err, "texture unit 48 out of range [0:48)")
	assert.Zero(t, ctx.Live(gltest.Texture))
}

func TestUploadError(t *testing.T) {
	ctx := gltest.New()
	ctx.MaxTextureSize = 1

	tex, err := texture.FromImage(ctx, checker(), texture.Texture2D, 0)
	assert.Nil(t, tex)
	var ue *texture.UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, gl.Error(gl.INVALID_VALUE), errors.Cause(err))
	assert.Equal(t, "upload 2x2 RGBA texture: gl: INVALID_VALUE", err.Error())

	assert.Zero(t, ctx.Live(gltest.Texture))
	assert.Equal(t, 1, ctx.Deleted(gltest.Texture))
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())
}

func TestAllocationFailure(t *testing.T) {
	ctx := gltest.New()
	ctx.Fail(gltest.Texture, 1)
	tex, err := texture.FromImage(ctx, checker(), texture.Texture2D, 0)
	assert.Nil(t, tex)
	assert.True(t, gl.IsAllocationError(err))
}

func TestMipmaps(t *testing.T) {
	ctx := gltest.New()
	tex, err := texture.FromImage(ctx, checker(), texture.Texture2D, 0, texture.Filter(texture.LinearMipmapLinear, texture.Linear))
	require.NoError(t, err)
	assert.True(t, ctx.TextureObject(tex.ID()).Mipmapped)

	// storage only: mipmaps are built on first bind
	empty, err := texture.FromPixels(ctx, &texture.Pixels{Width: 4, Height: 4, Channels: 4}, texture.Texture2D, 1,
		texture.Filter(texture.NearestMipmapNearest, texture.Nearest))
	require.NoError(t, err)
	assert.False(t, ctx.TextureObject(empty.ID()).Mipmapped)
	empty.Bind()
	assert.True(t, ctx.TextureObject(empty.ID()).Mipmapped)
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())
}

func TestTextureUnits(t *testing.T) {
	ctx := gltest.New()
	tex, err := texture.FromImage(ctx, checker(), texture.Texture2D, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Unit())
	assert.Zero(t, ctx.TextureUnit(3, gl.TEXTURE_2D))

	tex.Bind()
	assert.Equal(t, tex.ID(), ctx.TextureUnit(3, gl.TEXTURE_2D))
	assert.Zero(t, ctx.TextureUnit(0, gl.TEXTURE_2D))
	assert.Equal(t, int32(gl.TEXTURE0+3), ctx.GetInteger(gl.ACTIVE_TEXTURE))

	// units are bounded by the combined limit, not the fragment stage's
	require.Greater(t, gltest.DefaultTextureUnits, gltest.DefaultFragmentUnits)
	high, err := texture.FromImage(ctx, checker(), texture.Texture2D, gltest.DefaultFragmentUnits+4)
	require.NoError(t, err)
	high.Bind()
	assert.Equal(t, high.ID(), ctx.TextureUnit(gltest.DefaultFragmentUnits+4, gl.TEXTURE_2D))
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())
}

func TestPendingErrorIsNotUploadError(t *testing.T) {
	ctx := gltest.New()
	px := &texture.Pixels{Width: 1, Height: 1, Channels: 4, Pix: []byte{1, 2, 3, 255}}

	ctx.SetError(gl.INVALID_OPERATION)
	tex, err := texture.FromPixels(ctx, px, texture.Texture2D, 0)
	assert.Nil(t, tex)
	var ue *texture.UploadError
	assert.False(t, errors.As(err, &ue))
	assert.Equal(t, gl.Error(gl.INVALID_OPERATION), errors.Cause(err))
	assert.Contains(t, err.Error(), "pending GL error before texture upload")
	assert.Zero(t, ctx.Live(gltest.Texture))
	assert.Zero(t, ctx.Deleted(gltest.Texture))

	tex, err = texture.FromPixels(ctx, px, texture.Texture2D, 0)
	require.NoError(t, err)

	ctx.SetError(gl.INVALID_OPERATION)
	err = tex.SetSubImage(image.Rect(0, 0, 1, 1), image.NewUniform(color.White), image.Point{})
	assert.False(t, errors.As(err, &ue))
	assert.Equal(t, gl.Error(gl.INVALID_OPERATION), errors.Cause(err))
	assert.Equal(t, []byte{1, 2, 3, 255}, ctx.TextureObject(tex.ID()).Pix)
	assert.Equal(t, 1, ctx.Live(gltest.Texture))
}

const (
	vertexSrc = `#version 330 core
layout (location = 0) in vec2 aPos;
out vec2 vUV;
void main()
{
    gl_Position = vec4(aPos, 0.0, 1.0);
    vUV = aPos;
}
`
	fragmentSrc = `#version 330 core
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D uTexture;
void main()
{
    FragColor = texture(uTexture, vUV);
}
`
)

func TestBindToUnit(t *testing.T) {
	ctx := gltest.New()
	prog, err := shader.New(ctx, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	tex, err := texture.FromImage(ctx, checker(), texture.Texture2D, 0)
	require.NoError(t, err)

	tex.BindToUnit(prog, "uTexture", 2)
	assert.True(t, prog.Active())
	assert.Equal(t, 2, tex.Unit())
	assert.Equal(t, tex.ID(), ctx.TextureUnit(2, gl.TEXTURE_2D))
	v, ok := ctx.Uniform(prog.ID(), "uTexture")
	require.True(t, ok)
	assert.Equal(t, []float32{2}, v)
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())

	assert.PanicsWithError(t, "texture unit -1 out of range [0:48)", func() {
		tex.BindToUnit(prog, "uTexture", -1)
	})
	assert.PanicsWithError(t, "texture unit 48 out of range [0:48)", func() {
		tex.BindToUnit(prog, "uTexture", gltest.DefaultTextureUnits)
	})
	assert.Equal(t, 2, tex.Unit())
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())
}

func TestParametersRestoreBindings(t *testing.T) {
	ctx := gltest.New()
	other, err := texture.FromImage(ctx, checker(), texture.Texture2D, 0)
	require.NoError(t, err)
	tex, err := texture.FromImage(ctx, checker(), texture.Texture2D, 0)
	require.NoError(t, err)
	other.Bind()
	ctx.ActiveTexture(gl.TEXTURE0 + 5)

	tex.Parameters(texture.Wrap(texture.ClampToBorder, texture.MirroredRepeat), texture.BorderColor(color.White))

	obj := ctx.TextureObject(tex.ID())
	assert.Equal(t, int32(gl.CLAMP_TO_BORDER), obj.Params[gl.TEXTURE_WRAP_S])
	assert.Equal(t, int32(gl.MIRRORED_REPEAT), obj.Params[gl.TEXTURE_WRAP_T])
	assert.Equal(t, []float32{1, 1, 1, 1}, obj.Border)
	assert.Equal(t, int32(gl.REPEAT), ctx.TextureObject(other.ID()).Params[gl.TEXTURE_WRAP_S])

	assert.Equal(t, other.ID(), ctx.TextureUnit(0, gl.TEXTURE_2D))
	assert.Equal(t, int32(gl.TEXTURE0+5), ctx.GetInteger(gl.ACTIVE_TEXTURE))
}

func TestSetSubImage(t *testing.T) {
	ctx := gltest.New()
	tex, err := texture.FromPixels(ctx, &texture.Pixels{Width: 4, Height: 4, Channels: 4}, texture.Texture2D, 0)
	require.NoError(t, err)

	red := image.NewUniform(color.RGBA{255, 0, 0, 255})
	require.NoError(t, tex.SetSubImage(image.Rect(1, 1, 3, 3), red, image.Point{}))

	obj := ctx.TextureObject(tex.ID())
	px := func(x, y int) []byte { return obj.Pix[(y*4+x)*4 : (y*4+x)*4+4] }
	assert.Equal(t, []byte{255, 0, 0, 255}, px(1, 1))
	assert.Equal(t, []byte{255, 0, 0, 255}, px(2, 2))
	assert.Equal(t, []byte{0, 0, 0, 0}, px(0, 0))
	assert.Equal(t, []byte{0, 0, 0, 0}, px(3, 1))
	assert.Equal(t, 2, obj.Uploads)
	assert.Zero(t, ctx.TextureUnit(0, gl.TEXTURE_2D))

	// clipped to the texture bounds
	require.NoError(t, tex.SetSubImage(image.Rect(3, 3, 10, 10), checker(), image.Point{}))
	assert.Equal(t, []byte{255, 0, 0, 255}, px(3, 3))

	// clipped at the Min corner, the source point moves with it
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{1, 1, 1, 255})
	src.Set(1, 1, color.RGBA{9, 9, 9, 255})
	small, err := texture.FromPixels(ctx, &texture.Pixels{Width: 2, Height: 2, Channels: 4, Pix: make([]byte, 16)}, texture.Texture2D, 0)
	require.NoError(t, err)
	require.NoError(t, small.SetSubImage(image.Rect(-1, -1, 1, 1), src, image.Point{}))
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(dst, image.Rect(-1, -1, 1, 1), src, image.Point{}, draw.Src)
	assert.Equal(t, dst.Pix, ctx.TextureObject(small.ID()).Pix)
	assert.Equal(t, []byte{9, 9, 9, 255}, ctx.TextureObject(small.ID()).Pix[:4])

	gray, err := texture.FromPixels(ctx, &texture.Pixels{Width: 1, Height: 1, Channels: 1, Pix: []byte{7}}, texture.Texture2D, 0)
	require.NoError(t, err)
	assert.Error(t, gray.SetSubImage(image.Rect(0, 0, 1, 1), red, image.Point{}))

	tex.Release()
	assert.Error(t, tex.SetSubImage(image.Rect(0, 0, 1, 1), red, image.Point{}))
}

func TestReleaseOnce(t *testing.T) {
	ctx := gltest.New()
	tex, err := texture.FromImage(ctx, checker(), texture.Texture2D, 0)
	require.NoError(t, err)
	tex.Bind()
	tex.Release()
	tex.Release()
	assert.Zero(t, tex.ID())
	assert.Zero(t, ctx.Live(gltest.Texture))
	assert.Equal(t, 1, ctx.Deleted(gltest.Texture))
	// deleting a bound texture reverts the binding to 0
	assert.Zero(t, ctx.TextureUnit(0, gl.TEXTURE_2D))
}

func TestPixelsOfSharesRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	px := texture.PixelsOf(img)
	assert.Equal(t, 4, px.Channels)
	px.Pix[0] = 9
	assert.Equal(t, uint8(9), img.Pix[0])

	sub := image.NewRGBA(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(1, 1, 3, 2))
	px = texture.PixelsOf(sub)
	assert.Equal(t, 2, px.Width)
	assert.Equal(t, 1, px.Height)
	assert.Len(t, px.Pix, 8)
}
