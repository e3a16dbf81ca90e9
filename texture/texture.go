// Package texture wraps GL texture objects.
//
// Textures are created from encoded images (New), decoded images (FromImage)
// or raw pixel data (FromPixels). The upload format always matches the
// channel count of the pixel data: decoded images are 4-channel RGBA, raw
// pixel data may have 1 to 4 channels.
//
package texture

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/nocopy"
	"github.com/db47h/shaderpipe/shader"
	"github.com/pkg/errors"
)

// Target is a texture binding target.
//
type Target gl.Enum

// Supported targets.
//
const (
	Texture2D = Target(gl.TEXTURE_2D)
)

// FilterMode selects how to filter textures.
//
type FilterMode int32

// FilterMode values map directly to their OpenGL equivalents.
//
const (
	Nearest              FilterMode = FilterMode(gl.NEAREST)
	Linear                          = FilterMode(gl.LINEAR)
	NearestMipmapNearest            = FilterMode(gl.NEAREST_MIPMAP_NEAREST)
	NearestMipmapLinear             = FilterMode(gl.NEAREST_MIPMAP_LINEAR)
	LinearMipmapNearest             = FilterMode(gl.LINEAR_MIPMAP_NEAREST)
	LinearMipmapLinear              = FilterMode(gl.LINEAR_MIPMAP_LINEAR)
)

func (f FilterMode) mipmap() bool {
	switch f {
	case NearestMipmapNearest, NearestMipmapLinear, LinearMipmapNearest, LinearMipmapLinear:
		return true
	}
	return false
}

// WrapMode selects how textures wrap when texture coordinates get outside of
// the range [0, 1].
//
type WrapMode int32

// WrapMode values map directly to their OpenGL equivalents.
//
const (
	Repeat         WrapMode = WrapMode(gl.REPEAT)
	MirroredRepeat          = WrapMode(gl.MIRRORED_REPEAT)
	ClampToEdge             = WrapMode(gl.CLAMP_TO_EDGE)
	ClampToBorder           = WrapMode(gl.CLAMP_TO_BORDER)
)

type tp struct {
	wrapS, wrapT         WrapMode
	minFilter, magFilter FilterMode
	border               color.Color
}

// Parameter is implemented by functions setting texture parameters. See New.
//
type Parameter interface {
	set(*tp)
}

type optionFunc func(*tp)

func (f optionFunc) set(p *tp) {
	f(p)
}

// Wrap sets the TEXTURE_WRAP_S and TEXTURE_WRAP_T texture parameters.
//
func Wrap(wrapS, wrapT WrapMode) Parameter {
	return optionFunc(func(p *tp) {
		p.wrapS = wrapS
		p.wrapT = wrapT
	})
}

// Filter sets the TEXTURE_MIN_FILTER and TEXTURE_MAG_FILTER texture
// parameters. Mipmaps are generated if and only if min is one of the mipmap
// filters.
//
func Filter(min, mag FilterMode) Parameter {
	return optionFunc(func(p *tp) {
		p.minFilter = min
		p.magFilter = mag
	})
}

// BorderColor sets the TEXTURE_BORDER_COLOR texture parameter. The color is
// stored alpha premultiplied, like texture pixels.
//
func BorderColor(c color.Color) Parameter {
	return optionFunc(func(p *tp) {
		p.border = c
	})
}

// defaults are applied to every new texture, before user parameters.
var defaults = []Parameter{Wrap(Repeat, Repeat), Filter(Linear, Linear)}

// A Texture owns one GL texture object attached to a texture unit.
//
// A Texture must not be copied; share the pointer instead.
//
type Texture struct {
	noCopy nocopy.NoCopy
	ctx    gl.Context
	id     uint32
	target Target
	unit   int
	width  int
	height int
	format gl.Enum
	mipmap bool
	dirty  bool
}

// New decodes an image from r and uploads it to a new texture on the given
// texture unit. See FromPixels.
//
// The image is decoded before any GL object is created, so a *DecodeError
// leaves no texture behind.
//
func New(ctx gl.Context, r io.Reader, target Target, unit int, params ...Parameter) (*Texture, error) {
	px, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return FromPixels(ctx, px, target, unit, params...)
}

// FromImage creates a texture of the same dimensions as the source image.
// Regardless of the source image type, the resulting texture is always in
// RGBA format.
//
func FromImage(ctx gl.Context, src image.Image, target Target, unit int, params ...Parameter) (*Texture, error) {
	return FromPixels(ctx, PixelsOf(src), target, unit, params...)
}

// FromPixels creates a texture on the given unit and uploads px to it.
//
// The unit is made active and the texture is bound to it while parameters
// are set and pixels uploaded; the unit's binding is cleared before
// returning. Parameters default to Repeat wrapping and Linear filtering. A
// px with nil Pix allocates uninitialized storage.
//
// A GL error already pending when FromPixels is called is returned before
// anything is allocated. If the driver rejects the upload, the texture is
// deleted and an *UploadError is returned.
//
func FromPixels(ctx gl.Context, px *Pixels, target Target, unit int, params ...Parameter) (*Texture, error) {
	if err := px.validate(); err != nil {
		return nil, err
	}
	if err := gl.Check(ctx); err != nil {
		return nil, errors.Wrap(err, "pending GL error before texture upload")
	}
	if err := checkUnit(ctx, unit); err != nil {
		return nil, err
	}
	id := ctx.GenTexture()
	if id == 0 {
		return nil, &gl.AllocationError{Object: "texture"}
	}
	t := &Texture{ctx: ctx, id: id, target: target, unit: unit, width: px.Width, height: px.Height, format: px.Format()}

	ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
	ctx.BindTexture(gl.Enum(target), id)
	t.setParams(append(append([]Parameter(nil), defaults...), params...)...)

	restore := unpackAlignment(ctx, px.Stride())
	ctx.TexImage2D(gl.Enum(target), 0, t.format, int32(px.Width), int32(px.Height), t.format, gl.UNSIGNED_BYTE, px.Pix)
	restore()
	if err := gl.Check(ctx); err != nil {
		ctx.BindTexture(gl.Enum(target), 0)
		ctx.DeleteTexture(id)
		return nil, &UploadError{Width: px.Width, Height: px.Height, Format: t.format, Err: err}
	}
	if t.dirty && px.Pix != nil {
		ctx.GenerateMipmap(gl.Enum(target))
		t.dirty = false
	}
	ctx.BindTexture(gl.Enum(target), 0)
	return t, nil
}

// checkUnit reports units that cannot be passed to ActiveTexture.
func checkUnit(ctx gl.Context, unit int) error {
	if n := int(ctx.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS)); unit < 0 || unit >= n {
		return errors.Errorf("texture unit %d out of range [0:%d)", unit, n)
	}
	return nil
}

// unpackAlignment sets UNPACK_ALIGNMENT to the largest value compatible with
// rows of stride bytes and returns a function restoring the previous value.
//
func unpackAlignment(ctx gl.Context, stride int) (restore func()) {
	a := int32(1)
	for _, v := range []int32{8, 4, 2} {
		if stride%int(v) == 0 {
			a = v
			break
		}
	}
	prev := ctx.GetInteger(gl.UNPACK_ALIGNMENT)
	if prev == a {
		return func() {}
	}
	ctx.PixelStorei(gl.UNPACK_ALIGNMENT, a)
	return func() { ctx.PixelStorei(gl.UNPACK_ALIGNMENT, prev) }
}

// scope makes the texture's unit active and binds the texture to it. The
// returned function restores the previous binding and active unit.
//
func (t *Texture) scope() (restore func()) {
	prevUnit := gl.Enum(t.ctx.GetInteger(gl.ACTIVE_TEXTURE))
	unit := gl.TEXTURE0 + gl.Enum(t.unit)
	if prevUnit != unit {
		t.ctx.ActiveTexture(unit)
	}
	unbind := gl.BindTexture(t.ctx, gl.Enum(t.target), t.id)
	return func() {
		unbind()
		if prevUnit != unit {
			t.ctx.ActiveTexture(prevUnit)
		}
	}
}

// Parameters sets the given texture parameters. Bindings are left as they
// were.
//
func (t *Texture) Parameters(params ...Parameter) {
	if len(params) == 0 || t.id == 0 {
		return
	}
	restore := t.scope()
	t.setParams(params...)
	restore()
}

func (t *Texture) setParams(params ...Parameter) {
	var tp tp
	for _, p := range params {
		p.set(&tp)
	}
	target := gl.Enum(t.target)
	if tp.wrapS != 0 {
		t.ctx.TexParameteri(target, gl.TEXTURE_WRAP_S, int32(tp.wrapS))
	}
	if tp.wrapT != 0 {
		t.ctx.TexParameteri(target, gl.TEXTURE_WRAP_T, int32(tp.wrapT))
	}
	if tp.minFilter != 0 {
		t.ctx.TexParameteri(target, gl.TEXTURE_MIN_FILTER, int32(tp.minFilter))
	}
	if tp.magFilter != 0 {
		t.ctx.TexParameteri(target, gl.TEXTURE_MAG_FILTER, int32(tp.magFilter))
	}
	if tp.border != nil {
		c := gl.ColorModel.Convert(tp.border).(gl.Color)
		t.ctx.TexParameterfv(target, gl.TEXTURE_BORDER_COLOR, []float32{c.R, c.G, c.B, c.A})
	}
	if tp.minFilter != 0 {
		t.mipmap = tp.minFilter.mipmap()
		t.dirty = t.mipmap
	}
}

// Bind makes the texture's unit active, binds the texture to it and
// regenerates mipmaps if needed.
//
func (t *Texture) Bind() {
	t.ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(t.unit))
	t.ctx.BindTexture(gl.Enum(t.target), t.id)
	if t.dirty {
		t.ctx.GenerateMipmap(gl.Enum(t.target))
		t.dirty = false
	}
}

// Unbind clears the binding of the texture's unit.
//
func (t *Texture) Unbind() {
	t.ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(t.unit))
	t.ctx.BindTexture(gl.Enum(t.target), 0)
}

// BindToUnit attaches the texture to the given unit, points the named
// sampler uniform of prog at it and binds the texture. prog must be linked
// and is left active. BindToUnit panics if unit is out of range.
//
func (t *Texture) BindToUnit(prog *shader.Program, uniform string, unit int) {
	if err := checkUnit(t.ctx, unit); err != nil {
		panic(err)
	}
	t.unit = unit
	prog.SetInt(uniform, int32(unit))
	t.Bind()
}

// SetSubImage draws src to the texture. It works identically to draw.Draw
// with op set to draw.Src. The texture must be in RGBA format.
//
func (t *Texture) SetSubImage(dr image.Rectangle, src image.Image, sp image.Point) error {
	if t.id == 0 {
		return errors.New("set sub-image of released texture")
	}
	if t.format != gl.RGBA {
		return errors.Errorf("set sub-image of %s texture", t.format)
	}
	orig := dr
	dr = dr.Intersect(image.Rect(0, 0, t.width, t.height))
	sp = sp.Add(dr.Min.Sub(orig.Min))
	sz := dr.Size()
	if sz.X == 0 || sz.Y == 0 {
		return nil
	}
	if err := gl.Check(t.ctx); err != nil {
		return errors.Wrap(err, "pending GL error before texture upload")
	}
	var pix []byte
	sr := image.Rectangle{Min: sp, Max: sp.Add(sz)}
	if i, ok := src.(*image.RGBA); ok && sr == i.Bounds() && i.Stride == 4*sz.X {
		pix = i.Pix
	} else {
		r := image.Rectangle{Max: sz}
		dst := image.NewRGBA(r)
		draw.Draw(dst, r, src, sp, draw.Src)
		pix = dst.Pix
	}

	restore := t.scope()
	unpack := unpackAlignment(t.ctx, 4*sz.X)
	t.ctx.TexSubImage2D(gl.Enum(t.target), 0, int32(dr.Min.X), int32(dr.Min.Y), int32(sz.X), int32(sz.Y), gl.RGBA, gl.UNSIGNED_BYTE, pix)
	unpack()
	restore()
	if err := gl.Check(t.ctx); err != nil {
		return &UploadError{Width: sz.X, Height: sz.Y, Format: t.format, Err: err}
	}
	if t.mipmap {
		t.dirty = true
	}
	return nil
}

// ID returns the GL name of the texture, 0 once released.
//
func (t *Texture) ID() uint32 { return t.id }

// Target returns the texture's binding target.
//
func (t *Texture) Target() Target { return t.target }

// Unit returns the texture unit the texture binds to.
//
func (t *Texture) Unit() int { return t.unit }

// Format returns the pixel format of the texture, e.g. gl.RGBA.
//
func (t *Texture) Format() gl.Enum { return t.format }

// Size returns the size of the texture.
//
func (t *Texture) Size() image.Point {
	return image.Point{t.width, t.height}
}

// Release deletes the texture. Calling Release more than once has no effect.
//
func (t *Texture) Release() {
	if t == nil || t.id == 0 {
		return
	}
	t.ctx.DeleteTexture(t.id)
	t.id = 0
}
