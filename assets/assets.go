// Package assets provides shader sources and images to the GL wrappers.
//
// A Loader reads files from an ofs.FileSystem, typically an overlay of
// user directories, and falls back to an fs.FS, typically embedded
// defaults, for files the overlay does not have.
//
package assets

import (
	"io"
	"io/fs"
	"path"

	"github.com/db47h/ofs"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/shader"
	"github.com/db47h/shaderpipe/texture"
	"github.com/pkg/errors"
)

// Type designates the type of an asset.
//
type Type int

// Asset types.
//
const (
	TypeShader Type = iota
	TypeTexture
)

// Asset uniquely describes an asset.
//
type Asset struct {
	Type
	Name string
}

func (a Asset) String() string {
	switch a.Type {
	case TypeShader:
		return "shader asset " + a.Name
	case TypeTexture:
		return "texture asset " + a.Name
	}
	return "unknown asset " + a.Name
}

type config struct {
	shaderPath  string
	texturePath string
	fallback    fs.FS
}

// Option is implemented by option functions passed as arguments to
// NewLoader.
//
type Option interface {
	set(*config)
}

type cfn func(*config)

func (f cfn) set(cfg *config) {
	f(cfg)
}

// ShaderPath returns an Option that sets the directory of shader sources.
//
func ShaderPath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.shaderPath = name
	})
}

// TexturePath returns an Option that sets the directory of texture images.
//
func TexturePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.texturePath = name
	})
}

// Fallback returns an Option that sets the file system searched when a file
// cannot be opened from the Loader's primary file system. Paths are the same
// in both.
//
func Fallback(fsys fs.FS) Option {
	return cfn(func(cfg *config) {
		cfg.fallback = fsys
	})
}

// A Loader loads assets synchronously. It holds no GL state and may be used
// from any goroutine; the Program and Texture methods must be called from
// the goroutine owning the GL context.
//
type Loader struct {
	fs  ofs.FileSystem
	cfg config
}

// NewLoader returns a Loader reading from fsys, which may be nil if a
// fallback is set.
//
func NewLoader(fsys ofs.FileSystem, options ...Option) *Loader {
	l := &Loader{fs: fsys}
	for _, o := range options {
		o.set(&l.cfg)
	}
	return l
}

func (l *Loader) path(a Asset) string {
	switch a.Type {
	case TypeShader:
		return path.Join(l.cfg.shaderPath, a.Name)
	case TypeTexture:
		return path.Join(l.cfg.texturePath, a.Name)
	}
	return a.Name
}

// Open opens the file of asset a.
//
func (l *Loader) Open(a Asset) (io.ReadCloser, error) {
	name := l.path(a)
	var err error = fs.ErrNotExist
	if l.fs != nil {
		f, oerr := l.fs.Open(name)
		if oerr == nil {
			return f, nil
		}
		err = oerr
	}
	if l.cfg.fallback != nil {
		if f, ferr := l.cfg.fallback.Open(name); ferr == nil {
			return f, nil
		}
	}
	return nil, errors.Wrapf(err, "open %s", a)
}

// Source returns the text of the named shader source file.
//
func (l *Loader) Source(name string) (string, error) {
	a := Asset{TypeShader, name}
	r, err := l.Open(a)
	if err != nil {
		return "", err
	}
	defer r.Close()
	src, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", a)
	}
	return string(src), nil
}

// Image decodes the named image file into RGBA pixels.
//
func (l *Loader) Image(name string) (*texture.Pixels, error) {
	a := Asset{TypeTexture, name}
	r, err := l.Open(a)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	px, err := texture.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", a)
	}
	return px, nil
}

// Program loads two shader sources and builds a program from them. Compile
// and link errors keep their type and are wrapped with the name of the
// offending source.
//
func (l *Loader) Program(ctx gl.Context, vertexName, fragmentName string) (*shader.Program, error) {
	vsrc, err := l.Source(vertexName)
	if err != nil {
		return nil, err
	}
	fsrc, err := l.Source(fragmentName)
	if err != nil {
		return nil, err
	}
	p, err := shader.New(ctx, vsrc, fsrc)
	if err != nil {
		var ce *shader.CompileError
		if errors.As(err, &ce) && ce.Stage == shader.Fragment {
			return nil, errors.Wrapf(err, "build %s", Asset{TypeShader, fragmentName})
		}
		if ce != nil {
			return nil, errors.Wrapf(err, "build %s", Asset{TypeShader, vertexName})
		}
		return nil, errors.Wrapf(err, "build program %s+%s", vertexName, fragmentName)
	}
	return p, nil
}

// Texture loads the named image and uploads it to a new texture on the
// given unit.
//
func (l *Loader) Texture(ctx gl.Context, name string, unit int, params ...texture.Parameter) (*texture.Texture, error) {
	px, err := l.Image(name)
	if err != nil {
		return nil, err
	}
	t, err := texture.FromPixels(ctx, px, texture.Texture2D, unit, params...)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s", Asset{TypeTexture, name})
	}
	return t, nil
}
