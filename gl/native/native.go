// Package native implements gl.Context on top of github.com/go-gl/gl for
// OpenGL 3.3 core profile contexts.
//
package native

import (
	"fmt"
	"unsafe"

	"github.com/db47h/shaderpipe/gl"
	gogl "github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// Context forwards every call to the GL context current on the calling
// thread.
//
type Context struct{}

// Init loads the GL entry points with getProcAddr, typically
// glfw.GetProcAddress, and returns a Context for the GL context current on
// the calling thread. It must be called after the context has been made
// current.
//
func Init(getProcAddr func(name string) unsafe.Pointer) (*Context, error) {
	if err := gogl.InitWithProcAddrFunc(getProcAddr); err != nil {
		return nil, errors.Wrap(err, "load GL entry points")
	}
	return new(Context), nil
}

// Version returns a human readable description of the GL implementation.
//
func (c *Context) Version() string {
	return fmt.Sprintf("%s %s (GLSL %s)",
		c.GetString(gl.VENDOR), c.GetString(gl.VERSION), c.GetString(gl.SHADING_LANGUAGE_VERSION))
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func (*Context) GenBuffer() uint32 {
	var id uint32
	gogl.GenBuffers(1, &id)
	return id
}

func (*Context) DeleteBuffer(id uint32) { gogl.DeleteBuffers(1, &id) }

func (*Context) BindBuffer(target gl.Enum, id uint32) { gogl.BindBuffer(uint32(target), id) }

func (*Context) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	gogl.BufferData(uint32(target), len(data), ptr(data), uint32(usage))
}

func (*Context) BufferSubData(target gl.Enum, offset int, data []byte) {
	gogl.BufferSubData(uint32(target), offset, len(data), ptr(data))
}

func (*Context) GetBufferSubData(target gl.Enum, offset int, data []byte) {
	gogl.GetBufferSubData(uint32(target), offset, len(data), ptr(data))
}

func (*Context) GenVertexArray() uint32 {
	var id uint32
	gogl.GenVertexArrays(1, &id)
	return id
}

func (*Context) DeleteVertexArray(id uint32) { gogl.DeleteVertexArrays(1, &id) }

func (*Context) BindVertexArray(id uint32) { gogl.BindVertexArray(id) }

func (*Context) VertexAttribPointer(index uint32, size int32, typ gl.Enum, normalized bool, stride int32, offset int) {
	gogl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, uintptr(offset))
}

func (*Context) EnableVertexAttribArray(index uint32)  { gogl.EnableVertexAttribArray(index) }
func (*Context) DisableVertexAttribArray(index uint32) { gogl.DisableVertexAttribArray(index) }

func (*Context) CreateShader(typ gl.Enum) uint32 { return gogl.CreateShader(uint32(typ)) }

func (*Context) ShaderSource(id uint32, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	gogl.ShaderSource(id, 1, csrc, nil)
	free()
}

func (*Context) CompileShader(id uint32) { gogl.CompileShader(id) }

func (*Context) GetShaderi(id uint32, pname gl.Enum) int32 {
	var v int32
	gogl.GetShaderiv(id, uint32(pname), &v)
	return v
}

func (*Context) GetShaderInfoLog(id uint32, buf []byte) {
	if len(buf) == 0 {
		return
	}
	gogl.GetShaderInfoLog(id, int32(len(buf)), nil, &buf[0])
}

func (*Context) DeleteShader(id uint32) { gogl.DeleteShader(id) }

func (*Context) CreateProgram() uint32 { return gogl.CreateProgram() }

func (*Context) AttachShader(program, shader uint32) { gogl.AttachShader(program, shader) }

func (*Context) LinkProgram(program uint32) { gogl.LinkProgram(program) }

func (*Context) GetProgrami(program uint32, pname gl.Enum) int32 {
	var v int32
	gogl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (*Context) GetProgramInfoLog(program uint32, buf []byte) {
	if len(buf) == 0 {
		return
	}
	gogl.GetProgramInfoLog(program, int32(len(buf)), nil, &buf[0])
}

func (*Context) DeleteProgram(program uint32) { gogl.DeleteProgram(program) }

func (*Context) UseProgram(program uint32) { gogl.UseProgram(program) }

func (*Context) GetUniformLocation(program uint32, name string) int32 {
	cname, free := gogl.Strs(name + "\x00")
	defer free()
	return gogl.GetUniformLocation(program, *cname)
}

func (*Context) GetAttribLocation(program uint32, name string) int32 {
	cname, free := gogl.Strs(name + "\x00")
	defer free()
	return gogl.GetAttribLocation(program, *cname)
}

func (*Context) Uniform1i(location int32, v int32)               { gogl.Uniform1i(location, v) }
func (*Context) Uniform1f(location int32, v float32)             { gogl.Uniform1f(location, v) }
func (*Context) Uniform2f(location int32, v0, v1 float32)        { gogl.Uniform2f(location, v0, v1) }
func (*Context) Uniform3f(location int32, v0, v1, v2 float32)    { gogl.Uniform3f(location, v0, v1, v2) }
func (*Context) Uniform4f(location int32, v0, v1, v2, v3 float32) { gogl.Uniform4f(location, v0, v1, v2, v3) }

func (*Context) UniformMatrix4fv(location int32, transpose bool, m *[16]float32) {
	gogl.UniformMatrix4fv(location, 1, transpose, &m[0])
}

func (*Context) GenTexture() uint32 {
	var id uint32
	gogl.GenTextures(1, &id)
	return id
}

func (*Context) DeleteTexture(id uint32) { gogl.DeleteTextures(1, &id) }

func (*Context) ActiveTexture(unit gl.Enum) { gogl.ActiveTexture(uint32(unit)) }

func (*Context) BindTexture(target gl.Enum, id uint32) { gogl.BindTexture(uint32(target), id) }

func (*Context) TexParameteri(target, pname gl.Enum, v int32) {
	gogl.TexParameteri(uint32(target), uint32(pname), v)
}

func (*Context) TexParameterfv(target, pname gl.Enum, v []float32) {
	if len(v) == 0 {
		return
	}
	gogl.TexParameterfv(uint32(target), uint32(pname), &v[0])
}

func (*Context) PixelStorei(pname gl.Enum, v int32) { gogl.PixelStorei(uint32(pname), v) }

func (*Context) TexImage2D(target gl.Enum, level int32, internalFormat gl.Enum, width, height int32, format, typ gl.Enum, pix []byte) {
	gogl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(typ), ptr(pix))
}

func (*Context) TexSubImage2D(target gl.Enum, level, x, y, width, height int32, format, typ gl.Enum, pix []byte) {
	gogl.TexSubImage2D(uint32(target), level, x, y, width, height, uint32(format), uint32(typ), ptr(pix))
}

func (*Context) GenerateMipmap(target gl.Enum) { gogl.GenerateMipmap(uint32(target)) }

func (*Context) GetInteger(pname gl.Enum) int32 {
	var v int32
	gogl.GetIntegerv(uint32(pname), &v)
	return v
}

func (*Context) GetString(name gl.Enum) string {
	s := gogl.GetString(uint32(name))
	if s == nil {
		return ""
	}
	return gogl.GoStr(s)
}

func (*Context) GetError() gl.Enum { return gl.Enum(gogl.GetError()) }

func (*Context) ClearColor(r, g, b, a float32) { gogl.ClearColor(r, g, b, a) }
func (*Context) Clear(mask gl.Enum)            { gogl.Clear(uint32(mask)) }

func (*Context) Viewport(x, y, width, height int32) { gogl.Viewport(x, y, width, height) }

func (*Context) DrawArrays(mode gl.Enum, first, count int32) {
	gogl.DrawArrays(uint32(mode), first, count)
}

func (*Context) DrawElements(mode gl.Enum, count int32, typ gl.Enum, offset int) {
	gogl.DrawElements(uint32(mode), count, uint32(typ), gogl.PtrOffset(offset))
}

var _ gl.Context = (*Context)(nil)
