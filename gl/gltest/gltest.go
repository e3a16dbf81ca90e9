// Package gltest provides an in-memory gl.Context for tests.
//
// The Context keeps the GL state that the wrappers depend on (bindings,
// buffer contents, vertex array attribute state, shader and program objects,
// uniforms, textures and draw calls) and follows core profile rules where a
// mistake in binding order would otherwise go unnoticed: describing a vertex
// attribute with no buffer bound, or drawing with no element buffer, sets
// INVALID_OPERATION.
//
// Nothing is rendered.
//
package gltest

import (
	"sort"

	"github.com/db47h/shaderpipe/gl"
)

// Object kinds, as used by Fail, Live and Deleted.
//
const (
	Buffer      = "buffer"
	VertexArray = "vertex array"
	Shader      = "shader"
	Program     = "program"
	Texture     = "texture"
)

// Defaults for implementation limits.
//
const (
	DefaultMaxTextureSize = 4096
	DefaultMaxAttribs     = 16
	DefaultFragmentUnits  = 16
	DefaultTextureUnits   = 48 // combined, all stages
)

// Attrib is the state of one vertex attribute slot of a vertex array.
//
type Attrib struct {
	Buffer     uint32 // ARRAY_BUFFER binding captured by VertexAttribPointer
	Size       int32
	Type       gl.Enum
	Normalized bool
	Stride     int32
	Offset     int
	Enabled    bool
}

// VAO is a vertex array object.
//
type VAO struct {
	ID            uint32
	ElementBuffer uint32
	Attribs       map[uint32]Attrib
}

// BufferObject is a buffer object.
//
type BufferObject struct {
	ID    uint32
	Data  []byte
	Usage gl.Enum
}

// ShaderObject is a shader object.
//
type ShaderObject struct {
	ID       uint32
	Type     gl.Enum
	Source   string
	Compiled bool
	Log      string
	Deleted  bool // flagged for deletion while still attached
	compiles int
}

// ProgramObject is a program object.
//
type ProgramObject struct {
	ID       uint32
	Shaders  []uint32
	Linked   bool
	Log      string
	Uniforms map[string]int32
	Attribs  map[string]int32
	Values   map[int32][]float32
}

// TextureObject is a texture object.
//
type TextureObject struct {
	ID        uint32
	Target    gl.Enum
	Params    map[gl.Enum]int32
	Border    []float32
	Width     int32
	Height    int32
	Internal  gl.Enum
	Format    gl.Enum
	Pix       []byte
	Mipmapped bool
	Uploads   int
}

// DrawCall records a draw command with the state it was issued in.
//
type DrawCall struct {
	Mode          gl.Enum
	Count         int32
	Type          gl.Enum // 0 for DrawArrays
	Offset        int
	Program       uint32
	VertexArray   uint32
	ElementBuffer uint32
}

// A Compiler checks shader source and returns the info log. ok reports whether
// compilation succeeded.
//
type Compiler func(typ gl.Enum, src string) (log string, ok bool)

// Context is an in-memory gl.Context. Its zero value is not usable, use New.
//
type Context struct {
	// Compiler is used by CompileShader. It defaults to Check.
	Compiler Compiler
	// MaxTextureSize bounds texture dimensions.
	MaxTextureSize int32

	next    map[string]uint32
	fail    map[string]int
	live    map[string]int
	deleted map[string]int
	err     gl.Enum

	buffers  map[uint32]*BufferObject
	vaos     map[uint32]*VAO
	shaders  map[uint32]*ShaderObject
	programs map[uint32]*ProgramObject
	textures map[uint32]*TextureObject

	arrayBuffer   uint32
	vertexArray   uint32
	program       uint32
	activeTexture uint32
	units         []map[gl.Enum]uint32
	unpackAlign   int32

	clearColor [4]float32
	viewport   [4]int32
	draws      []DrawCall
	clears     int
}

// New returns a fresh Context with default limits.
//
func New() *Context {
	c := &Context{
		Compiler:       Check,
		MaxTextureSize: DefaultMaxTextureSize,
		next:           make(map[string]uint32),
		fail:           make(map[string]int),
		live:           make(map[string]int),
		deleted:        make(map[string]int),
		buffers:        make(map[uint32]*BufferObject),
		vaos:           map[uint32]*VAO{0: {Attribs: make(map[uint32]Attrib)}},
		shaders:        make(map[uint32]*ShaderObject),
		programs:       make(map[uint32]*ProgramObject),
		textures:       make(map[uint32]*TextureObject),
		units:          make([]map[gl.Enum]uint32, DefaultTextureUnits),
		unpackAlign:    4,
	}
	for i := range c.units {
		c.units[i] = make(map[gl.Enum]uint32)
	}
	return c
}

// Fail makes the next n allocations of the given object kind return 0.
//
func (c *Context) Fail(kind string, n int) {
	c.fail[kind] += n
}

// Live returns the number of live objects of the given kind.
//
func (c *Context) Live(kind string) int { return c.live[kind] }

// Deleted returns how many objects of the given kind have been deleted.
//
func (c *Context) Deleted(kind string) int { return c.deleted[kind] }

func (c *Context) alloc(kind string) uint32 {
	if c.fail[kind] > 0 {
		c.fail[kind]--
		return 0
	}
	c.next[kind]++
	c.live[kind]++
	return c.next[kind]
}

func (c *Context) release(kind string) {
	c.live[kind]--
	c.deleted[kind]++
}

// setError records e unless an error is already pending, as GL does.
//
func (c *Context) setError(e gl.Enum) {
	if c.err == gl.NO_ERROR {
		c.err = e
	}
}

// GetError implements gl.Context.
//
func (c *Context) GetError() gl.Enum {
	e := c.err
	c.err = gl.NO_ERROR
	return e
}

// PeekError returns the pending error without clearing it.
//
func (c *Context) PeekError() gl.Enum { return c.err }

// SetError forces the GL error flag, e.g. to simulate a driver rejecting an
// upload. It is overwritten by nothing until read by GetError.
//
func (c *Context) SetError(e gl.Enum) { c.setError(e) }

// Buffers

func (c *Context) GenBuffer() uint32 {
	id := c.alloc(Buffer)
	if id != 0 {
		c.buffers[id] = &BufferObject{ID: id}
	}
	return id
}

func (c *Context) DeleteBuffer(id uint32) {
	if _, ok := c.buffers[id]; !ok {
		return
	}
	delete(c.buffers, id)
	c.release(Buffer)
	if c.arrayBuffer == id {
		c.arrayBuffer = 0
	}
	for _, v := range c.vaos {
		if v.ElementBuffer == id {
			v.ElementBuffer = 0
		}
	}
}

func (c *Context) BindBuffer(target gl.Enum, id uint32) {
	if id != 0 {
		if _, ok := c.buffers[id]; !ok {
			c.setError(gl.INVALID_OPERATION)
			return
		}
	}
	switch target {
	case gl.ARRAY_BUFFER:
		c.arrayBuffer = id
	case gl.ELEMENT_ARRAY_BUFFER:
		c.vaos[c.vertexArray].ElementBuffer = id
	default:
		c.setError(gl.INVALID_ENUM)
	}
}

func (c *Context) bound(target gl.Enum) *BufferObject {
	var id uint32
	switch target {
	case gl.ARRAY_BUFFER:
		id = c.arrayBuffer
	case gl.ELEMENT_ARRAY_BUFFER:
		id = c.vaos[c.vertexArray].ElementBuffer
	default:
		c.setError(gl.INVALID_ENUM)
		return nil
	}
	b := c.buffers[id]
	if b == nil {
		c.setError(gl.INVALID_OPERATION)
	}
	return b
}

func (c *Context) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	if b := c.bound(target); b != nil {
		b.Data = append([]byte(nil), data...)
		b.Usage = usage
	}
}

func (c *Context) BufferSubData(target gl.Enum, offset int, data []byte) {
	b := c.bound(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.Data) {
		c.setError(gl.INVALID_VALUE)
		return
	}
	copy(b.Data[offset:], data)
}

func (c *Context) GetBufferSubData(target gl.Enum, offset int, data []byte) {
	b := c.bound(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.Data) {
		c.setError(gl.INVALID_VALUE)
		return
	}
	copy(data, b.Data[offset:])
}

// BufferObject returns the buffer object named id, or nil.
//
func (c *Context) BufferObject(id uint32) *BufferObject { return c.buffers[id] }

// Vertex arrays

func (c *Context) GenVertexArray() uint32 {
	id := c.alloc(VertexArray)
	if id != 0 {
		c.vaos[id] = &VAO{ID: id, Attribs: make(map[uint32]Attrib)}
	}
	return id
}

func (c *Context) DeleteVertexArray(id uint32) {
	if _, ok := c.vaos[id]; !ok || id == 0 {
		return
	}
	delete(c.vaos, id)
	c.release(VertexArray)
	if c.vertexArray == id {
		c.vertexArray = 0
	}
}

func (c *Context) BindVertexArray(id uint32) {
	if _, ok := c.vaos[id]; !ok {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	c.vertexArray = id
}

func (c *Context) attrib(index uint32) (*VAO, bool) {
	if index >= DefaultMaxAttribs {
		c.setError(gl.INVALID_VALUE)
		return nil, false
	}
	if c.vertexArray == 0 {
		// core profile: no default vertex array
		c.setError(gl.INVALID_OPERATION)
		return nil, false
	}
	return c.vaos[c.vertexArray], true
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ gl.Enum, normalized bool, stride int32, offset int) {
	v, ok := c.attrib(index)
	if !ok {
		return
	}
	if size < 1 || size > 4 || stride < 0 {
		c.setError(gl.INVALID_VALUE)
		return
	}
	if c.arrayBuffer == 0 {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	a := v.Attribs[index]
	a.Buffer = c.arrayBuffer
	a.Size, a.Type, a.Normalized, a.Stride, a.Offset = size, typ, normalized, stride, offset
	v.Attribs[index] = a
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	if v, ok := c.attrib(index); ok {
		a := v.Attribs[index]
		a.Enabled = true
		v.Attribs[index] = a
	}
}

func (c *Context) DisableVertexAttribArray(index uint32) {
	if v, ok := c.attrib(index); ok {
		a := v.Attribs[index]
		a.Enabled = false
		v.Attribs[index] = a
	}
}

// VertexArray returns the vertex array object named id, or nil.
//
func (c *Context) VertexArray(id uint32) *VAO {
	if id == 0 {
		return nil
	}
	return c.vaos[id]
}

// Shaders and programs

func (c *Context) CreateShader(typ gl.Enum) uint32 {
	if typ != gl.VERTEX_SHADER && typ != gl.FRAGMENT_SHADER {
		c.setError(gl.INVALID_ENUM)
		return 0
	}
	id := c.alloc(Shader)
	if id != 0 {
		c.shaders[id] = &ShaderObject{ID: id, Type: typ}
	}
	return id
}

func (c *Context) shader(id uint32) *ShaderObject {
	s := c.shaders[id]
	if s == nil {
		c.setError(gl.INVALID_VALUE)
	}
	return s
}

func (c *Context) ShaderSource(id uint32, src string) {
	if s := c.shader(id); s != nil {
		s.Source = src
	}
}

func (c *Context) CompileShader(id uint32) {
	s := c.shader(id)
	if s == nil {
		return
	}
	s.compiles++
	s.Log, s.Compiled = c.Compiler(s.Type, s.Source)
}

func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

func (c *Context) GetShaderi(id uint32, pname gl.Enum) int32 {
	s := c.shader(id)
	if s == nil {
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(s.Compiled)
	case gl.INFO_LOG_LENGTH:
		return logLength(s.Log)
	case gl.SHADER_TYPE:
		return int32(s.Type)
	case gl.DELETE_STATUS:
		return boolInt(s.Deleted)
	}
	c.setError(gl.INVALID_ENUM)
	return 0
}

func copyLog(buf []byte, log string) {
	if len(buf) == 0 {
		return
	}
	n := copy(buf[:len(buf)-1], log)
	buf[n] = 0
}

func (c *Context) GetShaderInfoLog(id uint32, buf []byte) {
	if s := c.shader(id); s != nil {
		copyLog(buf, s.Log)
	}
}

func (c *Context) attached(id uint32) bool {
	for _, p := range c.programs {
		for _, s := range p.Shaders {
			if s == id {
				return true
			}
		}
	}
	return false
}

func (c *Context) DeleteShader(id uint32) {
	s, ok := c.shaders[id]
	if !ok || s.Deleted {
		return
	}
	if c.attached(id) {
		s.Deleted = true
		return
	}
	delete(c.shaders, id)
	c.release(Shader)
}

// ShaderObject returns the shader object named id, or nil if it does not
// exist or has been deleted.
//
func (c *Context) ShaderObject(id uint32) *ShaderObject { return c.shaders[id] }

// CompileCount returns how many times shader id was compiled.
//
func (c *Context) CompileCount(id uint32) int {
	if s := c.shaders[id]; s != nil {
		return s.compiles
	}
	return 0
}

func (c *Context) CreateProgram() uint32 {
	id := c.alloc(Program)
	if id != 0 {
		c.programs[id] = &ProgramObject{
			ID:       id,
			Uniforms: make(map[string]int32),
			Attribs:  make(map[string]int32),
			Values:   make(map[int32][]float32),
		}
	}
	return id
}

func (c *Context) prog(id uint32) *ProgramObject {
	p := c.programs[id]
	if p == nil {
		c.setError(gl.INVALID_VALUE)
	}
	return p
}

func (c *Context) AttachShader(program, shader uint32) {
	p, s := c.prog(program), c.shader(shader)
	if p == nil || s == nil {
		return
	}
	for _, id := range p.Shaders {
		if id == shader {
			c.setError(gl.INVALID_OPERATION)
			return
		}
	}
	p.Shaders = append(p.Shaders, shader)
}

func (c *Context) LinkProgram(program uint32) {
	p := c.prog(program)
	if p == nil {
		return
	}
	var stages []*ShaderObject
	for _, id := range p.Shaders {
		stages = append(stages, c.shaders[id])
	}
	p.Uniforms = make(map[string]int32)
	p.Attribs = make(map[string]int32)
	p.Values = make(map[int32][]float32)
	p.Log, p.Linked = link(stages, p)
}

func (c *Context) GetProgrami(program uint32, pname gl.Enum) int32 {
	p := c.prog(program)
	if p == nil {
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		return boolInt(p.Linked)
	case gl.INFO_LOG_LENGTH:
		return logLength(p.Log)
	case gl.ATTACHED_SHADERS:
		return int32(len(p.Shaders))
	}
	c.setError(gl.INVALID_ENUM)
	return 0
}

func (c *Context) GetProgramInfoLog(program uint32, buf []byte) {
	if p := c.prog(program); p != nil {
		copyLog(buf, p.Log)
	}
}

func (c *Context) DeleteProgram(program uint32) {
	p, ok := c.programs[program]
	if !ok {
		return
	}
	delete(c.programs, program)
	c.release(Program)
	if c.program == program {
		c.program = 0
	}
	// detach, completing pending shader deletions
	for _, id := range p.Shaders {
		if s := c.shaders[id]; s != nil && s.Deleted && !c.attached(id) {
			delete(c.shaders, id)
			c.release(Shader)
		}
	}
}

func (c *Context) UseProgram(program uint32) {
	if program != 0 {
		p := c.prog(program)
		if p == nil {
			return
		}
		if !p.Linked {
			c.setError(gl.INVALID_OPERATION)
			return
		}
	}
	c.program = program
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	p := c.prog(program)
	if p == nil {
		return -1
	}
	if !p.Linked {
		c.setError(gl.INVALID_OPERATION)
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	p := c.prog(program)
	if p == nil {
		return -1
	}
	if !p.Linked {
		c.setError(gl.INVALID_OPERATION)
		return -1
	}
	if loc, ok := p.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) uniform(location int32, v ...float32) {
	if location == -1 {
		return
	}
	p := c.programs[c.program]
	if p == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	found := false
	for _, loc := range p.Uniforms {
		if loc == location {
			found = true
			break
		}
	}
	if !found {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	p.Values[location] = v
}

func (c *Context) Uniform1i(location int32, v int32) { c.uniform(location, float32(v)) }
func (c *Context) Uniform1f(location int32, v float32) { c.uniform(location, v) }
func (c *Context) Uniform2f(location int32, v0, v1 float32) { c.uniform(location, v0, v1) }
func (c *Context) Uniform3f(location int32, v0, v1, v2 float32) {
	c.uniform(location, v0, v1, v2)
}
func (c *Context) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	c.uniform(location, v0, v1, v2, v3)
}

func (c *Context) UniformMatrix4fv(location int32, transpose bool, m *[16]float32) {
	if transpose {
		c.setError(gl.INVALID_VALUE)
		return
	}
	c.uniform(location, m[:]...)
}

// ProgramObject returns the program object named id, or nil.
//
func (c *Context) ProgramObject(id uint32) *ProgramObject { return c.programs[id] }

// Uniform returns the last value written to the named uniform of program.
//
func (c *Context) Uniform(program uint32, name string) ([]float32, bool) {
	p := c.programs[program]
	if p == nil {
		return nil, false
	}
	loc, ok := p.Uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.Values[loc]
	return v, ok
}

// Textures

func (c *Context) GenTexture() uint32 {
	id := c.alloc(Texture)
	if id != 0 {
		c.textures[id] = &TextureObject{ID: id, Params: make(map[gl.Enum]int32)}
	}
	return id
}

func (c *Context) DeleteTexture(id uint32) {
	if _, ok := c.textures[id]; !ok {
		return
	}
	delete(c.textures, id)
	c.release(Texture)
	for _, u := range c.units {
		for t, bound := range u {
			if bound == id {
				u[t] = 0
			}
		}
	}
}

func (c *Context) ActiveTexture(unit gl.Enum) {
	if unit < gl.TEXTURE0 || int(unit-gl.TEXTURE0) >= len(c.units) {
		c.setError(gl.INVALID_ENUM)
		return
	}
	c.activeTexture = uint32(unit - gl.TEXTURE0)
}

func (c *Context) BindTexture(target gl.Enum, id uint32) {
	if target != gl.TEXTURE_2D {
		c.setError(gl.INVALID_ENUM)
		return
	}
	if id != 0 {
		t, ok := c.textures[id]
		if !ok {
			c.setError(gl.INVALID_OPERATION)
			return
		}
		if t.Target != 0 && t.Target != target {
			c.setError(gl.INVALID_OPERATION)
			return
		}
		t.Target = target
	}
	c.units[c.activeTexture][target] = id
}

func (c *Context) boundTexture(target gl.Enum) *TextureObject {
	t := c.textures[c.units[c.activeTexture][target]]
	if t == nil {
		c.setError(gl.INVALID_OPERATION)
	}
	return t
}

func (c *Context) TexParameteri(target, pname gl.Enum, v int32) {
	if t := c.boundTexture(target); t != nil {
		t.Params[pname] = v
	}
}

func (c *Context) TexParameterfv(target, pname gl.Enum, v []float32) {
	if t := c.boundTexture(target); t != nil {
		if pname == gl.TEXTURE_BORDER_COLOR {
			t.Border = append([]float32(nil), v...)
			return
		}
		if len(v) > 0 {
			t.Params[pname] = int32(v[0])
		}
	}
}

func (c *Context) PixelStorei(pname gl.Enum, v int32) {
	if pname != gl.UNPACK_ALIGNMENT {
		c.setError(gl.INVALID_ENUM)
		return
	}
	switch v {
	case 1, 2, 4, 8:
		c.unpackAlign = v
	default:
		c.setError(gl.INVALID_VALUE)
	}
}

func channels(format gl.Enum) int {
	switch format {
	case gl.RED:
		return 1
	case gl.RG:
		return 2
	case gl.RGB:
		return 3
	case gl.RGBA:
		return 4
	}
	return 0
}

// imageSize returns the number of bytes GL reads for a width×height image.
//
func (c *Context) imageSize(width, height int32, format gl.Enum) int {
	row := int(width) * channels(format)
	a := int(c.unpackAlign)
	stride := (row + a - 1) / a * a
	if height == 0 {
		return 0
	}
	return stride*(int(height)-1) + row
}

func (c *Context) TexImage2D(target gl.Enum, level int32, internalFormat gl.Enum, width, height int32, format, typ gl.Enum, pix []byte) {
	t := c.boundTexture(target)
	if t == nil {
		return
	}
	if channels(format) == 0 || channels(internalFormat) == 0 || typ != gl.UNSIGNED_BYTE {
		c.setError(gl.INVALID_ENUM)
		return
	}
	if level != 0 || width < 0 || height < 0 || width > c.MaxTextureSize || height > c.MaxTextureSize {
		c.setError(gl.INVALID_VALUE)
		return
	}
	if pix != nil && len(pix) < c.imageSize(width, height, format) {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	t.Width, t.Height, t.Internal, t.Format = width, height, internalFormat, format
	t.Pix = append([]byte(nil), pix...)
	t.Mipmapped = false
	t.Uploads++
}

func (c *Context) TexSubImage2D(target gl.Enum, level, x, y, width, height int32, format, typ gl.Enum, pix []byte) {
	t := c.boundTexture(target)
	if t == nil {
		return
	}
	if format != t.Format || typ != gl.UNSIGNED_BYTE {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	if level != 0 || x < 0 || y < 0 || x+width > t.Width || y+height > t.Height {
		c.setError(gl.INVALID_VALUE)
		return
	}
	if len(pix) < c.imageSize(width, height, format) {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	if t.Pix == nil {
		t.Pix = make([]byte, int(t.Width*t.Height)*channels(t.Format))
	}
	ch := channels(format)
	a := int(c.unpackAlign)
	srcStride := (int(width)*ch + a - 1) / a * a
	dstStride := int(t.Width) * ch
	for row := 0; row < int(height); row++ {
		src := pix[row*srcStride : row*srcStride+int(width)*ch]
		copy(t.Pix[(int(y)+row)*dstStride+int(x)*ch:], src)
	}
	t.Uploads++
}

func (c *Context) GenerateMipmap(target gl.Enum) {
	if t := c.boundTexture(target); t != nil {
		if t.Width == 0 || t.Height == 0 {
			c.setError(gl.INVALID_OPERATION)
			return
		}
		t.Mipmapped = true
	}
}

// TextureObject returns the texture object named id, or nil.
//
func (c *Context) TextureObject(id uint32) *TextureObject { return c.textures[id] }

// TextureUnit returns the texture bound to target on the given unit.
//
func (c *Context) TextureUnit(unit int, target gl.Enum) uint32 { return c.units[unit][target] }

// UnpackAlignment returns the current UNPACK_ALIGNMENT.
//
func (c *Context) UnpackAlignment() int32 { return c.unpackAlign }

// State queries

func (c *Context) GetInteger(pname gl.Enum) int32 {
	switch pname {
	case gl.ARRAY_BUFFER_BINDING:
		return int32(c.arrayBuffer)
	case gl.ELEMENT_ARRAY_BUFFER_BINDING:
		return int32(c.vaos[c.vertexArray].ElementBuffer)
	case gl.VERTEX_ARRAY_BINDING:
		return int32(c.vertexArray)
	case gl.CURRENT_PROGRAM:
		return int32(c.program)
	case gl.ACTIVE_TEXTURE:
		return int32(gl.TEXTURE0) + int32(c.activeTexture)
	case gl.TEXTURE_BINDING_2D:
		return int32(c.units[c.activeTexture][gl.TEXTURE_2D])
	case gl.MAX_TEXTURE_SIZE:
		return c.MaxTextureSize
	case gl.MAX_VERTEX_ATTRIBS:
		return DefaultMaxAttribs
	case gl.MAX_TEXTURE_IMAGE_UNITS:
		return DefaultFragmentUnits
	case gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return int32(len(c.units))
	case gl.UNPACK_ALIGNMENT:
		return c.unpackAlign
	}
	c.setError(gl.INVALID_ENUM)
	return 0
}

func (c *Context) GetString(name gl.Enum) string {
	switch name {
	case gl.VENDOR:
		return "shaderpipe"
	case gl.RENDERER:
		return "gltest"
	case gl.VERSION:
		return "3.3 (Core Profile) gltest"
	case gl.SHADING_LANGUAGE_VERSION:
		return "3.30"
	}
	c.setError(gl.INVALID_ENUM)
	return ""
}

// Drawing

func (c *Context) ClearColor(r, g, b, a float32) { c.clearColor = [4]float32{r, g, b, a} }
func (c *Context) Clear(mask gl.Enum)            { c.clears++ }

func (c *Context) Viewport(x, y, width, height int32) {
	if width < 0 || height < 0 {
		c.setError(gl.INVALID_VALUE)
		return
	}
	c.viewport = [4]int32{x, y, width, height}
}

func (c *Context) drawable() bool {
	if c.vertexArray == 0 || c.program == 0 {
		c.setError(gl.INVALID_OPERATION)
		return false
	}
	return true
}

func (c *Context) DrawArrays(mode gl.Enum, first, count int32) {
	if !c.drawable() {
		return
	}
	c.draws = append(c.draws, DrawCall{Mode: mode, Count: count, Offset: int(first), Program: c.program, VertexArray: c.vertexArray})
}

func (c *Context) DrawElements(mode gl.Enum, count int32, typ gl.Enum, offset int) {
	if !c.drawable() {
		return
	}
	v := c.vaos[c.vertexArray]
	b := c.buffers[v.ElementBuffer]
	if b == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	switch typ {
	case gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT, gl.UNSIGNED_INT:
	default:
		c.setError(gl.INVALID_ENUM)
		return
	}
	if count < 0 || offset+int(count)*gl.TypeSize(typ) > len(b.Data) {
		c.setError(gl.INVALID_OPERATION)
		return
	}
	c.draws = append(c.draws, DrawCall{
		Mode: mode, Count: count, Type: typ, Offset: offset,
		Program: c.program, VertexArray: c.vertexArray, ElementBuffer: b.ID,
	})
}

// Draws returns the recorded draw calls.
//
func (c *Context) Draws() []DrawCall { return c.draws }

// ClearState returns the clear color, viewport and the number of Clear calls.
//
func (c *Context) ClearState() (color [4]float32, viewport [4]int32, clears int) {
	return c.clearColor, c.viewport, c.clears
}

func boolInt(b bool) int32 {
	if b {
		return gl.TRUE
	}
	return gl.FALSE
}

// sortedKeys returns the keys of m in increasing order.
//
func sortedKeys(m map[uint32]Attrib) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// EnabledAttribs returns the enabled attribute slots of vertex array id in
// increasing order.
//
func (c *Context) EnabledAttribs(id uint32) []uint32 {
	v := c.VertexArray(id)
	if v == nil {
		return nil
	}
	var slots []uint32
	for _, k := range sortedKeys(v.Attribs) {
		if v.Attribs[k].Enabled {
			slots = append(slots, k)
		}
	}
	return slots
}

var _ gl.Context = (*Context)(nil)
