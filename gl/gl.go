// Package gl defines the subset of the OpenGL 3.3 core API used by the
// shaderpipe object wrappers.
//
// The wrappers never call a binding library directly. They issue their calls
// through a Context, which is implemented on top of github.com/go-gl/gl by
// package native and in memory by package gltest.
//
// A Context is affinitized to the OS thread on which its GL context was made
// current. Calling any of its methods, or any method of a wrapper holding it,
// from another thread is undefined behavior.
//
package gl

// Enum is a GL enumerant.
//
type Enum uint32

// GL enumerants. Values are those of the Khronos registry.
//
const (
	NO_ERROR          Enum = 0
	INVALID_ENUM      Enum = 0x0500
	INVALID_VALUE     Enum = 0x0501
	INVALID_OPERATION Enum = 0x0502
	OUT_OF_MEMORY     Enum = 0x0505

	FALSE = 0
	TRUE  = 1

	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406
	DOUBLE         Enum = 0x140A

	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_LOOP      Enum = 0x0002
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006

	ARRAY_BUFFER                 Enum = 0x8892
	ELEMENT_ARRAY_BUFFER         Enum = 0x8893
	ARRAY_BUFFER_BINDING         Enum = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING Enum = 0x8895
	VERTEX_ARRAY_BINDING         Enum = 0x85B5
	STATIC_DRAW                  Enum = 0x88E4
	DYNAMIC_DRAW                 Enum = 0x88E8
	STREAM_DRAW                  Enum = 0x88E0
	MAX_VERTEX_ATTRIBS           Enum = 0x8869

	FRAGMENT_SHADER          Enum = 0x8B30
	VERTEX_SHADER            Enum = 0x8B31
	SHADER_TYPE              Enum = 0x8B4F
	DELETE_STATUS            Enum = 0x8B80
	COMPILE_STATUS           Enum = 0x8B81
	LINK_STATUS              Enum = 0x8B82
	INFO_LOG_LENGTH          Enum = 0x8B84
	ATTACHED_SHADERS         Enum = 0x8B85
	CURRENT_PROGRAM          Enum = 0x8B8D
	SHADING_LANGUAGE_VERSION Enum = 0x8B8C

	TEXTURE_2D                       Enum = 0x0DE1
	TEXTURE_BINDING_2D               Enum = 0x8069
	TEXTURE0                         Enum = 0x84C0
	ACTIVE_TEXTURE                   Enum = 0x84E0
	MAX_TEXTURE_SIZE                 Enum = 0x0D33
	MAX_TEXTURE_IMAGE_UNITS          Enum = 0x8872
	MAX_COMBINED_TEXTURE_IMAGE_UNITS Enum = 0x8B4D
	TEXTURE_MAG_FILTER               Enum = 0x2800
	TEXTURE_MIN_FILTER               Enum = 0x2801
	TEXTURE_WRAP_S                   Enum = 0x2802
	TEXTURE_WRAP_T                   Enum = 0x2803
	TEXTURE_BORDER_COLOR             Enum = 0x1004
	UNPACK_ALIGNMENT                 Enum = 0x0CF5

	NEAREST                Enum = 0x2600
	LINEAR                 Enum = 0x2601
	NEAREST_MIPMAP_NEAREST Enum = 0x2700
	LINEAR_MIPMAP_NEAREST  Enum = 0x2701
	NEAREST_MIPMAP_LINEAR  Enum = 0x2702
	LINEAR_MIPMAP_LINEAR   Enum = 0x2703
	REPEAT                 Enum = 0x2901
	CLAMP_TO_BORDER        Enum = 0x812D
	CLAMP_TO_EDGE          Enum = 0x812F
	MIRRORED_REPEAT        Enum = 0x8370

	RED  Enum = 0x1903
	RGB  Enum = 0x1907
	RGBA Enum = 0x1908
	RG   Enum = 0x8227

	DEPTH_BUFFER_BIT Enum = 0x0100
	COLOR_BUFFER_BIT Enum = 0x4000

	VENDOR   Enum = 0x1F00
	RENDERER Enum = 0x1F01
	VERSION  Enum = 0x1F02
)

// Context is the GL entry point table used by the wrappers. Method names and
// semantics follow the GL functions of the same name; object generation
// functions return a single name, 0 meaning the driver could not allocate one.
//
type Context interface {
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target Enum, id uint32)
	BufferData(target Enum, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	GetBufferSubData(target Enum, offset int, data []byte)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	// VertexAttribPointer describes attribute index using the buffer currently
	// bound to ARRAY_BUFFER. offset is a byte offset into that buffer.
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	CreateShader(typ Enum) uint32
	ShaderSource(id uint32, src string)
	CompileShader(id uint32)
	GetShaderi(id uint32, pname Enum) int32
	// GetShaderInfoLog fills buf with at most len(buf) bytes of the info log,
	// NUL terminator included. The written length is not reported.
	GetShaderInfoLog(id uint32, buf []byte)
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32, buf []byte)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, transpose bool, m *[16]float32)

	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, id uint32)
	TexParameteri(target, pname Enum, v int32)
	TexParameterfv(target, pname Enum, v []float32)
	PixelStorei(pname Enum, v int32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, typ Enum, pix []byte)
	TexSubImage2D(target Enum, level, x, y, width, height int32, format, typ Enum, pix []byte)
	GenerateMipmap(target Enum)

	GetInteger(pname Enum) int32
	GetString(name Enum) string
	GetError() Enum

	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)
	DrawArrays(mode Enum, first, count int32)
	// DrawElements draws count indices of type typ read from the element
	// buffer bound to the current vertex array, starting at byte offset.
	DrawElements(mode Enum, count int32, typ Enum, offset int)
}
