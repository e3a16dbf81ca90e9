// Package shader compiles GLSL stages and links them into programs.
//
// Building a program goes through two steps. Compile turns source text into a
// Stage, then Link turns a vertex and a fragment stage into a Program. Link
// always releases both stages, whatever the outcome, so stage objects never
// outlive program construction. New runs both steps.
//
// Failures carry the driver's diagnostic text: *CompileError for a rejected
// stage, *LinkError for a rejected program and *gl.AllocationError when the
// driver cannot create an object.
//
package shader

import (
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/nocopy"
	"github.com/go-gl/mathgl/mgl32"
)

// Type is a shader stage type.
//
type Type int

// Stage types.
//
const (
	Vertex Type = iota
	Fragment
)

func (t Type) String() string {
	switch t {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return "invalid"
}

func (t Type) enum() gl.Enum {
	if t == Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// NotFound is the location returned for names that are not active in a
// program. Writing to it is a no-op.
//
const NotFound int32 = -1

// A Stage is a compiled shader object. It only lives until it is linked.
//
type Stage struct {
	noCopy   nocopy.NoCopy
	ctx      gl.Context
	id       uint32
	typ      Type
	compiled bool
}

// Compile creates a shader object of the given type and compiles src.
//
// If compilation fails, Compile returns the stage together with a
// *CompileError holding the driver log. The stage must then be released by
// the caller, or handed to Link which releases it.
//
func Compile(ctx gl.Context, typ Type, src string) (*Stage, error) {
	id := ctx.CreateShader(typ.enum())
	if id == 0 {
		return nil, &gl.AllocationError{Object: typ.String() + " shader"}
	}
	s := &Stage{ctx: ctx, id: id, typ: typ}
	ctx.ShaderSource(id, src)
	ctx.CompileShader(id)
	if ctx.GetShaderi(id, gl.COMPILE_STATUS) == 0 {
		log := infoLog(ctx.GetShaderi(id, gl.INFO_LOG_LENGTH), func(b []byte) { ctx.GetShaderInfoLog(id, b) })
		return s, &CompileError{Stage: typ, Log: log}
	}
	s.compiled = true
	return s, nil
}

// ID returns the GL name of the stage, 0 once released.
//
func (s *Stage) ID() uint32 { return s.id }

// Type returns the stage type.
//
func (s *Stage) Type() Type { return s.typ }

// Compiled reports whether compilation succeeded.
//
func (s *Stage) Compiled() bool { return s.compiled }

// Release deletes the shader object. If the stage is attached to a program,
// the driver defers deletion until the program is deleted. Calling Release
// more than once has no effect.
//
func (s *Stage) Release() {
	if s == nil || s.id == 0 {
		return
	}
	s.ctx.DeleteShader(s.id)
	s.id = 0
}

// A Program is a linked GL program object.
//
// A Program must not be copied; share the pointer instead.
//
type Program struct {
	noCopy nocopy.NoCopy
	ctx    gl.Context
	id     uint32
}

// Link links a vertex and a fragment stage into a program.
//
// Both stages are released before Link returns, on success as well as on
// failure. On link failure, the program object is deleted and a *LinkError
// holding the driver log is returned.
//
func Link(ctx gl.Context, vs, fs *Stage) (*Program, error) {
	defer fs.Release()
	defer vs.Release()

	id := ctx.CreateProgram()
	if id == 0 {
		return nil, &gl.AllocationError{Object: "program"}
	}
	for _, s := range []*Stage{vs, fs} {
		if s != nil && s.id != 0 {
			ctx.AttachShader(id, s.id)
		}
	}
	ctx.LinkProgram(id)
	if ctx.GetProgrami(id, gl.LINK_STATUS) == 0 {
		log := infoLog(ctx.GetProgrami(id, gl.INFO_LOG_LENGTH), func(b []byte) { ctx.GetProgramInfoLog(id, b) })
		ctx.DeleteProgram(id)
		return nil, &LinkError{Log: log}
	}
	return &Program{ctx: ctx, id: id}, nil
}

// New compiles vertexSrc and fragmentSrc and links them into a program. No
// shader object survives the call, whatever the outcome.
//
func New(ctx gl.Context, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := Compile(ctx, Vertex, vertexSrc)
	if err != nil {
		vs.Release()
		return nil, err
	}
	fs, err := Compile(ctx, Fragment, fragmentSrc)
	if err != nil {
		vs.Release()
		fs.Release()
		return nil, err
	}
	return Link(ctx, vs, fs)
}

// ID returns the GL name of the program, 0 once released.
//
func (p *Program) ID() uint32 { return p.id }

// Activate makes p the current program for subsequent draw calls.
//
func (p *Program) Activate() {
	p.ctx.UseProgram(p.id)
}

// Active reports whether p is the current program.
//
func (p *Program) Active() bool {
	return p.id != 0 && uint32(p.ctx.GetInteger(gl.CURRENT_PROGRAM)) == p.id
}

// UniformLocation returns the location of the named uniform, or NotFound if
// the program has no active uniform by that name. A missing uniform is not
// an error: the GLSL compiler drops unused uniforms.
//
func (p *Program) UniformLocation(name string) int32 {
	return p.ctx.GetUniformLocation(p.id, name)
}

// AttribLocation returns the slot of the named vertex input, or NotFound.
//
func (p *Program) AttribLocation(name string) int32 {
	return p.ctx.GetAttribLocation(p.id, name)
}

// SetInt activates p and sets the named int or sampler uniform.
//
func (p *Program) SetInt(name string, v int32) {
	p.Activate()
	p.ctx.Uniform1i(p.UniformLocation(name), v)
}

// SetFloat activates p and sets the named float uniform.
//
func (p *Program) SetFloat(name string, v float32) {
	p.Activate()
	p.ctx.Uniform1f(p.UniformLocation(name), v)
}

// SetVec2 activates p and sets the named vec2 uniform.
//
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	p.Activate()
	p.ctx.Uniform2f(p.UniformLocation(name), v[0], v[1])
}

// SetVec3 activates p and sets the named vec3 uniform.
//
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.Activate()
	p.ctx.Uniform3f(p.UniformLocation(name), v[0], v[1], v[2])
}

// SetVec4 activates p and sets the named vec4 uniform.
//
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	p.Activate()
	p.ctx.Uniform4f(p.UniformLocation(name), v[0], v[1], v[2], v[3])
}

// SetMat4 activates p and sets the named mat4 uniform. mgl32 matrices are
// column major, like GLSL ones.
//
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.Activate()
	a := [16]float32(m)
	p.ctx.UniformMatrix4fv(p.UniformLocation(name), false, &a)
}

// Release deletes the program. Calling Release more than once has no effect.
//
func (p *Program) Release() {
	if p == nil || p.id == 0 {
		return
	}
	p.ctx.DeleteProgram(p.id)
	p.id = 0
}
