package shader_test

import (
	"strings"
	"testing"

	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/gl/gltest"
	"github.com/db47h/shaderpipe/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSrc = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
out vec2 vTexCoord;
uniform mat4 uTransform;
void main()
{
    gl_Position = uTransform * vec4(aPos, 1.0);
    vTexCoord = aTexCoord;
}
`

const fragmentSrc = `#version 330 core
in vec2 vTexCoord;
out vec4 FragColor;
uniform sampler2D uTexture;
uniform vec4 uTint;
void main()
{
    FragColor = uTint * texture(uTexture, vTexCoord);
}
`

// missing semicolon at the end of line 8
var brokenVertexSrc = strings.Replace(vertexSrc, "1.0);", "1.0)", 1)

func TestNewLinksProgram(t *testing.T) {
	ctx := gltest.New()
	p, err := shader.New(ctx, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.NotZero(t, p.ID())
	obj := ctx.ProgramObject(p.ID())
	require.NotNil(t, obj)
	assert.True(t, obj.Linked)
	assert.Len(t, obj.Shaders, 2)
	for _, id := range obj.Shaders {
		// released, kept alive by the driver while attached
		assert.True(t, ctx.ShaderObject(id).Deleted)
	}
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())

	p.Release()
	p.Release()
	assert.Zero(t, p.ID())
	assert.Equal(t, 0, ctx.Live(gltest.Program))
	assert.Equal(t, 1, ctx.Deleted(gltest.Program))
	assert.Equal(t, 0, ctx.Live(gltest.Shader))
	assert.Equal(t, 2, ctx.Deleted(gltest.Shader))
}

func TestCompileError(t *testing.T) {
	ctx := gltest.New()
	vs, err := shader.Compile(ctx, shader.Vertex, brokenVertexSrc)
	require.Error(t, err)
	require.NotNil(t, vs, "stage is handed back for release")
	assert.False(t, vs.Compiled())
	assert.Equal(t, shader.Vertex, vs.Type())

	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, shader.Vertex, ce.Stage)
	assert.Equal(t, "0:9(5): error: syntax error, unexpected IDENTIFIER, expecting ',' or ';'\n", ce.Log)
	assert.Equal(t, "compile vertex shader: "+ce.Log, err.Error())

	// the fragment stage is unaffected
	fs, err := shader.Compile(ctx, shader.Fragment, fragmentSrc)
	require.NoError(t, err)
	assert.True(t, fs.Compiled())

	vs.Release()
	vs.Release()
	fs.Release()
	assert.Zero(t, vs.ID())
	assert.Equal(t, 0, ctx.Live(gltest.Shader))
	assert.Equal(t, 2, ctx.Deleted(gltest.Shader))
}

func TestNewReleasesStagesOnCompileError(t *testing.T) {
	for _, tc := range []struct {
		name   string
		vs, fs string
		stage  shader.Type
	}{
		{"vertex", brokenVertexSrc, fragmentSrc, shader.Vertex},
		{"fragment", vertexSrc, strings.Replace(fragmentSrc, "}", "", 1), shader.Fragment},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := gltest.New()
			p, err := shader.New(ctx, tc.vs, tc.fs)
			assert.Nil(t, p)
			var ce *shader.CompileError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tc.stage, ce.Stage)
			assert.NotEmpty(t, ce.Log)
			assert.Equal(t, 0, ctx.Live(gltest.Shader))
			assert.Zero(t, ctx.Deleted(gltest.Program)+ctx.Live(gltest.Program), "no program created")
		})
	}
}

func TestLinkError(t *testing.T) {
	ctx := gltest.New()
	vs, err := shader.Compile(ctx, shader.Vertex, vertexSrc)
	require.NoError(t, err)
	fs, err := shader.Compile(ctx, shader.Fragment, strings.Replace(fragmentSrc, "in vec2 vTexCoord;", "in vec3 vTexCoord;", 1))
	require.NoError(t, err)

	p, err := shader.Link(ctx, vs, fs)
	assert.Nil(t, p)
	var le *shader.LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "error: vertex shader output `vTexCoord' declared as type `vec2', but fragment shader input declared as type `vec3'\n", le.Log)
	assert.True(t, strings.HasPrefix(err.Error(), "link program: "))

	// both stages and the program are gone
	assert.Zero(t, vs.ID())
	assert.Zero(t, fs.ID())
	assert.Equal(t, 0, ctx.Live(gltest.Shader))
	assert.Equal(t, 0, ctx.Live(gltest.Program))
	assert.Equal(t, 1, ctx.Deleted(gltest.Program))
}

func TestLinkUncompiledStage(t *testing.T) {
	ctx := gltest.New()
	vs, err := shader.Compile(ctx, shader.Vertex, brokenVertexSrc)
	require.Error(t, err)
	fs, err := shader.Compile(ctx, shader.Fragment, fragmentSrc)
	require.NoError(t, err)

	_, err = shader.Link(ctx, vs, fs)
	var le *shader.LinkError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Log, "uncompiled")
	assert.Equal(t, 0, ctx.Live(gltest.Shader))
}

func TestLossyDiagnostics(t *testing.T) {
	ctx := gltest.New()
	long := strings.Repeat("x", 2000)
	ctx.Compiler = func(typ gl.Enum, src string) (string, bool) {
		if typ == gl.VERTEX_SHADER {
			return "bad byte \xff here", false
		}
		return long, false
	}

	_, err := shader.New(ctx, "", "")
	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "bad byte \uFFFD here", ce.Log)

	fs, err := shader.Compile(ctx, shader.Fragment, "")
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, long, ce.Log, "log is not truncated")
	fs.Release()
}

func TestUniforms(t *testing.T) {
	ctx := gltest.New()
	p, err := shader.New(ctx, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer p.Release()

	assert.False(t, p.Active())
	p.Activate()
	assert.True(t, p.Active())

	assert.Equal(t, int32(0), p.UniformLocation("uTransform"))
	assert.Equal(t, int32(1), p.UniformLocation("uTexture"))
	assert.Equal(t, shader.NotFound, p.UniformLocation("uMissing"))
	assert.Equal(t, int32(1), p.AttribLocation("aTexCoord"))
	assert.Equal(t, shader.NotFound, p.AttribLocation("aMissing"))

	m := mgl32.Translate3D(1, 2, 3)
	p.SetMat4("uTransform", m)
	p.SetVec4("uTint", mgl32.Vec4{1, 0.5, 0.25, 1})
	p.SetInt("uTexture", 3)
	// writing to a missing uniform is silently ignored
	p.SetFloat("uMissing", 1)
	p.SetVec2("uMissing", mgl32.Vec2{})
	p.SetVec3("uMissing", mgl32.Vec3{})
	assert.Equal(t, gl.NO_ERROR, ctx.PeekError())

	v, ok := ctx.Uniform(p.ID(), "uTransform")
	require.True(t, ok)
	assert.Equal(t, m[:], v)
	v, _ = ctx.Uniform(p.ID(), "uTint")
	assert.Equal(t, []float32{1, 0.5, 0.25, 1}, v)
	v, _ = ctx.Uniform(p.ID(), "uTexture")
	assert.Equal(t, []float32{3}, v)
}

func TestSettersActivateProgram(t *testing.T) {
	ctx := gltest.New()
	a, err := shader.New(ctx, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	b, err := shader.New(ctx, vertexSrc, fragmentSrc)
	require.NoError(t, err)

	a.Activate()
	b.SetVec4("uTint", mgl32.Vec4{0, 1, 0, 1})
	assert.True(t, b.Active())
	_, ok := ctx.Uniform(a.ID(), "uTint")
	assert.False(t, ok)
	_, ok = ctx.Uniform(b.ID(), "uTint")
	assert.True(t, ok)
}

func TestAllocationFailure(t *testing.T) {
	ctx := gltest.New()
	ctx.Fail(gltest.Shader, 1)
	s, err := shader.Compile(ctx, shader.Fragment, fragmentSrc)
	assert.Nil(t, s)
	assert.True(t, gl.IsAllocationError(err))

	ctx.Fail(gltest.Program, 1)
	p, err := shader.New(ctx, vertexSrc, fragmentSrc)
	assert.Nil(t, p)
	assert.True(t, gl.IsAllocationError(err))
	assert.Contains(t, err.Error(), "program")
	assert.Equal(t, 0, ctx.Live(gltest.Shader))
}
