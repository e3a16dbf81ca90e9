// Package vertex wraps GL vertex array objects.
//
// An Array records which buffer feeds each attribute slot of a shader and
// how the data is laid out in that buffer. It does not own the buffers: a
// buffer bound to an Array must outlive every draw call made with it. The
// Array panics when asked to bind a released buffer, and Validate reports
// bindings whose buffer has been released since.
//
package vertex

import (
	"fmt"
	"sort"

	"github.com/db47h/shaderpipe/buffer"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/nocopy"
	"github.com/pkg/errors"
)

// Attribute describes the layout of one vertex attribute.
//
type Attribute struct {
	Slot       uint32  // attribute location in the shader
	Size       int32   // number of components, 1 to 4
	Type       gl.Enum // component type, e.g. gl.FLOAT
	Normalized bool
	Stride     int32 // bytes between consecutive vertices, 0 for tightly packed
	Offset     int   // byte offset of the first component in the buffer
}

// Packed returns the attributes of an interleaved vertex layout where slot i
// has sizes[i] components of type typ. Slots are numbered from 0.
//
// For example, Packed(gl.FLOAT, 3, 2) describes a position followed by
// texture coordinates, with a stride of 20 bytes.
//
func Packed(typ gl.Enum, sizes ...int32) []Attribute {
	var stride int32
	for _, sz := range sizes {
		stride += sz * int32(gl.TypeSize(typ))
	}
	attrs := make([]Attribute, len(sizes))
	offset := 0
	for i, sz := range sizes {
		attrs[i] = Attribute{Slot: uint32(i), Size: sz, Type: typ, Stride: stride, Offset: offset}
		offset += int(sz) * gl.TypeSize(typ)
	}
	return attrs
}

// Binding is an Attribute together with the buffer it reads from.
//
type Binding struct {
	Attribute
	Buffer *buffer.Buffer
}

// An Array owns one GL vertex array object.
//
// An Array must not be copied; share the pointer instead.
//
type Array struct {
	noCopy   nocopy.NoCopy
	ctx      gl.Context
	id       uint32
	bindings map[uint32]Binding
	index    *buffer.Buffer
}

// NewArray creates a vertex array with no attribute bindings.
//
func NewArray(ctx gl.Context) (*Array, error) {
	id := ctx.GenVertexArray()
	if id == 0 {
		return nil, &gl.AllocationError{Object: "vertex array"}
	}
	return &Array{ctx: ctx, id: id, bindings: make(map[uint32]Binding)}, nil
}

// ID returns the GL name of the vertex array, 0 once released.
//
func (a *Array) ID() uint32 { return a.id }

// Bind makes the vertex array current.
//
func (a *Array) Bind() {
	a.ctx.BindVertexArray(a.id)
}

// Unbind clears the current vertex array.
//
func (a *Array) Unbind() {
	a.ctx.BindVertexArray(0)
}

func (a *Array) mustUse(buf *buffer.Buffer, kind buffer.Kind) {
	if a.id == 0 {
		panic("vertex: use of released vertex array")
	}
	if buf == nil || buf.Released() {
		panic("vertex: use of released buffer")
	}
	if buf.Kind() != kind {
		panic(fmt.Sprintf("vertex: %s buffer used as %s buffer", buf.Kind(), kind))
	}
}

// BindAttribute describes attribute attr.Slot as reading from buf with the
// given layout and enables it.
//
// The vertex array is made current and stays current. buf is bound to
// ARRAY_BUFFER only for the duration of the call: the previous ARRAY_BUFFER
// binding is restored before returning. Binding a slot twice replaces the
// previous binding.
//
// BindAttribute panics if buf has been released or is not a vertex buffer.
//
func (a *Array) BindAttribute(buf *buffer.Buffer, attr Attribute) {
	a.mustUse(buf, buffer.Vertex)
	a.Bind()
	restore := gl.BindBuffer(a.ctx, gl.ARRAY_BUFFER, buf.ID())
	a.ctx.VertexAttribPointer(attr.Slot, attr.Size, attr.Type, attr.Normalized, attr.Stride, attr.Offset)
	a.ctx.EnableVertexAttribArray(attr.Slot)
	restore()
	a.bindings[attr.Slot] = Binding{Attribute: attr, Buffer: buf}
}

// BindAttributes calls BindAttribute for each attribute in attrs.
//
func (a *Array) BindAttributes(buf *buffer.Buffer, attrs ...Attribute) {
	for _, attr := range attrs {
		a.BindAttribute(buf, attr)
	}
}

// SetIndexBuffer attaches an index buffer to the vertex array. The vertex
// array is made current and buf stays bound to ELEMENT_ARRAY_BUFFER, which is
// vertex array state.
//
// SetIndexBuffer panics if buf has been released or is not an index buffer.
//
func (a *Array) SetIndexBuffer(buf *buffer.Buffer) {
	a.mustUse(buf, buffer.Index)
	a.Bind()
	buf.Bind()
	a.index = buf
}

// IndexBuffer returns the index buffer set with SetIndexBuffer, or nil.
//
func (a *Array) IndexBuffer() *buffer.Buffer { return a.index }

// Binding returns the binding of the given slot.
//
func (a *Array) Binding(slot uint32) (Binding, bool) {
	b, ok := a.bindings[slot]
	return b, ok
}

// Bindings returns all attribute bindings ordered by slot.
//
func (a *Array) Bindings() []Binding {
	bs := make([]Binding, 0, len(a.bindings))
	for _, b := range a.bindings {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].Slot < bs[j].Slot })
	return bs
}

// Validate returns an error if the vertex array has been released or
// references a released buffer.
//
func (a *Array) Validate() error {
	if a.id == 0 {
		return errors.New("vertex array released")
	}
	for _, b := range a.Bindings() {
		if b.Buffer.Released() {
			return errors.Errorf("attribute %d reads from a released buffer", b.Slot)
		}
	}
	if a.index != nil && a.index.Released() {
		return errors.New("index buffer released")
	}
	return nil
}

// Release deletes the GL vertex array. The referenced buffers are not
// released. Calling Release more than once has no effect.
//
func (a *Array) Release() {
	if a.id == 0 {
		return
	}
	a.ctx.DeleteVertexArray(a.id)
	a.id = 0
	a.bindings = make(map[uint32]Binding)
	a.index = nil
}
