// Package buffer wraps GL buffer objects holding vertex or index data.
//
package buffer

import (
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/nocopy"
	"github.com/pkg/errors"
)

// Kind selects what a buffer holds, and thus the target it binds to.
//
type Kind int

// Buffer kinds.
//
const (
	Vertex Kind = iota // vertex attribute data, bound to ARRAY_BUFFER
	Index              // element indices, bound to ELEMENT_ARRAY_BUFFER
)

// Target returns the GL binding target for k.
//
func (k Kind) Target() gl.Enum {
	if k == Index {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Index:
		return "index"
	}
	return "invalid"
}

// A Buffer owns one GL buffer object whose contents are uploaded once, at
// creation.
//
// A Buffer must not be copied; share the pointer instead.
//
type Buffer struct {
	noCopy nocopy.NoCopy
	ctx    gl.Context
	id     uint32
	kind   Kind
	typ    gl.Enum
	count  int
}

// New creates a buffer of the given kind and uploads data to it as a static
// resource. The new buffer is left bound to its target.
//
// The only possible error is a *gl.AllocationError.
//
func New[E gl.Numeric](ctx gl.Context, kind Kind, data []E) (*Buffer, error) {
	id := ctx.GenBuffer()
	if id == 0 {
		return nil, &gl.AllocationError{Object: kind.String() + " buffer"}
	}
	b := &Buffer{ctx: ctx, id: id, kind: kind, typ: gl.TypeOf[E](), count: len(data)}
	ctx.BindBuffer(kind.Target(), id)
	ctx.BufferData(kind.Target(), gl.Bytes(data), gl.STATIC_DRAW)
	return b, nil
}

// ID returns the GL name of the buffer, 0 once released.
//
func (b *Buffer) ID() uint32 { return b.id }

// Kind returns the buffer kind.
//
func (b *Buffer) Kind() Kind { return b.kind }

// Type returns the GL type of the buffer elements, e.g. gl.UNSIGNED_INT for
// an index buffer created from a []uint32.
//
func (b *Buffer) Type() gl.Enum { return b.typ }

// Len returns the number of elements in the buffer.
//
func (b *Buffer) Len() int { return b.count }

// Size returns the buffer size in bytes.
//
func (b *Buffer) Size() int { return b.count * gl.TypeSize(b.typ) }

// Bind binds the buffer to its target.
//
func (b *Buffer) Bind() {
	b.ctx.BindBuffer(b.kind.Target(), b.id)
}

// Unbind clears the binding of the buffer's target.
//
// Unbinding an index buffer while a vertex array is bound removes it from
// that vertex array.
//
func (b *Buffer) Unbind() {
	b.ctx.BindBuffer(b.kind.Target(), 0)
}

// Released reports whether Release has been called.
//
func (b *Buffer) Released() bool { return b.id == 0 }

// Release deletes the GL buffer. Calling Release more than once has no
// effect.
//
func (b *Buffer) Release() {
	if b.id == 0 {
		return
	}
	b.ctx.DeleteBuffer(b.id)
	b.id = 0
}

// Read reads len(dst) elements starting at element offset back from the GPU.
// E must be the element type the buffer was created with.
//
// The buffer binding of the buffer's target is restored afterwards. A GL
// error pending before the read is returned without reading.
//
func Read[E gl.Numeric](b *Buffer, offset int, dst []E) error {
	if b.id == 0 {
		return errors.New("read from released buffer")
	}
	if t := gl.TypeOf[E](); t != b.typ {
		return errors.Errorf("read %s elements from a %s buffer", t, b.typ)
	}
	if offset < 0 || offset+len(dst) > b.count {
		return errors.Errorf("read [%d:%d] out of range [0:%d]", offset, offset+len(dst), b.count)
	}
	if len(dst) == 0 {
		return nil
	}
	if err := gl.Check(b.ctx); err != nil {
		return errors.Wrap(err, "pending GL error before buffer read")
	}
	restore := gl.BindBuffer(b.ctx, b.kind.Target(), b.id)
	b.ctx.GetBufferSubData(b.kind.Target(), offset*gl.SizeOf[E](), gl.Bytes(dst))
	restore()
	return errors.Wrap(gl.Check(b.ctx), "read buffer")
}
