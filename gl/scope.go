package gl

// bindingQuery maps a binding target to the GetInteger parameter returning
// the name currently bound to it.
//
var bindingQuery = map[Enum]Enum{
	ARRAY_BUFFER:         ARRAY_BUFFER_BINDING,
	ELEMENT_ARRAY_BUFFER: ELEMENT_ARRAY_BUFFER_BINDING,
	TEXTURE_2D:           TEXTURE_BINDING_2D,
}

// Bound returns the name of the object currently bound to target.
//
func Bound(ctx Context, target Enum) uint32 {
	q, ok := bindingQuery[target]
	if !ok {
		panic("gl: no binding query for target " + target.String())
	}
	return uint32(ctx.GetInteger(q))
}

// BindBuffer binds the buffer id to target and returns a function that
// restores whatever was bound to target before the call.
//
// Binding ELEMENT_ARRAY_BUFFER changes the state of the current vertex array;
// the restore function must run while the same vertex array is current.
//
func BindBuffer(ctx Context, target Enum, id uint32) (restore func()) {
	prev := Bound(ctx, target)
	if prev != id {
		ctx.BindBuffer(target, id)
	}
	return func() {
		if prev != id {
			ctx.BindBuffer(target, prev)
		}
	}
}

// BindTexture binds texture id to target on the active texture unit and
// returns a function that restores the previous binding on that unit.
//
func BindTexture(ctx Context, target Enum, id uint32) (restore func()) {
	prev := Bound(ctx, target)
	if prev != id {
		ctx.BindTexture(target, id)
	}
	return func() {
		if prev != id {
			ctx.BindTexture(target, prev)
		}
	}
}

// UseProgram makes program current and returns a function restoring the
// previously current program.
//
func UseProgram(ctx Context, program uint32) (restore func()) {
	prev := uint32(ctx.GetInteger(CURRENT_PROGRAM))
	if prev != program {
		ctx.UseProgram(program)
	}
	return func() {
		if prev != program {
			ctx.UseProgram(prev)
		}
	}
}
