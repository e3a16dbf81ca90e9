package shader

import (
	"bytes"
	"strings"
)

// CompileError is returned by Compile when the driver rejects the source of
// a stage. Log is the driver's info log, verbatim.
//
type CompileError struct {
	Stage Type
	Log   string
}

func (e *CompileError) Error() string {
	return "compile " + e.Stage.String() + " shader: " + e.Log
}

// LinkError is returned by Link when the driver rejects the program built
// from two compiled stages.
//
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program: " + e.Log
}

// infoLog runs the diagnostic protocol: query the log length, allocate that
// many bytes, fetch the log without a length pointer, then decode it. Invalid
// UTF-8 is replaced, never reported.
//
func infoLog(length int32, get func([]byte)) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	get(buf)
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return strings.ToValidUTF8(string(buf), "\uFFFD")
}
