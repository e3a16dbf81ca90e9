package gltest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/db47h/shaderpipe/gl"
)

// Check is the default Compiler. It is not a GLSL compiler: it catches the
// mistakes a test is likely to plant (unbalanced brackets, a missing
// semicolon, a misplaced #version) and reports them in the format Mesa uses,
// "0:LINE(COLUMN): error: message".
//
func Check(typ gl.Enum, src string) (log string, ok bool) {
	lines := strings.Split(stripComments(src), "\n")
	if err := checkVersion(lines); err != "" {
		return err, false
	}
	if err := checkBrackets(lines); err != "" {
		return err, false
	}
	if err := checkStatements(lines); err != "" {
		return err, false
	}
	return "", true
}

func diag(line, col int, format string, args ...interface{}) string {
	return fmt.Sprintf("0:%d(%d): error: ", line, col) + fmt.Sprintf(format, args...) + "\n"
}

// stripComments blanks out comments, keeping line breaks so that line
// numbers in diagnostics stay correct.
//
func stripComments(src string) string {
	var sb strings.Builder
	for i := 0; i < len(src); i++ {
		switch {
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				sb.WriteByte('\n')
			}
		case strings.HasPrefix(src[i:], "/*"):
			i += 2
			for i < len(src) && !strings.HasPrefix(src[i:], "*/") {
				if src[i] == '\n' {
					sb.WriteByte('\n')
				}
				i++
			}
			i++
			sb.WriteByte(' ')
		default:
			sb.WriteByte(src[i])
		}
	}
	return sb.String()
}

func checkVersion(lines []string) string {
	first := true
	for i, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "#version") && !first {
			return diag(i+1, strings.Index(l, "#")+1, "#version must appear on the first line")
		}
		first = false
	}
	return ""
}

var closing = map[byte]byte{')': '(', ']': '[', '}': '{'}

func checkBrackets(lines []string) string {
	type open struct {
		c         byte
		line, col int
	}
	var stack []open
	last := open{line: 1, col: 1}
	for i, l := range lines {
		for j := 0; j < len(l); j++ {
			c := l[j]
			switch c {
			case '(', '[', '{':
				stack = append(stack, open{c, i + 1, j + 1})
			case ')', ']', '}':
				if len(stack) == 0 || stack[len(stack)-1].c != closing[c] {
					return diag(i+1, j+1, "syntax error, unexpected '%c'", c)
				}
				stack = stack[:len(stack)-1]
			}
			if c != ' ' && c != '\t' && c != '\r' {
				last = open{line: i + 1, col: j + 2}
			}
		}
	}
	if len(stack) > 0 {
		return diag(last.line, last.col, "syntax error, unexpected end of file")
	}
	return ""
}

type srcLine struct {
	n    int // 1-based
	col  int // 1-based column of the first non blank character
	text string
}

func significant(lines []string) []srcLine {
	var sl []srcLine
	for i, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" || t[0] == '#' {
			continue
		}
		sl = append(sl, srcLine{i + 1, strings.Index(l, t[:1]) + 1, t})
	}
	return sl
}

func isWordChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

var controlWords = []string{"if", "else", "for", "while", "do", "switch"}

func isControl(t string) bool {
	for _, w := range controlWords {
		if strings.HasPrefix(t, w) && (len(t) == len(w) || !isWordChar(t[len(w)])) {
			return true
		}
	}
	return false
}

func token(t string) string {
	if isWordChar(t[0]) {
		return "IDENTIFIER"
	}
	return "'" + t[:1] + "'"
}

// checkStatements reports a line that ends an expression without a
// terminating semicolon when the next line starts something new.
//
func checkStatements(lines []string) string {
	sl := significant(lines)
	for i, l := range sl {
		end := l.text[len(l.text)-1]
		if !isWordChar(end) && end != ')' && end != ']' && end != '.' {
			continue
		}
		if isControl(l.text) {
			continue
		}
		if i+1 == len(sl) {
			return diag(l.n, len(lines[l.n-1])+1, "syntax error, unexpected end of file, expecting ',' or ';'")
		}
		next := sl[i+1]
		if strings.ContainsRune("{)]+-*/%=&|^<>?:.,;", rune(next.text[0])) {
			continue
		}
		return diag(next.n, next.col, "syntax error, unexpected %s, expecting ',' or ';'", token(next.text))
	}
	return ""
}

var (
	declRx = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?` +
		`(?:(?:flat|smooth|noperspective|centroid)\s+)*` +
		`(in|out|varying|attribute|uniform)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	mainRx = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

type decl struct {
	storage  string // in, out or uniform
	typ      string
	name     string
	location int // -1 if not specified
	count    int
}

func declarations(typ gl.Enum, src string) []decl {
	var ds []decl
	for _, m := range declRx.FindAllStringSubmatch(stripComments(src), -1) {
		d := decl{storage: m[2], typ: m[3], name: m[4], location: -1, count: 1}
		if m[1] != "" {
			d.location, _ = strconv.Atoi(m[1])
		}
		if m[5] != "" {
			d.count, _ = strconv.Atoi(m[5])
		}
		switch d.storage {
		case "attribute":
			d.storage = "in"
		case "varying":
			if typ == gl.VERTEX_SHADER {
				d.storage = "out"
			} else {
				d.storage = "in"
			}
		}
		ds = append(ds, d)
	}
	return ds
}

func stageName(typ gl.Enum) string {
	if typ == gl.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}

// link validates the attached stages and fills in the program's uniform and
// attribute locations. Uniform locations are assigned in declaration order,
// vertex stage first; unlike a real driver, unused uniforms are kept.
//
func link(stages []*ShaderObject, p *ProgramObject) (log string, ok bool) {
	if len(stages) == 0 {
		return "error: no shaders attached to the program\n", false
	}
	var vs, fs *ShaderObject
	for _, s := range stages {
		if !s.Compiled {
			return "error: linking with uncompiled/unspecialized shader\n", false
		}
		switch s.Type {
		case gl.VERTEX_SHADER:
			vs = s
		case gl.FRAGMENT_SHADER:
			fs = s
		}
	}
	if vs == nil {
		return "error: program lacks a vertex shader\n", false
	}
	if fs == nil {
		return "error: program lacks a fragment shader\n", false
	}
	for _, s := range []*ShaderObject{vs, fs} {
		if !mainRx.MatchString(stripComments(s.Source)) {
			return fmt.Sprintf("error: %s shader lacks `main'\n", stageName(s.Type)), false
		}
	}

	vd, fd := declarations(vs.Type, vs.Source), declarations(fs.Type, fs.Source)
	outputs := make(map[string]string)
	for _, d := range vd {
		if d.storage == "out" {
			outputs[d.name] = d.typ
		}
	}
	for _, d := range fd {
		if d.storage != "in" {
			continue
		}
		t, ok := outputs[d.name]
		if !ok {
			return fmt.Sprintf("error: fragment shader input `%s' has no matching output in the previous stage\n", d.name), false
		}
		if t != d.typ {
			return fmt.Sprintf("error: vertex shader output `%s' declared as type `%s', but fragment shader input declared as type `%s'\n", d.name, t, d.typ), false
		}
	}

	uniforms := make(map[string]string)
	var loc int32
	for _, d := range append(vd, fd...) {
		if d.storage != "uniform" {
			continue
		}
		if t, ok := uniforms[d.name]; ok {
			if t != d.typ {
				return fmt.Sprintf("error: uniform `%s' declared as type `%s' and type `%s'\n", d.name, t, d.typ), false
			}
			continue
		}
		uniforms[d.name] = d.typ
		p.Uniforms[d.name] = loc
		if d.count > 1 {
			p.Uniforms[d.name+"[0]"] = loc
		}
		loc += int32(d.count)
	}

	used := make(map[int32]bool)
	for _, d := range vd {
		if d.storage == "in" && d.location >= 0 {
			p.Attribs[d.name] = int32(d.location)
			used[int32(d.location)] = true
		}
	}
	var next int32
	for _, d := range vd {
		if d.storage != "in" || d.location >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		p.Attribs[d.name] = next
		used[next] = true
	}
	return "", true
}
