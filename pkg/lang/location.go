package lang

import (
	"fmt"
	"strings"
)

// Location points at a character in the source text.
// Line and Column are 1-indexed; Offset is a 0-indexed byte offset.
type Location struct {
	Line   int
	Column int
	Offset int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Error is a fatal lexical, syntax, or semantic error with the exact
// source position it was raised at. The offending source line is captured
// at construction so Excerpt works without re-reading the input.
type Error struct {
	Msg  string
	Loc  Location
	line string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// Excerpt returns the error message followed by the offending source line
// with a caret under the exact column, for terminal display.
func (e *Error) Excerpt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Loc, e.Msg)
	if e.line == "" {
		return strings.TrimRight(b.String(), "\n")
	}
	b.WriteString(e.line)
	b.WriteByte('\n')
	for i := 0; i < e.Column()-1; i++ {
		// Tabs keep their width so the caret lines up in a terminal.
		if i < len(e.line) && e.line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}

func (e *Error) Column() int { return e.Loc.Column }

// newError builds a located error, capturing the source line containing loc.
func newError(source string, loc Location, format string, args ...interface{}) *Error {
	return &Error{
		Msg:  fmt.Sprintf(format, args...),
		Loc:  loc,
		line: lineAt(source, loc.Offset),
	}
}

// lineAt extracts the full line of source surrounding the given byte offset.
func lineAt(source string, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		return source[start:]
	}
	return source[start : offset+end]
}
