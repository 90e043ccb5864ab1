// Package sketchhtml is a small HTML reader for the webpage inference
// feature. It covers ordinary markup only: enough to recover the element
// structure a wireframe can be inferred from, not a conforming parser.
package sketchhtml

import (
	"fmt"
	gohtml "html"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenStart tokenType = iota
	tokenEnd
	tokenText
	tokenEOF
)

type token struct {
	typ         tokenType
	tag         string
	attrs       map[string]string
	text        string
	selfClosing bool
}

type tokenizer struct {
	input string
	pos   int
}

func (t *tokenizer) next() (token, error) {
	if t.pos >= len(t.input) {
		return token{typ: tokenEOF}, nil
	}
	if t.input[t.pos] == '<' {
		return t.readTag()
	}
	return t.readText()
}

func (t *tokenizer) readTag() (token, error) {
	t.pos++
	// Comments, doctype, and processing instructions carry no structure
	// the inference cares about; skip to their terminator.
	if strings.HasPrefix(t.input[t.pos:], "!--") {
		if i := strings.Index(t.input[t.pos:], "-->"); i >= 0 {
			t.pos += i + 3
		} else {
			t.pos = len(t.input)
		}
		return t.next()
	}
	if t.pos < len(t.input) && (t.input[t.pos] == '!' || t.input[t.pos] == '?') {
		if i := strings.IndexByte(t.input[t.pos:], '>'); i >= 0 {
			t.pos += i + 1
		} else {
			t.pos = len(t.input)
		}
		return t.next()
	}

	end := false
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		end = true
		t.pos++
	}
	tag := t.readName()
	if tag == "" {
		return token{}, fmt.Errorf("expected tag name at byte %d", t.pos)
	}
	if end {
		if i := strings.IndexByte(t.input[t.pos:], '>'); i >= 0 {
			t.pos += i + 1
		} else {
			t.pos = len(t.input)
		}
		return token{typ: tokenEnd, tag: tag}, nil
	}

	attrs := make(map[string]string)
	for {
		t.skipSpace()
		if t.pos >= len(t.input) {
			return token{}, fmt.Errorf("unexpected end of input in <%s>", tag)
		}
		switch t.input[t.pos] {
		case '>':
			t.pos++
			return token{typ: tokenStart, tag: tag, attrs: attrs}, nil
		case '/':
			t.pos++
			t.skipSpace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				return token{typ: tokenStart, tag: tag, attrs: attrs, selfClosing: true}, nil
			}
		default:
			name := t.readName()
			if name == "" {
				// Unparseable attribute junk: skip a byte and carry on.
				t.pos++
				continue
			}
			t.skipSpace()
			if t.pos < len(t.input) && t.input[t.pos] == '=' {
				t.pos++
				t.skipSpace()
				attrs[name] = t.readAttrValue()
			} else {
				attrs[name] = ""
			}
		}
	}
}

func (t *tokenizer) readName() string {
	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *tokenizer) readAttrValue() string {
	if t.pos >= len(t.input) {
		return ""
	}
	if q := t.input[t.pos]; q == '"' || q == '\'' {
		t.pos++
		start := t.pos
		for t.pos < len(t.input) && t.input[t.pos] != q {
			t.pos++
		}
		val := t.input[start:t.pos]
		if t.pos < len(t.input) {
			t.pos++
		}
		return val
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *tokenizer) readText() (token, error) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	raw := t.input[start:t.pos]
	text := strings.Join(strings.Fields(raw), " ")
	if text == "" {
		return t.next()
	}
	return token{typ: tokenText, text: gohtml.UnescapeString(text)}, nil
}

// skipRaw consumes everything up to and including the closing tag of a raw
// text element (script, style), where '<' does not open a tag.
func (t *tokenizer) skipRaw(tag string) {
	needle := "</" + tag
	if i := strings.Index(strings.ToLower(t.input[t.pos:]), needle); i >= 0 {
		t.pos += i
		if j := strings.IndexByte(t.input[t.pos:], '>'); j >= 0 {
			t.pos += j + 1
			return
		}
	}
	t.pos = len(t.input)
}

func (t *tokenizer) skipSpace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == ':'
}
