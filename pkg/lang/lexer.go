package lang

import "strings"

// Lexer turns source text into a flat token stream. It keeps a byte cursor
// plus the line/column it corresponds to, so every token and error carries
// an exact position.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []Token
}

func NewLexer(source string) *Lexer {
	return &Lexer{input: source, line: 1, column: 1}
}

// Tokenize scans the whole input. Runs of newlines (blank lines, stacked
// comments) collapse into a single newline token; the stream always ends
// with an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			l.skipComment()
		case c == '\n':
			l.emitNewline()
		case c == ':':
			l.emitSingle(TokenColon)
		case c == ',':
			l.emitSingle(TokenComma)
		case c == '{':
			l.emitSingle(TokenLBrace)
		case c == '}':
			l.emitSingle(TokenRBrace)
		case c == '"' || c == '\'':
			if err := l.readString(c); err != nil {
				return nil, err
			}
		case c == '`':
			if err := l.readRawString(); err != nil {
				return nil, err
			}
		case c == '#':
			if err := l.readHexColor(); err != nil {
				return nil, err
			}
		case c == '$':
			if err := l.readThemeRef(); err != nil {
				return nil, err
			}
		case isDigit(c):
			l.readNumeric()
		case isLetter(c):
			l.readWord()
		default:
			return nil, newError(l.input, l.here(), "unexpected character %q", string(c))
		}
	}
	l.tokens = append(l.tokens, Token{Type: TokenEOF, Loc: l.here()})
	return l.tokens, nil
}

func (l *Lexer) here() Location {
	return Location{Line: l.line, Column: l.column, Offset: l.pos}
}

// advance moves past one byte, tracking line/column.
func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) emit(t TokenType, literal string, loc Location) {
	l.tokens = append(l.tokens, Token{Type: t, Literal: literal, Loc: loc})
}

func (l *Lexer) emitSingle(t TokenType) {
	loc := l.here()
	l.emit(t, string(l.input[l.pos]), loc)
	l.advance()
}

// emitNewline consumes one physical newline and appends a newline token
// unless the previous token already is one. Runs of blank lines are
// collapsed by the following newlines hitting the same check.
func (l *Lexer) emitNewline() {
	loc := l.here()
	l.advance()
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Type == TokenNewline {
		return
	}
	if len(l.tokens) == 0 {
		// A leading blank line carries no syntax.
		return
	}
	l.emit(TokenNewline, "\n", loc)
}

func (l *Lexer) skipComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

// readString handles '"' and '\'' delimited strings with escape sequences.
// Unknown escapes pass the escaped character through literally.
func (l *Lexer) readString(quote byte) error {
	loc := l.here()
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case quote:
			l.advance()
			l.emit(TokenString, b.String(), loc)
			return nil
		case '\\':
			l.advance()
			if l.pos >= len(l.input) {
				return newError(l.input, loc, "unterminated string")
			}
			switch l.input[l.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(l.input[l.pos])
			}
			l.advance()
		case '\n':
			return newError(l.input, loc, "unterminated string")
		default:
			b.WriteByte(c)
			l.advance()
		}
	}
	return newError(l.input, loc, "unterminated string")
}

// readRawString handles backtick strings: verbatim, may span lines.
func (l *Lexer) readRawString() error {
	loc := l.here()
	l.advance()
	start := l.pos
	for l.pos < len(l.input) {
		if l.input[l.pos] == '`' {
			l.emit(TokenString, l.input[start:l.pos], loc)
			l.advance()
			return nil
		}
		l.advance()
	}
	return newError(l.input, loc, "unterminated raw string")
}

// readHexColor accepts exactly #rgb or #rrggbb.
func (l *Lexer) readHexColor() error {
	loc := l.here()
	l.advance()
	start := l.pos
	for l.pos < len(l.input) && isHexDigit(l.input[l.pos]) {
		l.advance()
	}
	digits := l.pos - start
	if digits != 3 && digits != 6 {
		return newError(l.input, loc, "hex color must have 3 or 6 digits, got %d", digits)
	}
	l.emit(TokenHexColor, "#"+l.input[start:l.pos], loc)
	return nil
}

func (l *Lexer) readThemeRef() error {
	loc := l.here()
	l.advance()
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.advance()
	}
	if l.pos == start {
		return newError(l.input, loc, "expected color name after '$'")
	}
	l.emit(TokenThemeRef, l.input[start:l.pos], loc)
	return nil
}

// readNumeric scans a digit run and classifies it as a ratio ("16:9"),
// grid size ("4x3"), or plain number depending on what follows.
func (l *Lexer) readNumeric() {
	loc := l.here()
	start := l.pos
	l.scanDigits()
	if l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ':':
			if isDigit(l.peekAt(1)) {
				l.advance()
				l.scanDigits()
				l.emit(TokenRatio, l.input[start:l.pos], loc)
				return
			}
		case 'x', 'X':
			if isDigit(l.peekAt(1)) {
				l.advance()
				l.scanDigits()
				l.emit(TokenGrid, l.input[start:l.pos], loc)
				return
			}
		}
	}
	l.emit(TokenNumber, l.input[start:l.pos], loc)
}

func (l *Lexer) scanDigits() {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance()
	}
}

// readWord scans a maximal letter/digit/underscore run once, then
// classifies the captured span: an uppercase-letters-then-digits span is a
// cell reference (possibly the first half of a ".."-joined range); anything
// else is a plain identifier. No cursor rewind is needed.
func (l *Lexer) readWord() {
	loc := l.here()
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.advance()
	}
	span := l.input[start:l.pos]
	if !isCellPattern(span) {
		l.emit(TokenIdent, span, loc)
		return
	}
	if strings.HasPrefix(l.input[l.pos:], "..") {
		// Look past ".." for the second endpoint without committing yet.
		rest := l.input[l.pos+2:]
		end := 0
		for end < len(rest) && isIdentChar(rest[end]) {
			end++
		}
		if isCellPattern(rest[:end]) {
			l.advance() // '.'
			l.advance() // '.'
			for i := 0; i < end; i++ {
				l.advance()
			}
			l.emit(TokenCellRange, l.input[start:l.pos], loc)
			return
		}
	}
	l.emit(TokenCellRef, span, loc)
}

// isCellPattern reports whether s is one or more uppercase letters followed
// by one or more digits, with nothing else.
func isCellPattern(s string) bool {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return false
	}
	for _, c := range []byte(s[i:]) {
		if !isDigit(c) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
func isIdentChar(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' }
