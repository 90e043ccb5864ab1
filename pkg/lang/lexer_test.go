package lang

import (
	"errors"
	"strings"
	"testing"
)

func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexer_MetadataLine(t *testing.T) {
	tokens := mustTokenize(t, "ratio: 16:9")
	want := []TokenType{TokenIdent, TokenColon, TokenRatio, TokenEOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if tokens[2].Literal != "16:9" {
		t.Errorf("ratio literal: got %q, want %q", tokens[2].Literal, "16:9")
	}
}

func TestLexer_GridLiteral(t *testing.T) {
	tokens := mustTokenize(t, "grid: 4x3")
	if tokens[2].Type != TokenGrid || tokens[2].Literal != "4x3" {
		t.Errorf("got %v %q, want grid literal 4x3", tokens[2].Type, tokens[2].Literal)
	}
	tokens = mustTokenize(t, "grid: 12X8")
	if tokens[2].Type != TokenGrid || tokens[2].Literal != "12X8" {
		t.Errorf("uppercase X: got %v %q", tokens[2].Type, tokens[2].Literal)
	}
}

func TestLexer_PlainNumber(t *testing.T) {
	tokens := mustTokenize(t, "gap: 12")
	if tokens[2].Type != TokenNumber || tokens[2].Literal != "12" {
		t.Errorf("got %v %q, want number 12", tokens[2].Type, tokens[2].Literal)
	}
}

func TestLexer_CellReference(t *testing.T) {
	tokens := mustTokenize(t, "A1")
	if tokens[0].Type != TokenCellRef || tokens[0].Literal != "A1" {
		t.Errorf("got %v %q, want cell reference A1", tokens[0].Type, tokens[0].Literal)
	}
}

func TestLexer_CellRange(t *testing.T) {
	tokens := mustTokenize(t, "A1..B2")
	if tokens[0].Type != TokenCellRange || tokens[0].Literal != "A1..B2" {
		t.Errorf("got %v %q, want cell range A1..B2", tokens[0].Type, tokens[0].Literal)
	}
}

func TestLexer_IdentifierNotCellReference(t *testing.T) {
	// Lowercase letters and trailing letters disqualify the cell pattern.
	for _, source := range []string{"a1", "A1x", "grid", "value2x"} {
		tokens := mustTokenize(t, source)
		if tokens[0].Type != TokenIdent {
			t.Errorf("%q: got %v, want identifier", source, tokens[0].Type)
		}
	}
}

func TestLexer_RangeWithBadSecondHalf(t *testing.T) {
	// "A1..foo" cannot be a range; the dots then fail to lex.
	_, err := NewLexer("A1..foo").Tokenize()
	if err == nil {
		t.Fatal("expected an error for A1..foo")
	}
}

func TestLexer_NewlineCollapse(t *testing.T) {
	tokens := mustTokenize(t, "gap: 1\n\n\n// comment only\n\npadding: 2")
	count := 0
	for _, tok := range tokens {
		if tok.Type == TokenNewline {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d newline tokens, want 1: %v", count, tokenTypes(tokens))
	}
}

func TestLexer_TrailingComment(t *testing.T) {
	tokens := mustTokenize(t, "gap: 1 // trailing")
	want := []TokenType{TokenIdent, TokenColon, TokenNumber, TokenEOF}
	got := tokenTypes(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	tokens := mustTokenize(t, `value: "a\nb\t\"c\"\q"`)
	// Unknown escape \q passes the q through literally.
	if tokens[2].Literal != "a\nb\t\"c\"q" {
		t.Errorf("got %q", tokens[2].Literal)
	}
}

func TestLexer_SingleQuotedString(t *testing.T) {
	tokens := mustTokenize(t, `value: 'it\'s'`)
	if tokens[2].Type != TokenString || tokens[2].Literal != "it's" {
		t.Errorf("got %v %q", tokens[2].Type, tokens[2].Literal)
	}
}

func TestLexer_BacktickString(t *testing.T) {
	tokens := mustTokenize(t, "value: `line one\nline two \\n literal`")
	if tokens[2].Type != TokenString {
		t.Fatalf("got %v, want string", tokens[2].Type)
	}
	if tokens[2].Literal != "line one\nline two \\n literal" {
		t.Errorf("got %q", tokens[2].Literal)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, err := NewLexer("value: \"oops").Tokenize()
	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *Error, got %v", err)
	}
	// Location points at the opening quote.
	if le.Loc.Line != 1 || le.Loc.Column != 8 {
		t.Errorf("error at %v, want 1:8", le.Loc)
	}
}

func TestLexer_HexColors(t *testing.T) {
	tokens := mustTokenize(t, "bg: #fff border: #1a2b3c")
	if tokens[2].Type != TokenHexColor || tokens[2].Literal != "#fff" {
		t.Errorf("short hex: got %v %q", tokens[2].Type, tokens[2].Literal)
	}
	if tokens[5].Type != TokenHexColor || tokens[5].Literal != "#1a2b3c" {
		t.Errorf("long hex: got %v %q", tokens[5].Type, tokens[5].Literal)
	}
}

func TestLexer_HexColorBadDigitCount(t *testing.T) {
	for _, source := range []string{"#f", "#ffff", "#1234567"} {
		_, err := NewLexer(source).Tokenize()
		if err == nil {
			t.Errorf("%q: expected an error", source)
		}
	}
}

func TestLexer_ThemeRef(t *testing.T) {
	tokens := mustTokenize(t, "bg: $primary")
	if tokens[2].Type != TokenThemeRef || tokens[2].Literal != "primary" {
		t.Errorf("got %v %q", tokens[2].Type, tokens[2].Literal)
	}
}

func TestLexer_BareDollar(t *testing.T) {
	_, err := NewLexer("bg: $ ").Tokenize()
	if err == nil || !strings.Contains(err.Error(), "color name") {
		t.Errorf("expected empty reference error, got %v", err)
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	_, err := NewLexer("gap: 1\n  @oops").Tokenize()
	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if le.Loc.Line != 2 || le.Loc.Column != 3 {
		t.Errorf("error at %v, want 2:3", le.Loc)
	}
	if !strings.Contains(le.Msg, "unexpected character") {
		t.Errorf("message %q", le.Msg)
	}
}

func TestLexer_LocationTracking(t *testing.T) {
	tokens := mustTokenize(t, "gap: 1\ngrid: 2x2")
	// The "grid" identifier starts line 2, column 1.
	var gridTok *Token
	for i := range tokens {
		if tokens[i].Literal == "grid" {
			gridTok = &tokens[i]
		}
	}
	if gridTok == nil {
		t.Fatal("grid token not found")
	}
	if gridTok.Loc.Line != 2 || gridTok.Loc.Column != 1 || gridTok.Loc.Offset != 7 {
		t.Errorf("grid token at %+v", gridTok.Loc)
	}
}

func TestError_Excerpt(t *testing.T) {
	_, err := NewLexer("grid: 2x2\nbg: #ffff\n").Tokenize()
	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *Error, got %v", err)
	}
	excerpt := le.Excerpt()
	if !strings.Contains(excerpt, "bg: #ffff") {
		t.Errorf("excerpt missing source line:\n%s", excerpt)
	}
	lines := strings.Split(excerpt, "\n")
	caret := lines[len(lines)-1]
	if !strings.HasSuffix(caret, "^") || len(caret) != 5 {
		t.Errorf("caret line %q, want 4 spaces then ^", caret)
	}
}
