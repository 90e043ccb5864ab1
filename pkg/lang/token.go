package lang

type TokenType int

const (
	TokenIdent TokenType = iota
	TokenString
	TokenNumber
	TokenColon
	TokenComma
	TokenLBrace
	TokenRBrace
	TokenCellRef
	TokenCellRange
	TokenRatio    // "16:9"
	TokenGrid     // "4x3"
	TokenHexColor // "#fff" or "#1a2b3c"
	TokenThemeRef // "$primary"
	TokenNewline  // one per run of physical newlines
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenIdent:     "identifier",
	TokenString:    "string",
	TokenNumber:    "number",
	TokenColon:     "':'",
	TokenComma:     "','",
	TokenLBrace:    "'{'",
	TokenRBrace:    "'}'",
	TokenCellRef:   "cell reference",
	TokenCellRange: "cell range",
	TokenRatio:     "ratio",
	TokenGrid:      "grid size",
	TokenHexColor:  "hex color",
	TokenThemeRef:  "color reference",
	TokenNewline:   "newline",
	TokenEOF:       "end of input",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown token"
}

// Token is a single lexeme with its source position. Tokens are produced by
// the lexer and consumed once by the parser.
type Token struct {
	Type    TokenType
	Literal string
	Loc     Location
}
