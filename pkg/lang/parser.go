package lang

import (
	"strconv"
	"strings"

	"sketchlang/pkg/theme"
)

// Parse compiles wireframe source text into a Document. It fails fast: the
// first lexical, syntax, or semantic problem aborts the parse with a
// located *Error and no partial document.
func Parse(source string) (*Document, error) {
	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{source: source, tokens: tokens}
	return p.parseDocument()
}

type parser struct {
	source string
	tokens []Token
	pos    int
	doc    Document
}

func (p *parser) parseDocument() (*Document, error) {
	p.doc.Meta = Metadata{RatioW: 16, RatioH: 9, GridCols: 4, GridRows: 3}
	for {
		p.skipNewlines()
		tok := p.peek()
		switch tok.Type {
		case TokenEOF:
			return &p.doc, nil
		case TokenIdent:
			if err := p.parseMetadata(); err != nil {
				return nil, err
			}
		case TokenCellRef, TokenCellRange:
			if err := p.parseComponent(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errf(tok.Loc, "expected a setting or a cell declaration, got %s", tok.Type)
		}
	}
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) skipNewlines() {
	for p.peek().Type == TokenNewline {
		p.pos++
	}
}

func (p *parser) expect(t TokenType) (Token, error) {
	tok := p.next()
	if tok.Type != t {
		return tok, p.errf(tok.Loc, "expected %s, got %s", t, tok.Type)
	}
	return tok, nil
}

func (p *parser) errf(loc Location, format string, args ...interface{}) *Error {
	return newError(p.source, loc, format, args...)
}

// parseMetadata handles one "key: value" document setting.
func (p *parser) parseMetadata() error {
	key := p.next()
	if _, err := p.expect(TokenColon); err != nil {
		return err
	}
	meta := &p.doc.Meta
	switch key.Literal {
	case "ratio":
		tok, err := p.expect(TokenRatio)
		if err != nil {
			return err
		}
		w, h, _ := strings.Cut(tok.Literal, ":")
		meta.RatioW, _ = strconv.Atoi(w)
		meta.RatioH, _ = strconv.Atoi(h)
		if meta.RatioW < 1 || meta.RatioH < 1 {
			return p.errf(tok.Loc, "ratio terms must be positive")
		}
	case "grid":
		tok, err := p.expect(TokenGrid)
		if err != nil {
			return err
		}
		lit := strings.ToLower(tok.Literal)
		c, r, _ := strings.Cut(lit, "x")
		cols, _ := strconv.Atoi(c)
		rows, _ := strconv.Atoi(r)
		meta.GridCols = clampGridAxis(cols)
		meta.GridRows = clampGridAxis(rows)
		// A redeclared grid must still hold everything accepted under the
		// previous dimensions.
		for _, comp := range p.doc.Components {
			rng := comp.CellRange()
			if rng.End.Col >= meta.GridCols || rng.End.Row >= meta.GridRows {
				return p.errf(tok.Loc, "grid %dx%d cannot fit %s declared earlier",
					meta.GridCols, meta.GridRows, rng)
			}
		}
		if meta.ColWidths != nil && len(meta.ColWidths) != meta.GridCols {
			return p.errf(tok.Loc, "colWidths has %d values but the grid has %d columns",
				len(meta.ColWidths), meta.GridCols)
		}
		if meta.RowHeights != nil && len(meta.RowHeights) != meta.GridRows {
			return p.errf(tok.Loc, "rowHeights has %d values but the grid has %d rows",
				len(meta.RowHeights), meta.GridRows)
		}
	case "gap":
		v, err := p.parseNumber()
		if err != nil {
			return err
		}
		meta.Gap = v
	case "padding":
		v, err := p.parseNumber()
		if err != nil {
			return err
		}
		meta.Padding = v
	case "theme":
		tok, err := p.expect(TokenIdent)
		if err != nil {
			return err
		}
		if !theme.Known(tok.Literal) {
			return p.errf(tok.Loc, "unknown theme %q (valid: %s)", tok.Literal, strings.Join(theme.Names(), ", "))
		}
		meta.Theme = tok.Literal
	case "colors":
		return p.parseColors()
	case "colWidths":
		weights, err := p.parseWeights(key, meta.GridCols, "columns")
		if err != nil {
			return err
		}
		meta.ColWidths = weights
	case "rowHeights":
		weights, err := p.parseWeights(key, meta.GridRows, "rows")
		if err != nil {
			return err
		}
		meta.RowHeights = weights
	default:
		return p.errf(key.Loc, "unknown setting %q", key.Literal)
	}
	return p.endStatement()
}

// clampGridAxis limits a grid dimension to the addressable 1..26 cells.
func clampGridAxis(n int) int {
	if n < 1 {
		return 1
	}
	if n > 26 {
		return 26
	}
	return n
}

func (p *parser) parseNumber() (float64, error) {
	tok, err := p.expect(TokenNumber)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return 0, p.errf(tok.Loc, "invalid number %q", tok.Literal)
	}
	return v, nil
}

// parseWeights reads a comma-separated list of positive numbers, one per
// grid division on the named axis.
func (p *parser) parseWeights(key Token, want int, axis string) ([]float64, error) {
	var weights []float64
	for {
		v, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, p.errf(key.Loc, "%s weights must be positive", key.Literal)
		}
		weights = append(weights, v)
		if p.peek().Type != TokenComma {
			break
		}
		p.next()
	}
	if len(weights) != want {
		return nil, p.errf(key.Loc, "%s needs %d values for %d %s, got %d", key.Literal, want, want, axis, len(weights))
	}
	return weights, nil
}

// parseColors reads the brace-delimited name → color block. Values may be
// hex colors, quoted strings, or bare CSS color names.
func (p *parser) parseColors() error {
	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}
	colors := make(map[string]string)
	for {
		p.skipNewlines()
		if p.peek().Type == TokenRBrace {
			p.next()
			break
		}
		name, err := p.expect(TokenIdent)
		if err != nil {
			return err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return err
		}
		val := p.next()
		switch val.Type {
		case TokenHexColor, TokenString, TokenIdent:
			colors[name.Literal] = val.Literal
		default:
			return p.errf(val.Loc, "expected a color value for %q, got %s", name.Literal, val.Type)
		}
		if p.peek().Type == TokenComma {
			p.next()
		}
	}
	p.doc.Meta.Colors = colors
	return p.endStatement()
}

// endStatement consumes the newline (or EOF) terminating a statement.
func (p *parser) endStatement() error {
	tok := p.peek()
	switch tok.Type {
	case TokenNewline:
		p.next()
		return nil
	case TokenEOF:
		return nil
	default:
		return p.errf(tok.Loc, "expected end of line, got %s", tok.Type)
	}
}

// property is one parsed "key: value" pair inside a component block,
// kept with positions for precise semantic errors.
type property struct {
	key Token
	val Token
}

// parseComponent handles "A1: { ... }" / "A1..B2: { ... }" declarations,
// then runs the semantic checks and builds the typed component.
func (p *parser) parseComponent() error {
	ref := p.next()
	rng, err := ParseRange(ref.Literal)
	if err != nil {
		return p.errf(ref.Loc, "%v", err)
	}
	if _, err := p.expect(TokenColon); err != nil {
		return err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}

	var props []property
	for {
		p.skipNewlines()
		if p.peek().Type == TokenRBrace {
			p.next()
			break
		}
		key, err := p.expect(TokenIdent)
		if err != nil {
			return err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return err
		}
		val := p.next()
		switch val.Type {
		case TokenString, TokenIdent, TokenNumber, TokenHexColor, TokenThemeRef:
			props = append(props, property{key: key, val: val})
		default:
			return p.errf(val.Loc, "expected a property value, got %s", val.Type)
		}
		p.skipNewlines()
		if p.peek().Type == TokenComma {
			p.next()
		}
	}

	comp, err := p.buildComponent(ref, rng, props)
	if err != nil {
		return err
	}
	p.doc.Components = append(p.doc.Components, comp)
	return p.endStatement()
}

// buildComponent validates the property set and constructs the closed
// variant for the declared type. Check order: type, align, overlap, column
// bounds, row bounds, color references.
func (p *parser) buildComponent(ref Token, rng Range, props []property) (Component, error) {
	byKey := make(map[string]property, len(props))
	for _, prop := range props {
		if _, dup := byKey[prop.key.Literal]; dup {
			return nil, p.errf(prop.key.Loc, "duplicate property %q", prop.key.Literal)
		}
		byKey[prop.key.Literal] = prop
	}

	typ, ok := byKey["type"]
	if !ok {
		return nil, p.errf(ref.Loc, "component %s is missing a type", ref.Literal)
	}
	kind := typ.val.Literal
	switch kind {
	case "txt", "box", "btn", "input", "img":
	default:
		return nil, p.errf(typ.val.Loc, "unknown component type %q", kind)
	}

	align := AlignLeft
	if prop, ok := byKey["align"]; ok {
		switch Align(prop.val.Literal) {
		case AlignLeft, AlignCenter, AlignRight:
			align = Align(prop.val.Literal)
		default:
			return nil, p.errf(prop.val.Loc, "align must be left, center, or right, got %q", prop.val.Literal)
		}
	}

	for _, other := range p.doc.Components {
		if rng.Overlaps(other.CellRange()) {
			return nil, p.errf(ref.Loc, "%s overlaps %s declared earlier", rng, other.CellRange())
		}
	}
	meta := p.doc.Meta
	if rng.End.Col >= meta.GridCols {
		return nil, p.errf(ref.Loc, "column %s is outside the grid (%d columns)",
			string(rune('A'+rng.End.Col)), meta.GridCols)
	}
	if rng.End.Row >= meta.GridRows {
		return nil, p.errf(ref.Loc, "row %d is outside the grid (%d rows)",
			rng.End.Row+1, meta.GridRows)
	}

	c := common{Rng: rng}
	for _, colorKey := range []string{"bg", "border"} {
		prop, ok := byKey[colorKey]
		if !ok {
			continue
		}
		resolved, err := p.resolveColor(prop.val)
		if err != nil {
			return nil, err
		}
		if colorKey == "bg" {
			c.Bg = resolved
		} else {
			c.Border = resolved
		}
	}
	if prop, ok := byKey["padding"]; ok {
		v, err := strconv.ParseFloat(prop.val.Literal, 64)
		if err != nil || prop.val.Type != TokenNumber {
			return nil, p.errf(prop.val.Loc, "padding must be a number")
		}
		c.Padding = &v
	}

	allowed := map[string][]string{
		"txt":   {"type", "value", "align", "bg", "border", "padding"},
		"box":   {"type", "bg", "border", "padding"},
		"btn":   {"type", "label", "bg", "border", "padding"},
		"input": {"type", "label", "value", "bg", "border", "padding"},
		"img":   {"type", "src", "alt", "bg", "border", "padding"},
	}
	for _, prop := range props {
		found := false
		for _, k := range allowed[kind] {
			if prop.key.Literal == k {
				found = true
				break
			}
		}
		if !found {
			return nil, p.errf(prop.key.Loc, "property %q is not valid for %s components", prop.key.Literal, kind)
		}
	}

	str := func(key string) string {
		if prop, ok := byKey[key]; ok {
			return prop.val.Literal
		}
		return ""
	}
	switch kind {
	case "txt":
		return Text{common: c, Value: str("value"), Align: align}, nil
	case "box":
		return Box{common: c}, nil
	case "btn":
		return Button{common: c, Label: str("label")}, nil
	case "input":
		return Input{common: c, Label: str("label"), Value: str("value")}, nil
	default:
		return Image{common: c, Src: str("src"), Alt: str("alt")}, nil
	}
}

// resolveColor substitutes $name references against the colors block.
// Plain color values pass through untouched.
func (p *parser) resolveColor(val Token) (string, error) {
	name := ""
	switch {
	case val.Type == TokenThemeRef:
		name = val.Literal
	case val.Type == TokenString && strings.HasPrefix(val.Literal, "$"):
		name = val.Literal[1:]
	default:
		return val.Literal, nil
	}
	if resolved, ok := p.doc.Meta.Colors[name]; ok {
		return resolved, nil
	}
	return "", p.errf(val.Loc, "unknown color reference $%s", name)
}
