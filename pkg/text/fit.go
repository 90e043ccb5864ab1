// Package text estimates glyph widths and fits text into rectangles by
// wrapping lines and shrinking the font size until the block fits.
package text

import "strings"

const (
	// MinFontSize is the floor the shrink loop stops at. At this size the
	// text is used as-is even if it overflows; fitting never fails.
	MinFontSize = 8

	// LineHeight is the vertical advance per line as a multiple of the
	// font size.
	LineHeight = 1.2

	// fontStep is how much the font size shrinks per fitting iteration.
	fontStep = 1

	// Per-glyph width estimates as a fraction of the font size.
	wideGlyphWidth   = 1.0  // CJK, full-width, Hangul
	asciiGlyphWidth  = 0.55 // plain ASCII
	narrowGlyphWidth = 0.7  // other narrow non-ASCII
)

// Fitted is the result of fitting text into a rectangle.
type Fitted struct {
	FontSize float64
	Lines    []string
}

// isWideGlyph reports whether the rune renders roughly one font-size unit
// wide: CJK ideographs, kana, Hangul syllables, and full-width forms.
func isWideGlyph(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x115F: // Hangul jamo
		return true
	case r >= 0x2E80 && r <= 0x303E: // CJK radicals, punctuation
		return true
	case r >= 0x3041 && r <= 0x33FF: // kana, CJK symbols
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK extension A
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK compatibility
		return true
	case r >= 0xFE30 && r <= 0xFE4F: // CJK compatibility forms
		return true
	case r >= 0xFF00 && r <= 0xFF60: // full-width forms
		return true
	case r >= 0x20000 && r <= 0x2FA1F: // CJK extensions B+
		return true
	}
	return false
}

// Width estimates the rendered pixel width of s at the given font size by
// summing per-rune width classes.
func Width(s string, fontSize float64) float64 {
	w := 0.0
	for _, r := range s {
		switch {
		case isWideGlyph(r):
			w += wideGlyphWidth * fontSize
		case r < 0x80:
			w += asciiGlyphWidth * fontSize
		default:
			w += narrowGlyphWidth * fontSize
		}
	}
	return w
}

// splitTokens breaks one hard line into wrap units. Wide glyphs are each
// their own token so CJK text can break anywhere; everything else groups
// into word runs that keep their trailing space.
func splitTokens(line string) []string {
	var tokens []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}
	for _, r := range line {
		if isWideGlyph(r) {
			flush()
			tokens = append(tokens, string(r))
			continue
		}
		run.WriteRune(r)
		if r == ' ' {
			flush()
		}
	}
	flush()
	return tokens
}

// wrap packs tokens greedily into lines no wider than maxWidth. A token
// that alone exceeds maxWidth is force-placed on its own line so the loop
// always advances.
func wrap(text string, fontSize, maxWidth float64) []string {
	var lines []string
	for _, hard := range strings.Split(text, "\n") {
		tokens := splitTokens(hard)
		if len(tokens) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		currentWidth := 0.0
		for _, tok := range tokens {
			w := Width(tok, fontSize)
			if current != "" && currentWidth+w > maxWidth {
				lines = append(lines, strings.TrimRight(current, " "))
				current = ""
				currentWidth = 0
			}
			current += tok
			currentWidth += w
		}
		if current != "" {
			lines = append(lines, strings.TrimRight(current, " "))
		}
	}
	return lines
}

// Fit wraps text into a width x height box with padding on every side,
// starting at startSize and shrinking by fontStep until the wrapped block
// fits vertically or MinFontSize is reached. The floor size is returned
// even when the block still overflows; content is never dropped.
func Fit(text string, width, height, padding, startSize float64) Fitted {
	availWidth := width - 2*padding
	availHeight := height - 2*padding
	size := startSize
	for {
		lines := wrap(text, size, availWidth)
		if float64(len(lines))*size*LineHeight <= availHeight || size <= MinFontSize {
			return Fitted{FontSize: size, Lines: lines}
		}
		size -= fontStep
		if size < MinFontSize {
			size = MinFontSize
		}
	}
}
