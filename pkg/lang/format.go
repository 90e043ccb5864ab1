package lang

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Format renders a Document back to canonical source text. The output
// reparses to an equivalent Document: metadata first, then components in
// their declaration order.
func Format(doc *Document) string {
	var b strings.Builder
	meta := doc.Meta
	fmt.Fprintf(&b, "ratio: %d:%d\n", meta.RatioW, meta.RatioH)
	fmt.Fprintf(&b, "grid: %dx%d\n", meta.GridCols, meta.GridRows)
	if meta.Gap != 0 {
		fmt.Fprintf(&b, "gap: %s\n", formatNumber(meta.Gap))
	}
	if meta.Padding != 0 {
		fmt.Fprintf(&b, "padding: %s\n", formatNumber(meta.Padding))
	}
	if meta.Theme != "" {
		fmt.Fprintf(&b, "theme: %s\n", meta.Theme)
	}
	if len(meta.ColWidths) > 0 {
		fmt.Fprintf(&b, "colWidths: %s\n", formatWeights(meta.ColWidths))
	}
	if len(meta.RowHeights) > 0 {
		fmt.Fprintf(&b, "rowHeights: %s\n", formatWeights(meta.RowHeights))
	}
	if len(meta.Colors) > 0 {
		names := make([]string, 0, len(meta.Colors))
		for name := range meta.Colors {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("colors: {")
		for i, name := range names {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " %s: %s", name, formatColor(meta.Colors[name]))
		}
		b.WriteString(" }\n")
	}

	for _, comp := range doc.Components {
		b.WriteString("\n")
		writeComponent(&b, comp)
	}
	return b.String()
}

func writeComponent(b *strings.Builder, comp Component) {
	pairs := []string{"type: " + comp.Kind()}
	add := func(key, val string) {
		if val != "" {
			pairs = append(pairs, key+": "+val)
		}
	}
	var c common
	switch v := comp.(type) {
	case Text:
		c = v.common
		add("value", quote(v.Value))
		if v.Align != AlignLeft {
			add("align", string(v.Align))
		}
	case Box:
		c = v.common
	case Button:
		c = v.common
		add("label", quote(v.Label))
	case Input:
		c = v.common
		add("label", quote(v.Label))
		if v.Value != "" {
			add("value", quote(v.Value))
		}
	case Image:
		c = v.common
		add("src", quote(v.Src))
		add("alt", quote(v.Alt))
	}
	add("bg", formatColor(c.Bg))
	add("border", formatColor(c.Border))
	if c.Padding != nil {
		add("padding", formatNumber(*c.Padding))
	}
	fmt.Fprintf(b, "%s: { %s }\n", comp.CellRange(), strings.Join(pairs, ", "))
}

func quote(s string) string {
	if s == "" {
		return ""
	}
	r := strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\n", "\t", "\\t", "\r", "\\r")
	return "\"" + r.Replace(s) + "\""
}

// formatColor quotes color strings unless they re-lex as a single bare
// name. Values that would lex as some other token (a leading digit, a
// cell-reference shape like "F00") get quoted.
func formatColor(s string) string {
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "#") {
		return s
	}
	if !isLetter(s[0]) || isCellPattern(s) {
		return quote(s)
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return quote(s)
		}
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatWeights(weights []float64) string {
	parts := make([]string, len(weights))
	for i, w := range weights {
		parts[i] = formatNumber(w)
	}
	return strings.Join(parts, ", ")
}
