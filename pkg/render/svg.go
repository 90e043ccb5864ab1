package render

import (
	"fmt"
	"strings"
)

// svg accumulates vector output. All drawing helpers append one element;
// numeric attributes print with %g so whole pixels stay short.
type svg struct {
	b strings.Builder
}

func (s *svg) header(width, height float64) {
	s.b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&s.b, "<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n",
		width, height, width, height)
}

func (s *svg) footer() {
	s.b.WriteString("</svg>\n")
}

func (s *svg) rect(x, y, w, h, radius float64, fill, stroke string, strokeWidth float64) {
	fmt.Fprintf(&s.b, "<rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\"", x, y, w, h)
	if radius > 0 {
		fmt.Fprintf(&s.b, " rx=\"%g\"", radius)
	}
	if fill != "" {
		fmt.Fprintf(&s.b, " fill=\"%s\"", escapeAttr(fill))
	} else {
		s.b.WriteString(" fill=\"none\"")
	}
	if stroke != "" {
		fmt.Fprintf(&s.b, " stroke=\"%s\" stroke-width=\"%g\"", escapeAttr(stroke), strokeWidth)
	}
	s.b.WriteString("/>\n")
}

func (s *svg) line(x1, y1, x2, y2 float64, stroke string, strokeWidth float64) {
	fmt.Fprintf(&s.b, "<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
		x1, y1, x2, y2, escapeAttr(stroke), strokeWidth)
}

// text draws one line of text vertically centered on y. anchor is the SVG
// text-anchor value (start, middle, end).
func (s *svg) text(x, y, size float64, anchor, fill, content string) {
	fmt.Fprintf(&s.b, "<text x=\"%g\" y=\"%g\" font-family=\"sans-serif\" font-size=\"%g\" text-anchor=\"%s\" dominant-baseline=\"central\" fill=\"%s\">%s</text>\n",
		x, y, size, anchor, escapeAttr(fill), escapeText(content))
}

func (s *svg) image(href string, x, y, w, h float64) {
	fmt.Fprintf(&s.b, "<image x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" xlink:href=\"%s\"/>\n",
		x, y, w, h, href)
}

func (s *svg) String() string { return s.b.String() }

func escapeText(t string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(t)
}

func escapeAttr(t string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
	return r.Replace(t)
}
