// Package render turns a compiled Document into vector output. Render is a
// total function: a structurally valid document always produces output,
// and auxiliary failures (a missing image file) degrade per component
// rather than aborting.
package render

import (
	"sketchlang/pkg/images"
	"sketchlang/pkg/lang"
	"sketchlang/pkg/layout"
	"sketchlang/pkg/text"
	"sketchlang/pkg/theme"
)

const (
	// inkColor is the fixed text color for button labels, whatever the
	// button background is.
	inkColor = "#333333"

	// canvasBg fills the whole canvas behind every component.
	canvasBg = "#ffffff"

	// defaultStroke outlines input fields and image placeholders when no
	// border color is declared.
	defaultStroke = "#999999"

	// ghostColor is the color of input ghost text and placeholder labels.
	ghostColor = "#8a8a8a"

	// minFieldHeight keeps input fields usable in very short cells.
	minFieldHeight = 24
)

// Options carries the renderer's injected collaborators.
type Options struct {
	// Images loads img component sources. Nil disables loading: every img
	// renders as its placeholder.
	Images images.Loader
}

// Render produces the SVG document for doc: declaration header, a root
// element at canvas size, a full-canvas background fill, then one fragment
// per component in declaration order.
func Render(doc *lang.Document, opts Options) string {
	th, err := theme.Resolve(doc.Meta.Theme)
	if err != nil {
		// The parser validates theme names; a hand-built document with a
		// bad name still renders, on the default bundle.
		th, _ = theme.Resolve("")
	}
	canvas := layout.CanvasSize(doc.Meta.RatioW, doc.Meta.RatioH)

	out := &svg{}
	out.header(canvas.Width, canvas.Height)
	out.rect(0, 0, canvas.Width, canvas.Height, 0, canvasBg, "", 0)

	r := renderer{out: out, theme: th, opts: opts}
	for _, comp := range doc.Components {
		rect := layout.CellRect(comp.CellRange(), doc.Meta, canvas, comp.Pad())
		r.component(comp, rect)
	}
	out.footer()
	return out.String()
}

type renderer struct {
	out   *svg
	theme theme.Theme
	opts  Options
}

func (r *renderer) component(comp lang.Component, rect layout.Rect) {
	switch v := comp.(type) {
	case lang.Text:
		r.text(v, rect)
	case lang.Box:
		r.box(v.Bg, v.Border, rect)
	case lang.Button:
		r.button(v, rect)
	case lang.Input:
		r.input(v, rect)
	case lang.Image:
		r.image(v, rect)
	}
}

// text draws an optional backing rectangle, then the fitted value.
func (r *renderer) text(v lang.Text, rect layout.Rect) {
	if v.Bg != "" || v.Border != "" {
		r.out.rect(rect.X, rect.Y, rect.Width, rect.Height, r.theme.BorderRadius,
			v.Bg, v.Border, r.theme.StrokeWidth)
	}
	r.fittedText(v.Value, rect, v.Align, inkColor, r.theme.FontSize)
}

func (r *renderer) box(bg, border string, rect layout.Rect) {
	if bg == "" {
		bg = r.theme.DefaultBg
	}
	r.out.rect(rect.X, rect.Y, rect.Width, rect.Height, r.theme.BorderRadius,
		bg, border, r.theme.StrokeWidth)
}

func (r *renderer) button(v lang.Button, rect layout.Rect) {
	r.box(v.Bg, v.Border, rect)
	r.fittedText(v.Label, rect, lang.AlignCenter, inkColor, r.theme.FontSize)
}

// input draws a small label line above a bordered field. The field height
// floors at minFieldHeight so short cells still show a usable field.
func (r *renderer) input(v lang.Input, rect layout.Rect) {
	labelSize := r.theme.FontSize * 0.75
	labelH := 0.0
	if v.Label != "" {
		labelH = labelSize * text.LineHeight
		r.out.text(rect.X+rect.Padding, rect.Y+rect.Padding+labelH/2, labelSize,
			"start", inkColor, v.Label)
	}
	border := v.Border
	if border == "" {
		border = defaultStroke
	}
	fieldY := rect.Y + rect.Padding + labelH
	fieldH := rect.Height - 2*rect.Padding - labelH
	if fieldH < minFieldHeight {
		fieldH = minFieldHeight
	}
	bg := v.Bg
	if bg == "" {
		bg = canvasBg
	}
	r.out.rect(rect.X+rect.Padding, fieldY, rect.Width-2*rect.Padding, fieldH,
		r.theme.BorderRadius, bg, border, r.theme.StrokeWidth)
	if v.Value != "" {
		r.out.text(rect.X+rect.Padding*2, fieldY+fieldH/2, r.theme.FontSize,
			"start", ghostColor, v.Value)
	}
}

// image embeds the loaded source contain-fitted into the rectangle, or
// falls back to the placeholder. Loading failure is never fatal.
func (r *renderer) image(v lang.Image, rect layout.Rect) {
	if v.Src != "" && r.opts.Images != nil {
		if img, err := r.opts.Images.Load(v.Src); err == nil {
			if href, err := dataURI(img); err == nil {
				x, y, w, h := containFit(rect, img.Bounds().Dx(), img.Bounds().Dy())
				r.out.image(href, x, y, w, h)
				return
			}
		}
	}
	r.placeholder(v, rect)
}

// placeholder is the guaranteed img fallback: a crossed rectangle labeled
// with the alt text, the source, or the literal "image".
func (r *renderer) placeholder(v lang.Image, rect layout.Rect) {
	bg := v.Bg
	if bg == "" {
		bg = r.theme.DefaultBg
	}
	border := v.Border
	if border == "" {
		border = defaultStroke
	}
	r.out.rect(rect.X, rect.Y, rect.Width, rect.Height, r.theme.BorderRadius,
		bg, border, r.theme.StrokeWidth)
	r.out.line(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height, border, 1)
	r.out.line(rect.X+rect.Width, rect.Y, rect.X, rect.Y+rect.Height, border, 1)
	r.fittedText("[IMG: "+placeholderLabel(v)+"]", rect, lang.AlignCenter, ghostColor, r.theme.FontSize)
}

func placeholderLabel(v lang.Image) string {
	if v.Alt != "" {
		return v.Alt
	}
	if v.Src != "" {
		return v.Src
	}
	return "image"
}

// fittedText wraps and shrinks content into the rectangle, then draws each
// line centered around the vertical midpoint.
func (r *renderer) fittedText(content string, rect layout.Rect, align lang.Align, fill string, startSize float64) {
	if content == "" {
		return
	}
	fit := text.Fit(content, rect.Width, rect.Height, rect.Padding, startSize)
	lineH := fit.FontSize * text.LineHeight
	startY := rect.Y + rect.Height/2 - lineH*float64(len(fit.Lines)-1)/2
	for i, line := range fit.Lines {
		if line == "" {
			continue
		}
		y := startY + lineH*float64(i)
		switch align {
		case lang.AlignCenter:
			r.out.text(rect.X+rect.Width/2, y, fit.FontSize, "middle", fill, line)
		case lang.AlignRight:
			r.out.text(rect.X+rect.Width-rect.Padding, y, fit.FontSize, "end", fill, line)
		default:
			r.out.text(rect.X+rect.Padding, y, fit.FontSize, "start", fill, line)
		}
	}
}
