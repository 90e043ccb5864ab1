// Package raster renders a compiled Document straight to a bitmap. It is
// the collaborator the SVG core delegates bitmap output to; geometry, theme
// constants, and text fitting are shared with the vector renderer so the
// two outputs agree.
package raster

import (
	"bytes"
	"image"
	"image/png"

	"github.com/fogleman/gg"

	"sketchlang/pkg/images"
	"sketchlang/pkg/lang"
	"sketchlang/pkg/layout"
	"sketchlang/pkg/render"
	"sketchlang/pkg/text"
	"sketchlang/pkg/theme"
)

// Options configures the raster renderer.
type Options struct {
	// Images loads img component sources; nil renders placeholders.
	Images images.Loader
	// FontPath names a TTF face for text. When empty or unloadable, gg's
	// built-in bitmap face is used, so output stays text-bearing.
	FontPath string
}

// Render draws the document onto a fresh RGBA canvas.
func Render(doc *lang.Document, opts Options) image.Image {
	th, err := theme.Resolve(doc.Meta.Theme)
	if err != nil {
		th, _ = theme.Resolve("")
	}
	canvas := layout.CanvasSize(doc.Meta.RatioW, doc.Meta.RatioH)
	dc := gg.NewContext(int(canvas.Width), int(canvas.Height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r := &rasterizer{dc: dc, theme: th, opts: opts}
	for _, comp := range doc.Components {
		rect := layout.CellRect(comp.CellRange(), doc.Meta, canvas, comp.Pad())
		r.component(comp, rect)
	}
	return dc.Image()
}

// PNG renders the document and encodes it as PNG bytes.
func PNG(doc *lang.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(doc, opts)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type rasterizer struct {
	dc    *gg.Context
	theme theme.Theme
	opts  Options
}

func (r *rasterizer) component(comp lang.Component, rect layout.Rect) {
	switch v := comp.(type) {
	case lang.Text:
		if v.Bg != "" || v.Border != "" {
			r.roundedRect(rect.X, rect.Y, rect.Width, rect.Height, v.Bg, v.Border)
		}
		r.fittedText(v.Value, rect, v.Align, render.Color{R: 0x33, G: 0x33, B: 0x33}, r.theme.FontSize)
	case lang.Box:
		r.filledBox(v.Bg, v.Border, rect)
	case lang.Button:
		r.filledBox(v.Bg, v.Border, rect)
		r.fittedText(v.Label, rect, lang.AlignCenter, render.Color{R: 0x33, G: 0x33, B: 0x33}, r.theme.FontSize)
	case lang.Input:
		r.input(v, rect)
	case lang.Image:
		r.image(v, rect)
	}
}

func (r *rasterizer) filledBox(bg, border string, rect layout.Rect) {
	if bg == "" {
		bg = r.theme.DefaultBg
	}
	r.roundedRect(rect.X, rect.Y, rect.Width, rect.Height, bg, border)
}

// roundedRect fills and strokes one rectangle using the theme's corner
// radius and stroke width. Unknown color strings fall back to mid gray.
func (r *rasterizer) roundedRect(x, y, w, h float64, fill, stroke string) {
	if fill != "" {
		r.setColor(fill)
		r.path(x, y, w, h)
		r.dc.Fill()
	}
	if stroke != "" {
		r.setColor(stroke)
		r.dc.SetLineWidth(r.theme.StrokeWidth)
		r.path(x, y, w, h)
		r.dc.Stroke()
	}
}

func (r *rasterizer) path(x, y, w, h float64) {
	if r.theme.BorderRadius > 0 {
		r.dc.DrawRoundedRectangle(x, y, w, h, r.theme.BorderRadius)
	} else {
		r.dc.DrawRectangle(x, y, w, h)
	}
}

func (r *rasterizer) setColor(s string) {
	c, ok := render.ParseColor(s)
	if !ok {
		c = render.Color{R: 128, G: 128, B: 128}
	}
	r.dc.SetRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func (r *rasterizer) input(v lang.Input, rect layout.Rect) {
	labelSize := r.theme.FontSize * 0.75
	labelH := 0.0
	if v.Label != "" {
		labelH = labelSize * text.LineHeight
		r.setColorRGB(render.Color{R: 0x33, G: 0x33, B: 0x33})
		r.loadFace(labelSize)
		r.dc.DrawStringAnchored(v.Label, rect.X+rect.Padding, rect.Y+rect.Padding+labelH/2, 0, 0.35)
	}
	border := v.Border
	if border == "" {
		border = "#999999"
	}
	bg := v.Bg
	if bg == "" {
		bg = "#ffffff"
	}
	fieldY := rect.Y + rect.Padding + labelH
	fieldH := rect.Height - 2*rect.Padding - labelH
	if fieldH < 24 {
		fieldH = 24
	}
	r.setColor(bg)
	r.path(rect.X+rect.Padding, fieldY, rect.Width-2*rect.Padding, fieldH)
	r.dc.Fill()
	r.setColor(border)
	r.dc.SetLineWidth(r.theme.StrokeWidth)
	r.path(rect.X+rect.Padding, fieldY, rect.Width-2*rect.Padding, fieldH)
	r.dc.Stroke()
	if v.Value != "" {
		r.setColor("#8a8a8a")
		r.loadFace(r.theme.FontSize)
		r.dc.DrawStringAnchored(v.Value, rect.X+rect.Padding*2, fieldY+fieldH/2, 0, 0.35)
	}
}

func (r *rasterizer) image(v lang.Image, rect layout.Rect) {
	if v.Src != "" && r.opts.Images != nil {
		if img, err := r.opts.Images.Load(v.Src); err == nil {
			r.drawContained(img, rect)
			return
		}
	}
	// Placeholder: crossed rectangle with the alt/src label.
	bg := v.Bg
	if bg == "" {
		bg = r.theme.DefaultBg
	}
	border := v.Border
	if border == "" {
		border = "#999999"
	}
	r.roundedRect(rect.X, rect.Y, rect.Width, rect.Height, bg, border)
	r.setColor(border)
	r.dc.SetLineWidth(1)
	r.dc.DrawLine(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height)
	r.dc.DrawLine(rect.X+rect.Width, rect.Y, rect.X, rect.Y+rect.Height)
	r.dc.Stroke()
	label := v.Alt
	if label == "" {
		label = v.Src
	}
	if label == "" {
		label = "image"
	}
	r.fittedText("[IMG: "+label+"]", rect, lang.AlignCenter, render.Color{R: 0x8a, G: 0x8a, B: 0x8a}, r.theme.FontSize)
}

// drawContained scales the image to fit the rectangle preserving aspect
// ratio, centered, via translate+scale like a graphics state push/pop.
func (r *rasterizer) drawContained(img image.Image, rect layout.Rect) {
	bounds := img.Bounds()
	imgW := float64(bounds.Dx())
	imgH := float64(bounds.Dy())
	if imgW <= 0 || imgH <= 0 {
		return
	}
	scale := rect.Width / imgW
	if s := rect.Height / imgH; s < scale {
		scale = s
	}
	r.dc.Push()
	r.dc.Translate(rect.X+(rect.Width-imgW*scale)/2, rect.Y+(rect.Height-imgH*scale)/2)
	r.dc.Scale(scale, scale)
	r.dc.DrawImage(img, 0, 0)
	r.dc.Pop()
}

func (r *rasterizer) fittedText(content string, rect layout.Rect, align lang.Align, ink render.Color, startSize float64) {
	if content == "" {
		return
	}
	fit := text.Fit(content, rect.Width, rect.Height, rect.Padding, startSize)
	r.setColorRGB(ink)
	r.loadFace(fit.FontSize)
	lineH := fit.FontSize * text.LineHeight
	startY := rect.Y + rect.Height/2 - lineH*float64(len(fit.Lines)-1)/2
	for i, line := range fit.Lines {
		if line == "" {
			continue
		}
		y := startY + lineH*float64(i)
		switch align {
		case lang.AlignCenter:
			r.dc.DrawStringAnchored(line, rect.X+rect.Width/2, y, 0.5, 0.35)
		case lang.AlignRight:
			r.dc.DrawStringAnchored(line, rect.X+rect.Width-rect.Padding, y, 1, 0.35)
		default:
			r.dc.DrawStringAnchored(line, rect.X+rect.Padding, y, 0, 0.35)
		}
	}
}

func (r *rasterizer) setColorRGB(c render.Color) {
	r.dc.SetRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

// loadFace swaps in the configured font at the given size. Failure keeps
// the current face; text still draws.
func (r *rasterizer) loadFace(size float64) {
	if r.opts.FontPath == "" {
		return
	}
	_ = r.dc.LoadFontFace(r.opts.FontPath, size)
}
