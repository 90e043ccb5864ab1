// Package layout turns abstract grid coordinates into pixel rectangles.
// Everything here is a pure function of the document metadata and the
// requested cell range; nothing is cached between calls.
package layout

import (
	"math"

	"sketchlang/pkg/lang"
)

// canvasEdge is the fixed pixel length of the canvas's longer edge.
const canvasEdge = 1280

type Size struct {
	Width  float64
	Height float64
}

// Rect is the pixel-space area a component occupies, plus the content
// padding that applies inside it.
type Rect struct {
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Padding float64
}

// CanvasSize maps an aspect ratio to canvas pixels: the larger ratio term
// pins the 1280px edge and the other edge scales down, rounded to the
// nearest pixel. A square ratio pins both.
func CanvasSize(ratioW, ratioH int) Size {
	w, h := float64(ratioW), float64(ratioH)
	if w >= h {
		return Size{Width: canvasEdge, Height: math.Round(canvasEdge * h / w)}
	}
	return Size{Width: math.Round(canvasEdge * w / h), Height: canvasEdge}
}

// AxisSizes splits total pixels across count cells separated by gap. With
// no weights every cell gets an equal share; with weights the available
// space is distributed proportionally to each weight over the weight sum.
func AxisSizes(total float64, count int, gap float64, weights []float64) []float64 {
	sizes := make([]float64, count)
	available := total - gap*float64(count-1)
	if len(weights) != count {
		for i := range sizes {
			sizes[i] = available / float64(count)
		}
		return sizes
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	for i, w := range weights {
		sizes[i] = available * w / sum
	}
	return sizes
}

// CellRect computes the rectangle for a cell range. Position is the sum of
// the preceding same-axis cell sizes plus one gap per crossed boundary;
// a merged span includes the gaps interior to it but not the edge gaps.
// perCellPadding overrides the document default when non-nil.
func CellRect(rng lang.Range, meta lang.Metadata, canvas Size, perCellPadding *float64) Rect {
	colSizes := AxisSizes(canvas.Width, meta.GridCols, meta.Gap, meta.ColWidths)
	rowSizes := AxisSizes(canvas.Height, meta.GridRows, meta.Gap, meta.RowHeights)
	return cellRect(rng, meta, colSizes, rowSizes, perCellPadding)
}

// CellRects computes rectangles for many ranges without recomputing the
// axis sizes per call. The renderer uses this for whole-document passes.
func CellRects(ranges []lang.Range, meta lang.Metadata, canvas Size) []Rect {
	colSizes := AxisSizes(canvas.Width, meta.GridCols, meta.Gap, meta.ColWidths)
	rowSizes := AxisSizes(canvas.Height, meta.GridRows, meta.Gap, meta.RowHeights)
	rects := make([]Rect, len(ranges))
	for i, rng := range ranges {
		rects[i] = cellRect(rng, meta, colSizes, rowSizes, nil)
	}
	return rects
}

func cellRect(rng lang.Range, meta lang.Metadata, colSizes, rowSizes []float64, perCellPadding *float64) Rect {
	x := spanOffset(colSizes, rng.Start.Col, meta.Gap)
	y := spanOffset(rowSizes, rng.Start.Row, meta.Gap)
	w := spanSize(colSizes, rng.Start.Col, rng.End.Col, meta.Gap)
	h := spanSize(rowSizes, rng.Start.Row, rng.End.Row, meta.Gap)
	padding := meta.Padding
	if perCellPadding != nil {
		padding = *perCellPadding
	}
	return Rect{X: x, Y: y, Width: w, Height: h, Padding: padding}
}

func spanOffset(sizes []float64, index int, gap float64) float64 {
	offset := 0.0
	for i := 0; i < index; i++ {
		offset += sizes[i] + gap
	}
	return offset
}

func spanSize(sizes []float64, start, end int, gap float64) float64 {
	size := 0.0
	for i := start; i <= end; i++ {
		size += sizes[i]
		if i > start {
			size += gap
		}
	}
	return size
}
