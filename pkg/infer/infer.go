// Package infer turns an existing webpage into wireframe source text: it
// maps DOM elements to component types, lays them on a heuristic grid, and
// serializes the result. The output is a starting point for hand editing,
// not a faithful rendering of the page.
package infer

import (
	"fmt"
	"strings"

	"sketchlang/pkg/lang"
	"sketchlang/pkg/sketchhtml"
)

const (
	maxAxis     = 26 // grid cells are addressed A..Z
	maxTextLen  = 80
	maxGridRows = 12
)

// element is one DOM node mapped to a wireframe component type, before
// grid placement.
type element struct {
	kind  string
	value string
	src   string
	alt   string
}

// FromURL fetches a page and infers wireframe source from it.
func FromURL(url string) (string, error) {
	body, err := Fetch(url)
	if err != nil {
		return "", err
	}
	return Source(string(body))
}

// Source infers wireframe source text from raw markup.
func Source(markup string) (string, error) {
	doc, err := Document(markup)
	if err != nil {
		return "", err
	}
	return lang.Format(doc), nil
}

// Document infers a compiled Document from raw markup.
func Document(markup string) (*lang.Document, error) {
	root, err := sketchhtml.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	body := root.Find("body")
	if body == nil {
		body = root
	}

	rows := collectRows(body)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no mappable elements found")
	}
	if len(rows) > maxGridRows {
		rows = rows[:maxGridRows]
	}
	cols := 1
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols > maxAxis {
		cols = maxAxis
	}

	doc := &lang.Document{Meta: lang.Metadata{
		RatioW: 16, RatioH: 9,
		GridCols: cols, GridRows: len(rows),
		Gap: 8, Padding: 8,
	}}
	for rowIdx, row := range rows {
		if len(row) > cols {
			row = row[:cols]
		}
		for colIdx, el := range row {
			start := lang.Cell{Col: colIdx, Row: rowIdx}
			end := start
			// The last element in a short row spans the remaining columns.
			if colIdx == len(row)-1 {
				end.Col = cols - 1
			}
			doc.Components = append(doc.Components, buildComponent(el, lang.NewRange(start, end)))
		}
	}
	return doc, nil
}

func buildComponent(el element, rng lang.Range) lang.Component {
	switch el.kind {
	case "btn":
		return lang.NewButton(rng, el.value)
	case "input":
		return lang.NewInput(rng, el.value, "")
	case "img":
		return lang.NewImage(rng, el.src, el.alt)
	case "box":
		return lang.NewBox(rng)
	default:
		return lang.NewText(rng, el.value, lang.AlignLeft)
	}
}

// collectRows walks the body's structure: each direct child that maps to
// components becomes one grid row holding them in document order.
func collectRows(body *sketchhtml.Node) [][]element {
	var rows [][]element
	for _, child := range body.Elements() {
		row := mapElements(child)
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// mapElements flattens a subtree to its mappable leaves, in order.
func mapElements(node *sketchhtml.Node) []element {
	if el, ok := mapLeaf(node); ok {
		return []element{el}
	}
	var out []element
	for _, child := range node.Elements() {
		out = append(out, mapElements(child)...)
	}
	if len(out) == 0 && isContainer(node.Tag) {
		// An empty structural container still conveys a region.
		return []element{{kind: "box"}}
	}
	return out
}

// mapLeaf decides whether a single element maps directly to a component.
func mapLeaf(node *sketchhtml.Node) (element, bool) {
	switch node.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "span", "a", "li", "label", "strong", "em":
		text := clipText(node.InnerText())
		if text == "" {
			return element{}, false
		}
		return element{kind: "txt", value: text}, true
	case "button":
		label := clipText(node.InnerText())
		if label == "" {
			label = node.Attr("value")
		}
		return element{kind: "btn", value: label}, true
	case "input":
		switch node.Attr("type") {
		case "submit", "button":
			return element{kind: "btn", value: node.Attr("value")}, true
		case "hidden":
			return element{}, false
		}
		label := node.Attr("placeholder")
		if label == "" {
			label = node.Attr("name")
		}
		return element{kind: "input", value: label}, true
	case "textarea", "select":
		return element{kind: "input", value: node.Attr("name")}, true
	case "img":
		return element{kind: "img", src: node.Attr("src"), alt: node.Attr("alt")}, true
	}
	return element{}, false
}

func isContainer(tag string) bool {
	switch tag {
	case "div", "section", "header", "footer", "nav", "article", "aside", "main", "form", "ul", "ol":
		return true
	}
	return false
}

func clipText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxTextLen {
		s = s[:maxTextLen]
		if i := strings.LastIndexByte(s, ' '); i > maxTextLen/2 {
			s = s[:i]
		}
	}
	return s
}
