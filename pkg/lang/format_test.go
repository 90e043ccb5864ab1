package lang

import (
	"reflect"
	"strings"
	"testing"
)

const formatFixture = `ratio: 4:3
grid: 3x3
gap: 8
padding: 6
theme: sketch
colors: { accent: red, primary: #3366ff }

A1..C1: { type: txt, value: "Dashboard", align: center }
A2: { type: btn, label: "Save", bg: #3366ff }
B2: { type: input, label: "Email" }
C2: { type: img, src: "logo.png", alt: "Logo" }
A3..C3: { type: box, bg: red }
`

func TestFormat_RoundTrip(t *testing.T) {
	doc, err := Parse(formatFixture)
	if err != nil {
		t.Fatalf("fixture does not parse: %v", err)
	}
	formatted := Format(doc)
	reparsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("formatted output does not parse: %v\n%s", err, formatted)
	}
	if !reflect.DeepEqual(doc.Meta, reparsed.Meta) {
		t.Errorf("metadata changed:\n  got  %+v\n  want %+v", reparsed.Meta, doc.Meta)
	}
	if !reflect.DeepEqual(doc.Components, reparsed.Components) {
		t.Errorf("components changed:\n  got  %+v\n  want %+v", reparsed.Components, doc.Components)
	}
}

func TestFormat_OmitsDefaults(t *testing.T) {
	doc, err := Parse("A1: { type: txt, value: \"x\" }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := Format(doc)
	if strings.Contains(out, "align") {
		t.Errorf("left alignment is the default and should be omitted:\n%s", out)
	}
	if strings.Contains(out, "gap") || strings.Contains(out, "theme") {
		t.Errorf("unset metadata should be omitted:\n%s", out)
	}
}

func TestFormat_QuotesSpecialColors(t *testing.T) {
	doc, err := Parse(`colors: { odd: "rgb(1,2,3)" }` + "\nA1: { type: box, bg: $odd }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	formatted := Format(doc)
	if _, err := Parse(formatted); err != nil {
		t.Errorf("formatted output does not reparse: %v\n%s", err, formatted)
	}
}

func TestFormat_QuotesCellShapedColors(t *testing.T) {
	// "F00" would re-lex as a cell reference if emitted bare.
	doc, err := Parse(`colors: { danger: "F00" }` + "\nA1: { type: box, bg: $danger }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	formatted := Format(doc)
	reparsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("formatted output does not reparse: %v\n%s", err, formatted)
	}
	if !reflect.DeepEqual(doc.Components, reparsed.Components) {
		t.Errorf("components changed:\n  got  %+v\n  want %+v", reparsed.Components, doc.Components)
	}
}
