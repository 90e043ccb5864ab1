package infer

import (
	"strings"
	"testing"

	"sketchlang/pkg/lang"
)

const samplePage = `<html><body>
<header><h1>Acme</h1><a href="/login">Log in</a></header>
<main>
  <p>Welcome to the demo page.</p>
  <img src="hero.png" alt="Hero shot">
</main>
<form>
  <input type="text" placeholder="Email">
  <input type="submit" value="Subscribe">
</form>
</body></html>`

func TestDocument_MapsPageStructure(t *testing.T) {
	doc, err := Document(samplePage)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	// header, main, form: one grid row each.
	if doc.Meta.GridRows != 3 {
		t.Fatalf("GridRows = %d", doc.Meta.GridRows)
	}
	if doc.Meta.GridCols != 2 {
		t.Fatalf("GridCols = %d", doc.Meta.GridCols)
	}
	var kinds []string
	for _, c := range doc.Components {
		kinds = append(kinds, c.Kind())
	}
	want := []string{"txt", "txt", "txt", "img", "input", "btn"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("kinds = %v; want %v", kinds, want)
	}
}

func TestDocument_LastElementSpansShortRow(t *testing.T) {
	doc, err := Document(`<body>
<div><p>a</p><p>b</p><p>c</p></div>
<div><p>solo</p></div>
</body>`)
	if err != nil {
		t.Fatal(err)
	}
	last := doc.Components[len(doc.Components)-1]
	rng := last.CellRange()
	if rng.Start.Col != 0 || rng.End.Col != 2 {
		t.Errorf("solo element range = %v; want full row span", rng)
	}
	if rng.Start.Row != 1 || rng.End.Row != 1 {
		t.Errorf("solo element row = %v", rng)
	}
}

func TestDocument_EmptyContainerBecomesBox(t *testing.T) {
	doc, err := Document(`<body><div></div><p>x</p></body>`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Components[0].Kind() != "box" {
		t.Errorf("first kind = %q; want box", doc.Components[0].Kind())
	}
}

func TestDocument_SkipsHiddenInputs(t *testing.T) {
	doc, err := Document(`<body><form><input type="hidden" name="csrf"><input placeholder="Name"></form></body>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Components) != 1 || doc.Components[0].Kind() != "input" {
		t.Errorf("components = %d", len(doc.Components))
	}
}

func TestDocument_NoMappableElements(t *testing.T) {
	if _, err := Document(`<body></body>`); err == nil {
		t.Error("expected error for a page with nothing to map")
	}
}

func TestDocument_RowCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body>")
	for i := 0; i < 20; i++ {
		b.WriteString("<div><p>row</p></div>")
	}
	b.WriteString("</body>")
	doc, err := Document(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Meta.GridRows != maxGridRows {
		t.Errorf("GridRows = %d; want %d", doc.Meta.GridRows, maxGridRows)
	}
}

func TestSource_RoundTripsThroughParser(t *testing.T) {
	src, err := Source(samplePage)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	doc, err := lang.Parse(src)
	if err != nil {
		t.Fatalf("inferred source must reparse: %v\n%s", err, src)
	}
	if len(doc.Components) != 6 {
		t.Errorf("reparsed components = %d\n%s", len(doc.Components), src)
	}
}

func TestClipText(t *testing.T) {
	long := strings.Repeat("word ", 30)
	got := clipText(long)
	if len(got) > maxTextLen {
		t.Errorf("len = %d", len(got))
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("trailing space in %q", got)
	}
	if clipText("  hi  ") != "hi" {
		t.Error("short text must only be trimmed")
	}
}
