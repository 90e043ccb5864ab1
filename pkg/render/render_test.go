package render

import (
	"strings"
	"testing"

	"sketchlang/pkg/images"
	"sketchlang/pkg/lang"
)

func renderSource(t *testing.T, source string, opts Options) string {
	t.Helper()
	doc, err := lang.Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Render(doc, opts)
}

func TestRender_EndToEndScenario(t *testing.T) {
	out := renderSource(t, "ratio: 16:9\ngrid: 2x2\nA1: { type: txt, value: \"Hi\", align: center }", Options{})
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("missing declaration header:\n%.80s", out)
	}
	if !strings.Contains(out, `width="1280" height="720"`) {
		t.Errorf("canvas size missing:\n%.200s", out)
	}
	// Full-canvas background fill.
	if !strings.Contains(out, `<rect x="0" y="0" width="1280" height="720"`) {
		t.Errorf("background fill missing")
	}
	// Centered in the top-left quadrant: x=320, y=180.
	if !strings.Contains(out, `x="320"`) || !strings.Contains(out, `y="180"`) {
		t.Errorf("text not centered in top-left quadrant:\n%s", out)
	}
	if !strings.Contains(out, `text-anchor="middle"`) || !strings.Contains(out, ">Hi</text>") {
		t.Errorf("text element wrong:\n%s", out)
	}
}

func TestRender_DrawOrderFollowsDeclaration(t *testing.T) {
	out := renderSource(t, "A1: { type: txt, value: \"first\" }\nB1: { type: txt, value: \"second\" }", Options{})
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Errorf("fragments out of declaration order")
	}
}

func TestRender_BoxDefaultBackground(t *testing.T) {
	out := renderSource(t, "A1: { type: box }", Options{})
	// The default theme's background fills undeclared boxes.
	if !strings.Contains(out, `fill="#e8e8e8"`) {
		t.Errorf("default bg missing:\n%s", out)
	}
}

func TestRender_TxtBackingRectOnlyWhenStyled(t *testing.T) {
	plain := renderSource(t, "A1: { type: txt, value: \"x\" }", Options{})
	if strings.Count(plain, "<rect") != 1 { // canvas background only
		t.Errorf("plain txt should draw no backing rect:\n%s", plain)
	}
	styled := renderSource(t, "A1: { type: txt, value: \"x\", bg: #fff }", Options{})
	if strings.Count(styled, "<rect") != 2 {
		t.Errorf("styled txt should draw a backing rect:\n%s", styled)
	}
}

func TestRender_ButtonInkColor(t *testing.T) {
	out := renderSource(t, "A1: { type: btn, label: \"Go\", bg: #000 }", Options{})
	if !strings.Contains(out, `fill="`+inkColor+`">Go</text>`) {
		t.Errorf("button text must use the ink color regardless of bg:\n%s", out)
	}
}

func TestRender_InputFieldAndLabel(t *testing.T) {
	out := renderSource(t, "A1: { type: input, label: \"Email\" }", Options{})
	if !strings.Contains(out, ">Email</text>") {
		t.Errorf("label missing:\n%s", out)
	}
	if strings.Count(out, "<rect") != 2 { // canvas + field
		t.Errorf("field rect missing:\n%s", out)
	}
}

func TestRender_ThemeUnknownFallsBackToDefault(t *testing.T) {
	doc := &lang.Document{Meta: lang.Metadata{
		RatioW: 16, RatioH: 9, GridCols: 4, GridRows: 3, Theme: "nope",
	}}
	out := Render(doc, Options{})
	if !strings.Contains(out, "<svg") {
		t.Errorf("render must stay total:\n%s", out)
	}
}

func TestRender_PlaceholderLabelResolution(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{`A1: { type: img, src: "x.png", alt: "Photo" }`, "[IMG: Photo]"},
		{`A1: { type: img, src: "x.png" }`, "[IMG: x.png]"},
		{`A1: { type: img }`, "[IMG: image]"},
	}
	for _, tc := range cases {
		out := renderSource(t, tc.source, Options{})
		if !strings.Contains(out, tc.want) {
			t.Errorf("%s: missing %q:\n%s", tc.source, tc.want, out)
		}
	}
}

func TestRender_PlaceholderFallbackIdempotent(t *testing.T) {
	// A source file that fails to load renders exactly like no source,
	// given the same alt text.
	loader := images.NewDirLoader(t.TempDir())
	missing := renderSource(t, `A1: { type: img, src: "gone.png", alt: "Pic" }`, Options{Images: loader})
	omitted := renderSource(t, `A1: { type: img, alt: "Pic" }`, Options{Images: loader})
	if missing != omitted {
		t.Errorf("placeholder output differs:\n%s\n---\n%s", missing, omitted)
	}
}

func TestRender_PlaceholderHasCrossedDiagonals(t *testing.T) {
	out := renderSource(t, "A1: { type: img }", Options{})
	if strings.Count(out, "<line") != 2 {
		t.Errorf("placeholder diagonals missing:\n%s", out)
	}
}

func TestRender_EscapesMarkup(t *testing.T) {
	out := renderSource(t, `A1: { type: txt, value: "a < b & c" }`, Options{})
	if !strings.Contains(out, "a &lt; b &amp; c") {
		t.Errorf("text not escaped:\n%s", out)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#fff", Color{255, 255, 255}, true},
		{"#1a2b3c", Color{0x1a, 0x2b, 0x3c}, true},
		{"red", Color{255, 0, 0}, true},
		{"Teal", Color{0, 128, 128}, true},
		{"nonesuch", Color{}, false},
		{"#12", Color{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseColor(%q) = %+v,%v; want %+v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
