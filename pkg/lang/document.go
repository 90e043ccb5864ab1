package lang

// Document is the compiled form of a wireframe source file. It is built
// once by the parser and read-only afterwards: the layout calculator and
// the renderers never mutate it.
type Document struct {
	Meta Metadata
	// Components in source declaration order. Ranges never overlap; order
	// only decides draw order in the output.
	Components []Component
}

// Metadata holds the document-level settings. Ratio and grid always carry
// values: the parser fills in 16:9 and 4x3 when they are never declared.
type Metadata struct {
	RatioW, RatioH     int
	GridCols, GridRows int
	Gap                float64
	Padding            float64
	// Colors maps theme color names to resolved color strings. Nil when no
	// colors block was declared.
	Colors map[string]string
	// ColWidths/RowHeights are per-axis size weights, one entry per grid
	// division. Nil means uniform.
	ColWidths  []float64
	RowHeights []float64
	Theme      string
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Component is one placed wireframe element. The concrete type decides how
// it renders; all color strings are fully resolved ($refs substituted).
type Component interface {
	CellRange() Range
	Kind() string
	Background() string
	BorderColor() string
	// Pad returns the per-component padding override, or nil to use the
	// document default.
	Pad() *float64
}

// common carries the fields every component type shares.
type common struct {
	Rng     Range
	Bg      string
	Border  string
	Padding *float64 // per-component override of Metadata.Padding
}

func (c common) CellRange() Range    { return c.Rng }
func (c common) Background() string  { return c.Bg }
func (c common) BorderColor() string { return c.Border }
func (c common) Pad() *float64       { return c.Padding }

type Text struct {
	common
	Value string
	Align Align
}

type Box struct {
	common
}

type Button struct {
	common
	Label string
}

type Input struct {
	common
	Label string
	Value string // ghost text inside the field
}

type Image struct {
	common
	Src string
	Alt string
}

// Constructors for building documents programmatically (the webpage
// inference path assembles components without going through the parser).

func NewText(rng Range, value string, align Align) Text {
	if align == "" {
		align = AlignLeft
	}
	return Text{common: common{Rng: rng}, Value: value, Align: align}
}

func NewBox(rng Range) Box { return Box{common: common{Rng: rng}} }

func NewButton(rng Range, label string) Button {
	return Button{common: common{Rng: rng}, Label: label}
}

func NewInput(rng Range, label, value string) Input {
	return Input{common: common{Rng: rng}, Label: label, Value: value}
}

func NewImage(rng Range, src, alt string) Image {
	return Image{common: common{Rng: rng}, Src: src, Alt: alt}
}

func (Text) Kind() string   { return "txt" }
func (Box) Kind() string    { return "box" }
func (Button) Kind() string { return "btn" }
func (Input) Kind() string  { return "input" }
func (Image) Kind() string  { return "img" }
