package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a zero-based grid coordinate. "A1" is {0, 0}.
type Cell struct {
	Col int
	Row int
}

// Range is a rectangular span of cells. Start is always the top-left
// corner: both axes satisfy Start <= End, enforced by NewRange.
type Range struct {
	Start Cell
	End   Cell
}

// NewRange normalizes the two corners component-wise, so the endpoints can
// be written in any order ("B2..A1" equals "A1..B2").
func NewRange(a, b Cell) Range {
	r := Range{Start: a, End: b}
	if r.Start.Col > r.End.Col {
		r.Start.Col, r.End.Col = r.End.Col, r.Start.Col
	}
	if r.Start.Row > r.End.Row {
		r.Start.Row, r.End.Row = r.End.Row, r.Start.Row
	}
	return r
}

// Overlaps reports whether two ranges share any cell. Two ranges are
// disjoint only if one is entirely before the other on at least one axis.
func (r Range) Overlaps(other Range) bool {
	if r.End.Col < other.Start.Col || other.End.Col < r.Start.Col {
		return false
	}
	if r.End.Row < other.Start.Row || other.End.Row < r.Start.Row {
		return false
	}
	return true
}

func (r Range) Cols() int { return r.End.Col - r.Start.Col + 1 }
func (r Range) Rows() int { return r.End.Row - r.Start.Row + 1 }

func (r Range) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ".." + r.End.String()
}

func (c Cell) String() string { return FormatCell(c) }

// ParseCell decodes a spreadsheet-style reference such as "B3". The letter
// run is a bijective base-26 column ("A"=0 ... "Z"=25, "AA"=26); the digit
// run is the 1-indexed row.
func ParseCell(ref string) (Cell, error) {
	i := 0
	col := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}
	if i == 0 {
		return Cell{}, fmt.Errorf("cell reference %q must start with a column letter", ref)
	}
	if i == len(ref) {
		return Cell{}, fmt.Errorf("cell reference %q is missing a row number", ref)
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil {
		return Cell{}, fmt.Errorf("cell reference %q has an invalid row", ref)
	}
	if row < 1 {
		return Cell{}, fmt.Errorf("cell reference %q: row numbers start at 1", ref)
	}
	return Cell{Col: col - 1, Row: row - 1}, nil
}

// ParseRange decodes either a single reference ("B3", a 1x1 range) or two
// references joined by ".." naming opposite corners.
func ParseRange(s string) (Range, error) {
	first, rest, found := strings.Cut(s, "..")
	a, err := ParseCell(first)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return NewRange(a, a), nil
	}
	b, err := ParseCell(rest)
	if err != nil {
		return Range{}, err
	}
	return NewRange(a, b), nil
}

// FormatCell is the inverse of ParseCell.
func FormatCell(c Cell) string {
	col := c.Col + 1
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters) + strconv.Itoa(c.Row+1)
}
