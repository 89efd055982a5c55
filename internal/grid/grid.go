// Package grid provides the in-memory 2-D string table that sheets are
// translated from, plus loaders that build one from xlsx or csv files.
package grid

import "strings"

// Accessor reads one cell. Out-of-range cells read as "".
type Accessor interface {
	Cell(row, col int) string
	Rows() int
	Cols() int
}

// Grid is a ragged row-major table of cell text.
type Grid [][]string

// Cell returns the text at (row, col) or "" when the cell does not exist.
func (g Grid) Cell(row, col int) string {
	if row < 0 || col < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

func (g Grid) Rows() int { return len(g) }

// Cols returns the width of the widest row.
func (g Grid) Cols() int {
	n := 0
	for _, r := range g {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// Sheet is a named grid.
type Sheet struct {
	Name string
	Grid Accessor
}

// Workbook is an ordered list of sheets loaded from one input file.
type Workbook struct {
	Name   string
	Sheets []Sheet
}

// Sheet looks up a sheet by case-insensitive name.
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Sheet{}, false
}

// FromText builds a grid from tab-separated lines. Mostly useful in tests.
func FromText(text string) Grid {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	g := make(Grid, len(lines))
	for i, l := range lines {
		g[i] = strings.Split(l, "\t")
	}
	return g
}
