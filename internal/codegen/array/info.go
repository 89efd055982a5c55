package array

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/Alia5/sheetgen/internal/codegen/align"
	"github.com/Alia5/sheetgen/internal/codegen/diag"
	"github.com/Alia5/sheetgen/internal/codegen/locator"
	"github.com/Alia5/sheetgen/internal/grid"
)

// Decl is the declaration part of an array header row.
type Decl struct {
	Keyword     string
	Type        string
	Name        string
	Description string
}

// Info is everything known about one array block. It is created from the
// header row, filled by ReadRow for each member row and read by Render.
type Info struct {
	ID string
	Decl
	Shape     Shape
	HeaderRow int

	Original Size
	Read     Size
	Start    diag.Pos
	End      diag.Pos
	DescCol  int
	// Truncated is set when fewer data rows than declared were found.
	Truncated bool

	annotRows map[int]bool
	annotCols map[int]bool
	hasIndex  bool

	rows     [][]string
	rowsRead atomic.Int64

	elems     [][]element
	valueW    *align.Vector
	labelW    *align.Vector
	measured  bool
	dataRowsN int
}

type element struct {
	label string
	value string
}

// ID builds the identifier of the index-th array of a sheet.
func ID(sheet, name string, index int) string {
	return fmt.Sprintf("%s_%s_%d", sheet, name, index)
}

// New classifies the array declared on headerRow and computes its bounds.
// On a size error the returned Info has Shape SizeError and err explains why.
// A truncated block returns a usable Info together with an error.
func New(id string, g grid.Accessor, p *locator.Positions, headerRow int, decl Decl) (*Info, error) {
	a := &Info{
		ID:        id,
		Decl:      decl,
		HeaderRow: headerRow,
		DescCol:   p.DescCol,
		annotRows: map[int]bool{},
		annotCols: map[int]bool{},
	}
	belowName := strings.TrimSpace(g.Cell(headerRow+1, p.Col(locator.Name)))
	inValue := strings.TrimSpace(g.Cell(headerRow, p.Col(locator.Value)))

	var token string
	switch below, val := IsSizeToken(belowName), IsSizeToken(inValue); {
	case below && val:
		return sizeError(id, decl, headerRow, "size given both below the name and in the value column")
	case !below && !val:
		return sizeError(id, decl, headerRow, "no size specification found")
	case below:
		token = belowName
		a.Shape = RowMajorBlock
		a.Start = diag.Pos{Row: headerRow + 1, Col: p.ArrayBlockCol}
	default:
		token = inValue
		a.Shape = SingleRow
		a.Start = diag.Pos{Row: headerRow + 1, Col: p.ArrayValueCol}
	}

	size, err := ParseSize(token)
	if err != nil {
		return sizeError(id, decl, headerRow, err.Error())
	}
	a.Original = size

	if a.Shape == RowMajorBlock && hasCaptions(g, headerRow, a.Start.Col) {
		a.Shape = SplitDecimalBlock
	}
	if size.Cols == 1 && a.Shape != SplitDecimalBlock {
		a.Shape = SingleColumn
	}

	a.locateCols(g)
	err = a.locateRows(g, p.Col(locator.Operation))
	a.rows = make([][]string, a.Read.Rows)
	return a, err
}

func sizeError(id string, decl Decl, headerRow int, msg string) (*Info, error) {
	return &Info{ID: id, Decl: decl, Shape: SizeError, HeaderRow: headerRow}, fmt.Errorf("array %s: %s", decl.Name, msg)
}

// hasCaptions scans the header row above the first two block columns. Any
// content other than the annotation marker means the block carries
// int/fraction column captions.
func hasCaptions(g grid.Accessor, row, col int) bool {
	for c := col; c < col+2; c++ {
		if v := strings.TrimSpace(g.Cell(row, c)); v != "" && v != Marker {
			return true
		}
	}
	return false
}

func (a *Info) cellsPerElement() int {
	if a.Shape == SplitDecimalBlock {
		return 2
	}
	return 1
}

func (a *Info) locateCols(g grid.Accessor) {
	need := a.Original.Cols * a.cellsPerElement()
	c := a.Start.Col
	for n := 0; n < need; c++ {
		if strings.TrimSpace(g.Cell(a.HeaderRow, c)) == Marker {
			a.annotCols[c-a.Start.Col] = true
			if c == a.Start.Col {
				a.hasIndex = true
			}
			continue
		}
		n++
	}
	a.End.Col = c - 1
	a.Read.Cols = a.End.Col - a.Start.Col + 1

	for _, off := range sortedKeys(a.annotCols) {
		if a.Start.Col+off <= a.DescCol {
			a.DescCol++
		}
	}
}

func (a *Info) firstDataCol() int {
	for off := 0; off < a.Read.Cols; off++ {
		if !a.IsAnnotationCol(off) {
			return a.Start.Col + off
		}
	}
	return a.Start.Col
}

func (a *Info) locateRows(g grid.Accessor, opCol int) error {
	first := a.firstDataCol()
	r := a.Start.Row
	n := 0
	var err error
	for n < a.Original.Rows {
		if r >= g.Rows() {
			err = fmt.Errorf("array %s: sheet ends after %d of %d rows", a.Name, n, a.Original.Rows)
			break
		}
		if strings.TrimSpace(g.Cell(r, opCol)) != "" {
			err = fmt.Errorf("array %s: operation code at row %d before %d of %d rows were read", a.Name, r+1, n, a.Original.Rows)
			break
		}
		if strings.TrimSpace(g.Cell(r, first)) == Marker {
			a.annotRows[r-a.Start.Row] = true
		} else {
			n++
		}
		r++
	}
	a.Truncated = err != nil
	a.dataRowsN = n
	a.End.Row = r - 1
	a.Read.Rows = r - a.Start.Row
	return err
}

// Contains reports whether grid row r is a member row of this array.
func (a *Info) Contains(r int) bool {
	return a.Shape != SizeError && r >= a.Start.Row && r <= a.End.Row
}

// IsAnnotationRow reports whether member row offset i renders as a comment.
func (a *Info) IsAnnotationRow(i int) bool { return a.annotRows[i] }

// IsAnnotationCol reports whether column offset i holds labels.
func (a *Info) IsAnnotationCol(i int) bool { return a.annotCols[i] }

// AnnotationRows returns the sorted annotation row offsets.
func (a *Info) AnnotationRows() []int { return sortedKeys(a.annotRows) }

// AnnotationCols returns the sorted annotation column offsets.
func (a *Info) AnnotationCols() []int { return sortedKeys(a.annotCols) }

// HasIndex reports whether the first block column is an annotation column.
func (a *Info) HasIndex() bool { return a.hasIndex }

// RowsRead is the number of member rows read so far.
func (a *Info) RowsRead() int { return int(a.rowsRead.Load()) }

// DataRows is the number of non-annotation rows inside the bounds.
func (a *Info) DataRows() int { return a.dataRowsN }

// TwoDimensional reports whether the array renders as T name[R][C].
func (a *Info) TwoDimensional() bool {
	return a.Original.Rows > 1 && a.Shape != SingleColumn
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
