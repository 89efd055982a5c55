package testing

import (
	"testing"

	"github.com/Alia5/sheetgen/internal/grid"
)

// Column layout of sheets built by NewSheet.
const (
	OpCol      = 0
	KeywordCol = 1
	TypeCol    = 2
	NameCol    = 3
	MemberCol  = 4
	ValueCol   = 5
	DescCol    = 10
	width      = DescCol + 1
)

// Sheet builds a grid row by row in the standard item header layout.
type Sheet struct {
	t    *testing.T
	rows [][]string
}

func NewSheet(t *testing.T) *Sheet {
	t.Helper()
	return &Sheet{t: t}
}

func (s *Sheet) row() []string {
	r := make([]string, width)
	s.rows = append(s.rows, r)
	return r
}

// Project adds the project block: title, definition and name in the
// operation column and the two columns right of it.
func (s *Sheet) Project(title, def, name, desc string) *Sheet {
	r := s.row()
	r[OpCol], r[OpCol+1], r[OpCol+2], r[DescCol] = title, def, name, desc
	return s
}

// Header adds the item header row.
func (s *Sheet) Header() *Sheet {
	r := s.row()
	r[OpCol], r[KeywordCol], r[TypeCol], r[NameCol], r[ValueCol], r[DescCol] =
		"Operation", "Keyword", "Type", "Name", "Value", "Description"
	return s
}

// Row adds an item row.
func (s *Sheet) Row(op, keyword, typ, name, value, desc string) *Sheet {
	r := s.row()
	r[OpCol], r[KeywordCol], r[TypeCol], r[NameCol], r[ValueCol], r[DescCol] = op, keyword, typ, name, value, desc
	return s
}

// Member adds a struct or enum member row, with the name in the member column.
func (s *Sheet) Member(op, typ, name, value, desc string) *Sheet {
	r := s.row()
	r[OpCol], r[TypeCol], r[MemberCol], r[ValueCol], r[DescCol] = op, typ, name, value, desc
	return s
}

// Cells adds a row with cells starting at col.
func (s *Sheet) Cells(col int, cells ...string) *Sheet {
	r := s.row()
	for len(r) < col+len(cells) {
		r = append(r, "")
	}
	copy(r[col:], cells)
	s.rows[len(s.rows)-1] = r
	return s
}

// Set overwrites one cell of an already added row.
func (s *Sheet) Set(row, col int, v string) *Sheet {
	s.t.Helper()
	if row >= len(s.rows) {
		s.t.Fatalf("row %d not added yet", row)
	}
	for len(s.rows[row]) <= col {
		s.rows[row] = append(s.rows[row], "")
	}
	s.rows[row][col] = v
	return s
}

// Len is the number of rows added so far.
func (s *Sheet) Len() int { return len(s.rows) }

func (s *Sheet) Grid() grid.Grid { return grid.Grid(s.rows) }

func (s *Sheet) Sheet(name string) grid.Sheet {
	return grid.Sheet{Name: name, Grid: s.Grid()}
}
