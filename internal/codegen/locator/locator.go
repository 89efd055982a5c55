// Package locator finds the item header and project block of a sheet.
package locator

import (
	"fmt"
	"strings"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
	"github.com/Alia5/sheetgen/internal/grid"
)

// Header search window.
const (
	SearchRows = 30
	SearchCols = 30
)

// Column offsets of the project definition and name cells relative to the
// operation column.
const (
	ProjectDefOffset  = 1
	ProjectNameOffset = 2
)

// Field names one of the six required item header columns.
type Field int

const (
	Operation Field = iota
	Keyword
	Type
	Name
	Value
	Description
	fieldCount
)

var labels = [fieldCount]string{"operation", "keyword", "type", "name", "value", "description"}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return labels[f]
}

// Positions is where the item header and its derived columns sit.
type Positions struct {
	HeaderRow int
	Cols      [fieldCount]int

	MemberCol      int
	DescCol        int
	ArrayBlockCol  int
	ArrayValueCol  int
	ProjectDefCol  int
	ProjectNameCol int

	Project Project
}

func (p *Positions) Col(f Field) int { return p.Cols[f] }

// Project is the sheet's project block found above the item header.
type Project struct {
	Row         int
	Title       string
	Definition  string
	Name        string
	Description string
}

// Empty reports whether no project block was found.
func (p Project) Empty() bool {
	return p.Definition == "" && p.Name == ""
}

// Locate scans the header window of g for the item header row.
func Locate(sheet string, g grid.Accessor) (*Positions, error) {
	rows := min(g.Rows(), SearchRows)
	cols := min(g.Cols(), SearchCols)
	best := 0
	for r := 0; r < rows; r++ {
		var found [fieldCount]int
		for i := range found {
			found[i] = -1
		}
		n := 0
		for c := 0; c < cols; c++ {
			f, ok := fieldFor(g.Cell(r, c))
			if !ok || found[f] >= 0 {
				continue
			}
			found[f] = c
			n++
		}
		if n == int(fieldCount) {
			p := &Positions{HeaderRow: r, Cols: found}
			p.derive()
			p.Project = locateProject(g, p)
			return p, nil
		}
		best = max(best, n)
	}
	return nil, &diag.StructuralError{
		Kind:   diag.MalformedItemHeader,
		Sheet:  sheet,
		Detail: fmt.Sprintf("missing item header row (best row had %d of %d labels)", best, fieldCount),
	}
}

func fieldFor(cell string) (Field, bool) {
	cell = strings.ToLower(strings.TrimSpace(cell))
	for i, l := range labels {
		if cell == l {
			return Field(i), true
		}
	}
	return 0, false
}

func (p *Positions) derive() {
	p.MemberCol = p.Cols[Name] + 1
	p.DescCol = p.Cols[Description]
	p.ArrayBlockCol = p.Cols[Name] + 1
	p.ArrayValueCol = p.Cols[Value]
	p.ProjectDefCol = p.Cols[Operation] + ProjectDefOffset
	p.ProjectNameCol = p.Cols[Operation] + ProjectNameOffset
}

func locateProject(g grid.Accessor, p *Positions) Project {
	read := func(r int) Project {
		return Project{
			Row:         r,
			Title:       strings.TrimSpace(g.Cell(r, p.Cols[Operation])),
			Definition:  strings.TrimSpace(g.Cell(r, p.ProjectDefCol)),
			Name:        strings.TrimSpace(g.Cell(r, p.ProjectNameCol)),
			Description: strings.TrimSpace(g.Cell(r, p.DescCol)),
		}
	}
	// Preference order: all three, definition+name, name only, definition only.
	matchers := []func(Project) bool{
		func(c Project) bool { return c.Title != "" && c.Definition != "" && c.Name != "" },
		func(c Project) bool { return c.Definition != "" && c.Name != "" },
		func(c Project) bool { return c.Name != "" },
		func(c Project) bool { return c.Definition != "" },
	}
	for _, match := range matchers {
		for r := p.HeaderRow - 1; r >= 0; r-- {
			if c := read(r); match(c) {
				return c
			}
		}
	}
	return Project{Row: -1}
}
