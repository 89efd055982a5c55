package scanner

import (
	"strings"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
	"github.com/Alia5/sheetgen/internal/codegen/locator"
	"github.com/Alia5/sheetgen/internal/codegen/opcode"
	"github.com/Alia5/sheetgen/internal/grid"
)

// FieldSlot is where one named field of the current row was read from.
type FieldSlot struct {
	Pos  diag.Pos
	Text string
}

// Fields holds the six named fields of one row, indexed by locator.Field.
type Fields [6]FieldSlot

func (f *Fields) Get(field locator.Field) string { return f[field].Text }
func (f *Fields) Pos(field locator.Field) diag.Pos {
	return f[field].Pos
}

// Columns picks the column each field is read from for a row in mode m.
func Columns(p *locator.Positions, m opcode.Mode) [6]int {
	cols := p.Cols
	switch m {
	case opcode.StructMember, opcode.EnumMember:
		cols[locator.Name] = p.MemberCol
	case opcode.ProjectDefine:
		cols[locator.Name] = p.ProjectDefCol
		cols[locator.Value] = p.ProjectNameCol
	}
	return cols
}

// ReadFields reads the fields of row for mode m.
func ReadFields(g grid.Accessor, p *locator.Positions, m opcode.Mode, row int) Fields {
	var f Fields
	for i, c := range Columns(p, m) {
		text := g.Cell(row, c)
		if m == opcode.RawCode && locator.Field(i) == locator.Value {
			text = strings.TrimRight(text, " \t\r\n")
		} else {
			text = strings.TrimSpace(text)
		}
		f[i] = FieldSlot{Pos: diag.Pos{Row: row, Col: c}, Text: text}
	}
	return f
}

// SetDescription re-reads the description from col, used once an array's
// annotation columns have shifted it.
func (f *Fields) SetDescription(g grid.Accessor, row, col int) {
	f[locator.Description] = FieldSlot{Pos: diag.Pos{Row: row, Col: col}, Text: strings.TrimSpace(g.Cell(row, col))}
}

func (f *Fields) texts() []string {
	out := make([]string, len(f))
	for i, s := range f {
		out[i] = s.Text
	}
	return out
}
