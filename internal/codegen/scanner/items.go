package scanner

import (
	"github.com/Alia5/sheetgen/internal/codegen/align"
	"github.com/Alia5/sheetgen/internal/codegen/array"
	"github.com/Alia5/sheetgen/internal/codegen/locator"
	"github.com/Alia5/sheetgen/internal/codegen/meta"
	"github.com/Alia5/sheetgen/internal/codegen/opcode"
)

// Target selects which output file a section is written to.
type Target int

const (
	TargetBoth Target = iota
	TargetSource
	TargetHeader
)

func (t Target) Source() bool { return t != TargetHeader }
func (t Target) Header() bool { return t != TargetSource }

func (t Target) String() string {
	switch t {
	case TargetSource:
		return "source"
	case TargetHeader:
		return "header"
	}
	return "both"
}

// Item is one parsed row, ready for emission.
type Item struct {
	Mode opcode.Mode
	Row  int

	Keyword     string
	Type        string
	Name        string
	Value       string
	Description string

	// Opens is set on a typedef row that opens a struct or union body.
	Opens bool
	// Array is the array declared by an array row.
	Array *array.Info
	// Pragma is the pragma a pragma-set or pragma-end row switches.
	Pragma *meta.Pragma
	// Directives are the conditional-compilation lines of a project row.
	Directives []string
}

// Section is the run of rows under one title.
type Section struct {
	Title  string
	Row    int
	Target Target
	Items  []Item
	Align  align.Section
}

// Result is a scanned sheet.
type Result struct {
	Sheet     string
	Positions *locator.Positions
	Project   locator.Project
	Sections  []*Section
	Arrays    []*array.Info
}
