// Package projdef renders nested #if/#elif/#else/#endif blocks for
// project and variant definitions.
package projdef

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
)

// Reserved branch values.
const (
	Else = "ELSE"
	End  = "END"
)

// frame is one open #if block.
type frame struct {
	Name   string
	Values []string
}

func (f *frame) last() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[len(f.Values)-1]
}

// Issue is a problem found while applying a row. Emission continues.
type Issue struct {
	Kind   diag.Kind
	Detail string
}

// Builder tracks the stack of open definition frames of one title section.
type Builder struct {
	main  string
	stack []*frame
}

// New returns a builder. main is the sheet's declared definition name,
// which is not a valid branch value.
func New(main string) *Builder {
	return &Builder{main: main}
}

// Depth is the number of open frames.
func (b *Builder) Depth() int { return len(b.stack) }

func isElse(v string) bool { return strings.EqualFold(v, Else) }
func isEnd(v string) bool  { return strings.EqualFold(v, End) }

// Apply processes one definition row and returns the directive lines to emit.
func (b *Builder) Apply(name, value string) ([]string, []Issue) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return nil, []Issue{{diag.ProjectDefinitionEmpty, fmt.Sprintf("definition %q value %q", name, value)}}
	}

	idx := b.find(name)
	switch {
	case isEnd(value):
		if idx < 0 {
			return nil, []Issue{{diag.MismatchedProjectDefinitionName, fmt.Sprintf("%s END without an open %s block", name, name)}}
		}
		return b.closeDownTo(idx), nil

	case isElse(value):
		if idx < 0 {
			return nil, []Issue{{diag.MismatchedProjectDefinitionName, fmt.Sprintf("%s ELSE without an open %s block", name, name)}}
		}
		lines := b.closeDownTo(idx + 1)
		f := b.stack[idx]
		if isElse(f.last()) {
			return lines, []Issue{{diag.DuplicateProjectBranchValue, fmt.Sprintf("%s has more than one ELSE", name)}}
		}
		f.Values = append(f.Values, Else)
		return append(lines, "#else"), nil
	}

	var issues []Issue
	if b.main != "" && value == b.main {
		issues = append(issues, Issue{diag.InvalidProjectBranchValue, fmt.Sprintf("%s branch value %s is the definition name itself", name, value)})
	}
	if idx < 0 {
		b.stack = append(b.stack, &frame{Name: name, Values: []string{value}})
		return []string{"#if " + condition(name, value)}, issues
	}

	lines := b.closeDownTo(idx + 1)
	f := b.stack[idx]
	if isElse(f.last()) {
		issues = append(issues, Issue{diag.ProjectDefinitionOrdering, fmt.Sprintf("%s branch %s follows ELSE", name, value)})
		return lines, issues
	}
	if slices.Contains(f.Values, value) {
		issues = append(issues, Issue{diag.DuplicateProjectBranchValue, fmt.Sprintf("%s branch %s repeated", name, value)})
	}
	f.Values = append(f.Values, value)
	return append(lines, "#elif "+condition(name, value)), issues
}

// CloseAll force-closes every open frame, innermost first.
func (b *Builder) CloseAll() []string {
	return b.closeDownTo(0)
}

// find searches the stack from the innermost frame outwards.
func (b *Builder) find(name string) int {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].Name == name {
			return i
		}
	}
	return -1
}

// closeDownTo pops frames until only depth frames remain.
func (b *Builder) closeDownTo(depth int) []string {
	var lines []string
	for len(b.stack) > depth {
		f := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		lines = append(lines, Close(f.Name, isElse(f.last()))...)
	}
	return lines
}

// Close renders the end of a block. Blocks without an #else branch get an
// #error fallback so an undefined configuration fails to compile.
func Close(name string, hadElse bool) []string {
	if hadElse {
		return []string{"#endif"}
	}
	return []string{"#else", fmt.Sprintf("#error undefined %s MACRO", name), "#endif"}
}

// condition always compares against the value, literal 0 and 1 included:
// DEF=A(1) must render as "#if (A == 1)", never "#if 1".
func condition(name, value string) string {
	return fmt.Sprintf("(%s == %s)", name, value)
}
