package cgen

import (
	"strings"
	"text/template"

	"github.com/Alia5/sheetgen/internal/codegen/common"
)

func tplFuncs() template.FuncMap {
	return template.FuncMap{
		"upper":   strings.ToUpper,
		"guard":   common.GuardName,
		"comment": commentBody,
		"join":    strings.Join,
	}
}

// cell is one aligned column of an emitted line. width is the widest text
// of the column in the section; a zero width column is left out.
type cell struct {
	text  string
	width int
}

// columns lays cells out on tab stops after prefix, which must itself end on
// a tab stop. Trailing empty cells are dropped unless desc is set, in which
// case every cell is padded and the description follows as a comment.
func (e *emitter) columns(prefix string, cells []cell, desc string) string {
	last := -1
	for i, c := range cells {
		if c.text != "" {
			last = i
		}
	}
	if desc != "" {
		last = len(cells)
	}
	var b strings.Builder
	b.WriteString(prefix)
	for i, c := range cells {
		if i > last || c.width == 0 && c.text == "" {
			continue
		}
		b.WriteString(c.text)
		if i < last {
			b.WriteString(e.pad.Pad(max(c.width, len(c.text)), len(c.text), false, 0))
		}
	}
	if desc != "" {
		b.WriteString(comment(desc))
	}
	return b.String()
}

// comment renders text as a single-line C comment.
func comment(text string) string {
	return "/* " + commentBody(text) + " */"
}

// commentBody keeps text from closing the comment it is placed in and folds
// line breaks.
func commentBody(text string) string {
	text = strings.ReplaceAll(text, "*/", "* /")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Join(strings.Split(strings.TrimSpace(text), "\n"), " ")
}

// block renders a possibly multi-line description as a C comment block.
func block(text string) []string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	if !strings.Contains(text, "\n") {
		return []string{comment(text)}
	}
	lines := []string{"/*"}
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimRight(" * "+strings.ReplaceAll(l, "*/", "* /"), " "))
	}
	return append(lines, " */")
}

// titleBlock is the banner written above every title section.
func titleBlock(title string) []string {
	return []string{
		"/* ========================================================================",
		" * " + commentBody(title),
		" * ======================================================================== */",
	}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
