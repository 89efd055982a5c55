package array

import (
	"fmt"
	"strings"
)

// label comment delimiters "/* " and " */"
const labelFrame = 6

// Dims renders the declared dimensions, e.g. "[3][4]" or "[4]".
func (a *Info) Dims() string {
	switch {
	case a.Shape == SingleColumn:
		return fmt.Sprintf("[%d]", a.Original.Rows)
	case a.TwoDimensional():
		return fmt.Sprintf("[%d][%d]", a.Original.Rows, a.Original.Cols)
	default:
		return fmt.Sprintf("[%d]", a.Original.Cols)
	}
}

func (a *Info) declarator() string {
	var parts []string
	for _, p := range []string{a.Keyword, a.Type, a.Name + a.Dims()} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Declaration is the extern declaration written to the header.
func (a *Info) Declaration() string {
	kw := strings.TrimSpace(a.Keyword)
	d := a.declarator()
	if kw == "" || !strings.HasPrefix(kw, "extern") {
		d = "extern " + d
	}
	return d + ";"
}

// IsStatic reports whether the array has internal linkage.
func (a *Info) IsStatic() bool {
	for _, f := range strings.Fields(a.Keyword) {
		if f == "static" {
			return true
		}
	}
	return false
}

// Render returns the source lines of the array definition: the header
// line, one line per member row, and the closing brace followed by two
// blank lines.
func (a *Info) Render() []string {
	if a.Shape == SizeError {
		return nil
	}
	if !a.measured {
		a.Measure()
	}
	head := a.declarator() + " = {"
	if a.Description != "" {
		head += "\t/* " + a.Description + " */"
	}
	lines := []string{head}

	lastData := -1
	for i := range a.rows {
		if !a.annotRows[i] && a.rows[i] != nil {
			lastData = i
		}
	}
	for i := range a.rows {
		switch {
		case a.rows[i] == nil:
			continue
		case a.annotRows[i]:
			lines = append(lines, a.renderAnnotation(a.rows[i]))
		default:
			lines = append(lines, a.renderRow(a.elems[i], i == lastData))
		}
	}
	return append(lines, "};", "", "")
}

func (a *Info) renderAnnotation(cells []string) string {
	first := a.firstDataCol() - a.Start.Col
	var parts []string
	for off, c := range cells {
		if off == first || c == "" {
			continue
		}
		parts = append(parts, c)
	}
	return "\t/* " + strings.Join(parts, " ") + " */"
}

func (a *Info) renderRow(row []element, last bool) string {
	var b strings.Builder
	b.WriteByte('\t')
	twoD := a.TwoDimensional()
	if twoD {
		b.WriteString("{ ")
	}
	values := 0
	for _, e := range row {
		if e.value != "" {
			values++
		}
	}
	seen := 0
	for j, e := range row {
		if lw := a.LabelWidth(j); lw > 0 {
			if e.label != "" {
				b.WriteString("/* " + e.label + " */")
				b.WriteString(spaces(lw - len(e.label)))
			} else {
				b.WriteString(spaces(lw + labelFrame))
			}
			b.WriteByte(' ')
		}
		if e.value == "" {
			continue
		}
		seen++
		b.WriteString(e.value)
		w := a.ValueWidth(j)
		if seen < values {
			b.WriteByte(',')
			b.WriteString(spaces(w - len(e.value) + 1))
		} else if twoD {
			b.WriteString(spaces(w - len(e.value)))
		}
	}
	line := strings.TrimRight(b.String(), " ")
	if twoD {
		line = b.String() + " }"
	}
	if !last {
		line += ","
	}
	return line
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
