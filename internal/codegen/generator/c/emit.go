package cgen

import (
	"strings"

	"github.com/Alia5/sheetgen/internal/codegen/align"
	"github.com/Alia5/sheetgen/internal/codegen/opcode"
	"github.com/Alia5/sheetgen/internal/codegen/scanner"
)

// Buffers are the ordered source and header lines of a translation.
type Buffers struct {
	Source []string
	Header []string
}

func (b *Buffers) Both(lines ...string) {
	b.Source = append(b.Source, lines...)
	b.Header = append(b.Header, lines...)
}

// Append adds other after the lines already in b.
func (b *Buffers) Append(other Buffers) {
	b.Source = append(b.Source, other.Source...)
	b.Header = append(b.Header, other.Header...)
}

// EmitSheet renders every section of a scanned sheet. Arrays must have been
// read before; they are measured here if not done yet.
func EmitSheet(res *scanner.Result) Buffers {
	var out Buffers
	pad := align.NewPadder(align.DefaultPadCacheSize)
	for _, sec := range res.Sections {
		out.Append(emitSection(sec, pad))
	}
	return out
}

// EmitSection renders one title section. The title banner is written to
// each file the section produced lines for.
func EmitSection(sec *scanner.Section) Buffers {
	return emitSection(sec, nil)
}

func emitSection(sec *scanner.Section, pad *align.Padder) Buffers {
	e := &emitter{sec: sec, pad: pad}
	for i := range sec.Items {
		e.item(&sec.Items[i])
	}

	var out Buffers
	if sec.Title != "" {
		srcEmpty, hdrEmpty := len(e.out.Source) == 0, len(e.out.Header) == 0
		if sec.Target.Source() && (!srcEmpty || srcEmpty && hdrEmpty) {
			out.Source = append(out.Source, titleBlock(sec.Title)...)
			out.Source = append(out.Source, "")
		}
		if sec.Target.Header() && (!hdrEmpty || srcEmpty && hdrEmpty) {
			out.Header = append(out.Header, titleBlock(sec.Title)...)
			out.Header = append(out.Header, "")
		}
	}
	out.Append(e.out)
	if len(e.out.Source) > 0 {
		out.Source = append(out.Source, "")
	}
	if len(e.out.Header) > 0 {
		out.Header = append(out.Header, "")
	}
	return out
}

type emitter struct {
	sec *scanner.Section
	pad *align.Padder
	out Buffers
}

func (e *emitter) widths(g align.Group) *align.Widths {
	return e.sec.Align.Group(g)
}

// decl is where declarations go: the header unless the section is
// source only.
func (e *emitter) decl(lines ...string) {
	if e.sec.Target == scanner.TargetSource {
		e.out.Source = append(e.out.Source, lines...)
		return
	}
	e.out.Header = append(e.out.Header, lines...)
}

// def is where definitions go: the source unless the section is header only.
func (e *emitter) def(lines ...string) {
	if e.sec.Target == scanner.TargetHeader {
		e.out.Header = append(e.out.Header, lines...)
		return
	}
	e.out.Source = append(e.out.Source, lines...)
}

// shared lines go to every file the section targets.
func (e *emitter) shared(lines ...string) {
	if e.sec.Target.Source() {
		e.out.Source = append(e.out.Source, lines...)
	}
	if e.sec.Target.Header() {
		e.out.Header = append(e.out.Header, lines...)
	}
}

func (e *emitter) item(it *scanner.Item) {
	switch it.Mode {
	case opcode.Subtitle:
		line := "/* --- " + commentBody(it.Name) + " --- */"
		if it.Description != "" {
			e.shared("", line, comment(it.Description))
			return
		}
		e.shared("", line)

	case opcode.Description:
		e.shared(block(it.Description)...)

	case opcode.Define:
		w := e.widths(align.GroupDefine)
		e.decl(e.columns("#define ", []cell{
			{it.Name, w[align.NameCol]},
			{it.Value, w[align.ValueCol]},
		}, it.Description))

	case opcode.Typedef:
		if it.Opens {
			if it.Description != "" {
				e.decl(comment(it.Description))
			}
			e.decl("typedef " + strings.ToLower(it.Type) + " {")
			return
		}
		w := e.widths(align.GroupTypedef)
		e.decl(e.columns("typedef ", []cell{
			{it.Type, w[align.TypeCol]},
			{it.Name + ";", w[align.NameCol] + 1},
		}, it.Description))

	case opcode.StructMember:
		w := e.widths(align.GroupMember)
		e.decl(e.columns("\t", []cell{
			{it.Type, w[align.TypeCol]},
			{it.Name + it.Value + ";", w[align.NameCol] + 1},
		}, it.Description))

	case opcode.Enum:
		if it.Description != "" {
			e.decl(comment(it.Description))
		}
		e.decl("typedef enum {")

	case opcode.EnumMember:
		w := e.widths(align.GroupEnumMember)
		cells := []cell{{it.Name + ",", w[align.NameCol] + 1}, {"", w[align.ValueCol] + 3}}
		if it.Value != "" {
			cells[0].text = it.Name
			cells[1].text = "= " + it.Value + ","
		}
		e.decl(e.columns("\t", cells, it.Description))

	case opcode.StructEnd, opcode.EnumEnd:
		e.decl("} "+it.Name+";", "")

	case opcode.Array:
		a := it.Array
		if a == nil {
			return
		}
		if e.sec.Target == scanner.TargetBoth && !a.IsStatic() {
			e.decl(a.Declaration())
		}
		e.def(a.Render()...)

	case opcode.Variable:
		e.variable(it)

	case opcode.RawCode:
		e.def(splitLines(it.Value)...)

	case opcode.PragmaSet:
		if it.Pragma != nil {
			e.def(it.Pragma.EnterLines()...)
		}

	case opcode.PragmaEnd:
		if it.Pragma != nil {
			e.def(it.Pragma.ExitLines()...)
		}

	case opcode.ProjectDefine:
		e.shared(it.Directives...)
	}
}

func (e *emitter) variable(it *scanner.Item) {
	w := e.widths(align.GroupVariable)
	name := cell{it.Name + ";", w[align.NameCol] + 1}
	value := cell{"", w[align.ValueCol] + 3}
	if it.Value != "" {
		name.text = it.Name
		value.text = "= " + it.Value + ";"
	}
	e.def(e.columns("", []cell{
		{it.Keyword, w[align.KeywordCol]},
		{it.Type, w[align.TypeCol]},
		name,
		value,
	}, it.Description))

	if e.sec.Target != scanner.TargetBoth || isStatic(it.Keyword) {
		return
	}
	kw := externKeyword(it.Keyword)
	e.decl(e.columns("", []cell{
		{kw, w[align.KeywordCol] + len("extern ")},
		{it.Type, w[align.TypeCol]},
		{it.Name + ";", w[align.NameCol] + 1},
	}, it.Description))
}

func isStatic(keyword string) bool {
	for _, f := range strings.Fields(keyword) {
		if f == "static" {
			return true
		}
	}
	return false
}

// externKeyword turns a definition keyword such as "const" into the matching
// declaration keyword "extern const".
func externKeyword(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if strings.HasPrefix(keyword, "extern") {
		return keyword
	}
	return strings.TrimSpace("extern " + keyword)
}
