// Package scanner walks the rows of a sheet, dispatches each through its
// operation code and collects the parsed items per title section. Column
// widths are measured here so the emitter can align in a second pass.
package scanner

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Alia5/sheetgen/internal/codegen/align"
	"github.com/Alia5/sheetgen/internal/codegen/array"
	"github.com/Alia5/sheetgen/internal/codegen/diag"
	"github.com/Alia5/sheetgen/internal/codegen/floatfix"
	"github.com/Alia5/sheetgen/internal/codegen/locator"
	"github.com/Alia5/sheetgen/internal/codegen/meta"
	"github.com/Alia5/sheetgen/internal/codegen/opcode"
	"github.com/Alia5/sheetgen/internal/codegen/projdef"
	"github.com/Alia5/sheetgen/internal/grid"
	"github.com/Alia5/sheetgen/internal/log"
)

// DefaultCheckEvery is how many rows are scanned between cancellation checks.
const DefaultCheckEvery = 256

// Options configures a scan.
type Options struct {
	Errors  *diag.List
	Pragmas *meta.PragmaTable
	Logger  *slog.Logger
	Tracer  log.RowTracer
	// CheckEvery is the number of rows between context checks.
	CheckEvery int
}

type state struct {
	opts  Options
	sheet string
	g     grid.Accessor
	pos   *locator.Positions
	res   *Result

	disp    opcode.Dispatcher
	proj    *projdef.Builder
	cur     *Section
	titles  map[string]int
	arrays  int
	pragma  *meta.Pragma
	pragmaK string
	body    opcode.Mode
	bodyOf  string
}

// Scan parses one sheet. A structural problem returns a *diag.StructuralError;
// a done context returns an error wrapping diag.ErrCancelled or
// diag.ErrLimitExceeded. Cell-content errors go to opts.Errors.
func Scan(ctx context.Context, sheet grid.Sheet, opts Options) (*Result, error) {
	if opts.Errors == nil {
		opts.Errors = &diag.List{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Tracer == nil {
		opts.Tracer = log.NewRowTracer(nil)
	}
	if opts.CheckEvery <= 0 {
		opts.CheckEvery = DefaultCheckEvery
	}

	pos, err := locator.Locate(sheet.Name, sheet.Grid)
	if err != nil {
		return nil, err
	}
	s := &state{
		opts:   opts,
		sheet:  sheet.Name,
		g:      sheet.Grid,
		pos:    pos,
		res:    &Result{Sheet: sheet.Name, Positions: pos, Project: pos.Project},
		proj:   projdef.New(pos.Project.Definition),
		titles: map[string]int{},
	}
	opts.Logger.Debug("Located item header", "sheet", sheet.Name, "row", pos.HeaderRow+1, "project", pos.Project.Name)

	var active *array.Info
	opCol := pos.Col(locator.Operation)
	for r := pos.HeaderRow + 1; r < s.g.Rows(); r++ {
		if (r-pos.HeaderRow)%opts.CheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, diag.FromContext(err)
			}
		}
		res := s.disp.Dispatch(s.g.Cell(r, opCol))
		if active != nil && active.Contains(r) && res.Mode == opcode.None && !res.Invalid {
			if prev := s.disp.Previous(); prev == opcode.Array || prev == opcode.ArrayMember {
				s.disp.Continue(opcode.ArrayMember)
				opts.Tracer.Trace(s.sheet, r, opcode.ArrayMember.String(), nil)
				continue
			}
		}
		if res.Invalid {
			s.errorf(diag.InvalidOperationCode, diag.Pos{Row: r, Col: opCol}, "unknown operation code %q", res.Token)
			continue
		}
		if res.Mode == opcode.None {
			continue
		}
		f := ReadFields(s.g, pos, res.Mode, r)
		opts.Tracer.Trace(s.sheet, r, res.Mode.String(), f.texts())
		if a := s.row(res.Mode, r, &f); a != nil {
			active = a
		}
	}
	s.closeSection()
	return s.res, nil
}

func (s *state) errorf(kind diag.Kind, pos diag.Pos, format string, args ...any) {
	s.opts.Errors.Add(kind, s.sheet, pos, format, args...)
}

// require records an empty-required-cell error for each empty field and
// reports whether all were present.
func (s *state) require(f *Fields, mode opcode.Mode, fields ...locator.Field) bool {
	ok := true
	for _, field := range fields {
		if f.Get(field) == "" {
			s.errorf(diag.EmptyRequiredCell, f.Pos(field), "%s row needs a %s", mode, field)
			ok = false
		}
	}
	return ok
}

func (s *state) section() *Section {
	if s.cur == nil {
		s.cur = &Section{Row: -1, Target: TargetBoth}
		s.res.Sections = append(s.res.Sections, s.cur)
	}
	return s.cur
}

func (s *state) add(it Item) {
	sec := s.section()
	sec.Items = append(sec.Items, it)
}

func (s *state) widths(g align.Group) *align.Widths {
	return s.section().Align.Group(g)
}

// row handles one dispatched row. It returns the array opened by an array
// header row, if any.
func (s *state) row(mode opcode.Mode, r int, f *Fields) *array.Info {
	it := Item{
		Mode:        mode,
		Row:         r,
		Keyword:     f.Get(locator.Keyword),
		Type:        f.Get(locator.Type),
		Name:        f.Get(locator.Name),
		Value:       f.Get(locator.Value),
		Description: f.Get(locator.Description),
	}

	switch mode {
	case opcode.Title, opcode.TitleSource, opcode.TitleHeader:
		s.title(mode, r, f)

	case opcode.Subtitle:
		if s.require(f, mode, locator.Name) {
			s.add(it)
		}

	case opcode.Description:
		if it.Description == "" {
			it.Description = it.Name
		}
		if it.Description == "" {
			s.require(f, mode, locator.Description)
			return nil
		}
		s.add(it)

	case opcode.Define:
		if !s.require(f, mode, locator.Name) {
			return nil
		}
		w := s.widths(align.GroupDefine)
		w.Observe(align.NameCol, it.Name)
		w.Observe(align.ValueCol, it.Value)
		s.add(it)

	case opcode.Typedef:
		if !s.require(f, mode, locator.Type, locator.Name) {
			return nil
		}
		if t := strings.ToLower(it.Type); t == "struct" || t == "union" {
			s.closeBody(r)
			it.Opens = true
			s.body, s.bodyOf = opcode.StructEnd, it.Name
		} else {
			w := s.widths(align.GroupTypedef)
			w.Observe(align.TypeCol, it.Type)
			w.Observe(align.NameCol, it.Name)
		}
		s.add(it)

	case opcode.StructMember:
		if !s.require(f, mode, locator.Type, locator.Name) {
			return nil
		}
		if s.body != opcode.StructEnd {
			s.errorf(diag.InvalidOperationCode, f.Pos(locator.Operation), "struct member %s outside a struct body", it.Name)
		}
		w := s.widths(align.GroupMember)
		w.Observe(align.TypeCol, it.Type)
		w.Observe(align.NameCol, it.Name+it.Value)
		s.add(it)

	case opcode.Enum:
		if !s.require(f, mode, locator.Name) {
			return nil
		}
		s.closeBody(r)
		s.body, s.bodyOf = opcode.EnumEnd, it.Name
		s.add(it)

	case opcode.EnumMember:
		if !s.require(f, mode, locator.Name) {
			return nil
		}
		if s.body != opcode.EnumEnd {
			s.errorf(diag.InvalidOperationCode, f.Pos(locator.Operation), "enum member %s outside an enum body", it.Name)
		}
		w := s.widths(align.GroupEnumMember)
		w.Observe(align.NameCol, it.Name)
		w.Observe(align.ValueCol, it.Value)
		s.add(it)

	case opcode.StructEnd, opcode.EnumEnd:
		if s.body != mode {
			s.errorf(diag.InvalidOperationCode, f.Pos(locator.Operation), "%s without an open body", mode)
			return nil
		}
		if it.Name == "" {
			it.Name = s.bodyOf
		}
		s.body, s.bodyOf = opcode.None, ""
		s.add(it)

	case opcode.Array:
		return s.array(it, r, f)

	case opcode.Variable:
		if !s.require(f, mode, locator.Type, locator.Name) {
			return nil
		}
		it.Value = floatfix.Normalize(it.Value, it.Type)
		w := s.widths(align.GroupVariable)
		w.Observe(align.KeywordCol, it.Keyword)
		w.Observe(align.TypeCol, it.Type)
		w.Observe(align.NameCol, it.Name)
		w.Observe(align.ValueCol, it.Value)
		s.add(it)

	case opcode.RawCode:
		if it.Value == "" {
			it.Value = it.Name
		}
		if it.Value == "" {
			s.require(f, mode, locator.Value)
			return nil
		}
		s.add(it)

	case opcode.PragmaSet:
		s.pragmaSet(it, f)

	case opcode.PragmaEnd:
		s.pragmaEnd(it, f)

	case opcode.ProjectDefine:
		lines, issues := s.proj.Apply(it.Name, it.Value)
		for _, is := range issues {
			s.errorf(is.Kind, f.Pos(locator.Value), "%s", is.Detail)
		}
		if len(lines) > 0 {
			it.Directives = lines
			s.add(it)
		}
	}
	return nil
}

func (s *state) title(mode opcode.Mode, r int, f *Fields) {
	s.closeSection()
	name := f.Get(locator.Name)
	if name == "" {
		s.require(f, mode, locator.Name)
	} else if first, dup := s.titles[name]; dup {
		s.errorf(diag.DuplicateTitleName, f.Pos(locator.Name), "title %q already used on row %d", name, first+1)
	} else {
		s.titles[name] = r
	}
	target := TargetBoth
	switch mode {
	case opcode.TitleSource:
		target = TargetSource
	case opcode.TitleHeader:
		target = TargetHeader
	default:
		if headerKeyword(f.Get(locator.Keyword)) {
			target = TargetHeader
		}
	}
	s.cur = &Section{Title: name, Row: r, Target: target}
	s.res.Sections = append(s.res.Sections, s.cur)
}

// headerKeyword reports whether a generic title's keyword marks the section
// as declarations only.
func headerKeyword(kw string) bool {
	kw = strings.ToLower(kw)
	for _, m := range []string{"define", "type", "macro"} {
		if strings.Contains(kw, m) {
			return true
		}
	}
	return false
}

func (s *state) array(it Item, r int, f *Fields) *array.Info {
	if !s.require(f, opcode.Array, locator.Type, locator.Name) {
		return nil
	}
	id := array.ID(s.sheet, it.Name, s.arrays)
	s.arrays++
	a, err := array.New(id, s.g, s.pos, r, array.Decl{
		Keyword: it.Keyword,
		Type:    it.Type,
		Name:    it.Name,
	})
	if err != nil {
		s.errorf(diag.InvalidArraySize, f.Pos(locator.Name), "%v", err)
	}
	if a.Shape == array.SizeError {
		return nil
	}
	f.SetDescription(s.g, r, a.DescCol)
	a.Description = f.Get(locator.Description)
	it.Description = a.Description
	it.Array = a
	s.res.Arrays = append(s.res.Arrays, a)
	s.add(it)
	s.opts.Logger.Debug("Array located", "id", a.ID, "shape", a.Shape.String(), "size", a.Original.String(), "read", a.Read.String())
	return a
}

func (s *state) pragmaSet(it Item, f *Fields) {
	kw := it.Keyword
	if kw == "" {
		kw = it.Name
	}
	if kw == "" {
		s.require(f, opcode.PragmaSet, locator.Keyword)
		return
	}
	if s.pragma != nil {
		s.errorf(diag.PragmaSectionMisuse, f.Pos(locator.Keyword), "pragma %s opened while %s is still open", kw, s.pragmaK)
		return
	}
	p, ok := s.opts.Pragmas.Lookup(kw)
	if !ok {
		s.errorf(diag.PragmaSectionMisuse, f.Pos(locator.Keyword), "pragma keyword %s is not in the pragma table", kw)
		return
	}
	s.pragma, s.pragmaK = p, kw
	it.Pragma = p
	s.add(it)
}

func (s *state) pragmaEnd(it Item, f *Fields) {
	if s.pragma == nil {
		s.errorf(diag.PragmaSectionMisuse, f.Pos(locator.Operation), "pragma end without an open pragma")
		return
	}
	kw := it.Keyword
	if kw == "" {
		kw = it.Name
	}
	if kw != "" && kw != s.pragmaK {
		s.errorf(diag.PragmaSectionMisuse, f.Pos(locator.Keyword), "pragma end %s closes %s", kw, s.pragmaK)
	}
	it.Pragma = s.pragma
	s.pragma, s.pragmaK = nil, ""
	s.add(it)
}

// closeBody ends a struct or enum body left open.
func (s *state) closeBody(r int) {
	if s.body == opcode.None {
		return
	}
	s.opts.Logger.Warn("Closing unterminated body", "sheet", s.sheet, "name", s.bodyOf, "row", r+1)
	s.add(Item{Mode: s.body, Row: r, Name: s.bodyOf})
	s.body, s.bodyOf = opcode.None, ""
}

// closeSection flushes open state at a title boundary: unterminated bodies
// and pragmas are closed and any open definition frames are force-closed.
func (s *state) closeSection() {
	if s.cur == nil {
		return
	}
	s.closeBody(-1)
	if s.pragma != nil {
		s.errorf(diag.PragmaSectionMisuse, diag.Pos{Row: s.cur.Row, Col: s.pos.Col(locator.Operation)}, "pragma %s not closed in section %q", s.pragmaK, s.cur.Title)
		s.add(Item{Mode: opcode.PragmaEnd, Row: -1, Pragma: s.pragma})
		s.pragma, s.pragmaK = nil, ""
	}
	if lines := s.proj.CloseAll(); len(lines) > 0 {
		s.add(Item{Mode: opcode.ProjectDefine, Row: -1, Directives: lines})
	}
	s.cur = nil
}
