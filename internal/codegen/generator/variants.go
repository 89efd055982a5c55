package generator

import (
	"strings"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
	cgen "github.com/Alia5/sheetgen/internal/codegen/generator/c"
	"github.com/Alia5/sheetgen/internal/codegen/projdef"
	"github.com/Alia5/sheetgen/internal/codegen/scanner"
)

// Reserved sheet project names.
const (
	CommonProject  = "COMMON"
	DefaultProject = "DEFAULT"
)

// variants wraps the sheets of a workbook in one #if/#elif/#else chain per
// project definition. COMMON sheets stay unwrapped and must come before any
// variant; a DEFAULT sheet becomes the #else branch and must be last.
type variants struct {
	errs *diag.List

	def     string
	chain   *projdef.Builder
	variant bool
}

func (v *variants) sheet(body *cgen.Buffers, res *scanner.Result) {
	p := res.Project
	pos := diag.Pos{Row: p.Row, Col: res.Positions.ProjectNameCol}
	emit := cgen.EmitSheet(res)

	switch {
	case p.Empty():
		body.Both(v.close()...)
		body.Append(emit)
		return

	case strings.EqualFold(p.Name, CommonProject):
		if v.variant {
			v.errs.Add(diag.ProjectDefinitionOrdering, res.Sheet, pos, "%s sheet follows variant sheets", CommonProject)
		}
		body.Both(v.close()...)
		body.Append(emit)
		return

	case p.Definition == "":
		v.errs.Add(diag.ProjectDefinitionEmpty, res.Sheet, pos, "project %s has no definition name", p.Name)
		body.Both(v.close()...)
		body.Append(emit)
		return
	}

	if v.chain != nil && v.def != p.Definition {
		v.errs.Add(diag.MismatchedProjectDefinitionName, res.Sheet, pos,
			"definition %s does not continue the open %s chain", p.Definition, v.def)
		body.Both(v.close()...)
	}

	value := p.Name
	if strings.EqualFold(p.Name, DefaultProject) {
		if v.chain == nil {
			v.errs.Add(diag.ProjectDefinitionOrdering, res.Sheet, pos, "%s sheet without a preceding variant of %s", DefaultProject, p.Definition)
			body.Append(emit)
			return
		}
		value = projdef.Else
	}
	if v.chain == nil {
		v.chain, v.def = projdef.New(""), p.Definition
	}
	v.variant = true

	lines, issues := v.chain.Apply(p.Definition, value)
	afterElse := false
	for _, is := range issues {
		v.errs.Add(is.Kind, res.Sheet, pos, "%s", is.Detail)
		afterElse = afterElse || is.Kind == diag.ProjectDefinitionOrdering
	}
	body.Both(lines...)
	if afterElse {
		// the open #else belongs to the DEFAULT sheet
		return
	}
	body.Append(emit)
}

// close ends the open chain, if any.
func (v *variants) close() []string {
	if v.chain == nil {
		return nil
	}
	lines := v.chain.CloseAll()
	v.chain, v.def = nil, ""
	return lines
}
