package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
	"github.com/Alia5/sheetgen/internal/output"
)

// summaryErrorLimit is how many errors the run summary lists.
const summaryErrorLimit = 20

// Summary is what a generate run reports when it ends.
type Summary struct {
	Workbooks int
	Files     []output.Result
	Skipped   []string
	Errors    *diag.List
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type painter bool

func (p painter) paint(c color.Color, s string) string {
	if !p {
		return s
	}
	return c.Sprint(s)
}

// Print writes the summary: counts first, then the recorded errors.
func (s *Summary) Print(w io.Writer, colored bool) {
	p := painter(colored)
	written, unchanged := 0, 0
	for _, f := range s.Files {
		switch {
		case f.Unchanged:
			unchanged++
		case f.Written:
			written++
		}
	}
	var errs []diag.Error
	var structural []*diag.StructuralError
	if s.Errors != nil {
		errs = s.Errors.Errors()
		structural = s.Errors.Structural()
	}

	status := p.paint(color.Green, "ok")
	if len(errs) > 0 || len(structural) > 0 {
		status = p.paint(color.Red, "with errors")
	}
	_, _ = fmt.Fprintf(w, "sheetgen %s: %d workbook(s), %d file(s) written, %s unchanged, %d error(s)\n",
		status, s.Workbooks, written, p.paint(color.Yellow, fmt.Sprint(unchanged)), len(errs)+len(structural))

	for _, f := range s.Files {
		mark := p.paint(color.Green, "written  ")
		if f.Unchanged {
			mark = p.paint(color.Gray, "unchanged")
		} else if !f.Written {
			mark = p.paint(color.Yellow, "dry-run  ")
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", mark, f.Path)
	}
	for _, e := range structural {
		_, _ = fmt.Fprintf(w, "  %s %s\n", p.paint(color.Red, "skipped"), e)
	}
	for i, e := range errs {
		if i == summaryErrorLimit {
			_, _ = fmt.Fprintf(w, "  ... and %d more\n", len(errs)-summaryErrorLimit)
			break
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", p.paint(color.Red, "error"), e)
	}
}
