package cgen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Alia5/sheetgen/internal/codegen/common"
	"github.com/Alia5/sheetgen/internal/codegen/diag"
	"github.com/Alia5/sheetgen/internal/codegen/meta"
)

// DefaultErrorLimit is how many errors the generation banner lists.
const DefaultErrorLimit = 10

// DefaultCompany is printed on the first banner line when none is configured.
const DefaultCompany = "Generated code. Do not edit by hand."

// Document is everything the file assembler needs besides the body lines.
type Document struct {
	Company    string
	Version    string
	Date       time.Time
	SourceName string
	SourceFile string
	HeaderFile string
	Files      meta.Files
	Errors     []diag.Error
	ErrorLimit int
}

const bannerTmpl = `/* ****************************************************************************
 * {{.Company}}
 * Generated by sheetgen {{.Version}} on {{.Date}}
 * Source: {{.SourceName}}
 * Errors: {{.ErrorCount}}
{{- range .Errors}}
 *   {{comment .}}
{{- end}}
{{- if .More}}
 *   ... and {{.More}} more
{{- end}}
 **************************************************************************** */
`

const startTmpl = `/* ----------------------------------------------------------------------------
 * Start of {{.Kind}} file {{.File}}
 * -------------------------------------------------------------------------- */
`

const fileInfoTmpl = `/**
 * @file    {{.Info.FileName}}
{{- with .Info.Brief}}
 * @brief   {{comment .}}
{{- end}}
{{- with .Info.Author}}
 * @author  {{comment .}}
{{- end}}
{{- with .Info.Date}}
 * @date    {{comment .}}
{{- end}}
{{- with .Info.Version}}
 * @version {{comment .}}
{{- end}}
{{- with .Info.Remarks}}
 * @remarks {{comment .}}
{{- end}}
{{- if .Info.History}}
 *
 * @par History
{{- range .Info.History}}
 * - {{comment .Version}} | {{comment .Date}} | {{comment .Author}} | {{comment .Description}}
{{- end}}
{{- end}}
 */
`

const endTmpl = `/* ----------------------------------------------------------------------------
 * End of {{.Kind}} file {{.File}}
 * -------------------------------------------------------------------------- */
{{- if .Guard}}
#endif /* {{.Guard}} */
{{- end}}
`

var (
	bannerT   = template.Must(template.New("banner").Funcs(tplFuncs()).Parse(bannerTmpl))
	startT    = template.Must(template.New("start").Funcs(tplFuncs()).Parse(startTmpl))
	fileInfoT = template.Must(template.New("fileinfo").Funcs(tplFuncs()).Parse(fileInfoTmpl))
	endT      = template.Must(template.New("end").Funcs(tplFuncs()).Parse(endTmpl))
)

func render(t *template.Template, data any) ([]string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", t.Name(), err)
	}
	return splitLines(buf.String()), nil
}

type bannerData struct {
	Company    string
	Version    string
	Date       string
	SourceName string
	ErrorCount int
	Errors     []string
	More       int
}

func (d Document) banner() bannerData {
	limit := d.ErrorLimit
	if limit <= 0 {
		limit = DefaultErrorLimit
	}
	b := bannerData{
		Company:    d.Company,
		Version:    d.Version,
		Date:       d.Date.Format("2006-01-02"),
		SourceName: d.SourceName,
		ErrorCount: len(d.Errors),
	}
	if b.Company == "" {
		b.Company = DefaultCompany
	}
	for i, e := range d.Errors {
		if i == limit {
			b.More = len(d.Errors) - limit
			break
		}
		b.Errors = append(b.Errors, e.Error())
	}
	return b
}

// Assemble wraps the body lines in banners, file info, includes and the
// include guard, returning the final source and header.
func Assemble(doc Document, body Buffers) (Buffers, error) {
	if doc.SourceFile == "" || doc.HeaderFile == "" {
		return Buffers{}, fmt.Errorf("assemble: source and header file names are required")
	}
	banner, err := render(bannerT, doc.banner())
	if err != nil {
		return Buffers{}, err
	}
	guard := common.GuardName(doc.HeaderFile)

	src, err := doc.file("source", doc.SourceFile, doc.Files.Source, banner)
	if err != nil {
		return Buffers{}, err
	}
	src = append(src, sourceIncludes(doc.HeaderFile, doc.Files.Source.IncludeList())...)
	src = append(src, "")
	src = append(src, body.Source...)
	end, err := render(endT, map[string]string{"Kind": "source", "File": doc.SourceFile})
	if err != nil {
		return Buffers{}, err
	}
	src = append(src, end...)

	hdr, err := doc.file("header", doc.HeaderFile, doc.Files.Header, banner)
	if err != nil {
		return Buffers{}, err
	}
	hdr = append(hdr, "#ifndef "+guard, "#define "+guard, "")
	if inc := includes(doc.Files.Header.IncludeList(), doc.HeaderFile); len(inc) > 0 {
		hdr = append(hdr, inc...)
		hdr = append(hdr, "")
	}
	hdr = append(hdr, body.Header...)
	end, err = render(endT, map[string]string{"Kind": "header", "File": doc.HeaderFile, "Guard": guard})
	if err != nil {
		return Buffers{}, err
	}
	hdr = append(hdr, end...)

	return Buffers{Source: src, Header: hdr}, nil
}

func (d Document) file(kind, name string, info meta.FileInfo, banner []string) ([]string, error) {
	lines := append([]string(nil), banner...)
	lines = append(lines, "")
	start, err := render(startT, map[string]string{"Kind": kind, "File": name})
	if err != nil {
		return nil, err
	}
	lines = append(lines, start...)
	lines = append(lines, "")
	if info.FileName == "" {
		info.FileName = name
	}
	fi, err := render(fileInfoT, map[string]any{"Info": info})
	if err != nil {
		return nil, err
	}
	lines = append(lines, fi...)
	return append(lines, ""), nil
}

// sourceIncludes puts the source's own header first, then the declared
// includes without a second copy of it.
func sourceIncludes(header string, declared []string) []string {
	lines := []string{includeLine(filepath.Base(header))}
	return append(lines, includes(declared, header)...)
}

func includes(declared []string, skip string) []string {
	var lines []string
	for _, inc := range declared {
		if sameFile(inc, skip) {
			continue
		}
		lines = append(lines, includeLine(inc))
	}
	return lines
}

func sameFile(inc, header string) bool {
	inc = strings.TrimSpace(strings.TrimPrefix(inc, "#include"))
	inc = strings.Trim(inc, `"<> `)
	return filepath.Base(inc) == filepath.Base(header)
}

// includeLine accepts "x.h", "<x.h>" or a complete #include directive.
func includeLine(inc string) string {
	switch {
	case strings.HasPrefix(inc, "#include"):
		return inc
	case strings.HasPrefix(inc, "<"), strings.HasPrefix(inc, `"`):
		return "#include " + inc
	}
	return `#include "` + inc + `"`
}

// JoinCRLF renders lines as file content with CRLF line endings.
func JoinCRLF(lines []string) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}
