package meta

import (
	"fmt"
	"strings"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
)

// PragmaClass is one of the two section classes a pragma keyword switches.
type PragmaClass struct {
	Class         string `yaml:"class" toml:"class" json:"class" hcl:"class,label"`
	EnterID       string `yaml:"enter" toml:"enter" json:"enter" hcl:"enter,optional"`
	ExitID        string `yaml:"exit" toml:"exit" json:"exit" hcl:"exit,optional"`
	EnterAddrMode string `yaml:"enterAddrMode" toml:"enterAddrMode" json:"enterAddrMode" hcl:"enter_addr_mode,optional"`
	ExitAddrMode  string `yaml:"exitAddrMode" toml:"exitAddrMode" json:"exitAddrMode" hcl:"exit_addr_mode,optional"`
	EnterCode     string `yaml:"enterCode" toml:"enterCode" json:"enterCode" hcl:"enter_code,optional"`
	ExitCode      string `yaml:"exitCode" toml:"exitCode" json:"exitCode" hcl:"exit_code,optional"`
}

// Pragma maps a keyword to its section classes.
type Pragma struct {
	Keyword string        `yaml:"keyword" toml:"keyword" json:"keyword" hcl:"keyword,label"`
	Classes []PragmaClass `yaml:"classes" toml:"classes" json:"classes" hcl:"class,block"`
}

// PragmaClassesPerKeyword is the fixed number of classes a keyword carries.
const PragmaClassesPerKeyword = 2

// PragmaTable is the keyword -> pragma lookup.
type PragmaTable struct {
	Pragmas []Pragma `yaml:"pragmas" toml:"pragmas" json:"pragmas" hcl:"pragma,block"`
	index   map[string]*Pragma
}

// Index builds the keyword lookup and records duplicate keywords and
// keywords that do not carry exactly two classes. The first entry of a
// duplicated keyword wins.
func (t *PragmaTable) Index(errs *diag.List) {
	t.index = make(map[string]*Pragma, len(t.Pragmas))
	for i := range t.Pragmas {
		p := &t.Pragmas[i]
		key := strings.TrimSpace(p.Keyword)
		if _, dup := t.index[key]; dup {
			if errs != nil {
				errs.Add(diag.DuplicatePragmaKeyword, "pragma table", diag.NoPos, "keyword %s defined more than once", key)
			}
			continue
		}
		if len(p.Classes) != PragmaClassesPerKeyword && errs != nil {
			errs.Add(diag.PragmaSectionMisuse, "pragma table", diag.NoPos, "keyword %s has %d classes, want %d", key, len(p.Classes), PragmaClassesPerKeyword)
		}
		t.index[key] = p
	}
}

// Indexed reports whether Index has run. A table shared by several
// workbooks is indexed, and its errors recorded, only once.
func (t *PragmaTable) Indexed() bool {
	return t != nil && t.index != nil
}

// Lookup finds the pragma for keyword.
func (t *PragmaTable) Lookup(keyword string) (*Pragma, bool) {
	if t == nil {
		return nil, false
	}
	if t.index == nil {
		t.Index(nil)
	}
	p, ok := t.index[strings.TrimSpace(keyword)]
	return p, ok
}

func directive(class, id, mode string) string {
	parts := []string{"#pragma", "section"}
	for _, s := range []string{class, id, mode} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func codeLines(code string) []string {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	code = strings.ReplaceAll(code, "\r\n", "\n")
	return strings.Split(strings.TrimRight(code, "\n"), "\n")
}

// EnterLines renders the lines that open the pragma's sections.
func (p *Pragma) EnterLines() []string {
	var lines []string
	for _, c := range p.Classes {
		lines = append(lines, codeLines(c.EnterCode)...)
		lines = append(lines, directive(c.Class, c.EnterID, c.EnterAddrMode))
	}
	return lines
}

// ExitLines renders the lines that restore the default sections.
func (p *Pragma) ExitLines() []string {
	var lines []string
	for _, c := range p.Classes {
		lines = append(lines, directive(c.Class, c.ExitID, c.ExitAddrMode))
		lines = append(lines, codeLines(c.ExitCode)...)
	}
	return lines
}

func (p *Pragma) String() string {
	return fmt.Sprintf("pragma %s (%d classes)", p.Keyword, len(p.Classes))
}
