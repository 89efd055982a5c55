// Package meta holds the metadata a sheet translation needs besides the
// grid itself: file descriptions and the pragma table.
package meta

import (
	"strings"
)

// History is one change-history entry of a generated file.
type History struct {
	Version     string `yaml:"version" toml:"version" json:"version"`
	Date        string `yaml:"date" toml:"date" json:"date"`
	Author      string `yaml:"author" toml:"author" json:"author"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// FileInfo describes one generated file.
type FileInfo struct {
	FileName string    `yaml:"fileName" toml:"fileName" json:"fileName"`
	Brief    string    `yaml:"brief" toml:"brief" json:"brief"`
	Author   string    `yaml:"author" toml:"author" json:"author"`
	Date     string    `yaml:"date" toml:"date" json:"date"`
	Remarks  string    `yaml:"remarks" toml:"remarks" json:"remarks"`
	Version  string    `yaml:"version" toml:"version" json:"version"`
	History  []History `yaml:"history" toml:"history" json:"history"`
	// Includes is a newline or comma separated list of headers.
	Includes string    `yaml:"includes" toml:"includes" json:"includes"`
}

// IncludeList splits Includes into trimmed, non-empty entries.
func (f FileInfo) IncludeList() []string {
	fields := strings.FieldsFunc(f.Includes, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	var out []string
	for _, s := range fields {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Files pairs the source and header descriptions.
type Files struct {
	Source FileInfo `yaml:"source" toml:"source" json:"source"`
	Header FileInfo `yaml:"header" toml:"header" json:"header"`
}

// Empty reports whether no field of either description is set.
func (f Files) Empty() bool {
	return f.Source.empty() && f.Header.empty()
}

func (f FileInfo) empty() bool {
	return f.FileName == "" && f.Brief == "" && f.Author == "" && f.Date == "" &&
		f.Remarks == "" && f.Version == "" && len(f.History) == 0 && f.Includes == ""
}

// Metadata is everything besides the grid that one generation needs.
type Metadata struct {
	Files   Files
	Pragmas *PragmaTable
	// SourceName is the name of the workbook the grid was loaded from.
	SourceName string
}
