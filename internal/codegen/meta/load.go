package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/sheetgen/internal/grid"
)

func decode(path string, data []byte, v any) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	case ".toml":
		err = toml.Unmarshal(data, v)
	case ".json":
		err = json.Unmarshal(data, v)
	default:
		return fmt.Errorf("%s: unsupported format (want .yaml, .toml or .json)", path)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LoadFiles reads source/header descriptions from a YAML, TOML or JSON file.
func LoadFiles(path string) (Files, error) {
	var f Files
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	err = decode(path, data, &f)
	return f, err
}

type hclRoot struct {
	Pragmas []Pragma `hcl:"pragma,block"`
}

// LoadPragmas reads a pragma table from YAML, TOML, JSON or HCL.
func LoadPragmas(path string) (*PragmaTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return ParsePragmasHCL(path, data)
	}
	t := &PragmaTable{}
	if err := decode(path, data, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ParsePragmasHCL decodes an HCL pragma table; name is used in diagnostics.
func ParsePragmasHCL(name string, src []byte) (*PragmaTable, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", name, diags)
	}
	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL %s: %w", name, diags)
	}
	return &PragmaTable{Pragmas: root.Pragmas}, nil
}

// FileInfoSheet is the sheet name FilesFromGrid is applied to.
const FileInfoSheet = "FileInfo"

// FilesFromGrid reads a key/value sheet: the key in the first column, the
// source value in the second and the header value in the third. History
// rows hold "version | date | author | description".
func FilesFromGrid(g grid.Accessor) Files {
	var f Files
	for r := 0; r < g.Rows(); r++ {
		key := strings.ToLower(strings.Join(strings.Fields(g.Cell(r, 0)), ""))
		src := strings.TrimSpace(g.Cell(r, 1))
		hdr := strings.TrimSpace(g.Cell(r, 2))
		apply(&f.Source, key, src)
		apply(&f.Header, key, hdr)
	}
	return f
}

func apply(fi *FileInfo, key, v string) {
	if v == "" {
		return
	}
	switch key {
	case "filename", "file":
		fi.FileName = v
	case "brief":
		fi.Brief = v
	case "author":
		fi.Author = v
	case "date":
		fi.Date = v
	case "remarks", "remark":
		fi.Remarks = v
	case "version":
		fi.Version = v
	case "includes", "include":
		if fi.Includes != "" {
			fi.Includes += "\n"
		}
		fi.Includes += v
	case "history":
		parts := strings.Split(v, "|")
		for len(parts) < 4 {
			parts = append(parts, "")
		}
		fi.History = append(fi.History, History{
			Version:     strings.TrimSpace(parts[0]),
			Date:        strings.TrimSpace(parts[1]),
			Author:      strings.TrimSpace(parts[2]),
			Description: strings.TrimSpace(strings.Join(parts[3:], "|")),
		})
	}
}
