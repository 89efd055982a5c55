package meta_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
	"github.com/Alia5/sheetgen/internal/codegen/meta"
	"github.com/Alia5/sheetgen/internal/grid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var wantFiles = meta.Files{
	Source: meta.FileInfo{
		FileName: "can_cfg.c",
		Brief:    "CAN configuration",
		History:  []meta.History{{Version: "1.0", Date: "2024-01-01", Author: "kim", Description: "first"}},
	},
	Header: meta.FileInfo{FileName: "can_cfg.h", Includes: "stdint.h, can.h"},
}

func TestLoadFiles(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "files.yaml", `
source:
  fileName: can_cfg.c
  brief: CAN configuration
  history:
    - version: "1.0"
      date: "2024-01-01"
      author: kim
      description: first
header:
  fileName: can_cfg.h
  includes: stdint.h, can.h
`},
		{"toml", "files.toml", `
[source]
fileName = "can_cfg.c"
brief = "CAN configuration"

[[source.history]]
version = "1.0"
date = "2024-01-01"
author = "kim"
description = "first"

[header]
fileName = "can_cfg.h"
includes = "stdint.h, can.h"
`},
		{"json", "files.json", `{
  "source": {"fileName": "can_cfg.c", "brief": "CAN configuration",
    "history": [{"version": "1.0", "date": "2024-01-01", "author": "kim", "description": "first"}]},
  "header": {"fileName": "can_cfg.h", "includes": "stdint.h, can.h"}
}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files, err := meta.LoadFiles(writeFile(t, tc.file, tc.content))
			require.NoError(t, err)
			assert.Equal(t, wantFiles, files)
			assert.False(t, files.Empty())
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := meta.LoadFiles(writeFile(t, "files.ini", "a=b"))
		assert.ErrorContains(t, err, "unsupported format")
	})
}

const pragmaHCL = `
pragma "CALIB" {
  class "const" {
    enter      = "calib_rom"
    exit       = "default"
    enter_code = "/* calibration start */"
  }
  class "bss" {
    enter          = "calib_ram"
    enter_addr_mode = "near"
    exit           = "default"
  }
}
`

func TestLoadPragmas(t *testing.T) {
	yamlTable := `
pragmas:
  - keyword: CALIB
    classes:
      - class: const
        enter: calib_rom
        exit: default
        enterCode: /* calibration start */
      - class: bss
        enter: calib_ram
        enterAddrMode: near
        exit: default
`
	for name, path := range map[string]string{
		"yaml": writeFile(t, "pragmas.yaml", yamlTable),
		"hcl":  writeFile(t, "pragmas.hcl", pragmaHCL),
	} {
		t.Run(name, func(t *testing.T) {
			table, err := meta.LoadPragmas(path)
			require.NoError(t, err)
			p, ok := table.Lookup("CALIB")
			require.True(t, ok)
			assert.Equal(t, []string{
				"/* calibration start */",
				"#pragma section const calib_rom",
				"#pragma section bss calib_ram near",
			}, p.EnterLines())
			assert.Equal(t, []string{
				"#pragma section const default",
				"#pragma section bss default",
			}, p.ExitLines())
		})
	}
}

func TestParsePragmasHCL(t *testing.T) {
	table, err := meta.ParsePragmasHCL("inline.hcl", []byte(pragmaHCL))
	require.NoError(t, err)
	require.Len(t, table.Pragmas, 1)
	assert.Equal(t, "CALIB", table.Pragmas[0].Keyword)
	assert.Len(t, table.Pragmas[0].Classes, meta.PragmaClassesPerKeyword)

	_, err = meta.ParsePragmasHCL("broken.hcl", []byte(`pragma "X" {`))
	assert.Error(t, err)
}

func TestPragmaIndex(t *testing.T) {
	table := &meta.PragmaTable{Pragmas: []meta.Pragma{
		{Keyword: "A", Classes: []meta.PragmaClass{{Class: "x", EnterID: "first"}, {Class: "y"}}},
		{Keyword: "A", Classes: []meta.PragmaClass{{Class: "x", EnterID: "second"}, {Class: "y"}}},
		{Keyword: "B", Classes: []meta.PragmaClass{{Class: "x"}}},
	}}
	errs := &diag.List{}
	table.Index(errs)
	assert.Equal(t, 1, errs.Count(diag.DuplicatePragmaKeyword))
	assert.Equal(t, 1, errs.Count(diag.PragmaSectionMisuse))

	p, ok := table.Lookup(" A ")
	require.True(t, ok)
	assert.Equal(t, "first", p.Classes[0].EnterID)

	_, ok = table.Lookup("C")
	assert.False(t, ok)

	var nilTable *meta.PragmaTable
	_, ok = nilTable.Lookup("A")
	assert.False(t, ok)
}

func TestFilesFromGrid(t *testing.T) {
	g := grid.Grid{
		{"File Name", "can_cfg.c", "can_cfg.h"},
		{"Brief", "CAN configuration", ""},
		{"Include", "", "stdint.h"},
		{"include", "", "can.h"},
		{"History", "1.0 | 2024-01-01 | kim | first", ""},
		{"Unknown", "ignored", "ignored"},
	}
	files := meta.FilesFromGrid(g)
	assert.Equal(t, "can_cfg.c", files.Source.FileName)
	assert.Equal(t, "can_cfg.h", files.Header.FileName)
	assert.Equal(t, "CAN configuration", files.Source.Brief)
	assert.Empty(t, files.Header.Brief)
	assert.Equal(t, []string{"stdint.h", "can.h"}, files.Header.IncludeList())
	assert.Equal(t, wantFiles.Source.History, files.Source.History)
}

func TestIncludeList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a.h", []string{"a.h"}},
		{"a.h, b.h", []string{"a.h", "b.h"}},
		{"a.h\r\n\n <b.h> ,", []string{"a.h", "<b.h>"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, meta.FileInfo{Includes: tc.in}.IncludeList(), tc.in)
	}
}

func TestFilesEmpty(t *testing.T) {
	assert.True(t, meta.Files{}.Empty())
	assert.False(t, meta.Files{Header: meta.FileInfo{History: []meta.History{{}}}}.Empty())
}
