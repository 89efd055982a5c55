package cgen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/sheetgen/internal/codegen/diag"
	cgen "github.com/Alia5/sheetgen/internal/codegen/generator/c"
	"github.com/Alia5/sheetgen/internal/codegen/meta"
)

func testDocument() cgen.Document {
	return cgen.Document{
		Version:    "1.2.3",
		Date:       time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		SourceName: "can.xlsx",
		SourceFile: "can_cfg.c",
		HeaderFile: "can_cfg.h",
		Files: meta.Files{
			Source: meta.FileInfo{Brief: "CAN configuration", Includes: "can_cfg.h, <string.h>"},
			Header: meta.FileInfo{
				Author:   "kim",
				Includes: "stdint.h\n#include \"can_cfg.h\"",
				History:  []meta.History{{Version: "1.0", Date: "2024-01-01", Author: "kim", Description: "first"}},
			},
		},
	}
}

func banner(errs ...string) []string {
	out := []string{
		"/* ****************************************************************************",
		" * " + cgen.DefaultCompany,
		" * Generated by sheetgen 1.2.3 on 2024-05-06",
		" * Source: can.xlsx",
	}
	out = append(out, errs...)
	return append(out, " **************************************************************************** */", "")
}

func frame(kind, file string) []string {
	return []string{
		"/* ----------------------------------------------------------------------------",
		" * " + kind + " file " + file,
		" * -------------------------------------------------------------------------- */",
	}
}

func TestAssemble(t *testing.T) {
	body := cgen.Buffers{Source: []string{"int x;"}, Header: []string{"extern int x;"}}
	out, err := cgen.Assemble(testDocument(), body)
	require.NoError(t, err)

	assertLines(t, lines(
		banner(" * Errors: 0"),
		frame("Start of source", "can_cfg.c"),
		[]string{
			"",
			"/**",
			" * @file    can_cfg.c",
			" * @brief   CAN configuration",
			" */",
			"",
			`#include "can_cfg.h"`,
			"#include <string.h>",
			"",
			"int x;",
		},
		frame("End of source", "can_cfg.c"),
	), out.Source)

	assertLines(t, lines(
		banner(" * Errors: 0"),
		frame("Start of header", "can_cfg.h"),
		[]string{
			"",
			"/**",
			" * @file    can_cfg.h",
			" * @author  kim",
			" *",
			" * @par History",
			" * - 1.0 | 2024-01-01 | kim | first",
			" */",
			"",
			"#ifndef CAN_CFG_H",
			"#define CAN_CFG_H",
			"",
			`#include "stdint.h"`,
			"",
			"extern int x;",
		},
		frame("End of header", "can_cfg.h"),
		[]string{"#endif /* CAN_CFG_H */"},
	), out.Header)
}

func TestAssembleErrorBanner(t *testing.T) {
	doc := testDocument()
	doc.ErrorLimit = 2
	for i := 0; i < 3; i++ {
		doc.Errors = append(doc.Errors, diag.Error{
			Kind: diag.EmptyRequiredCell, Sheet: "Main", Pos: diag.Pos{Row: i, Col: 3}, Detail: "needs a name",
		})
	}
	out, err := cgen.Assemble(doc, cgen.Buffers{})
	require.NoError(t, err)
	assertLines(t, banner(
		" * Errors: 3",
		" *   "+doc.Errors[0].Error(),
		" *   "+doc.Errors[1].Error(),
		" *   ... and 1 more",
	), out.Source[:10])
}

func TestAssembleRequiresFileNames(t *testing.T) {
	doc := testDocument()
	doc.HeaderFile = ""
	_, err := cgen.Assemble(doc, cgen.Buffers{})
	assert.Error(t, err)
}

func TestJoinCRLF(t *testing.T) {
	assert.Equal(t, "a\r\n\r\nb\r\n", string(cgen.JoinCRLF([]string{"a", "", "b"})))
	assert.Empty(t, cgen.JoinCRLF(nil))
}

func TestBuffers(t *testing.T) {
	var b cgen.Buffers
	b.Both("x")
	b.Append(cgen.Buffers{Source: []string{"s"}, Header: []string{"h"}})
	assert.Equal(t, []string{"x", "s"}, b.Source)
	assert.Equal(t, []string{"x", "h"}, b.Header)
}
