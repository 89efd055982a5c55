package array_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/sheetgen/internal/codegen/array"
	"github.com/Alia5/sheetgen/internal/codegen/locator"
	"github.com/Alia5/sheetgen/internal/grid"
	sheetTest "github.com/Alia5/sheetgen/internal/testing"
)

// newArray locates the header of s and classifies the array declared on
// row 1, right below it.
func newArray(t *testing.T, s *sheetTest.Sheet, decl array.Decl) (*array.Info, grid.Grid, error) {
	t.Helper()
	g := s.Grid()
	p, err := locator.Locate("Main", g)
	require.NoError(t, err)
	a, err := array.New(array.ID("Main", decl.Name, 0), g, p, 1, decl)
	return a, g, err
}

func render(t *testing.T, a *array.Info, g grid.Grid) []string {
	t.Helper()
	require.NoError(t, array.ReadAll(context.Background(), g, []*array.Info{a}, 1, 2))
	a.Measure()
	return a.Render()
}

func TestParseSize(t *testing.T) {
	cases := []struct {
		in      string
		want    array.Size
		wantErr bool
	}{
		{in: "[4]", want: array.Size{Rows: 1, Cols: 4}},
		{in: "[3,4]", want: array.Size{Rows: 3, Cols: 4}},
		{in: " [ 2 , 8 ] ", want: array.Size{Rows: 2, Cols: 8}},
		{in: "4", wantErr: true},
		{in: "[]", wantErr: true},
		{in: "[0]", wantErr: true},
		{in: "[-1,2]", wantErr: true},
		{in: "[a,2]", wantErr: true},
		{in: "[1,2,3]", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := array.ParseSize(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSingleRowFromValueColumn(t *testing.T) {
	s := sheetTest.NewSheet(t).Header().
		Row("", "", "int16", "gains", "[3,4]", "").
		Cells(sheetTest.ValueCol, "1", "2", "3", "4").
		Cells(sheetTest.ValueCol, "5", "6", "7", "8").
		Cells(sheetTest.ValueCol, "9", "10", "11", "12")

	a, g, err := newArray(t, s, array.Decl{Type: "int16", Name: "gains"})
	require.NoError(t, err)
	assert.Equal(t, array.SingleRow, a.Shape)
	assert.Equal(t, array.Size{Rows: 3, Cols: 4}, a.Original)
	assert.Equal(t, array.Size{Rows: 3, Cols: 4}, a.Read)
	assert.Equal(t, 2, a.Start.Row)
	assert.Equal(t, sheetTest.ValueCol, a.Start.Col)
	assert.Equal(t, 4, a.End.Row)
	assert.Equal(t, sheetTest.ValueCol+3, a.End.Col)
	assert.True(t, a.Contains(3))
	assert.False(t, a.Contains(5))

	assert.Equal(t, []string{
		"int16 gains[3][4] = {",
		"\t{ 1, 2,  3,  4  },",
		"\t{ 5, 6,  7,  8  },",
		"\t{ 9, 10, 11, 12 }",
		"};", "", "",
	}, render(t, a, g))
}

func TestOneDimensionalRow(t *testing.T) {
	s := sheetTest.NewSheet(t).Header().
		Row("", "", "int16", "gains", "[3]", "").
		Cells(sheetTest.ValueCol, "10", "-200", "3")

	a, g, err := newArray(t, s, array.Decl{Type: "int16", Name: "gains", Description: "gain table"})
	require.NoError(t, err)
	assert.False(t, a.TwoDimensional())
	assert.Equal(t, "[3]", a.Dims())
	assert.Equal(t, []string{
		"int16 gains[3] = {\t/* gain table */",
		"\t10, -200, 3",
		"};", "", "",
	}, render(t, a, g))
}

func TestRowMajorBlock(t *testing.T) {
	s := sheetTest.NewSheet(t).Header().
		Row("", "const", "uint8", "tbl", "", "").
		Cells(sheetTest.NameCol, "[2,3]", "1", "2", "3").
		Cells(sheetTest.MemberCol, "4", "5", "6")

	a, g, err := newArray(t, s, array.Decl{Keyword: "const", Type: "uint8", Name: "tbl"})
	require.NoError(t, err)
	assert.Equal(t, array.RowMajorBlock, a.Shape)
	assert.Equal(t, sheetTest.MemberCol, a.Start.Col)
	assert.Equal(t, array.Size{Rows: 2, Cols: 3}, a.Read)
	assert.Equal(t, "extern const uint8 tbl[2][3];", a.Declaration())
	assert.Equal(t, []string{
		"const uint8 tbl[2][3] = {",
		"\t{ 1, 2, 3 },",
		"\t{ 4, 5, 6 }",
		"};", "", "",
	}, render(t, a, g))
	assert.Equal(t, 2, a.RowsRead())
}

func TestSingleColumn(t *testing.T) {
	s := sheetTest.NewSheet(t).Header().
		Row("", "", "uint32", "ids", "", "").
		Cells(sheetTest.NameCol, "[3,1]", "7").
		Cells(sheetTest.MemberCol, "8").
		Cells(sheetTest.MemberCol, "9")

	a, g, err := newArray(t, s, array.Decl{Type: "uint32", Name: "ids"})
	require.NoError(t, err)
	assert.Equal(t, array.SingleColumn, a.Shape)
	assert.False(t, a.TwoDimensional())
	assert.Equal(t, "[3]", a.Dims())
	assert.Equal(t, []string{"uint32 ids[3] = {", "\t7,", "\t8,", "\t9", "};", "", ""}, render(t, a, g))
}

func TestSplitDecimalBlock(t *testing.T) {
	s := sheetTest.NewSheet(t).Header().
		Row("", "", "float", "k", "", "").
		Set(1, sheetTest.MemberCol, "int").
		Set(1, sheetTest.MemberCol+1, "frac").
		Cells(sheetTest.NameCol, "[1,2]", "1", "5", "2", "")

	a, g, err := newArray(t, s, array.Decl{Type: "float", Name: "k"})
	require.NoError(t, err)
	assert.Equal(t, array.SplitDecimalBlock, a.Shape)
	assert.Equal(t, 4, a.Read.Cols)
	assert.Equal(t, []string{"float k[2] = {", "\t1.5f, 2.f", "};", "", ""}, render(t, a, g))
}

func TestAnnotationRowsAndCols(t *testing.T) {
	t.Run("row", func(t *testing.T) {
		s := sheetTest.NewSheet(t).Header().
			Row("", "", "int", "m", "", "").
			Cells(sheetTest.NameCol, "[2,2]", "1", "2").
			Cells(sheetTest.MemberCol, array.Marker, "note").
			Cells(sheetTest.MemberCol, "3", "4")

		a, g, err := newArray(t, s, array.Decl{Type: "int", Name: "m"})
		require.NoError(t, err)
		assert.Equal(t, 3, a.Read.Rows)
		assert.Equal(t, 2, a.DataRows())
		assert.Equal(t, []int{1}, a.AnnotationRows())
		assert.True(t, a.IsAnnotationRow(1))
		assert.Equal(t, []string{
			"int m[2][2] = {",
			"\t{ 1, 2 },",
			"\t/* note */",
			"\t{ 3, 4 }",
			"};", "", "",
		}, render(t, a, g))
	})

	t.Run("index column", func(t *testing.T) {
		s := sheetTest.NewSheet(t).Header().
			Row("", "", "int", "m", "", "").
			Set(1, sheetTest.MemberCol, array.Marker).
			Cells(sheetTest.NameCol, "[2,2]", "a", "1", "2").
			Cells(sheetTest.MemberCol, "bb", "3", "4")

		a, g, err := newArray(t, s, array.Decl{Type: "int", Name: "m"})
		require.NoError(t, err)
		assert.Equal(t, array.RowMajorBlock, a.Shape)
		assert.True(t, a.HasIndex())
		assert.Equal(t, []int{0}, a.AnnotationCols())
		assert.Equal(t, 3, a.Read.Cols)
		assert.Equal(t, sheetTest.DescCol+1, a.DescCol)
		assert.Equal(t, []string{
			"int m[2][2] = {",
			"\t{ /* a */  1, 2 },",
			"\t{ /* bb */ 3, 4 }",
			"};", "", "",
		}, render(t, a, g))
	})

	t.Run("multi-byte labels pad by bytes", func(t *testing.T) {
		s := sheetTest.NewSheet(t).Header().
			Row("", "", "int", "m", "", "").
			Set(1, sheetTest.MemberCol, array.Marker).
			Cells(sheetTest.NameCol, "[2,2]", "温度", "1", "2").
			Cells(sheetTest.MemberCol, "rpm", "3", "4")

		a, g, err := newArray(t, s, array.Decl{Type: "int", Name: "m"})
		require.NoError(t, err)
		lines := render(t, a, g)
		assert.Equal(t, 6, a.LabelWidth(0))
		assert.Equal(t, []string{
			"int m[2][2] = {",
			"\t{ /* 温度 */ 1, 2 },",
			"\t{ /* rpm */    3, 4 }",
			"};", "", "",
		}, lines)
	})
}

func TestTruncatedBlock(t *testing.T) {
	cases := []struct {
		name  string
		sheet func(*sheetTest.Sheet)
	}{
		{"operation code", func(s *sheetTest.Sheet) { s.Cells(sheetTest.OpCol, "$DEFINE") }},
		{"end of sheet", func(*sheetTest.Sheet) {}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sheetTest.NewSheet(t).Header().
				Row("", "", "int", "m", "", "").
				Cells(sheetTest.NameCol, "[3,2]", "1", "2").
				Cells(sheetTest.MemberCol, "3", "4")
			tc.sheet(s)

			a, g, err := newArray(t, s, array.Decl{Type: "int", Name: "m"})
			require.Error(t, err)
			assert.True(t, a.Truncated)
			assert.Equal(t, array.RowMajorBlock, a.Shape)
			assert.Equal(t, 2, a.Read.Rows)
			assert.Equal(t, array.Size{Rows: 3, Cols: 2}, a.Original)
			lines := render(t, a, g)
			assert.Equal(t, "int m[3][2] = {", lines[0])
			assert.Equal(t, "\t{ 3, 4 }", lines[2])
		})
	}
}

func TestSizeErrors(t *testing.T) {
	cases := []struct {
		name  string
		below string
		value string
	}{
		{"none", "", ""},
		{"both", "[2]", "[2]"},
		{"zero", "", "[0]"},
		{"not a number", "[x,2]", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sheetTest.NewSheet(t).Header().
				Row("", "", "int", "m", tc.value, "").
				Cells(sheetTest.NameCol, tc.below)

			a, _, err := newArray(t, s, array.Decl{Type: "int", Name: "m"})
			require.Error(t, err)
			assert.Equal(t, array.SizeError, a.Shape)
			assert.False(t, a.Contains(2))
			assert.Nil(t, a.Render())
		})
	}
}

func TestDeclaration(t *testing.T) {
	cases := []struct {
		keyword    string
		want       string
		wantStatic bool
	}{
		{"", "extern int v[4];", false},
		{"const", "extern const int v[4];", false},
		{"extern const", "extern const int v[4];", false},
		{"static const", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.keyword, func(t *testing.T) {
			s := sheetTest.NewSheet(t).Header().
				Row("", tc.keyword, "int", "v", "[4]", "").
				Cells(sheetTest.ValueCol, "1", "2", "3", "4")
			a, _, err := newArray(t, s, array.Decl{Keyword: tc.keyword, Type: "int", Name: "v"})
			require.NoError(t, err)
			if tc.want != "" {
				assert.Equal(t, tc.want, a.Declaration())
			}
			assert.Equal(t, tc.wantStatic, a.IsStatic())
		})
	}
}

func TestReadAll(t *testing.T) {
	s := sheetTest.NewSheet(t).Header().
		Row("", "", "int", "big", "", "").
		Cells(sheetTest.NameCol, "[5,2]", "1", "2")
	for i := 0; i < 4; i++ {
		s.Cells(sheetTest.MemberCol, "3", "4")
	}
	a, g, err := newArray(t, s, array.Decl{Type: "int", Name: "big"})
	require.NoError(t, err)

	t.Run("batches", func(t *testing.T) {
		require.NoError(t, array.ReadAll(context.Background(), g, []*array.Info{a}, 3, 2))
		assert.Equal(t, 5, a.RowsRead())
		assert.Equal(t, []string{"1", "2"}, a.Row(0))
		assert.Equal(t, []string{"3", "4"}, a.Row(4))
		assert.Nil(t, a.Row(5))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := array.ReadAll(ctx, g, []*array.Info{a}, 1, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
