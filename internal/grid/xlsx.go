package grid

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads every sheet of an xlsx workbook. Cell text is the formatted
// value shown in the spreadsheet; formulas are not evaluated.
func LoadXLSX(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(f, filepath.Base(path))
}

// ReadXLSX is LoadXLSX for an already open stream.
func ReadXLSX(r io.Reader, name string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", name, err)
	}
	defer f.Close()
	return readWorkbook(f, name)
}

func readWorkbook(f *excelize.File, name string) (*Workbook, error) {
	wb := &Workbook{Name: name}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		g := make(Grid, len(rows))
		for i, r := range rows {
			g[i] = make([]string, len(r))
			for j, c := range r {
				g[i][j] = strings.TrimRight(c, "\r")
			}
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheet, Grid: g})
	}
	return wb, nil
}
