package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding resolves an encoding name accepted on the command line.
func Encoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "utf8":
		return unicode.UTF8BOM, nil
	case "sjis", "shiftjis", "cp932":
		return japanese.ShiftJIS, nil
	case "eucjp":
		return japanese.EUCJP, nil
	case "utf16", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// ReadCSV decodes r with enc and reads it as one sheet. Rows may be ragged.
func ReadCSV(r io.Reader, sheetName string, enc encoding.Encoding) (Sheet, error) {
	if enc == nil {
		enc = unicode.UTF8BOM
	}
	cr := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("read csv %s: %w", sheetName, err)
	}
	return Sheet{Name: sheetName, Grid: Grid(records)}, nil
}

// LoadCSV reads one or more csv files, one sheet per file, named after the
// file without its extension.
func LoadCSV(enc encoding.Encoding, paths ...string) (*Workbook, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no csv files given")
	}
	wb := &Workbook{Name: filepath.Base(paths[0])}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		sheet, err := ReadCSV(f, name, enc)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// Load picks a loader by file extension.
func Load(path string, enc encoding.Encoding) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path)
	case ".csv", ".txt":
		return LoadCSV(enc, path)
	default:
		return nil, fmt.Errorf("unsupported input %s: expected .xlsx, .xlsm or .csv", path)
	}
}
