package array

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Alia5/sheetgen/internal/codegen/align"
	"github.com/Alia5/sheetgen/internal/codegen/floatfix"
	"github.com/Alia5/sheetgen/internal/grid"
)

// ReadRow copies the raw cell text of member row offset i into the row
// buffer. Distinct offsets may be read concurrently.
func (a *Info) ReadRow(g grid.Accessor, i int) {
	if i < 0 || i >= len(a.rows) {
		return
	}
	r := a.Start.Row + i
	cells := make([]string, a.Read.Cols)
	for off := range cells {
		cells[off] = strings.TrimSpace(g.Cell(r, a.Start.Col+off))
	}
	a.rows[i] = cells
	a.rowsRead.Add(1)
}

// Row returns the raw cells read for member row offset i.
func (a *Info) Row(i int) []string {
	if i < 0 || i >= len(a.rows) {
		return nil
	}
	return a.rows[i]
}

// ReadAll reads every member row of arrays, splitting rows into batches of
// batchRows handled by up to workers goroutines. Only the raw row buffers
// are touched; Measure must run afterwards, sequentially.
func ReadAll(ctx context.Context, g grid.Accessor, arrays []*Info, workers, batchRows int) error {
	if batchRows <= 0 {
		batchRows = 64
	}
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for _, a := range arrays {
		if a.Shape == SizeError {
			continue
		}
		for from := 0; from < len(a.rows); from += batchRows {
			a, from, to := a, from, min(from+batchRows, len(a.rows))
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				for i := from; i < to; i++ {
					a.ReadRow(g, i)
				}
				return nil
			})
		}
	}
	return eg.Wait()
}

// Measure turns the row buffer into elements and computes the alignment
// width of every element and label column. Widths are byte lengths.
func (a *Info) Measure() {
	if a.Shape == SizeError {
		return
	}
	a.valueW = align.NewVector(a.Original.Cols)
	a.labelW = align.NewVector(a.Original.Cols + 1)
	a.elems = make([][]element, len(a.rows))
	step := a.cellsPerElement()
	for i, cells := range a.rows {
		if cells == nil || a.annotRows[i] {
			continue
		}
		var row []element
		var label []string
		for off := 0; off < len(cells); off++ {
			if a.IsAnnotationCol(off) {
				if cells[off] != "" {
					label = append(label, strings.TrimSpace(strings.TrimPrefix(cells[off], Marker)))
				}
				continue
			}
			v := cells[off]
			if step == 2 {
				frac := ""
				for off+1 < len(cells) && a.IsAnnotationCol(off+1) {
					off++
				}
				if off+1 < len(cells) {
					off++
					frac = cells[off]
				}
				v = joinDecimal(v, frac)
			}
			if v == "" {
				v = "0"
			}
			v = floatfix.Normalize(v, a.Type)
			e := element{label: strings.Join(label, " "), value: v}
			label = label[:0]
			j := len(row)
			a.valueW.Observe(j, len(e.value))
			a.labelW.Observe(j, len(e.label))
			row = append(row, e)
		}
		if len(label) > 0 {
			// labels after the last data column trail the row
			j := len(row)
			row = append(row, element{label: strings.Join(label, " ")})
			a.labelW.Observe(j, len(row[j].label))
		}
		a.elems[i] = row
	}
	a.measured = true
}

func joinDecimal(intPart, frac string) string {
	if frac == "" {
		return intPart
	}
	if intPart == "" {
		intPart = "0"
	}
	return intPart + "." + frac
}

// ValueWidth returns the alignment width of element column j.
func (a *Info) ValueWidth(j int) int {
	if a.valueW == nil {
		return 0
	}
	return a.valueW.At(j)
}

// LabelWidth returns the alignment width of the label before element column j.
func (a *Info) LabelWidth(j int) int {
	if a.labelW == nil {
		return 0
	}
	return a.labelW.At(j)
}
