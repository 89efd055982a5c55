// Package array classifies array blocks in a sheet, reads their cells and
// renders them as aligned C array initializers.
package array

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is the layout of an array block in the grid.
type Shape int

const (
	SizeError Shape = iota
	RowMajorBlock
	SingleRow
	SplitDecimalBlock
	SingleColumn
)

func (s Shape) String() string {
	switch s {
	case SizeError:
		return "size-error"
	case RowMajorBlock:
		return "row-major-block"
	case SingleRow:
		return "single-row"
	case SplitDecimalBlock:
		return "split-decimal-block"
	case SingleColumn:
		return "single-column"
	}
	return "unknown"
}

// Marker flags annotation rows and columns inside an array block.
const Marker = "//"

// Size is a row/column count.
type Size struct {
	Rows int
	Cols int
}

func (s Size) String() string {
	return fmt.Sprintf("[%d,%d]", s.Rows, s.Cols)
}

// IsSizeToken reports whether text is bracketed like a size specification.
func IsSizeToken(text string) bool {
	text = strings.TrimSpace(text)
	return len(text) >= 2 && text[0] == '[' && text[len(text)-1] == ']'
}

// ParseSize parses "[N]" (one row of N) or "[R,C]".
func ParseSize(text string) (Size, error) {
	text = strings.TrimSpace(text)
	if !IsSizeToken(text) {
		return Size{}, fmt.Errorf("%q is not a size specification", text)
	}
	parts := strings.Split(text[1:len(text)-1], ",")
	nums := make([]int, 0, 2)
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Size{}, fmt.Errorf("size %s: %q is not an integer", text, strings.TrimSpace(p))
		}
		if n <= 0 {
			return Size{}, fmt.Errorf("size %s: %d is not positive", text, n)
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 1:
		return Size{Rows: 1, Cols: nums[0]}, nil
	case 2:
		return Size{Rows: nums[0], Cols: nums[1]}, nil
	}
	return Size{}, fmt.Errorf("size %s: expected one or two dimensions", text)
}
