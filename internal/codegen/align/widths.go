package align

// Column indexes into Widths.
const (
	KeywordCol = iota
	TypeCol
	NameCol
	ValueCol
	numCols
)

// Widths is the per-section alignment accumulator: the widest text seen in
// each of the keyword/type/name/value columns.
type Widths [numCols]int

// Observe widens column col to fit text. Width is byte length.
func (w *Widths) Observe(col int, text string) {
	if col < 0 || col >= numCols {
		return
	}
	if n := len(text); n > w[col] {
		w[col] = n
	}
}

// Group keys the separate accumulators kept per section.
type Group int

const (
	GroupDefine Group = iota
	GroupTypedef
	GroupMember
	GroupEnumMember
	GroupVariable
	numGroups
)

// Section holds one accumulator per group for a title section. Every title
// starts a new Section, which is how widths reset between sections.
type Section struct {
	groups [numGroups]Widths
}

func (s *Section) Group(g Group) *Widths {
	return &s.groups[g]
}

// Vector is a growable, bounds-checked list of widths indexed by column,
// used for array columns.
type Vector struct {
	w []int
}

// NewVector returns a vector sized for n columns.
func NewVector(n int) *Vector {
	return &Vector{w: make([]int, max(n, 0))}
}

func (v *Vector) Len() int { return len(v.w) }

// Grow extends the vector to at least n columns.
func (v *Vector) Grow(n int) {
	if n > len(v.w) {
		v.w = append(v.w, make([]int, n-len(v.w))...)
	}
}

// Observe widens column i to fit a cell of byte length n.
func (v *Vector) Observe(i, n int) {
	if i < 0 {
		return
	}
	v.Grow(i + 1)
	if n > v.w[i] {
		v.w[i] = n
	}
}

// At returns the width of column i, or 0 if out of range.
func (v *Vector) At(i int) int {
	if i < 0 || i >= len(v.w) {
		return 0
	}
	return v.w[i]
}
