package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RowTracer dumps every dispatched grid row with optional file output.
type RowTracer interface {
	Trace(sheet string, row int, mode string, cells []string)
}

// rowTracer implements RowTracer with thread-safe writes.
type rowTracer struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRowTracer creates a new RowTracer. If writer is nil, returns a no-op tracer.
func NewRowTracer(w io.Writer) RowTracer {
	return &rowTracer{w: w, now: time.Now}
}

// Trace emits a single line with timestamp, sheet, one-based row, mode and
// the row's field cells separated by " | ".
func (t *rowTracer) Trace(sheet string, row int, mode string, cells []string) {
	if t.w == nil {
		return
	}

	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(strings.ReplaceAll(c, "\n", `\n`))
	}

	line := fmt.Sprintf("%s %s R%d %s: %s\n",
		t.now().Format("2006/01/02 15:04:05"),
		sheet,
		row+1,
		mode,
		b.String())

	t.mu.Lock()
	_, _ = io.WriteString(t.w, line)
	t.mu.Unlock()
}
