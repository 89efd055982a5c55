// Package diag holds the error taxonomy shared by every stage of sheet
// translation and the per-run list those errors are collected into.
package diag

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Kind classifies a recorded parse error.
type Kind int

const (
	EmptyRequiredCell Kind = iota
	InvalidOperationCode
	DuplicateTitleName
	InvalidArraySize
	FileNameExtensionMismatch
	FileNameAlreadyUsed
	PragmaSectionMisuse
	DuplicatePragmaKeyword
	ProjectDefinitionEmpty
	DuplicateProjectBranchValue
	MismatchedProjectDefinitionName
	InvalidProjectBranchValue
	ProjectDefinitionOrdering
	MalformedItemHeader
)

var kindNames = [...]string{
	EmptyRequiredCell:               "empty-required-cell",
	InvalidOperationCode:            "invalid-operation-code",
	DuplicateTitleName:              "duplicate-title-name",
	InvalidArraySize:                "invalid-array-size",
	FileNameExtensionMismatch:       "file-name-extension-mismatch",
	FileNameAlreadyUsed:             "file-name-already-used",
	PragmaSectionMisuse:             "pragma-section-misuse",
	DuplicatePragmaKeyword:          "duplicate-pragma-keyword",
	ProjectDefinitionEmpty:          "project-definition-empty",
	DuplicateProjectBranchValue:     "duplicate-project-branch-value",
	MismatchedProjectDefinitionName: "mismatched-project-definition-name",
	InvalidProjectBranchValue:       "invalid-project-branch-value",
	ProjectDefinitionOrdering:       "project-definition-ordering-violation",
	MalformedItemHeader:             "malformed-item-header",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Pos is a zero-based cell position. A negative Row means the error is not
// tied to a cell (file metadata, pragma table).
type Pos struct {
	Row int
	Col int
}

// NoPos marks errors that have no cell location.
var NoPos = Pos{Row: -1, Col: -1}

// String renders the position in spreadsheet R1C1 notation (one-based).
func (p Pos) String() string {
	if p.Row < 0 {
		return "-"
	}
	return fmt.Sprintf("R%dC%d", p.Row+1, p.Col+1)
}

// Error is a cell-content error. Processing continues after one is recorded.
type Error struct {
	Kind   Kind
	Sheet  string
	Pos    Pos
	Detail string
}

func (e Error) Error() string {
	s := fmt.Sprintf("[%s] %s %s", e.Kind, e.Sheet, e.Pos)
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

// StructuralError aborts the processing of one sheet.
type StructuralError struct {
	Kind   Kind
	Sheet  string
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("sheet %q: %s: %s", e.Sheet, e.Kind, e.Detail)
}

var (
	// ErrCancelled is returned when the caller's context is done mid-run.
	ErrCancelled = errors.New("generation cancelled")
	// ErrLimitExceeded is returned when a configured cell or time budget is exceeded.
	ErrLimitExceeded = errors.New("resource limit exceeded")
)

// List accumulates errors for a whole run, in the order they were recorded.
type List struct {
	mu         sync.Mutex
	errs       []Error
	structural []*StructuralError
}

func (l *List) Add(kind Kind, sheet string, pos Pos, format string, args ...any) {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	l.errs = append(l.errs, Error{Kind: kind, Sheet: sheet, Pos: pos, Detail: detail})
	l.mu.Unlock()
}

func (l *List) AddStructural(e *StructuralError) {
	l.mu.Lock()
	l.structural = append(l.structural, e)
	l.mu.Unlock()
}

// Errors returns a copy of the cell-content errors recorded so far.
func (l *List) Errors() []Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Error(nil), l.errs...)
}

// Structural returns a copy of the structural errors recorded so far.
func (l *List) Structural() []*StructuralError {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*StructuralError(nil), l.structural...)
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errs)
}

// Count returns how many errors of the given kind were recorded.
func (l *List) Count(kind Kind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// FromContext maps a context error to ErrCancelled, or to ErrLimitExceeded
// when a deadline set from a time budget expired.
func FromContext(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: wall-clock budget: %w", ErrLimitExceeded, err)
	}
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}
