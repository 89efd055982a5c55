package diag

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid-operation-code", InvalidOperationCode.String())
	assert.Equal(t, "project-definition-ordering-violation", ProjectDefinitionOrdering.String())
	assert.Equal(t, "malformed-item-header", MalformedItemHeader.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestPosString(t *testing.T) {
	assert.Equal(t, "R1C1", Pos{}.String())
	assert.Equal(t, "R12C3", Pos{Row: 11, Col: 2}.String())
	assert.Equal(t, "-", NoPos.String())
}

func TestErrorMessage(t *testing.T) {
	e := Error{Kind: EmptyRequiredCell, Sheet: "Main", Pos: Pos{Row: 4, Col: 3}, Detail: "define row needs a name"}
	assert.Equal(t, "[empty-required-cell] Main R5C4: define row needs a name", e.Error())

	s := &StructuralError{Kind: MalformedItemHeader, Sheet: "Main", Detail: "missing item header row"}
	assert.Equal(t, `sheet "Main": malformed-item-header: missing item header row`, s.Error())
}

func TestListCollectsInOrder(t *testing.T) {
	var l List
	l.Add(InvalidOperationCode, "A", Pos{Row: 1}, "unknown operation code %q", "$FOO")
	l.Add(DuplicateTitleName, "A", Pos{Row: 2}, "title used twice")
	l.Add(InvalidOperationCode, "B", Pos{Row: 3}, "plain 100% text")
	l.AddStructural(&StructuralError{Kind: MalformedItemHeader, Sheet: "C"})

	errs := l.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, `unknown operation code "$FOO"`, errs[0].Detail)
	assert.Equal(t, "plain 100% text", errs[2].Detail)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 2, l.Count(InvalidOperationCode))
	assert.Equal(t, 0, l.Count(InvalidArraySize))
	require.Len(t, l.Structural(), 1)

	errs[0].Detail = "changed"
	assert.NotEqual(t, "changed", l.Errors()[0].Detail)
}

func TestListConcurrentAdd(t *testing.T) {
	var l List
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Add(InvalidArraySize, "S", NoPos, "x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, l.Len())
}

func TestFromContext(t *testing.T) {
	assert.NoError(t, FromContext(nil))

	err := FromContext(context.Canceled)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrLimitExceeded))

	err = FromContext(context.DeadlineExceeded)
	assert.True(t, errors.Is(err, ErrLimitExceeded))
	assert.False(t, errors.Is(err, ErrCancelled))
}
